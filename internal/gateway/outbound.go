package gateway

import (
	"github.com/ironkeel/galleon-server/internal/world"
)

// MapData is sent once right after a session successfully joins,
// carrying the static fields a client needs before its first
// gamestate_update arrives.
type MapData struct {
	Width  float32           `json:"width"`
	Height float32           `json:"height"`
	Harbors []HarborInfo     `json:"harbors"`
}

type HarborInfo struct {
	ID            uint32  `json:"id"`
	X             float32 `json:"x"`
	Y             float32 `json:"y"`
	Radius        float32 `json:"radius"`
	Name          string  `json:"name"`
	IslandID      int     `json:"islandId"`
	ExitDirection *Vec2JSON `json:"exitDirection,omitempty"`
}

type Vec2JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// GamestateUpdate is broadcast every tick.
type GamestateUpdate struct {
	Players     map[string]PlayerSnapshot `json:"players"`
	Projectiles []ProjectileSnapshot      `json:"projectiles"`
	Wrecks      []WreckSnapshot           `json:"wrecks"`
	Wind        WindSnapshot              `json:"wind"`
}

// PlayerSnapshot is the per-tick view of one entity (player or NPC).
// NPCs use the same shape with HasShield always false.
type PlayerSnapshot struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	X               float32       `json:"x"`
	Y               float32       `json:"y"`
	Rotation        float32       `json:"rotation"`
	Health          float32       `json:"health"`
	MaxHealth       float32       `json:"maxHealth"`
	SailState       int           `json:"sailState"`
	SpeedInKnots     float32      `json:"speedInKnots"`
	MaxSpeedInKnots  float32      `json:"maxSpeedInKnots"`
	WindEfficiency  float32       `json:"windEfficiency"`
	IsInDeepWater   bool          `json:"isInDeepWater"`
	ShipClassName   string        `json:"shipClassName"`
	IsRaft          bool          `json:"isRaft"`
	HasShield       bool          `json:"hasShield"`
	FleetSize       int           `json:"fleetSize"`
	NavigationSkill float32       `json:"navigationSkill"`
	NearHarbor      bool          `json:"nearHarbor"`
	ReloadLeft      float32       `json:"reloadLeft"`
	ReloadRight     float32       `json:"reloadRight"`
	MaxReload       float32       `json:"maxReload"`
	Mission         *MissionView  `json:"mission,omitempty"`
}

type MissionView struct {
	Kind  string `json:"kind"`
	State string `json:"state"`
}

type ProjectileSnapshot struct {
	ID string  `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
	Z  float32 `json:"z"`
}

type WreckSnapshot struct {
	ID          string  `json:"id"`
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	Rotation    float32 `json:"rotation"`
	IsOwnerLoot bool    `json:"isOwnerLoot"`
	OwnerID     string  `json:"ownerId"`
}

type WindSnapshot struct {
	Direction float32 `json:"direction"`
	Strength  string  `json:"strength"`
}

type HarborData struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

type HarborClosed struct{}

type MissionComplete struct {
	Gold int `json:"gold"`
	XP   int `json:"xp"`
}

type TransactionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type NameRejected struct {
	Reason string `json:"reason"`
}

type ServerFull struct {
	Message    string `json:"message"`
	MaxPlayers int    `json:"maxPlayers"`
}

// buildMapData snapshots the static world layout sent once on join.
func (gw *Gateway) buildMapData() MapData {
	harbors := gw.World.Harbors.All()
	out := make([]HarborInfo, 0, len(harbors))
	for _, h := range harbors {
		out = append(out, HarborInfo{
			ID:       uint32(h.ID),
			X:        h.Position.X,
			Y:        h.Position.Y,
			Radius:   h.Radius,
			Name:     h.Name,
			IslandID: h.IslandID,
			ExitDirection: &Vec2JSON{X: h.ExitDirection.X, Y: h.ExitDirection.Y},
		})
	}
	return MapData{
		Width:   gw.World.WorldWidth(),
		Height:  gw.World.WorldHeight(),
		Harbors: out,
	}
}

// buildGamestateUpdate freezes the live world into the per-tick wire
// snapshot. Called once per tick by the gateway's run loop, holding no
// lock of its own: the run loop is the sole caller and the sole mutator
// of World, so snapshot construction and simulation never interleave.
func (gw *Gateway) buildGamestateUpdate(now float64) GamestateUpdate {
	entities := gw.World.Entities()
	players := make(map[string]PlayerSnapshot, len(entities))
	for _, e := range entities {
		players[e.EntityID.String()] = gw.snapshotEntity(e, now)
	}

	projectiles := gw.World.Projectiles()
	projOut := make([]ProjectileSnapshot, 0, len(projectiles))
	for _, p := range projectiles {
		projOut = append(projOut, ProjectileSnapshot{ID: p.ID.String(), X: p.Position.X, Y: p.Position.Y, Z: p.Z})
	}

	wrecks := gw.World.Wrecks()
	wreckOut := make([]WreckSnapshot, 0, len(wrecks))
	for _, w := range wrecks {
		wreckOut = append(wreckOut, WreckSnapshot{
			ID:          w.ID.String(),
			X:           w.Position.X,
			Y:           w.Position.Y,
			Rotation:    float32(w.Rotation),
			IsOwnerLoot: w.IsOwnerLoot(now),
			OwnerID:     w.OwnerID.String(),
		})
	}

	return GamestateUpdate{
		Players:     players,
		Projectiles: projOut,
		Wrecks:      wreckOut,
		Wind: WindSnapshot{
			Direction: float32(gw.World.Wind.Direction),
			Strength:  gw.World.Wind.Strength.String(),
		},
	}
}

// speedInKnots is the wire-format unit conversion; 1 knot == pxPerSecondPerKnot
// world-space units per second, a fixed scale chosen so MaxSpeed values in
// the ship class table read out as plausible knot figures on the client HUD.
const pxPerSecondPerKnot = 2.0

func (gw *Gateway) snapshotEntity(e *world.Entity, now float64) PlayerSnapshot {
	ship := e.Flagship()
	var class string
	var maxHealth, maxSpeed float32
	if ship != nil {
		class = ship.Class.ID
		maxHealth = ship.Class.MaxHealth
		maxSpeed = ship.Class.MaxSpeed
	}

	snap := PlayerSnapshot{
		ID:              e.EntityID.String(),
		Name:            e.Name,
		X:               e.Position.X,
		Y:               e.Position.Y,
		Rotation:        float32(e.Heading),
		SailState:       e.SailState,
		SpeedInKnots:     e.Speed / pxPerSecondPerKnot,
		MaxSpeedInKnots:  maxSpeed / pxPerSecondPerKnot,
		WindEfficiency:  e.WindEfficiency,
		IsInDeepWater:   e.InDeepWater,
		ShipClassName:   class,
		IsRaft:          e.IsRaft(),
		HasShield:       e.Kind == world.KindPlayer && e.HasShield(now),
		FleetSize:       e.Fleet.Size(),
		NavigationSkill: navigationSkill(e),
		NearHarbor:      e.NearHarbor,
		MaxHealth:       maxHealth,
	}
	if ship != nil {
		snap.Health = ship.Health
	}

	rate := e.FireRate()
	snap.MaxReload = rate
	snap.ReloadLeft = reloadRemaining(now-e.LastShotPort, rate)
	snap.ReloadRight = reloadRemaining(now-e.LastShotStarboard, rate)

	if e.Kind == world.KindPlayer && e.Player.Mission != nil {
		snap.Mission = &MissionView{
			Kind:  missionKindName(e.Player.Mission.Kind),
			State: missionStateName(e.Player.Mission.State),
		}
	}
	return snap
}

// navigationSkill exposes a ship's turn rate as a display stat: how
// nimbly it can come about, the nautical meaning of "navigation skill"
// for a single-hull sailing vessel.
func navigationSkill(e *world.Entity) float32 {
	ship := e.Flagship()
	if ship == nil {
		return 0
	}
	return ship.Class.TurnSpeed
}

func reloadRemaining(sinceLast float64, rate float32) float32 {
	remaining := rate - float32(sinceLast)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func missionKindName(k world.MissionKind) string {
	switch k {
	case world.MissionSailToHarbor:
		return "SAIL_TO_HARBOR"
	case world.MissionEscort:
		return "ESCORT"
	case world.MissionDefeatNPCs:
		return "DEFEAT_NPCS"
	case world.MissionStayInArea:
		return "STAY_IN_AREA"
	default:
		return "UNKNOWN"
	}
}

func missionStateName(s world.MissionState) string {
	switch s {
	case world.MissionActive:
		return "ACTIVE"
	case world.MissionSuccess:
		return "SUCCESS"
	case world.MissionFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
