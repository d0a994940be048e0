package gateway

import (
	"log"

	"github.com/ironkeel/galleon-server/internal/kinematics"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/world"
)

// SetPlayerName is the first message a session must send to join the
// simulation. An optional Spawn hint lets debug/test clients request a
// specific starting position; production clients omit it.
type SetPlayerName struct {
	Name  string      `json:"name"`
	Spawn *mathf.Vec2 `json:"spawn,omitempty"`
}

// InputMessage is the per-tick bitfield of intents a client sends.
// Named InputMessage (not Input) to avoid colliding with world.Input,
// which is the simulation-side type this decodes into.
type InputMessage struct {
	Left       bool `json:"left"`
	Right      bool `json:"right"`
	SailUp     bool `json:"sailUp"`
	SailDown   bool `json:"sailDown"`
	ShootLeft  bool `json:"shootLeft"`
	ShootRight bool `json:"shootRight"`
}

type EnterHarbor struct{}
type CloseHarbor struct{}
type RepairShip struct{}

type SwitchFlagship struct {
	ShipClass string `json:"shipClass"`
}

type DebugTeleport struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// entity looks up the caller's live entity, or nil if it has not
// spawned yet or has disconnected since. Every handler below no-ops on
// nil: input targeting an entity that no longer exists is silently
// dropped.
func (sess *ClientData) entity(gw *Gateway) *world.Entity {
	if sess.EntityID == world.EntityIDInvalid {
		return nil
	}
	return gw.World.Entity(sess.EntityID)
}

func (data *SetPlayerName) Process(gw *Gateway, sess *ClientData) {
	if sess.EntityID != world.EntityIDInvalid {
		return // already joined
	}

	name, ok := validateName(data.Name, gw.Tuning.PlayerNameMinLength, gw.Tuning.PlayerNameMaxLength)
	if !ok {
		sess.client(gw).Send(NameRejected{Reason: "invalid name"})
		sess.client(gw).Destroy()
		return
	}
	if nameTaken(gw, name) {
		sess.client(gw).Send(NameRejected{Reason: "name already in use"})
		sess.client(gw).Destroy()
		return
	}

	class := gw.Ships.Get(defaultShipClassID)
	if class == nil {
		log.Printf("gateway: default ship class %q not found", defaultShipClassID)
		sess.client(gw).Destroy()
		return
	}

	pos, ok := findSpawnPosition(gw, data.Spawn)
	if !ok {
		log.Printf("gateway: no safe spawn position found for %s", name)
		sess.client(gw).Destroy()
		return
	}

	e := &world.Entity{
		Kind:     world.KindPlayer,
		Name:     name,
		Position: pos,
		Fleet:    world.NewFleet(class),
		Player:   &world.PlayerState{Session: sess.SessionID},
	}
	id := gw.World.AddEntity(e)

	sess.Name = name
	sess.EntityID = id

	sess.client(gw).Send(gw.buildMapData())
}

func (InputMessage) Process(gw *Gateway, sess *ClientData) {
	// Unreachable: input messages are coalesced directly into
	// ClientData.PendingInput by the socket read pump rather than
	// routed through the shared inbound queue (see socket.go), so this
	// Process method only exists to satisfy the Inbound interface for
	// registerInbound's type table.
}

func (EnterHarbor) Process(gw *Gateway, sess *ClientData) {
	e := sess.entity(gw)
	if e == nil || e.Kind != world.KindPlayer || e.InHarbor {
		return
	}
	h := gw.World.Harbors.Within(e.Position)
	if h == nil {
		return
	}
	kinematics.EnterHarbor(e, h)
	sess.client(gw).Send(HarborData{ID: uint32(h.ID), Name: h.Name})
}

func (CloseHarbor) Process(gw *Gateway, sess *ClientData) {
	e := sess.entity(gw)
	if e == nil || e.Kind != world.KindPlayer || !e.InHarbor {
		return
	}
	h := gw.World.Harbors.Get(e.DockedHarborID)
	if h == nil {
		return
	}
	kinematics.ExitHarbor(e, h, gw.Tuning, gw.now())
	sess.client(gw).Send(HarborClosed{})
}

func (RepairShip) Process(gw *Gateway, sess *ClientData) {
	e := sess.entity(gw)
	if e == nil || e.Kind != world.KindPlayer || !e.InHarbor {
		sess.client(gw).Send(TransactionResult{Success: false, Message: "must be docked to repair"})
		return
	}
	ship := e.Flagship()
	if ship == nil || ship.Sunk {
		return
	}
	const repairCostPerHP = 1
	missing := ship.Class.MaxHealth - ship.Health
	cost := int(missing * repairCostPerHP)
	if cost <= 0 {
		sess.client(gw).Send(TransactionResult{Success: true, Message: "already at full health"})
		return
	}
	if e.Player.Gold < cost {
		sess.client(gw).Send(TransactionResult{Success: false, Message: "not enough gold"})
		return
	}
	e.Player.Gold -= cost
	ship.Repair(missing)
	sess.client(gw).Send(TransactionResult{Success: true, Message: "ship repaired"})
}

func (data SwitchFlagship) Process(gw *Gateway, sess *ClientData) {
	e := sess.entity(gw)
	if e == nil || e.Kind != world.KindPlayer {
		return
	}
	for i, ship := range e.Fleet.Ships {
		if ship.Class.ID == data.ShipClass {
			e.Fleet.SwitchFlagship(i)
			return
		}
	}
}

func (data DebugTeleport) Process(gw *Gateway, sess *ClientData) {
	e := sess.entity(gw)
	if e == nil {
		return
	}
	e.Position = mathf.Vec2{X: data.X, Y: data.Y}
}

// defaultShipClassID is the hull a freshly joined player starts with.
const defaultShipClassID = "sloop"

func (gw *Gateway) now() float64 {
	return gw.clock()
}

// client looks up the live Client for this session in the gateway's
// SessionID index (clientByID). Session bookkeeping stays on ClientData; the transport
// object (needed to Send/Destroy) is recovered through the gateway's
// session index rather than stored back-pointer-style on ClientData,
// keeping session data separate from the transport that carries it.
func (sess *ClientData) client(gw *Gateway) Client {
	return gw.clientByID[sess.SessionID]
}
