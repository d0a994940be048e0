package world

import (
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/mathf"
)

// Kind tags an Entity as a human-controlled Player or an autonomous NPC.
// Replaces the duck-typed "entity with a type string" pattern with a
// small closed tagged variant: shared physics fields live directly on
// Entity, and the variant-specific state hangs off the Player/NPC
// pointer that is non-nil for the matching Kind.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindNPC
)

func (k Kind) String() string {
	if k == KindNPC {
		return "npc"
	}
	return "player"
}

// Side names a broadside.
type Side uint8

const (
	Port Side = iota
	Starboard
)

// Entity is a live ship-controlling actor: a player's session or an NPC.
// Fields here are the ones shared by both kinds and read by kinematics,
// collision, and the navigator regardless of who is steering.
type Entity struct {
	EntityID EntityID
	Kind     Kind
	Name     string

	Position mathf.Vec2
	Heading  mathf.Heading
	Speed    float32

	SailState    int // 0, 1, 2
	SailCooldown float32

	WindEfficiency float32
	InDeepWater    bool

	Fleet *Fleet

	ShieldExpiresAt float64 // wall-clock seconds; 0 means no shield

	InHarbor       bool
	DockedHarborID harbor.ID
	NearHarbor     bool

	LastShotPort      float64
	LastShotStarboard float64
	firedPort         bool // set by RecordShot; an unfired side has no cooldown
	firedStarboard    bool

	ConsecutiveLandHits int

	Input Input

	Player *PlayerState
	NPC    *NPCState
}

// Flagship returns the entity's active hull.
func (e *Entity) Flagship() *Ship {
	return e.Fleet.Flagship()
}

// IsRaft reports whether the flagship is a raft (zero cannons, immune to
// damage, cannot fire).
func (e *Entity) IsRaft() bool {
	f := e.Flagship()
	return f != nil && f.Class.IsRaft()
}

// HasShield reports whether the entity is currently immune to damage and
// barred from firing, given the current wall-clock time.
func (e *Entity) HasShield(now float64) bool {
	return e.ShieldExpiresAt > now
}

// FireRate returns the entity's broadside cooldown. Non-combat-capable
// NPCs and rafts get an effectively infinite cooldown so they never fire.
func (e *Entity) FireRate() float32 {
	if e.IsRaft() {
		return float32(1e9)
	}
	if e.NPC != nil && !e.NPC.Role.CombatCapable {
		return float32(1e9)
	}
	return e.Flagship().Class.FireRate
}

// CanFire reports whether the given side's cooldown has elapsed (a side
// that has never fired is ready) and the entity is not shielded,
// raft-hulled, sunk, or a non-combat-capable NPC.
func (e *Entity) CanFire(side Side, now float64) bool {
	if e.IsRaft() || e.HasShield(now) {
		return false
	}
	if f := e.Flagship(); f == nil || f.Sunk {
		return false
	}
	if e.NPC != nil && !e.NPC.Role.CombatCapable {
		return false
	}
	last, fired := e.LastShotPort, e.firedPort
	if side == Starboard {
		last, fired = e.LastShotStarboard, e.firedStarboard
	}
	return !fired || now-last >= float64(e.FireRate())
}

// RecordShot stamps the side's last-shot time.
func (e *Entity) RecordShot(side Side, now float64) {
	if side == Port {
		e.LastShotPort, e.firedPort = now, true
	} else {
		e.LastShotStarboard, e.firedStarboard = now, true
	}
}

// PlayerState is the state unique to a human-controlled entity.
type PlayerState struct {
	Session   SessionID
	Gold, XP  int
	Mission   *Mission
}

// AIState is the NPC's coarse movement posture, orthogonal to Intent.
type AIState uint8

const (
	AISailing AIState = iota
	AIStopped
	AIDespawning
)

// IntentData carries the per-intent scratch fields an NPC's behavior
// step needs (only the fields relevant to the active intent are set).
type IntentData struct {
	TargetHarborID  harbor.ID
	WaitTimer       float32
	ArrivedNotified bool
	EvadeFrom       mathf.Vec2
	EvadeElapsed    float32
}

// NPCState is the state unique to an autonomous NPC.
type NPCState struct {
	Role *config.Role

	Intent     config.Intent
	IntentData IntentData
	AIState    AIState

	DesiredHeading, CurrentHeading mathf.Heading
	NavUpdateCounter               int

	CombatActive   bool
	CombatTarget   EntityID
	CombatDistance float32
	CombatSide     Side

	LastAttacker   EntityID
	LastAttackTime float64

	SpawnTime      float64
	MaxLifetime    float32
	StuckCounter   int
}
