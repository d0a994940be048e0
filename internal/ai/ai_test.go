package ai

import (
	"strings"
	"testing"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/terrain"
	"github.com/ironkeel/galleon-server/internal/world"
)

func openTerrain(t *testing.T) *terrain.Map {
	t.Helper()
	doc := `{"width":40,"height":40,"tileSize":32,"tiles":[` +
		strings.TrimSuffix(strings.Repeat(`[`+strings.TrimSuffix(strings.Repeat("0,", 40), ",")+`],`, 40), ",") + `]}`
	tm, err := terrain.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	return tm
}

func oneHarbor(t *testing.T, id harbor.ID, x, y float32) *harbor.Registry {
	t.Helper()
	doc := `[{"id":` + itoa(int(id)) + `,"tileX":` + ftoa(x/32) + `,"tileY":` + ftoa(y/32) +
		`,"tileSize":32,"name":"Port Royal","islandId":1,"exitDirection":{"x":0,"y":-1},"radius":60}]`
	reg, err := harbor.Load(strings.NewReader(doc), 32)
	if err != nil {
		t.Fatalf("load harbor: %v", err)
	}
	return reg
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		return "-" + string(b)
	}
	return string(b)
}

func ftoa(f float32) string {
	return itoa(int(f))
}

func pirateRole(t *testing.T) *config.Role {
	t.Helper()
	roles, err := config.DefaultRoles()
	if err != nil {
		t.Fatalf("load roles: %v", err)
	}
	r := roles.Get("PIRATE")
	if r == nil {
		t.Fatalf("missing PIRATE role")
	}
	return r
}

func traderRole(t *testing.T) *config.Role {
	t.Helper()
	roles, err := config.DefaultRoles()
	if err != nil {
		t.Fatalf("load roles: %v", err)
	}
	r := roles.Get("TRADER")
	if r == nil {
		t.Fatalf("missing TRADER role")
	}
	return r
}

func sloopClass(t *testing.T) *config.ShipClass {
	t.Helper()
	table, err := config.DefaultShipClasses()
	if err != nil {
		t.Fatalf("load classes: %v", err)
	}
	c := table.Get("sloop")
	if c == nil {
		t.Fatalf("missing sloop class")
	}
	return c
}

func newNPC(id world.EntityID, pos mathf.Vec2, role *config.Role, cls *config.ShipClass) *world.Entity {
	return &world.Entity{
		EntityID: id,
		Kind:     world.KindNPC,
		Position: pos,
		Fleet:    world.NewFleet(cls),
		NPC: &world.NPCState{
			Role:        role,
			Intent:      role.DefaultIntent,
			MaxLifetime: 1e9,
		},
	}
}

func TestSelectTargetPrefersNearestValid(t *testing.T) {
	cls := sloopClass(t)
	pirate := newNPC(1, mathf.Vec2{X: 0, Y: 0}, pirateRole(t), cls)

	far := newNPC(2, mathf.Vec2{X: 500, Y: 0}, traderRole(t), cls)
	near := newNPC(3, mathf.Vec2{X: 100, Y: 0}, traderRole(t), cls)
	samePirate := newNPC(4, mathf.Vec2{X: 50, Y: 0}, pirateRole(t), cls)

	ctx := Context{
		Tuning:      config.Default(),
		AllEntities: []*world.Entity{pirate, far, near, samePirate},
	}

	got := selectTarget(pirate, ctx)
	if got == nil || got.EntityID != near.EntityID {
		t.Fatalf("expected nearest non-pirate target (id 3), got %+v", got)
	}
}

func TestSelectTargetExcludesHarboredRaftAndSunk(t *testing.T) {
	cls := sloopClass(t)
	pirate := newNPC(1, mathf.Vec2{X: 0, Y: 0}, pirateRole(t), cls)

	harbored := newNPC(2, mathf.Vec2{X: 50, Y: 0}, traderRole(t), cls)
	harbored.InHarbor = true

	sunk := newNPC(3, mathf.Vec2{X: 60, Y: 0}, traderRole(t), cls)
	sunk.Fleet.Ships[0].Sunk = true

	raftCls := &config.ShipClass{ID: "raft", CannonsPerSide: 0}
	raft := newNPC(4, mathf.Vec2{X: 70, Y: 0}, traderRole(t), raftCls)

	ok := newNPC(5, mathf.Vec2{X: 200, Y: 0}, traderRole(t), cls)

	ctx := Context{
		Tuning:      config.Default(),
		AllEntities: []*world.Entity{pirate, harbored, sunk, raft, ok},
	}

	got := selectTarget(pirate, ctx)
	if got == nil || got.EntityID != ok.EntityID {
		t.Fatalf("expected only the open-water target to be valid, got %+v", got)
	}
}

func TestTravelWaitArrivedSequence(t *testing.T) {
	tm := openTerrain(t)
	tuning := config.Default()
	hid := harbor.ID(1)
	reg := oneHarbor(t, hid, 320, 320)
	h := reg.Get(hid)

	cls := sloopClass(t)
	trader := newNPC(1, h.Position.Add(mathf.Vec2{X: 300, Y: 0}), traderRole(t), cls)
	trader.NPC.IntentData.TargetHarborID = hid
	trader.NPC.Intent = config.IntentTravel

	ctx := Context{
		Tuning:      tuning,
		Terrain:     tm,
		Harbors:     reg,
		DT:          1.0 / 60,
		AllEntities: []*world.Entity{trader},
	}

	Step(trader, ctx)
	if trader.NPC.Intent != config.IntentTravel {
		t.Fatalf("expected to remain in TRAVEL while far from harbor, got %v", trader.NPC.Intent)
	}
	if !trader.Input.SailUp {
		t.Fatalf("expected sails up while travelling")
	}

	trader.Position = h.Position
	trader.Speed = 0
	Step(trader, ctx)
	if trader.NPC.Intent != config.IntentWait {
		t.Fatalf("expected WAIT on arrival at harbor, got %v", trader.NPC.Intent)
	}

	trader.NPC.IntentData.WaitTimer = 0.001
	for i := 0; i < 5 && trader.NPC.Intent == config.IntentWait; i++ {
		Step(trader, ctx)
	}
	if trader.NPC.Intent != config.IntentArrived {
		t.Fatalf("expected ARRIVED after wait timer expires, got %v", trader.NPC.Intent)
	}

	for i := 0; i < 120 && trader.NPC.Intent != config.IntentDespawning; i++ {
		Step(trader, ctx)
	}
	if trader.NPC.Intent != config.IntentDespawning {
		t.Fatalf("expected ARRIVED to eventually despawn, got %v", trader.NPC.Intent)
	}
}

func TestOnDamageTriggersEvadeBelowFleeThreshold(t *testing.T) {
	cls := sloopClass(t)
	role := pirateRole(t)
	pirate := newNPC(1, mathf.Vec2{X: 0, Y: 0}, role, cls)
	pirate.NPC.Intent = config.IntentEngage
	pirate.NPC.CombatActive = true

	attacker := newNPC(2, mathf.Vec2{X: -100, Y: 0}, traderRole(t), cls)

	ctx := Context{
		Tuning:      config.Default(),
		AllEntities: []*world.Entity{pirate, attacker},
	}

	ship := pirate.Flagship()
	ship.Health = ship.Class.MaxHealth * (role.FleeThreshold - 0.05)

	OnDamage(pirate, attacker.EntityID, ctx)

	if pirate.NPC.Intent != config.IntentEvade {
		t.Fatalf("expected EVADE once below flee threshold, got %v", pirate.NPC.Intent)
	}
	if pirate.NPC.CombatActive {
		t.Fatalf("expected combat to disengage on evade")
	}
	if pirate.NPC.IntentData.EvadeFrom != attacker.Position {
		t.Fatalf("expected evade-from to be set to attacker position, got %v", pirate.NPC.IntentData.EvadeFrom)
	}
}

func TestOnDamageAboveThresholdStaysEngaged(t *testing.T) {
	cls := sloopClass(t)
	role := pirateRole(t)
	pirate := newNPC(1, mathf.Vec2{X: 0, Y: 0}, role, cls)
	pirate.NPC.Intent = config.IntentEngage

	ctx := Context{Tuning: config.Default(), AllEntities: []*world.Entity{pirate}}

	ship := pirate.Flagship()
	ship.Health = ship.Class.MaxHealth

	OnDamage(pirate, world.EntityID(99), ctx)
	if pirate.NPC.Intent != config.IntentEngage {
		t.Fatalf("expected to stay engaged at full health, got %v", pirate.NPC.Intent)
	}
}

func TestAttemptFireFiresOnlyWithinBroadsideTolerance(t *testing.T) {
	cls := sloopClass(t)
	tuning := config.Default()

	pirate := newNPC(1, mathf.Vec2{X: 0, Y: 0}, pirateRole(t), cls)
	pirate.Heading = 0 // facing north

	// Target due east: bearing is +Pi/2, exactly abeam to starboard.
	target := newNPC(2, mathf.Vec2{X: 200, Y: 0}, traderRole(t), cls)
	pirate.NPC.CombatTarget = target.EntityID

	ctx := Context{Tuning: tuning, AllEntities: []*world.Entity{pirate, target}}

	attemptFire(pirate, ctx)
	if !pirate.Input.ShootRight {
		t.Fatalf("expected a starboard broadside at an abeam target")
	}
	if pirate.Input.ShootLeft {
		t.Fatalf("did not expect a port broadside")
	}
}

func TestAttemptFireWithholdsOutsideTolerance(t *testing.T) {
	cls := sloopClass(t)
	tuning := config.Default()

	pirate := newNPC(1, mathf.Vec2{X: 0, Y: 0}, pirateRole(t), cls)
	pirate.Heading = 0

	// Target nearly dead ahead: far outside the +/-90 degree tolerance band.
	target := newNPC(2, mathf.Vec2{X: 10, Y: -200}, traderRole(t), cls)
	pirate.NPC.CombatTarget = target.EntityID

	ctx := Context{Tuning: tuning, AllEntities: []*world.Entity{pirate, target}}

	attemptFire(pirate, ctx)
	if pirate.Input.ShootLeft || pirate.Input.ShootRight {
		t.Fatalf("did not expect a broadside at a bow-on target")
	}
}
