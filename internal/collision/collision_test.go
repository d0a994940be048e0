package collision

import (
	"testing"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/world"
)

func loadClass(t *testing.T, id string) *config.ShipClass {
	t.Helper()
	table, err := config.DefaultShipClasses()
	if err != nil {
		t.Fatalf("load classes: %v", err)
	}
	c := table.Get(id)
	if c == nil {
		t.Fatalf("missing class %q", id)
	}
	return c
}

func TestProjectileHitsShipAtCenter(t *testing.T) {
	cls := loadClass(t, "sloop")
	ship := world.NewShip(cls)
	e := &world.Entity{EntityID: 2, Position: mathf.Vec2{X: 100, Y: 100}, Heading: 0, Fleet: &world.Fleet{Ships: []world.Ship{ship}}}

	p := &world.Projectile{OwnerID: 9, Position: mathf.Vec2{X: 100, Y: 100}}
	if !ProjectileHitsShip(p, e) {
		t.Fatalf("expected hit at ship center")
	}
}

func TestProjectileMissesFarAway(t *testing.T) {
	cls := loadClass(t, "sloop")
	ship := world.NewShip(cls)
	e := &world.Entity{EntityID: 2, Position: mathf.Vec2{X: 0, Y: 0}, Heading: 0, Fleet: &world.Fleet{Ships: []world.Ship{ship}}}

	p := &world.Projectile{OwnerID: 9, Position: mathf.Vec2{X: 1000, Y: 1000}}
	if ProjectileHitsShip(p, e) {
		t.Fatalf("expected miss far from ship")
	}
}

func TestProjectileHitsShipOffAxis(t *testing.T) {
	cls := loadClass(t, "sloop")
	ship := world.NewShip(cls)
	e := &world.Entity{EntityID: 2, Position: mathf.Vec2{X: 100, Y: 100}, Heading: 0, Fleet: &world.Fleet{Ships: []world.Ship{ship}}}

	// 5px lateral (well within halfWidth ~13.2), 18px longitudinal along
	// the bow-stern line (well within halfLength ~21.6): a real hit.
	p := &world.Projectile{OwnerID: 9, Position: mathf.Vec2{X: 105, Y: 82}}
	if !ProjectileHitsShip(p, e) {
		t.Fatalf("expected hit for off-axis point within the hull rectangle")
	}
}

func TestProjectileMissesWhenLateralExceedsHalfWidth(t *testing.T) {
	cls := loadClass(t, "sloop")
	ship := world.NewShip(cls)
	e := &world.Entity{EntityID: 2, Position: mathf.Vec2{X: 100, Y: 100}, Heading: 0, Fleet: &world.Fleet{Ships: []world.Ship{ship}}}

	// 18px lateral exceeds halfWidth (~13.2) even though it sits only 5px
	// along the bow-stern line from center; swapping the two axes would
	// wrongly report this as a hit.
	p := &world.Projectile{OwnerID: 9, Position: mathf.Vec2{X: 118, Y: 95}}
	if ProjectileHitsShip(p, e) {
		t.Fatalf("expected miss when lateral offset exceeds hull half-width")
	}
}

func TestProjectileNeverHitsOwner(t *testing.T) {
	cls := loadClass(t, "sloop")
	ship := world.NewShip(cls)
	e := &world.Entity{EntityID: 5, Position: mathf.Vec2{X: 0, Y: 0}, Heading: 0, Fleet: &world.Fleet{Ships: []world.Ship{ship}}}

	p := &world.Projectile{OwnerID: 5, Position: mathf.Vec2{X: 0, Y: 0}}
	if ProjectileHitsShip(p, e) {
		t.Fatalf("projectile must never hit its owner")
	}
}

func TestProjectileNeverHitsRaft(t *testing.T) {
	cls := loadClass(t, "raft")
	ship := world.NewShip(cls)
	e := &world.Entity{EntityID: 5, Position: mathf.Vec2{X: 0, Y: 0}, Heading: 0, Fleet: &world.Fleet{Ships: []world.Ship{ship}}}

	p := &world.Projectile{OwnerID: 9, Position: mathf.Vec2{X: 0, Y: 0}}
	if ProjectileHitsShip(p, e) {
		t.Fatalf("raft must be immune to projectile hits")
	}
}

func TestSATNoOverlapAfterResolution(t *testing.T) {
	tuning := config.Default()
	cls := loadClass(t, "sloop")

	a := &world.Entity{EntityID: 1, Position: mathf.Vec2{X: 0, Y: 0}, Heading: 0, Fleet: world.NewFleet(cls)}
	b := &world.Entity{EntityID: 2, Position: mathf.Vec2{X: 5, Y: 0}, Heading: 0, Fleet: world.NewFleet(cls)}

	for i := 0; i < 200; i++ {
		ResolvePair(a, b, tuning)
	}

	result := TestShips(a.Position, a.Heading, cls, b.Position, b.Heading, cls, tuning)
	if result.Overlapping {
		t.Fatalf("ships still overlapping after repeated resolution: %+v", result)
	}
}

func TestRammingAsymmetry(t *testing.T) {
	tuning := config.Default()
	cls := loadClass(t, "sloop")

	// a heads east directly at b, sitting to its east: a is the rammer.
	a := &world.Entity{EntityID: 1, Position: mathf.Vec2{X: -5, Y: 0}, Heading: mathf.Normalize(float32(mathf.Pi) / 2), Speed: 80, Fleet: world.NewFleet(cls)}
	// b faces north-south (perpendicular), bow not pointed at a.
	b := &world.Entity{EntityID: 2, Position: mathf.Vec2{X: 5, Y: 0}, Heading: mathf.Pi, Speed: 80, Fleet: world.NewFleet(cls)}

	bSpeedBefore := b.Speed
	ResolvePair(a, b, tuning)

	if a.Speed >= 80 {
		t.Fatalf("rammer a should lose speed, got %v", a.Speed)
	}
	if b.Speed != bSpeedBefore {
		t.Fatalf("b's bow points away from a; b should keep its speed, got %v (was %v)", b.Speed, bSpeedBefore)
	}
}
