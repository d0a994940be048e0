package world

import (
	"testing"

	"github.com/ironkeel/galleon-server/internal/config"
)

func testClass(t *testing.T, id string) *config.ShipClass {
	t.Helper()
	classes, err := config.DefaultShipClasses()
	if err != nil {
		t.Fatalf("load ship classes: %v", err)
	}
	c := classes.Get(id)
	if c == nil {
		t.Fatalf("no ship class %q", id)
	}
	return c
}

func TestFleetFlagshipIsIndexZero(t *testing.T) {
	f := NewFleet(testClass(t, "sloop"))
	if f.Flagship() != &f.Ships[0] {
		t.Fatalf("flagship must be fleet[0]")
	}
}

func TestSwitchFlagship(t *testing.T) {
	f := NewFleet(testClass(t, "sloop"))
	f.Ships = append(f.Ships, NewShip(testClass(t, "brigantine")))

	if !f.SwitchFlagship(1) {
		t.Fatalf("expected switch to succeed")
	}
	if f.Flagship().Class.ID != "brigantine" {
		t.Fatalf("flagship not swapped: got %s", f.Flagship().Class.ID)
	}
	if f.SwitchFlagship(0) {
		t.Fatalf("switching to the current flagship index should fail")
	}
	if f.SwitchFlagship(5) {
		t.Fatalf("out-of-range switch should fail")
	}
}

func TestRaftImmuneToDamage(t *testing.T) {
	raft := NewShip(testClass(t, "raft"))
	if !raft.Class.IsRaft() {
		t.Fatalf("expected raft class to report IsRaft")
	}
	health := raft.Health
	raft.Damage(1000)
	if raft.Health != health || raft.Sunk {
		t.Fatalf("raft should be immune to damage, got health=%v sunk=%v", raft.Health, raft.Sunk)
	}
}

func TestShipSinksAtZeroHealth(t *testing.T) {
	s := NewShip(testClass(t, "sloop"))
	s.Damage(s.Health + 1)
	if !s.Sunk || s.Health != 0 {
		t.Fatalf("expected sunk ship with clamped zero health, got sunk=%v health=%v", s.Sunk, s.Health)
	}
}
