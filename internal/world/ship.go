package world

import "github.com/ironkeel/galleon-server/internal/config"

// Ship is one hull within a fleet.
type Ship struct {
	Class  *config.ShipClass
	Health float32
	Sunk   bool
}

// NewShip creates a full-health ship of the given class.
func NewShip(class *config.ShipClass) Ship {
	return Ship{Class: class, Health: class.MaxHealth}
}

// Damage reduces health by d and marks the ship sunk if it reaches zero.
// Rafts are immune (infinite effective health); the caller is responsible
// for not calling Damage on a shielded entity.
func (s *Ship) Damage(d float32) {
	if s.Class.IsRaft() {
		return
	}
	s.Health -= d
	if s.Health <= 0 {
		s.Health = 0
		s.Sunk = true
	}
}

// Repair restores health up to the class maximum.
func (s *Ship) Repair(amount float32) {
	s.Health += amount
	if s.Health > s.Class.MaxHealth {
		s.Health = s.Class.MaxHealth
	}
}

// HealthPercent returns health / max in [0, 1].
func (s *Ship) HealthPercent() float32 {
	if s.Class.MaxHealth <= 0 {
		return 0
	}
	p := s.Health / s.Class.MaxHealth
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Fleet is an ordered sequence of Ships; index 0 is always the flagship.
type Fleet struct {
	Ships []Ship
}

// NewFleet builds a fleet with a single flagship.
func NewFleet(flagshipClass *config.ShipClass) *Fleet {
	return &Fleet{Ships: []Ship{NewShip(flagshipClass)}}
}

// Flagship returns the active ship at index 0, or nil if the fleet is
// empty (which should never happen for a live entity).
func (f *Fleet) Flagship() *Ship {
	if len(f.Ships) == 0 {
		return nil
	}
	return &f.Ships[0]
}

// Size returns the number of ships in the fleet.
func (f *Fleet) Size() int {
	return len(f.Ships)
}

// SwitchFlagship promotes the ship at index i to index 0 by swapping.
func (f *Fleet) SwitchFlagship(i int) bool {
	if i <= 0 || i >= len(f.Ships) {
		return false
	}
	f.Ships[0], f.Ships[i] = f.Ships[i], f.Ships[0]
	return true
}
