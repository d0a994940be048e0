package collision

import (
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/world"
)

// ResolvePair runs the full ship-vs-ship collision step for one
// unordered pair: broad-phase, SAT, MTV separation, and the directional
// ramming speed penalty. Rafts and sunk ships are never tested. A
// docked ship (InHarbor) is immovable; the other ship absorbs the full
// correction and always pays the ramming penalty.
func ResolvePair(a, b *world.Entity, tuning *config.Tuning) {
	if a.IsRaft() || b.IsRaft() {
		return
	}
	shipA, shipB := a.Flagship(), b.Flagship()
	if shipA == nil || shipB == nil || shipA.Sunk || shipB.Sunk {
		return
	}

	result := TestShips(a.Position, a.Heading, shipA.Class, b.Position, b.Heading, shipB.Class, tuning)
	if !result.Overlapping {
		return
	}

	aMovable := !a.InHarbor
	bMovable := !b.InHarbor

	switch {
	case aMovable && bMovable:
		half := result.MTV.Mul(tuning.SeparationCorrection * 0.5)
		a.Position = a.Position.Add(half)
		b.Position = b.Position.Sub(half)
	case aMovable:
		a.Position = a.Position.Add(result.MTV.Mul(tuning.SeparationCorrection))
	case bMovable:
		b.Position = b.Position.Sub(result.MTV.Mul(tuning.SeparationCorrection))
	}

	if aMovable && (!bMovable || IsRammer(a.Heading, a.Position, b.Position, tuning)) {
		a.Speed *= 1 - tuning.RammerSpeedPenalty
	}
	if bMovable && (!aMovable || IsRammer(b.Heading, b.Position, a.Position, tuning)) {
		b.Speed *= 1 - tuning.RammerSpeedPenalty
	}
}

// ResolveAll runs ResolvePair over every unordered pair of entities, in
// the world's stable iteration order so collision pairing is
// deterministic given identical inputs.
func ResolveAll(entities []*world.Entity, tuning *config.Tuning) {
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			ResolvePair(entities[i], entities[j], tuning)
		}
	}
}
