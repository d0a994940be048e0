// Package collision implements the two hit tests the simulation needs:
// a rotated-rectangle point test for projectile-vs-ship, and an
// oriented-rectangle SAT/MTV resolution for ship-vs-ship separation.
//
// The SAT test operates on each rectangle's pre-scaled normal and
// tangent axes and also returns the minimum-overlap axis and depth, so
// a caller can resolve the overlap rather than just detect it.
package collision

import (
	"github.com/chewxy/math32"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/world"
)

// HalfExtents returns a ship class's local-frame half width (lateral,
// local Y) and half length (longitudinal, local X), derived from its
// sprite size and hitbox factors.
func HalfExtents(cls *config.ShipClass) (halfLength, halfWidth float32) {
	halfLength = cls.SpriteSize * cls.HitboxHeightFactor / 2
	halfWidth = cls.SpriteSize * cls.HitboxWidthFactor / 2
	return
}

// ProjectileHitsShip tests whether a projectile's current position falls
// within a ship's oriented hull rectangle. A ship cannot be hit by a
// projectile it owns, rafts are never hit, and shielded ships ignore
// damage entirely (checked by the caller via Entity.HasShield).
func ProjectileHitsShip(p *world.Projectile, e *world.Entity) bool {
	if p.OwnerID == e.EntityID || e.IsRaft() {
		return false
	}
	ship := e.Flagship()
	if ship == nil || ship.Sunk {
		return false
	}

	d := p.Position.Sub(e.Position)
	forward := e.Heading.ForwardVec2()
	lateral := forward.Rot90()
	localX := d.Dot(forward)
	localY := d.Dot(lateral)

	halfLength, halfWidth := HalfExtents(ship.Class)
	return math32.Abs(localX) <= halfLength && math32.Abs(localY) <= halfWidth
}

// projectRect returns the projection of a rectangle (given its center,
// two local unit axes, and half-extents along each) onto axis, as
// [min, max].
func projectRect(center mathf.Vec2, axisX, axisY mathf.Vec2, halfX, halfY float32, axis mathf.Vec2) (min, max float32) {
	cornerOffsets := [4]mathf.Vec2{
		axisX.Mul(halfX).Add(axisY.Mul(halfY)),
		axisX.Mul(halfX).Add(axisY.Mul(-halfY)),
		axisX.Mul(-halfX).Add(axisY.Mul(halfY)),
		axisX.Mul(-halfX).Add(axisY.Mul(-halfY)),
	}
	for i, off := range cornerOffsets {
		d := center.Add(off).Dot(axis)
		if i == 0 || d < min {
			min = d
		}
		if i == 0 || d > max {
			max = d
		}
	}
	return
}

// SATResult describes the outcome of testing two oriented ship hulls.
type SATResult struct {
	Overlapping bool
	// MTV is the minimum-translation vector to separate A from B (push A
	// away from B along the axis of least overlap).
	MTV mathf.Vec2
}

// TestShips runs broad-phase distance culling then full SAT between two
// ship hulls, returning the minimum-translation vector on overlap.
func TestShips(posA mathf.Vec2, headingA mathf.Heading, clsA *config.ShipClass, posB mathf.Vec2, headingB mathf.Heading, clsB *config.ShipClass, tuning *config.Tuning) SATResult {
	lenA, widA := HalfExtents(clsA)
	lenB, widB := HalfExtents(clsB)
	maxDimA := 2 * math32.Max(lenA, widA)
	maxDimB := 2 * math32.Max(lenB, widB)

	broadRadius := (maxDimA + maxDimB) * tuning.ShipBroadPhaseFactor
	if posA.DistanceSquared(posB) > broadRadius*broadRadius {
		return SATResult{}
	}

	axisXA := headingA.ForwardVec2()
	axisYA := axisXA.Rot90()
	axisXB := headingB.ForwardVec2()
	axisYB := axisXB.Rot90()

	axes := [4]mathf.Vec2{axisXA, axisYA, axisXB, axisYB}

	var bestOverlap float32 = -1
	var bestAxis mathf.Vec2
	center := posB.Sub(posA)

	for _, axis := range axes {
		minA, maxA := projectRect(mathf.Vec2{}, axisXA, axisYA, lenA, widA, axis)
		minB, maxB := projectRect(center, axisXB, axisYB, lenB, widB, axis)

		if maxA < minB || maxB < minA {
			return SATResult{} // separating axis found
		}

		overlap := math32.Min(maxA, maxB) - math32.Max(minA, minB)
		if bestOverlap < 0 || overlap < bestOverlap {
			bestOverlap = overlap
			bestAxis = axis
			// Push A away from B: axis should point from B's center
			// toward A's center (the origin of this local frame).
			if center.Dot(axis) > 0 {
				bestAxis = axis.Mul(-1)
			}
		}
	}

	return SATResult{Overlapping: true, MTV: bestAxis.Mul(bestOverlap)}
}

// IsRammer reports whether other lies within the ship's forward bow cone
// (the rammer pays the ramming speed penalty).
func IsRammer(selfHeading mathf.Heading, selfPos, otherPos mathf.Vec2, tuning *config.Tuning) bool {
	bearing := mathf.HeadingFromVec(otherPos.Sub(selfPos))
	return selfHeading.Diff(bearing).Abs() <= tuning.RammerBowHalfAngle
}
