// Package navigator gives NPCs coastline-aware steering: a look-ahead
// ray sampled against the terrain grid and nearby ships, smoothly
// blended into a desired heading, with a widening search for a clear
// alternative when the direct path is blocked. The sampling-ray
// structure follows the terrain package's pure-query style
// (terrain.Map.IsLand), and the navigation vocabulary splits a current
// heading from a desired one the way a ship's actual bearing differs
// from where its helm wants to point.
package navigator

import (
	"github.com/chewxy/math32"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/terrain"
)

// ShipProbe is a nearby ship's position, supplied by the caller so the
// navigator need not depend on the world package's Entity type directly.
type ShipProbe struct {
	Position mathf.Vec2
	IsRaft   bool
}

// Clear reports whether a ray from origin along heading, out to length,
// is unobstructed by land or (within the inner probe radius) by another
// ship.
func Clear(tm *terrain.Map, origin mathf.Vec2, heading mathf.Heading, length float32, ships []ShipProbe, tuning *config.Tuning) bool {
	dir := heading.ForwardVec2()
	tileSize := tm.TileSize()
	if tileSize <= 0 {
		tileSize = 1
	}

	for d := tileSize; d <= length; d += tileSize {
		p := origin.AddScaled(dir, d)
		if tm.IsLand(p.X, p.Y) {
			return false
		}
	}

	probeRadius := length * tuning.ShipProbeRadiusFactor
	for _, s := range ships {
		if s.IsRaft {
			continue
		}
		if origin.Distance(s.Position) <= probeRadius {
			// Only block if the ship actually lies along the ray's
			// forward half-plane, not merely nearby.
			toShip := s.Position.Sub(origin)
			if toShip.Dot(dir) > 0 {
				return false
			}
		}
	}
	return true
}

// searchAngles returns the ordered offsets swept when the direct
// heading is blocked: +/-15, +/-30, ... up to +/-180 degrees.
func searchAngles(stepDeg float32) []float32 {
	var angles []float32
	for deg := stepDeg; deg <= 180; deg += stepDeg {
		rad := deg * (math32.Pi / 180)
		angles = append(angles, rad, -rad)
	}
	return angles
}

// Result is the navigator's output for one update.
type Result struct {
	CurrentHeading mathf.Heading
	Stuck          bool // no clear heading found; caller increments the stuck counter
}

// Update blends currentHeading toward desiredHeading subject to
// look-ahead obstacle avoidance, branching on which of the two
// headings is currently clear.
func Update(tm *terrain.Map, origin mathf.Vec2, currentHeading, desiredHeading mathf.Heading, ships []ShipProbe, tuning *config.Tuning, dt float32) Result {
	lookAhead := tuning.LookAheadTiles * tm.TileSize()

	currentClear := Clear(tm, origin, currentHeading, lookAhead, ships, tuning)
	desiredClear := Clear(tm, origin, desiredHeading, lookAhead, ships, tuning)

	switch {
	case currentClear && desiredClear:
		maxStep := tuning.NPCTurnSmoothing * dt
		return Result{CurrentHeading: currentHeading.TurnToward(desiredHeading, maxStep)}

	case !currentClear:
		for _, offset := range searchAngles(tuning.SearchAngleStepDeg) {
			candidate := mathf.Normalize(float32(desiredHeading) + offset)
			if !Clear(tm, origin, candidate, lookAhead, ships, tuning) {
				continue
			}
			progress := candidate.ForwardVec2().Dot(desiredHeading.ForwardVec2())
			if progress >= tuning.MinProgressDot {
				maxStep := tuning.NPCTurnSmoothing * dt
				return Result{CurrentHeading: currentHeading.TurnToward(candidate, maxStep)}
			}
		}
		return Result{CurrentHeading: mathf.Normalize(float32(desiredHeading) + math32.Pi/2), Stuck: true}

	default: // desiredHeading blocked, currentHeading clear: hold course
		return Result{CurrentHeading: currentHeading}
	}
}
