// Package kinematics implements per-ship physics: sail trim, wind-driven
// target speed, acceleration, rotation, land-contact suppression, and
// world wrap. One Update call advances a single entity by one tick,
// as a sequential per-field update reading immutable class data and
// writing only the entity's own fields; the world tick orchestrator
// calls it for every live entity.
package kinematics

import (
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/terrain"
	"github.com/ironkeel/galleon-server/internal/wind"
	"github.com/ironkeel/galleon-server/internal/world"
)

// Environment bundles the read-only inputs kinematics needs beyond the
// entity itself: tuning, terrain, and the current wind.
type Environment struct {
	Tuning  *config.Tuning
	Terrain *terrain.Map
	Wind    *wind.Wind

	WorldWidth, WorldHeight float32
}

// Update advances e by dt seconds following the seven-step per-tick
// kinematics algorithm: deep-water check, sail-change cooldown, target
// speed, acceleration, turning, translation with land-contact handling,
// and world wrap.
func Update(e *world.Entity, env Environment, dt float32) {
	tuning := env.Tuning
	ship := e.Flagship()
	if ship == nil || ship.Sunk {
		return
	}
	cls := ship.Class

	// 1. Deep-water check.
	e.InDeepWater = env.Terrain.IsWater(e.Position.X, e.Position.Y)

	// 2. Sail-change cooldown.
	e.SailCooldown -= dt
	if e.SailCooldown <= 0 {
		switch {
		case e.Input.SailUp && e.SailState < 2:
			e.SailState++
			e.SailCooldown = tuning.SailChangeCooldown
		case e.Input.SailDown && e.SailState > 0:
			e.SailState--
			e.SailCooldown = tuning.SailChangeCooldown
		}
	}

	// 3. Target speed.
	target := targetSpeed(e, cls, env)

	// 4. Accelerate/decelerate toward target.
	accel, decel := tuning.Acceleration, tuning.Deceleration
	if !e.InDeepWater {
		accel *= tuning.ShallowAccelFactor
		decel *= tuning.ShallowDecelFactor
	}
	if e.Speed < target {
		e.Speed = min32(target, e.Speed+accel*dt)
	} else if e.Speed > target {
		e.Speed = max32(target, e.Speed-decel*dt)
	}
	e.Speed = clamp32(e.Speed, 0, cls.MaxSpeed)

	// 5. Rotation.
	if e.Input.Left {
		e.Heading = mathf.Normalize(float32(e.Heading) - cls.TurnSpeed*dt)
	}
	if e.Input.Right {
		e.Heading = mathf.Normalize(float32(e.Heading) + cls.TurnSpeed*dt)
	}

	// 6. Tentative move; suppress on land contact.
	moveStep := e.Heading.ForwardVec2().Mul(e.Speed * dt)
	newPos := e.Position.Add(moveStep)
	if env.Terrain.GetTile(newPos.X, newPos.Y) == terrain.Land {
		priorSpeed := e.Speed
		e.Speed = 0
		e.ConsecutiveLandHits++

		if e.Kind == world.KindNPC && e.ConsecutiveLandHits >= tuning.MaxConsecutiveLandHits {
			e.NPC.AIState = world.AIDespawning
		}
		if e.Kind == world.KindPlayer && priorSpeed > tuning.CollisionSpeedThreshold {
			ship.Damage((priorSpeed - tuning.CollisionSpeedThreshold) * tuning.CollisionDamageMult)
		}
	} else {
		e.Position = newPos
		e.ConsecutiveLandHits = 0
	}

	// 7. World wrap.
	e.Position.X = wrapCoord(e.Position.X, env.WorldWidth)
	e.Position.Y = wrapCoord(e.Position.Y, env.WorldHeight)
}

func targetSpeed(e *world.Entity, cls *config.ShipClass, env Environment) float32 {
	if e.SailState == 0 {
		e.WindEfficiency = 0
		return 0
	}
	sailMod := float32(0.5)
	if e.SailState == 2 {
		sailMod = 1.0
	}
	if e.InDeepWater {
		eff := wind.Efficiency(e.Heading, env.Wind.Direction, env.Tuning.WindEfficiencyZones)
		e.WindEfficiency = eff
		strengthMult := env.Wind.Strength.Multiplier(env.Tuning)
		return cls.MaxSpeed * sailMod * strengthMult * eff
	}
	// Shallow water uses a flat multiplier rather than the wind-efficiency
	// zone model.
	e.WindEfficiency = 1
	return cls.MaxSpeed * sailMod * env.Tuning.ShallowSailMultiplier
}

func wrapCoord(v, max float32) float32 {
	if max <= 0 {
		return v
	}
	for v < 0 {
		v += max
	}
	for v >= max {
		v -= max
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
