// Package ai runs the NPC behavior core: the TRAVEL/ENGAGE/EVADE/WAIT/
// ARRIVED/DESPAWNING intent machine, target selection, retaliation, and
// damage handling. It never mutates another entity's fields directly —
// each Step call only writes the NPC's own Input and NPC-specific
// state; the tick applies kinematics afterward using the Input this
// package computed.
//
// Intent dispatch is a tagged enum with a pattern-matched step function
// per intent, with role kept as pure parameter data rather than
// per-ship-type branching logic.
package ai

import (
	"github.com/chewxy/math32"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/navigator"
	"github.com/ironkeel/galleon-server/internal/terrain"
	"github.com/ironkeel/galleon-server/internal/world"
)

// Context bundles the read-only world state a behavior step consults.
type Context struct {
	Tuning  *config.Tuning
	Terrain *terrain.Map
	Harbors *harbor.Registry
	Now     float64
	DT      float32

	// AllEntities is every live entity in stable order, used for target
	// selection and navigator ship probes.
	AllEntities []*world.Entity
}

// Activate initializes an NPC's combat posture and fire rate on spawn:
// aggressive roles engage immediately, combat-capable roles use the
// hull's combat fire rate (handled by Entity.FireRate via role lookup),
// non-combat-capable roles never fire.
func Activate(e *world.Entity) {
	if e.NPC.Role.CombatAggressive {
		e.NPC.CombatActive = true
		e.NPC.Intent = config.IntentEngage
	}
}

// Step advances one NPC's intent machine by one tick, writing only e's
// own Input and NPC state.
func Step(e *world.Entity, ctx Context) {
	n := e.NPC
	e.Input = world.Input{}

	if n.AIState == world.AIDespawning {
		return
	}
	if ctx.Now-n.SpawnTime > float64(n.MaxLifetime) {
		n.AIState = world.AIDespawning
		n.Intent = config.IntentDespawning
		return
	}

	switch n.Intent {
	case config.IntentTravel:
		travel(e, ctx)
	case config.IntentWait:
		wait(e, ctx)
	case config.IntentEngage:
		engage(e, ctx)
	case config.IntentEvade:
		evade(e, ctx)
	case config.IntentArrived:
		e.Input.SailDown = true
		if !n.IntentData.ArrivedNotified {
			n.IntentData.ArrivedNotified = true
			n.IntentData.WaitTimer = ctx.Tuning.ArrivedDespawnDelay
		}
		n.IntentData.WaitTimer -= ctx.DT
		if n.IntentData.WaitTimer <= 0 {
			n.Intent = config.IntentDespawning
			n.AIState = world.AIDespawning
		}
	case config.IntentDespawning:
		// no inputs
	}
}

func steerToward(e *world.Entity, ctx Context, target mathf.Vec2) {
	diff := target.Sub(e.Position)
	desired := mathf.HeadingFromVec(diff)
	n := e.NPC

	n.NavUpdateCounter++
	if n.NavUpdateCounter >= ctx.Tuning.NavUpdateIntervalTicks {
		n.NavUpdateCounter = 0
		n.DesiredHeading = desired
		res := navigator.Update(ctx.Terrain, e.Position, n.CurrentHeading, n.DesiredHeading, shipProbes(e, ctx), ctx.Tuning, ctx.DT)
		n.CurrentHeading = res.CurrentHeading
		if res.Stuck {
			n.StuckCounter++
		} else {
			n.StuckCounter = 0
		}
	}

	steerInputFromHeading(e)
}

// steerInputFromHeading sets Left/Right so kinematics' own turn-rate
// integration (not a direct heading write) carries the ship to
// n.CurrentHeading. NPC steering therefore goes through the same
// rotation path as a player's input.
func steerInputFromHeading(e *world.Entity) {
	diff := e.NPC.CurrentHeading.Diff(e.Heading)
	const deadband = 0.01
	if diff > deadband {
		e.Input.Right = true
	} else if diff < -deadband {
		e.Input.Left = true
	}
}

func shipProbes(self *world.Entity, ctx Context) []navigator.ShipProbe {
	probes := make([]navigator.ShipProbe, 0, len(ctx.AllEntities))
	for _, other := range ctx.AllEntities {
		if other.EntityID == self.EntityID {
			continue
		}
		probes = append(probes, navigator.ShipProbe{Position: other.Position, IsRaft: other.IsRaft()})
	}
	return probes
}

func travel(e *world.Entity, ctx Context) {
	n := e.NPC
	h := ctx.Harbors.Get(n.IntentData.TargetHarborID)
	if h == nil {
		n.Intent = config.IntentDespawning
		n.AIState = world.AIDespawning
		return
	}

	steerToward(e, ctx, h.Position)
	e.Input.SailUp = true

	attemptRetaliation(e, ctx)
	if n.CombatActive {
		attemptFire(e, ctx)
	}

	if e.Position.Distance(h.Position) < ctx.Tuning.WaitArrivalRadiusFactor*ctx.Tuning.HarborInteractionRadius {
		n.Intent = config.IntentWait
		n.IntentData.WaitTimer = ctx.Tuning.WaitTimeout
	}
}

func wait(e *world.Entity, ctx Context) {
	n := e.NPC
	e.Input.SailDown = true
	if e.Speed > 0 {
		return
	}
	n.IntentData.WaitTimer -= ctx.DT
	if n.IntentData.WaitTimer <= 0 {
		n.Intent = config.IntentArrived
		n.IntentData.ArrivedNotified = false
	}
}

func attemptRetaliation(e *world.Entity, ctx Context) {
	n := e.NPC
	if n.CombatActive || n.LastAttacker == world.EntityIDInvalid {
		return
	}
	if ctx.Now-n.LastAttackTime >= float64(ctx.Tuning.RetaliationWindow) {
		return
	}
	target := findEntity(ctx.AllEntities, n.LastAttacker)
	if !validTarget(e, target) {
		return
	}
	n.CombatActive = true
	n.CombatTarget = n.LastAttacker
}

func engage(e *world.Entity, ctx Context) {
	n := e.NPC
	target := findEntity(ctx.AllEntities, n.CombatTarget)
	if !validTarget(e, target) {
		target = selectTarget(e, ctx)
		if target == nil {
			n.CombatTarget = world.EntityIDInvalid
			e.Input.SailDown = true
			return
		}
		n.CombatTarget = target.EntityID
	}

	toTarget := target.Position.Sub(e.Position)
	dist := toTarget.Length()
	n.CombatDistance = dist

	standoff := ctx.Tuning.CombatStandoffFactor * ctx.Tuning.ProjectileMaxDistance
	formationOffset := [3]float32{-0.4, 0, 0.4}[int(e.EntityID%3)]

	if dist > standoff*1.2 {
		steerToward(e, ctx, target.Position)
	} else {
		bearingToTarget := mathf.HeadingFromVec(toTarget)
		broadsideHeading := mathf.Normalize(float32(bearingToTarget) + math32.Pi/2 + formationOffset)
		n.DesiredHeading = broadsideHeading
		res := navigator.Update(ctx.Terrain, e.Position, n.CurrentHeading, n.DesiredHeading, shipProbes(e, ctx), ctx.Tuning, ctx.DT)
		n.CurrentHeading = res.CurrentHeading
		steerInputFromHeading(e)
	}

	if dist > 1.5*standoff {
		e.Input.SailUp = true
	} else {
		if e.SailState < 1 {
			e.Input.SailUp = true
		} else if e.SailState > 1 {
			e.Input.SailDown = true
		}
	}

	attemptFire(e, ctx)
}

// attemptFire fires a broadside when the target bearing lies abeam
// (within the configured tolerance of +/-90 degrees from the bow) and
// the side's cooldown has elapsed.
func attemptFire(e *world.Entity, ctx Context) {
	n := e.NPC
	target := findEntity(ctx.AllEntities, n.CombatTarget)
	if target == nil {
		return
	}
	bearing := mathf.HeadingFromVec(target.Position.Sub(e.Position))
	rel := float32(bearing.Diff(e.Heading))

	starboardDiff := math32.Abs(rel - math32.Pi/2)
	portDiff := math32.Abs(rel + math32.Pi/2)

	if starboardDiff <= ctx.Tuning.CombatFireAngleTolerance && e.CanFire(world.Starboard, ctx.Now) {
		e.Input.ShootRight = true
	} else if portDiff <= ctx.Tuning.CombatFireAngleTolerance && e.CanFire(world.Port, ctx.Now) {
		e.Input.ShootLeft = true
	}
}

func evade(e *world.Entity, ctx Context) {
	n := e.NPC
	away := e.Position.Sub(n.IntentData.EvadeFrom)
	target := e.Position.Add(away)
	steerToward(e, ctx, target)
	e.Input.SailUp = true

	n.IntentData.EvadeElapsed += ctx.DT
	if n.IntentData.EvadeElapsed > ctx.Tuning.EvadeExitTime || e.Position.Distance(n.IntentData.EvadeFrom) > ctx.Tuning.EvadeExitDistance {
		n.Intent = n.Role.DefaultIntent
	}
}

// selectTarget finds the nearest valid combat target within engagement
// range, in stable entity order (ties broken by iteration order).
func selectTarget(self *world.Entity, ctx Context) *world.Entity {
	var best *world.Entity
	var bestDist float32
	for _, other := range ctx.AllEntities {
		if !validTarget(self, other) {
			continue
		}
		d := self.Position.Distance(other.Position)
		if d > ctx.Tuning.MaxEngagementRange {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}

func validTarget(self, other *world.Entity) bool {
	if other == nil || other == self || other.EntityID == self.EntityID {
		return false
	}
	if other.InHarbor || other.IsRaft() {
		return false
	}
	if ship := other.Flagship(); ship == nil || ship.Sunk {
		return false
	}
	if other.Kind == world.KindNPC && self.Kind == world.KindNPC && other.NPC.Role.Name == self.NPC.Role.Name {
		return false
	}
	return true
}

func findEntity(entities []*world.Entity, id world.EntityID) *world.Entity {
	if id == world.EntityIDInvalid {
		return nil
	}
	for _, e := range entities {
		if e.EntityID == id {
			return e
		}
	}
	return nil
}

// OnDamage applies the NPC behavior core's reaction to taking damage:
// records the attacker, and switches to EVADE once health falls below
// the role's flee threshold. It does not apply the damage itself (the
// caller already reduced the flagship's health) and does not touch
// rewards, wrecks, or missions — those are orchestrated by the tick
// once it sees AIState == AIDespawning.
func OnDamage(e *world.Entity, attackerID world.EntityID, ctx Context) {
	n := e.NPC
	n.LastAttacker = attackerID
	n.LastAttackTime = ctx.Now

	ship := e.Flagship()
	if ship == nil {
		return
	}
	if ship.Sunk {
		n.AIState = world.AIDespawning
		n.Intent = config.IntentDespawning
		return
	}

	if ship.HealthPercent() < n.Role.FleeThreshold && n.Intent != config.IntentEvade {
		n.Intent = config.IntentEvade
		n.CombatActive = false
		if attacker := findEntity(ctx.AllEntities, attackerID); attacker != nil {
			n.IntentData.EvadeFrom = attacker.Position
		} else {
			n.IntentData.EvadeFrom = e.Position
		}
		n.IntentData.EvadeElapsed = 0
	}
}

