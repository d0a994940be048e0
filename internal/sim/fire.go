package sim

import (
	"github.com/ironkeel/galleon-server/internal/collision"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/world"
)

// fireBroadsides spawns a row of projectiles for whichever sides e's
// Input requested this tick, subject to the per-side cooldown and the
// raft/shield checks already encoded in Entity.CanFire.
//
// A broadside is cannonsPerSide shots equally spaced along the hull's
// longitudinal axis, offset laterally by half hull width. The geometry
// follows directly from collision.HalfExtents, the same hull
// half-extents the hit test uses, keeping the two in agreement about
// where the hull actually is.
func fireBroadsides(w *world.World, e *world.Entity, now float64) {
	if e.Input.ShootLeft && e.CanFire(world.Port, now) {
		fireBroadside(w, e, world.Port, now)
	}
	if e.Input.ShootRight && e.CanFire(world.Starboard, now) {
		fireBroadside(w, e, world.Starboard, now)
	}
}

func fireBroadside(w *world.World, e *world.Entity, side world.Side, now float64) {
	ship := e.Flagship()
	if ship == nil || ship.Sunk {
		return
	}
	cls := ship.Class
	n := cls.CannonsPerSide
	if n <= 0 {
		return
	}
	tuning := w.Tuning

	forward := e.Heading.ForwardVec2()
	// Rot90 turns forward clockwise in screen space, i.e. toward the
	// ship's starboard (right) side; port is the opposite direction.
	sideDir := forward.Rot90()
	if side == world.Port {
		sideDir = sideDir.Mul(-1)
	}

	halfLength, halfWidth := collision.HalfExtents(cls)
	spacing := 2 * halfLength / float32(n+1)

	for i := 0; i < n; i++ {
		alongShip := -halfLength + spacing*float32(i+1)
		pos := e.Position.
			AddScaled(forward, alongShip).
			AddScaled(sideDir, halfWidth)

		id := w.NewProjectileID()
		p := world.NewProjectile(
			id, e.EntityID, pos,
			mathf.HeadingFromVec(sideDir),
			tuning.ProjectileSpeed, tuning.ProjectileDamage, tuning.ProjectileRadius,
			tuning.ProjectileMaxDistance, tuning.ProjectileInitialZ, tuning.ProjectileInitialZSpeed,
		)
		w.AddProjectile(p)
	}
	e.RecordShot(side, now)
}
