package kinematics

import (
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/world"
)

// EnterHarbor docks e at h: stops the ship and marks it docked.
func EnterHarbor(e *world.Entity, h *harbor.Harbor) {
	e.Speed = 0
	e.InHarbor = true
	e.DockedHarborID = h.ID
}

// ExitHarbor undocks e, placing it HarborSpawnDistance beyond the harbor
// along its stored exit direction, and grants a shield window during
// which firing is disallowed (enforced by Entity.CanFire).
func ExitHarbor(e *world.Entity, h *harbor.Harbor, tuning *config.Tuning, now float64) {
	e.InHarbor = false
	e.DockedHarborID = 0
	e.Position = h.Position.AddScaled(h.ExitDirection, tuning.HarborSpawnDistance)
	e.Heading = mathf.HeadingFromVec(h.ExitDirection)
	e.ShieldExpiresAt = now + float64(tuning.HarborExitShieldDuration)
}
