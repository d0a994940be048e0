// Package npc is the NPC manager. It periodically tops up the
// population of traders, pirates, and patrols up to a target count,
// picking a home harbor, a role-allowed ship class, and (for
// TRAVEL-default roles) a destination harbor to sail to. A spawn
// attempt that can't find a valid deep-water position near a harbor
// within its search budget is logged and skipped rather than treated
// as fatal.
package npc

import (
	"log"
	"math/rand"

	"github.com/ironkeel/galleon-server/internal/ai"
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/mathf"
	"github.com/ironkeel/galleon-server/internal/world"
)

// RoleQuota names how many live NPCs of a role the manager tries to
// maintain.
type RoleQuota struct {
	Role   string
	Target int
}

// Manager tops up the NPC population toward its configured quotas.
type Manager struct {
	quotas []RoleQuota
	roles  *config.RoleTable
	ships  *config.ShipClassTable
}

// NewManager builds a manager with the given per-role population
// targets. Roles with no matching entry in roles are skipped with a
// logged warning at construction, not at every spawn attempt.
func NewManager(roles *config.RoleTable, ships *config.ShipClassTable, quotas []RoleQuota) *Manager {
	m := &Manager{roles: roles, ships: ships}
	for _, q := range quotas {
		if roles.Get(q.Role) == nil {
			log.Printf("npc: unknown role %q in quota, skipping", q.Role)
			continue
		}
		m.quotas = append(m.quotas, q)
	}
	return m
}

// Sweep counts live NPCs per role and spawns replacements up to each
// quota, one attempt per missing slot. Spawn failures (no harbor
// configured, or no deep-water position found within the search
// budget) are logged and skipped; they never abort the sweep for
// other roles.
func (m *Manager) Sweep(w *world.World, tuning *config.Tuning, now float64) {
	counts := make(map[string]int, len(m.quotas))
	for _, e := range w.Entities() {
		if e.Kind == world.KindNPC && e.NPC.AIState != world.AIDespawning {
			counts[e.NPC.Role.Name]++
		}
	}

	for _, q := range m.quotas {
		role := m.roles.Get(q.Role)
		if role == nil {
			continue
		}
		for counts[q.Role] < q.Target {
			if !m.spawnOne(w, tuning, role, now) {
				log.Printf("npc: could not find a valid spawn for role %s, skipping", q.Role)
				break
			}
			counts[q.Role]++
		}
	}
}

// spawnOne places a single NPC of role near a randomly chosen harbor,
// crewing it with a randomly chosen allowed ship class. Returns false
// if no harbor is configured or no deep-water position was found.
func (m *Manager) spawnOne(w *world.World, tuning *config.Tuning, role *config.Role, now float64) bool {
	harbors := w.Harbors.All()
	if len(harbors) == 0 {
		return false
	}
	home := harbors[w.Rand.Intn(len(harbors))]

	classID := pickShipClass(w.Rand, role)
	class := m.ships.Get(classID)
	if class == nil {
		return false
	}

	pos, ok := findDeepWaterNear(w, home.Position, tuning)
	if !ok {
		return false
	}

	e := &world.Entity{
		Kind:     world.KindNPC,
		Name:     role.Name,
		Position: pos,
		Heading:  mathf.HeadingFromVec(home.ExitDirection),
		Fleet:    world.NewFleet(class),
		NPC: &world.NPCState{
			Role:        role,
			Intent:      role.DefaultIntent,
			AIState:     world.AISailing,
			SpawnTime:   now,
			MaxLifetime: npcMaxLifetime,
		},
	}
	e.NPC.CurrentHeading = e.Heading
	e.NPC.DesiredHeading = e.Heading

	if role.DefaultIntent == config.IntentTravel {
		e.NPC.IntentData.TargetHarborID = pickDestination(w.Rand, harbors, home).ID
	}

	ai.Activate(e)
	w.AddEntity(e)
	return true
}

// npcMaxLifetime bounds how long an unsupervised NPC roams before the
// world tick forces it to DESPAWNING.
const npcMaxLifetime = 20 * 60 // 20 minutes

// pickShipClass chooses uniformly among a role's allowed ship classes.
func pickShipClass(rng *rand.Rand, role *config.Role) string {
	if len(role.AllowedShipClasses) == 0 {
		return ""
	}
	return role.AllowedShipClasses[rng.Intn(len(role.AllowedShipClasses))]
}

// pickDestination chooses a harbor other than home to sail to, falling
// back to home itself if it is the only harbor registered.
func pickDestination(rng *rand.Rand, harbors []*harbor.Harbor, home *harbor.Harbor) *harbor.Harbor {
	if len(harbors) == 1 {
		return home
	}
	for {
		h := harbors[rng.Intn(len(harbors))]
		if h.ID != home.ID {
			return h
		}
	}
}

// deepWaterSearchAttempts bounds the spawn search, matching the
// gateway's own join-time spawn search bound.
const deepWaterSearchAttempts = 50

// deepWaterSearchRadius is how far from the harbor the search samples,
// in pixels.
const deepWaterSearchRadius = 300

func findDeepWaterNear(w *world.World, center mathf.Vec2, tuning *config.Tuning) (mathf.Vec2, bool) {
	for i := 0; i < deepWaterSearchAttempts; i++ {
		angle := w.Rand.Float32() * 2 * float32(mathf.Pi)
		radius := (0.3 + 0.7*w.Rand.Float32()) * deepWaterSearchRadius
		offset := mathf.Heading(angle).Vec2().Mul(radius)
		pos := center.Add(offset)
		if w.Terrain.IsWater(pos.X, pos.Y) {
			return pos, true
		}
	}
	return mathf.Vec2{}, false
}
