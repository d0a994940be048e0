// Package missions runs the per-player mission mailbox: one active
// mission at a time, advanced by checking its tagged variant's
// completion condition against live world state, and paid out through
// the reward table on success. It reuses the tagged-enum
// behavior-dispatch pattern internal/ai already uses for NPC intents,
// rather than a generic event bus.
package missions

import (
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/world"
)

// Context bundles the read-only state a mission transition check
// consults.
type Context struct {
	Harbors     *harbor.Registry
	AllEntities []*world.Entity
	DT          float32
}

// Result reports what happened to a player's mission this tick, so the
// gateway can emit missionComplete when one finishes.
type Result struct {
	Completed bool
	Failed    bool
	Gold, XP  int
}

// Assign sets p's active mission, replacing any prior one.
func Assign(p *world.Entity, m *world.Mission) {
	p.Player.Mission = m
}

// Update advances p's active mission by one tick and applies the reward
// on success. Returns a zero Result if there is no active mission or it
// is still in progress.
func Update(p *world.Entity, ctx Context, rewards *config.RewardTable) Result {
	m := p.Player.Mission
	if m == nil || m.State != world.MissionActive {
		return Result{}
	}

	switch m.Kind {
	case world.MissionSailToHarbor:
		stepSailToHarbor(p, m, ctx)
	case world.MissionEscort:
		stepEscort(p, m, ctx)
	case world.MissionDefeatNPCs:
		stepDefeatNPCs(m)
	case world.MissionStayInArea:
		stepStayInArea(p, m, ctx)
	}

	if m.State == world.MissionActive {
		return Result{}
	}

	res := Result{Completed: m.State == world.MissionSuccess, Failed: m.State == world.MissionFailed}
	if res.Completed {
		if reward, ok := rewards.Get(m.RewardKey); ok {
			p.Player.Gold += reward.Gold
			p.Player.XP += reward.XP
			res.Gold, res.XP = reward.Gold, reward.XP
		}
	}
	p.Player.Mission = nil
	return res
}

func stepSailToHarbor(p *world.Entity, m *world.Mission, ctx Context) {
	h := ctx.Harbors.Get(m.TargetHarborID)
	if h == nil {
		m.State = world.MissionFailed
		return
	}
	if p.Position.DistanceSquared(h.Position) <= h.Radius*h.Radius {
		m.State = world.MissionSuccess
	}
}

func stepEscort(p *world.Entity, m *world.Mission, ctx Context) {
	target := findEntity(ctx.AllEntities, m.EscortTargetID)
	if target == nil {
		// The escorted NPC is gone from the world: treat a vanished target
		// as a completed escort. The player's distance is not checked.
		m.State = world.MissionSuccess
		return
	}
	if target.Kind == world.KindNPC && target.NPC.AIState == world.AIDespawning {
		if ship := target.Flagship(); ship == nil || ship.Sunk {
			m.State = world.MissionFailed
			return
		}
		m.State = world.MissionSuccess
	}
}

func stepDefeatNPCs(m *world.Mission) {
	if m.Kills >= m.RequiredKills {
		m.State = world.MissionSuccess
	}
}

func stepStayInArea(p *world.Entity, m *world.Mission, ctx Context) {
	if p.Position.DistanceSquared(m.AreaCenter) <= m.AreaRadius*m.AreaRadius {
		m.ElapsedInArea += ctx.DT
	} else {
		m.ElapsedInArea = 0
	}
	if m.ElapsedInArea >= m.RequiredSeconds {
		m.State = world.MissionSuccess
	}
}

// RecordKill notifies the killer's DEFEAT_NPCS mission, if active, that
// an NPC was sunk. Called by the tick after a kill is attributed.
func RecordKill(p *world.Entity) {
	m := p.Player.Mission
	if m == nil || m.State != world.MissionActive || m.Kind != world.MissionDefeatNPCs {
		return
	}
	m.Kills++
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
