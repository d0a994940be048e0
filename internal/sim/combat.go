package sim

import (
	"log"

	"github.com/ironkeel/galleon-server/internal/ai"
	"github.com/ironkeel/galleon-server/internal/collision"
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/missions"
	"github.com/ironkeel/galleon-server/internal/world"
)

// wreckLootWindow and wreckLifetime are the fixed wreck durations (30s
// owner-exclusive loot, 120s total life). Unlike the rest of the
// simulation's numeric knobs these are not meant to be tunable, so they
// are local constants rather than config.Tuning fields.
const (
	wreckLootWindow = 30
	wreckLifetime   = 120
)

// stepProjectiles integrates every live projectile, tests it against
// every non-owner, non-raft, non-shielded ship, and applies damage on
// the first hit: only one hit is registered per shot.
func stepProjectiles(w *world.World, entities []*world.Entity, now float64, rewards *config.RewardTable) []RewardEvent {
	var events []RewardEvent
	dt := float32(1) / float32(config.TickRate)

	for _, p := range w.Projectiles() {
		if p.ToRemove {
			continue
		}
		p.Update(dt)

		for _, e := range entities {
			if p.OwnerID == e.EntityID || e.IsRaft() || e.HasShield(now) {
				continue
			}
			ship := e.Flagship()
			if ship == nil || ship.Sunk {
				continue
			}
			if !collision.ProjectileHitsShip(p, e) {
				continue
			}

			if ev := applyDamage(w, entities, e, p.Damage, p.OwnerID, now, rewards); ev != nil {
				events = append(events, *ev)
			}
			p.ToRemove = true
			break
		}
	}

	w.RemoveDeadProjectiles()
	return events
}

// applyDamage reduces target's flagship health, runs the NPC behavior
// core's damage reaction, and -- if the hit is lethal -- spawns a
// wreck, attributes a combat reward to a player attacker, and notifies
// that attacker's DEFEAT_NPCS mission.
func applyDamage(w *world.World, entities []*world.Entity, target *world.Entity, dmg float32, attackerID world.EntityID, now float64, rewards *config.RewardTable) *RewardEvent {
	ship := target.Flagship()
	before := ship.Health
	ship.Damage(dmg)
	logDamageThreshold(target, before, ship.Health, w.Tuning.DamageLogThreshold)

	if target.Kind == world.KindNPC {
		ai.OnDamage(target, attackerID, ai.Context{
			Tuning:      w.Tuning,
			Terrain:     w.Terrain,
			Harbors:     w.Harbors,
			Now:         now,
			AllEntities: entities,
		})
	}

	if !ship.Sunk {
		return nil
	}

	var reward *RewardEvent
	if target.Kind == world.KindNPC {
		target.NPC.AIState = world.AIDespawning

		wr := world.NewWreck(w.NewWreckID(), attackerID, target.Position, target.Heading, now, wreckLootWindow, wreckLifetime)
		w.AddWreck(wr)

		if attacker := findByID(entities, attackerID); attacker != nil && attacker.Kind == world.KindPlayer {
			key := "COMBAT." + target.NPC.Role.Name + "_SUNK"
			if r, ok := rewards.Get(key); ok {
				attacker.Player.Gold += r.Gold
				attacker.Player.XP += r.XP
				reward = &RewardEvent{PlayerID: attacker.EntityID, Key: key, Gold: r.Gold, XP: r.XP}
			}
			missions.RecordKill(attacker)
		}
	}

	return reward
}

// logDamageThreshold logs a damage event only when health crosses a
// multiple of threshold, throttling damage logging to avoid spam.
func logDamageThreshold(e *world.Entity, before, after, threshold float32) {
	if threshold <= 0 {
		return
	}
	if int(before/threshold) == int(after/threshold) {
		return
	}
	log.Printf("sim: %s %s health %.0f -> %.0f", e.Kind, e.EntityID, before, after)
}

func findByID(entities []*world.Entity, id world.EntityID) *world.Entity {
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
