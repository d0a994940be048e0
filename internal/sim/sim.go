// Package sim runs the fixed-rate world tick: the single synchronous
// pipeline that advances wind, NPC behavior, missions, ship kinematics,
// collision resolution, and projectiles, in a fixed order (wind -> AI
// -> missions -> kinematics -> collisions -> projectiles -> wrecks).
// Step runs on the gateway goroutine, which between ticks also applies
// session commands (joins, inputs, harbor actions, removals) to the
// world and reads it to build snapshots.
package sim

import (
	"log"

	"github.com/ironkeel/galleon-server/internal/ai"
	"github.com/ironkeel/galleon-server/internal/collision"
	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/kinematics"
	"github.com/ironkeel/galleon-server/internal/missions"
	"github.com/ironkeel/galleon-server/internal/world"
)

// RewardEvent reports a gold/xp payout applied to a player this tick, so
// the gateway can emit a transactionResult to that player's session.
type RewardEvent struct {
	PlayerID world.EntityID
	Key      string
	Gold, XP int
}

// MissionEvent reports a mission reaching SUCCESS or FAILED this tick, so
// the gateway can emit a missionComplete message.
type MissionEvent struct {
	PlayerID world.EntityID
	Failed   bool
	Gold, XP int
}

// Result collects the side effects of one tick that the gateway must
// turn into outbound messages. Everything else (position, health,
// intent, ...) is read directly off the mutated world for the snapshot.
type Result struct {
	Rewards  []RewardEvent
	Missions []MissionEvent
}

// Step advances w by one tick of dt seconds at wall-clock time now,
// running each phase of the pipeline in order.
func Step(w *world.World, rewards *config.RewardTable, now float64, dt float32) Result {
	var res Result

	// 1. Wind.
	w.Wind.Update(dt, w.Rand, w.Tuning)

	entities := w.Entities()

	// 2. NPC behavior inputs (writes Input/NPC state only).
	aiCtx := ai.Context{
		Tuning:      w.Tuning,
		Terrain:     w.Terrain,
		Harbors:     w.Harbors,
		Now:         now,
		DT:          dt,
		AllEntities: entities,
	}
	for _, e := range entities {
		if e.Kind == world.KindNPC && e.NPC.AIState != world.AIDespawning {
			ai.Step(e, aiCtx)
		}
	}

	// 3. Mission transitions.
	missionCtx := missions.Context{Harbors: w.Harbors, AllEntities: entities, DT: dt}
	for _, e := range entities {
		if e.Kind != world.KindPlayer || e.Player.Mission == nil {
			continue
		}
		if mr := missions.Update(e, missionCtx, rewards); mr.Completed || mr.Failed {
			res.Missions = append(res.Missions, MissionEvent{
				PlayerID: e.EntityID,
				Failed:   mr.Failed,
				Gold:     mr.Gold,
				XP:       mr.XP,
			})
		}
	}

	// 4. Per-entity kinematics, harbor proximity telemetry, and firing.
	env := kinematics.Environment{
		Tuning:      w.Tuning,
		Terrain:     w.Terrain,
		Wind:        w.Wind,
		WorldWidth:  w.WorldWidth(),
		WorldHeight: w.WorldHeight(),
	}
	for _, e := range entities {
		kinematics.Update(e, env, dt)
		e.NearHarbor = w.Harbors.Within(e.Position) != nil
		fireBroadsides(w, e, now)
		if e.Kind == world.KindNPC && e.NPC.StuckCounter > 0 && e.NPC.StuckCounter%600 == 0 {
			log.Printf("sim: npc %s stuck near %.0f,%.0f", e.EntityID, e.Position.X, e.Position.Y)
		}
	}

	// 5. Ship-vs-ship collision resolution.
	collision.ResolveAll(entities, w.Tuning)

	// 6. Projectiles: integrate, test, apply damage, remove.
	combatEvents := stepProjectiles(w, entities, now, rewards)
	res.Rewards = append(res.Rewards, combatEvents...)

	// 7. Expire wrecks.
	w.ExpireWrecks(now)

	// Drop despawned NPCs from the world; a wreck (if any) already
	// carries forward the visual/loot consequence of the kill.
	removeDespawnedNPCs(w, entities)

	return res
}

// removeDespawnedNPCs drops every NPC the AI core or kinematics already
// flagged DESPAWNING (lifetime expiry, invalid travel target, stuck
// counter, sunk), once collisions and projectiles have had a chance to
// see a still-present hull for this tick.
func removeDespawnedNPCs(w *world.World, entities []*world.Entity) {
	for _, e := range entities {
		if e.Kind == world.KindNPC && e.NPC.AIState == world.AIDespawning {
			w.RemoveEntity(e.EntityID)
		}
	}
}
