package world

import (
	"math/rand"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/harbor"
	"github.com/ironkeel/galleon-server/internal/terrain"
	"github.com/ironkeel/galleon-server/internal/wind"
)

// World is the single-writer container for all live simulation state:
// entities, projectiles, wrecks, and the process-wide wind. Entities
// live in a stable-ordered slice plus an index map rather than a
// spatial index: players are capped at 20, so linear scans for
// collision and targeting are cheap enough at this scale.
type World struct {
	Tuning  *config.Tuning
	Terrain *terrain.Map
	Harbors *harbor.Registry
	Wind    *wind.Wind
	Rand    *rand.Rand

	order    []EntityID
	entities map[EntityID]*Entity

	projectiles map[EntityID]*Projectile
	projOrder   []EntityID

	wrecks    map[EntityID]*Wreck
	wreckOrder []EntityID
}

// New constructs an empty world. rng is the single explicit source of
// randomness for the world's lifetime, threaded through every stochastic
// decision (wind drift, entity ID allocation, spawn search) so that
// identical seeds reproduce identical tick sequences.
func New(tuning *config.Tuning, tm *terrain.Map, harbors *harbor.Registry, rng *rand.Rand) *World {
	return &World{
		Tuning:      tuning,
		Terrain:     tm,
		Harbors:     harbors,
		Wind:        wind.New(rng, tuning),
		Rand:        rng,
		entities:    make(map[EntityID]*Entity),
		projectiles: make(map[EntityID]*Projectile),
		wrecks:      make(map[EntityID]*Wreck),
	}
}

// AddEntity assigns a fresh EntityID and inserts e at the end of the
// stable iteration order.
func (w *World) AddEntity(e *Entity) EntityID {
	id := AllocateEntityID(w.Rand, func(id EntityID) bool {
		_, used := w.entities[id]
		return used
	})
	e.EntityID = id
	w.entities[id] = e
	w.order = append(w.order, id)
	return id
}

// RemoveEntity deletes an entity by id.
func (w *World) RemoveEntity(id EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Entity looks up a live entity by id.
func (w *World) Entity(id EntityID) *Entity {
	return w.entities[id]
}

// Entities returns entities in stable insertion order, used by every
// component that must iterate deterministically (target selection,
// collision pairing, snapshot serialization).
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.order)
}

// AddProjectile inserts p using its already-assigned ID.
func (w *World) AddProjectile(p *Projectile) {
	w.projectiles[p.ID] = p
	w.projOrder = append(w.projOrder, p.ID)
}

// Projectiles returns projectiles in stable insertion order.
func (w *World) Projectiles() []*Projectile {
	out := make([]*Projectile, 0, len(w.projOrder))
	for _, id := range w.projOrder {
		out = append(out, w.projectiles[id])
	}
	return out
}

// RemoveDeadProjectiles drops every projectile marked ToRemove.
func (w *World) RemoveDeadProjectiles() {
	kept := w.projOrder[:0]
	for _, id := range w.projOrder {
		p := w.projectiles[id]
		if p.ToRemove {
			delete(w.projectiles, id)
			continue
		}
		kept = append(kept, id)
	}
	w.projOrder = kept
}

// AddWreck inserts a wreck using its already-assigned ID.
func (w *World) AddWreck(wr *Wreck) {
	w.wrecks[wr.ID] = wr
	w.wreckOrder = append(w.wreckOrder, wr.ID)
}

// Wrecks returns wrecks in stable insertion order.
func (w *World) Wrecks() []*Wreck {
	out := make([]*Wreck, 0, len(w.wreckOrder))
	for _, id := range w.wreckOrder {
		out = append(out, w.wrecks[id])
	}
	return out
}

// ExpireWrecks removes every wreck whose despawn time has passed.
func (w *World) ExpireWrecks(now float64) {
	kept := w.wreckOrder[:0]
	for _, id := range w.wreckOrder {
		wr := w.wrecks[id]
		if wr.Expired(now) {
			delete(w.wrecks, id)
			continue
		}
		kept = append(kept, id)
	}
	w.wreckOrder = kept
}

// NewProjectileID allocates an id not in use by live projectiles.
func (w *World) NewProjectileID() EntityID {
	return AllocateEntityID(w.Rand, func(id EntityID) bool {
		_, used := w.projectiles[id]
		return used
	})
}

// NewWreckID allocates an id not in use by live wrecks.
func (w *World) NewWreckID() EntityID {
	return AllocateEntityID(w.Rand, func(id EntityID) bool {
		_, used := w.wrecks[id]
		return used
	})
}

// WorldWidth and WorldHeight expose the map's wrap bounds.
func (w *World) WorldWidth() float32  { return w.Terrain.WorldWidth() }
func (w *World) WorldHeight() float32 { return w.Terrain.WorldHeight() }
