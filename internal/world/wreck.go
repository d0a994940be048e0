package world

import "github.com/ironkeel/galleon-server/internal/mathf"

// Wreck is what remains of a sunk NPC hull: visible to everyone, but
// lootable only by its owner (the killer) until the loot window closes.
type Wreck struct {
	ID       EntityID
	Position mathf.Vec2
	Rotation mathf.Heading
	OwnerID  EntityID

	SpawnedAt float64
	LootUntil float64 // owner-exclusive loot window
	DespawnAt float64
}

// NewWreck creates a wreck at now with the configured loot-window and
// total lifetime.
func NewWreck(id, ownerID EntityID, pos mathf.Vec2, rotation mathf.Heading, now float64, lootWindow, lifetime float32) *Wreck {
	return &Wreck{
		ID:        id,
		Position:  pos,
		Rotation:  rotation,
		OwnerID:   ownerID,
		SpawnedAt: now,
		LootUntil: now + float64(lootWindow),
		DespawnAt: now + float64(lifetime),
	}
}

// IsOwnerLoot reports whether only the owner may loot the wreck at now.
func (w *Wreck) IsOwnerLoot(now float64) bool {
	return now < w.LootUntil
}

// Expired reports whether the wreck should be removed at now.
func (w *Wreck) Expired(now float64) bool {
	return now >= w.DespawnAt
}
