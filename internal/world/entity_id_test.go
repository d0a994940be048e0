package world

import (
	"math/rand"
	"testing"
)

func TestAllocateEntityIDDeterministic(t *testing.T) {
	run := func(seed int64) []EntityID {
		rng := rand.New(rand.NewSource(seed))
		used := make(map[EntityID]bool)
		var ids []EntityID
		for i := 0; i < 50; i++ {
			id := AllocateEntityID(rng, func(id EntityID) bool { return used[id] })
			used[id] = true
			ids = append(ids, id)
		}
		return ids
	}

	a := run(7)
	b := run(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("id %d diverged: %v vs %v", i, a[i], b[i])
		}
		if a[i] == EntityIDInvalid {
			t.Fatalf("allocated invalid id at %d", i)
		}
	}
}

func TestAllocateEntityIDNeverInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		id := AllocateEntityID(rng, func(EntityID) bool { return false })
		if id == EntityIDInvalid {
			t.Fatalf("allocated invalid id")
		}
	}
}
