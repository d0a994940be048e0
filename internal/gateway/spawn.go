package gateway

import (
	"github.com/ironkeel/galleon-server/internal/mathf"
)

// findSpawnPosition picks a safe starting position for a newly joined
// player: a caller-supplied hint if given (debug/test clients), otherwise
// a random deep-water point inside the tuning-configured spawn box,
// searched up to SpawnSearchAttempts times.
func findSpawnPosition(gw *Gateway, hint *mathf.Vec2) (mathf.Vec2, bool) {
	if hint != nil {
		if gw.World.Terrain.IsWater(hint.X, hint.Y) {
			return *hint, true
		}
		return mathf.Vec2{}, false
	}

	half := gw.Tuning.SpawnBoxHalfExtent
	center := mathf.Vec2{X: gw.World.WorldWidth() / 2, Y: gw.World.WorldHeight() / 2}

	for i := 0; i < gw.Tuning.SpawnSearchAttempts; i++ {
		x := center.X + (gw.World.Rand.Float32()*2-1)*half
		y := center.Y + (gw.World.Rand.Float32()*2-1)*half
		if gw.World.Terrain.IsWater(x, y) {
			return mathf.Vec2{X: x, Y: y}, true
		}
	}
	return mathf.Vec2{}, false
}
