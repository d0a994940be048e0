package world

import (
	"math"
	"testing"

	"github.com/ironkeel/galleon-server/internal/mathf"
)

func TestProjectileReachesZeroAtMaxDistance(t *testing.T) {
	speed := float32(400)
	maxDistance := float32(600)
	p := NewProjectile(1, 1, mathf.Vec2{}, mathf.Heading(0), speed, 20, 5, maxDistance, 5, 20)

	const dt = 1.0 / 60.0
	var elapsed float32
	for !p.ToRemove && elapsed < 10 {
		p.Update(dt)
		elapsed += dt
	}

	if !p.ToRemove {
		t.Fatalf("projectile never removed")
	}

	expected := maxDistance / speed
	if math.Abs(float64(elapsed-expected)) > 0.05 {
		t.Fatalf("z reached 0 at t=%.3f, expected ~%.3f", elapsed, expected)
	}
	if p.DistanceTravelled() > maxDistance+speed*dt {
		t.Fatalf("distance travelled %v exceeds maxDistance+speed*dt %v", p.DistanceTravelled(), maxDistance+speed*dt)
	}
}

func TestProjectileRemovedAtMaxDistanceEvenWithHighArc(t *testing.T) {
	speed := float32(400)
	maxDistance := float32(100)
	// A tall starting height with no upward speed: the derived gravity
	// still brings Z to zero at maxDistance, and the shot must not be
	// removed before it has covered that range.
	p := NewProjectile(1, 1, mathf.Vec2{}, mathf.Heading(0), speed, 20, 5, maxDistance, 1000, 0)

	const dt = 1.0 / 60.0
	for i := 0; i < 600 && !p.ToRemove; i++ {
		p.Update(dt)
	}
	if !p.ToRemove {
		t.Fatalf("expected removal once range exceeded")
	}
	if p.DistanceTravelled() < maxDistance {
		t.Fatalf("removed before reaching maxDistance: %v < %v", p.DistanceTravelled(), maxDistance)
	}
}
