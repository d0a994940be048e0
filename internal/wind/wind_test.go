package wind

import (
	"math/rand"
	"testing"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
)

func TestWindDeterministic(t *testing.T) {
	tuning := config.Default()

	run := func(seed int64) []mathf.Heading {
		rng := rand.New(rand.NewSource(seed))
		w := New(rng, tuning)
		var out []mathf.Heading
		for i := 0; i < 500; i++ {
			w.Update(1.0/60, rng, tuning)
			out = append(out, w.Direction)
		}
		return out
	}

	a := run(42)
	b := run(42)
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d diverged: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEfficiencyZonesSymmetric(t *testing.T) {
	tuning := config.Default()
	wd := mathf.Heading(0)

	for _, deg := range []float32{10, 59, 60, 90, 120, 170, 179, 180} {
		rad := deg * (3.14159265 / 180)
		port := mathf.Normalize(float32(wd) + rad)
		starboard := mathf.Normalize(float32(wd) - rad)

		ePort := Efficiency(port, wd, tuning.WindEfficiencyZones)
		eStarboard := Efficiency(starboard, wd, tuning.WindEfficiencyZones)
		if ePort != eStarboard {
			t.Errorf("%.0f deg: port efficiency %v != starboard %v", deg, ePort, eStarboard)
		}
	}
}

func TestEfficiencyMonotonicNonDecreasing(t *testing.T) {
	tuning := config.Default()
	wd := mathf.Heading(0)

	var prev float32 = 0
	for deg := float32(0); deg <= 180; deg += 5 {
		rad := deg * (3.14159265 / 180)
		h := mathf.Normalize(float32(wd) + rad)
		e := Efficiency(h, wd, tuning.WindEfficiencyZones)
		if e < prev-1e-6 {
			t.Errorf("efficiency decreased at %.0f deg: %v < %v", deg, e, prev)
		}
		prev = e
	}
}
