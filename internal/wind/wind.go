// Package wind models the single world-wide wind: a heading and a
// strength tier that drift over time, plus the lookup table translating
// a ship's heading relative to the wind into a speed efficiency.
//
// A single explicit *rand.Rand is threaded through every call rather
// than a package-level pool, so that two worlds seeded identically
// produce byte-identical wind sequences.
package wind

import (
	"math/rand"

	"github.com/ironkeel/galleon-server/internal/config"
	"github.com/ironkeel/galleon-server/internal/mathf"
)

// Strength is the wind's current tier, scaling ship target speed.
type Strength uint8

const (
	Low Strength = iota
	Normal
	Full
)

func (s Strength) String() string {
	switch s {
	case Low:
		return "LOW"
	case Normal:
		return "NORMAL"
	case Full:
		return "FULL"
	default:
		return "UNKNOWN"
	}
}

// Multiplier returns the fraction of a ship's max speed the wind tier
// contributes before heading efficiency is applied, per tuning.
func (s Strength) Multiplier(tuning *config.Tuning) float32 {
	if int(s) < len(tuning.WindStrengthMult) {
		return tuning.WindStrengthMult[s]
	}
	return tuning.WindStrengthMult[Normal]
}

// Wind is the single world-wide wind state, advanced once per tick.
type Wind struct {
	Direction mathf.Heading
	Strength  Strength

	untilChange float32 // seconds remaining until the next drift
}

// New creates a wind with a random initial direction and NORMAL strength.
func New(rng *rand.Rand, tuning *config.Tuning) *Wind {
	w := &Wind{
		Direction: mathf.Normalize(rng.Float32()*2*float32(mathf.Pi) - float32(mathf.Pi)),
		Strength:  Normal,
	}
	w.untilChange = nextInterval(rng, tuning)
	return w
}

// Update advances the wind by dt seconds, applying a scheduled gust when
// the countdown elapses.
func (w *Wind) Update(dt float32, rng *rand.Rand, tuning *config.Tuning) {
	w.untilChange -= dt
	if w.untilChange > 0 {
		return
	}
	w.untilChange += nextInterval(rng, tuning)

	shift := (rng.Float32()*2 - 1) * tuning.WindChangeRate
	w.Direction = mathf.Normalize(float32(w.Direction) + shift)
	w.Strength = sampleStrength(rng, tuning.WindStrengthProb)
}

func nextInterval(rng *rand.Rand, tuning *config.Tuning) float32 {
	lo := float32(tuning.WindChangeIntervalMin.Seconds())
	hi := float32(tuning.WindChangeIntervalMax.Seconds())
	if hi <= lo {
		return lo
	}
	return lo + rng.Float32()*(hi-lo)
}

func sampleStrength(rng *rand.Rand, weights [3]float32) Strength {
	total := weights[0] + weights[1] + weights[2]
	if total <= 0 {
		return Normal
	}
	roll := rng.Float32() * total
	if roll < weights[0] {
		return Low
	}
	if roll < weights[0]+weights[1] {
		return Normal
	}
	return Full
}

// Efficiency returns the speed multiplier a ship gets for sailing at
// shipHeading while the wind blows from w.Direction. The zone table is
// symmetric about the wind axis: a ship running straight downwind or
// hard on either tack falls in the same zone regardless of which side
// the wind is on.
func Efficiency(shipHeading, windDirection mathf.Heading, zones [4]config.WindEfficiencyZone) float32 {
	// Angle between the wind's source direction and the ship's bow,
	// folded into [0, 180].
	delta := mathf.Normalize(float32(shipHeading) - float32(windDirection)).Abs()
	degrees := delta * (180.0 / float32(mathf.Pi))

	for _, z := range zones {
		if degrees < z.MaxDegrees {
			return z.Efficiency
		}
	}
	return zones[len(zones)-1].Efficiency
}

// TargetSpeed returns the fraction of a ship's max speed available at
// shipHeading under the current wind.
func (w *Wind) TargetSpeed(shipHeading mathf.Heading, tuning *config.Tuning) float32 {
	return w.Strength.Multiplier(tuning) * Efficiency(shipHeading, w.Direction, tuning.WindEfficiencyZones)
}
