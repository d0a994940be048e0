// Package config holds the immutable tuning values and data tables
// loaded once at startup and threaded explicitly into the simulation,
// as explicit structs rather than process-global mutable state.
package config

import "time"

// TickRate is the fixed simulation rate in updates per second.
const TickRate = 60

// TickPeriod is the wall-clock duration of one tick.
const TickPeriod = time.Second / TickRate

// Tuning holds every numeric knob the simulation consults. It is built
// once by Default(); main overrides MaxPlayers from its flag before the
// server starts, and nothing mutates it after that. Every component that
// needs a tuning value takes a *Tuning argument instead of reading a
// package global.
type Tuning struct {
	// Wind
	WindChangeIntervalMin time.Duration
	WindChangeIntervalMax time.Duration
	WindChangeRate        float32 // max |delta direction| radians per change
	WindStrengthProb      [3]float32 // LOW, NORMAL, FULL
	WindStrengthMult      [3]float32 // LOW, NORMAL, FULL

	// Wind efficiency zones, in degrees of misalignment with the wind
	// source, and the corresponding multiplier.
	WindEfficiencyZones [4]WindEfficiencyZone

	// Ship kinematics
	ShallowSailMultiplier  float32 // SHALLOW_MULT
	Acceleration           float32 // px/s^2 in deep water
	Deceleration           float32 // px/s^2 in deep water
	ShallowAccelFactor     float32 // multiplier applied in shallow water
	ShallowDecelFactor     float32
	SailChangeCooldown     float32 // seconds
	CollisionSpeedThreshold float32 // COLLISION_THRESHOLD
	CollisionDamageMult    float32 // COLLISION_MULT
	MaxConsecutiveLandHits int     // NPC despawn threshold on repeated land contact

	// Harbors
	HarborInteractionRadius   float32
	HarborSpawnDistance       float32
	HarborExitShieldDuration  float32 // seconds

	// Projectiles
	ProjectileDamage    float32
	ProjectileSpeed     float32
	ProjectileMaxDistance float32
	ProjectileInitialZ  float32
	ProjectileInitialZSpeed float32
	ProjectileRadius    float32

	// Collision & separation
	ShipBroadPhaseFactor  float32 // 0.6 in ((maxDimA+maxDimB)*factor)^2
	SeparationCorrection  float32 // MTV correction factor, 0.20
	RammerSpeedPenalty    float32 // 0.05
	RammerBowHalfAngle    float32 // radians, +/-60 degrees

	// Navigator
	NavUpdateIntervalTicks int
	LookAheadTiles         float32
	NPCTurnSmoothing       float32
	SearchAngleStepDeg     float32 // 15, swept up to 180
	MinProgressDot         float32
	ShipProbeRadiusFactor  float32 // 0.6x look-ahead radius for ship probes

	// NPC combat/behavior
	MaxEngagementRange      float32
	CombatStandoffFactor    float32 // 0.8 * projectile max distance
	CombatFireAngleTolerance float32 // radians, around +/- Pi/2
	RetaliationWindow       float32 // seconds a recent attacker stays valid
	EvadeExitTime           float32 // seconds
	EvadeExitDistance       float32
	WaitArrivalRadiusFactor float32 // 2x harbor interaction radius
	WaitTimeout             float32 // seconds
	ArrivedDespawnDelay     float32 // seconds
	DamageLogThreshold      float32 // log every N HP of damage

	// Gateway
	MaxPlayers          int
	PlayerNameMinLength int
	PlayerNameMaxLength int
	SpawnSearchAttempts int
	SpawnBoxHalfExtent  float32
}

// WindEfficiencyZone maps an upper bound (in degrees, exclusive except the
// final zone) of heading-vs-wind misalignment to an efficiency multiplier.
type WindEfficiencyZone struct {
	MaxDegrees float32
	Efficiency float32
}

// Default returns this simulation's baseline tuning values.
func Default() *Tuning {
	return &Tuning{
		WindChangeIntervalMin: 30 * time.Second,
		WindChangeIntervalMax: 60 * time.Second,
		WindChangeRate:        0.25,
		WindStrengthProb:      [3]float32{0.2, 0.4, 0.4},
		WindStrengthMult:      [3]float32{0.6, 0.8, 1.0},

		WindEfficiencyZones: [4]WindEfficiencyZone{
			{MaxDegrees: 60, Efficiency: 0.40},
			{MaxDegrees: 100, Efficiency: 0.65},
			{MaxDegrees: 140, Efficiency: 0.85},
			{MaxDegrees: 180, Efficiency: 1.00},
		},

		ShallowSailMultiplier:   0.75,
		Acceleration:            40,
		Deceleration:             60,
		ShallowAccelFactor:      0.5,
		ShallowDecelFactor:      1.5,
		SailChangeCooldown:      1.5,
		CollisionSpeedThreshold: 20,
		CollisionDamageMult:     2.5,
		MaxConsecutiveLandHits:  10,

		HarborInteractionRadius:  60,
		HarborSpawnDistance:      120,
		HarborExitShieldDuration: 5,

		ProjectileDamage:        20,
		ProjectileSpeed:         420,
		ProjectileMaxDistance:   320,
		ProjectileInitialZ:      2,
		ProjectileInitialZSpeed: 30,
		ProjectileRadius:        4,

		ShipBroadPhaseFactor: 0.6,
		SeparationCorrection: 0.20,
		RammerSpeedPenalty:   0.05,
		RammerBowHalfAngle:   1.0472, // 60 degrees in radians

		NavUpdateIntervalTicks: 6,
		LookAheadTiles:         6,
		NPCTurnSmoothing:       2.2,
		SearchAngleStepDeg:     15,
		MinProgressDot:         0.3,
		ShipProbeRadiusFactor:  0.6,

		MaxEngagementRange:       900,
		CombatStandoffFactor:     0.8,
		CombatFireAngleTolerance: 0.1745, // 10 degrees in radians
		RetaliationWindow:        30,
		EvadeExitTime:            30,
		EvadeExitDistance:        600,
		WaitArrivalRadiusFactor:  2,
		WaitTimeout:              5,
		ArrivedDespawnDelay:      0.5,
		DamageLogThreshold:       50,

		MaxPlayers:          20,
		PlayerNameMinLength: 3,
		PlayerNameMaxLength: 20,
		SpawnSearchAttempts: 50,
		SpawnBoxHalfExtent:  2000,
	}
}
