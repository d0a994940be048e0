package world

import "github.com/ironkeel/galleon-server/internal/mathf"

// Projectile is an arcade cannon shot: its heading, speed, and gravity
// are frozen at creation (no velocity inheritance from the firing ship).
type Projectile struct {
	ID      EntityID
	OwnerID EntityID

	StartPosition mathf.Vec2
	Position      mathf.Vec2

	Z        float32
	ZSpeed   float32
	Gravity  float32

	Heading mathf.Heading
	Speed   float32

	Damage float32
	Radius float32

	MaxDistance float32

	ToRemove bool
}

// NewProjectile constructs a projectile whose Z arc reaches exactly zero
// at maxDistance, given an initial height and vertical speed.
func NewProjectile(id, ownerID EntityID, pos mathf.Vec2, heading mathf.Heading, speed, damage, radius, maxDistance, initialZ, initialZSpeed float32) *Projectile {
	timeToMax := maxDistance / speed
	gravity := float32(0)
	if timeToMax > 0 {
		gravity = 2 * (initialZ + initialZSpeed*timeToMax) / (timeToMax * timeToMax)
	}
	return &Projectile{
		ID:            id,
		OwnerID:       ownerID,
		StartPosition: pos,
		Position:      pos,
		Z:             initialZ,
		ZSpeed:        initialZSpeed,
		Gravity:       gravity,
		Heading:       heading,
		Speed:         speed,
		Damage:        damage,
		Radius:        radius,
		MaxDistance:   maxDistance,
	}
}

// Update integrates position and the Z arc by dt seconds, and marks the
// projectile for removal on range-out or water splash.
func (p *Projectile) Update(dt float32) {
	p.Position = p.Position.AddScaled(p.Heading.ForwardVec2(), dt*p.Speed)
	p.ZSpeed -= p.Gravity * dt
	p.Z += p.ZSpeed * dt

	if p.Position.Distance(p.StartPosition) >= p.MaxDistance || p.Z <= 0 {
		p.ToRemove = true
	}
}

// DistanceTravelled reports how far the shot has flown from its origin.
func (p *Projectile) DistanceTravelled() float32 {
	return p.Position.Distance(p.StartPosition)
}
