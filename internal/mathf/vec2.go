// Package mathf provides the float32 vector and angle primitives shared by
// the physics, collision, and navigation packages.
package mathf

import (
	"github.com/chewxy/math32"
)

// Vec2 is a 2D point or vector in world space, measured in pixels.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Mul(f float32) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) AddScaled(o Vec2, f float32) Vec2 {
	return Vec2{v.X + o.X*f, v.Y + o.Y*f}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Rot90 rotates 90 degrees clockwise in screen space (+X right, +Y down).
func (v Vec2) Rot90() Vec2 {
	return Vec2{-v.Y, v.X}
}

func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Distance(o Vec2) float32 {
	return v.Sub(o).Length()
}

func (v Vec2) DistanceSquared(o Vec2) float32 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

func (v Vec2) Norm() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Mul(1 / l)
}

// Angle returns the atan2-derived angle of the vector, 0 = +X axis,
// increasing counter-clockwise in math convention (callers map to the
// ship's north-up, clockwise convention via HeadingFromVec/Heading.Vec2).
func (v Vec2) Angle() float32 {
	return math32.Atan2(v.Y, v.X)
}

func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}
