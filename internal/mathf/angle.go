package mathf

import (
	"github.com/chewxy/math32"
)

// Heading is a rotation in radians, kept normalized to (-Pi, Pi].
// 0 points north (-Y in world space); angle increases clockwise, matching
// the top-down nautical convention used throughout the simulation.
type Heading float32

const Pi Heading = math32.Pi

// Normalize wraps a Heading into (-Pi, Pi].
func Normalize(a float32) Heading {
	const tau = math32.Pi * 2
	a = math32.Mod(a, tau)
	if a <= -math32.Pi {
		a += tau
	} else if a > math32.Pi {
		a -= tau
	}
	return Heading(a)
}

// Diff returns h - other, normalized to (-Pi, Pi].
func (h Heading) Diff(other Heading) Heading {
	return Normalize(float32(h - other))
}

// Abs returns the absolute value in radians.
func (h Heading) Abs() float32 {
	return math32.Abs(float32(h))
}

// ClampMagnitude clamps h to +/- m.
func (h Heading) ClampMagnitude(m float32) Heading {
	if float32(h) < -m {
		return Heading(-m)
	}
	if float32(h) > m {
		return Heading(m)
	}
	return h
}

// Lerp interpolates from h toward other by factor in [0,1], taking the
// shorter angular path. The turn is not clamped to any maximum step.
func (h Heading) Lerp(other Heading, factor float32) Heading {
	delta := other.Diff(h)
	return Normalize(float32(h) + float32(delta)*factor)
}

// TurnToward steps h toward target by at most maxStep radians.
func (h Heading) TurnToward(target Heading, maxStep float32) Heading {
	delta := target.Diff(h)
	return Normalize(float32(h) + float32(delta.ClampMagnitude(maxStep)))
}

// Vec2 returns the unit vector this heading points along in world space
// (0 = north = -Y, increasing clockwise).
func (h Heading) Vec2() Vec2 {
	f := float32(h)
	return Vec2{X: math32.Sin(f), Y: -math32.Cos(f)}
}

// ForwardVec2 returns the unit vector a ship moves along for this heading,
// applying the heading-minus-Pi/2 transform that maps north-up rotations
// to the canvas's +X/-Y coordinate axes.
func (h Heading) ForwardVec2() Vec2 {
	return Heading(float32(h) - math32.Pi/2).rawVec2()
}

// rawVec2 treats the angle as a standard math-convention angle (0 = +X,
// counter-clockwise) rather than the heading convention. Used internally
// by ForwardVec2 after the -Pi/2 transform has already been applied.
func (h Heading) rawVec2() Vec2 {
	f := float32(h)
	return Vec2{X: math32.Cos(f), Y: math32.Sin(f)}
}

// HeadingFromVec converts a direction vector into a Heading using the
// north-up, clockwise convention (inverse of Vec2).
func HeadingFromVec(v Vec2) Heading {
	// atan2 gives angle from +X axis counter-clockwise; convert to
	// north-up clockwise by rotating frame: heading = atan2(x, -y).
	return Normalize(math32.Atan2(v.X, -v.Y))
}
