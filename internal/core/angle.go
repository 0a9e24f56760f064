package core

import (
	"fmt"
	"math"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Vec2 is a 2D vector in field units.
type Vec2 struct {
	X, Y float64
}

// FromPolar returns the vector of the given length pointing along angle.
func FromPolar(length, angle float64) Vec2 {
	return Vec2{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// NormalizeAngle maps any finite angle into [0, 2π).
// A NaN or infinite angle is a programming error and panics.
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		panic(fmt.Sprintf("core: invalid angle %v", angle))
	}
	a := math.Mod(angle, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod can round up to exactly 2π for tiny negative inputs
	if a >= TwoPi {
		a = 0
	}
	return a
}

// BoundAngle clamps angle into the upper ([π+bound, 2π-bound]) or lower
// ([bound, π-bound]) half of the unit circle.
func BoundAngle(angle float64, upper bool, bound float64) float64 {
	if upper {
		return ClampF(angle, math.Pi+bound, TwoPi-bound)
	}
	return ClampF(angle, bound, math.Pi-bound)
}

// BoundAngleAround adds change to angle and keeps the sum on the half of
// the circle angle started in.
func BoundAngleAround(angle, change, bound float64) float64 {
	return BoundAngle(angle+change, angle >= math.Pi, bound)
}

// InUpperHalf reports whether a normalized angle points to negative y.
func InUpperHalf(angle float64) bool {
	return angle >= math.Pi
}
