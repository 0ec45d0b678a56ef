// Package math provides float32 scalar helpers shared by the sky packages.
package math

import "github.com/chewxy/math32"

// Angle constants in radians.
const (
	Pi     = math32.Pi
	HalfPi = math32.Pi / 2
	TwoPi  = math32.Pi * 2
)

// HoursPerDay is the length of a simulated day.
const HoursPerDay = 24

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Saturate clamps x to [0, 1].
func Saturate(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Mix linearly interpolates between a and b (GLSL mix). The endpoints are exact.
func Mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Smoothstep performs Hermite interpolation between edge0 and edge1 (GLSL smoothstep).
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x, always in [0, 1).
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// WrapHours folds an hour value into [0, 24).
func WrapHours(h float32) float32 {
	return Fract(h/HoursPerDay) * HoursPerDay
}

// WrapAngle folds an angle into [0, 2π).
func WrapAngle(a float32) float32 {
	return Fract(a/TwoPi) * TwoPi
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / Pi
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}
