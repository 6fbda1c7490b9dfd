package game

import "math"

const epsilon = 1e-9

// Distance returns the distance between two points.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// UnitOrZero normalizes v, returning the zero vector for degenerate input.
// mgl64's Normalize divides by the length and yields NaN for zero vectors.
func UnitOrZero(v Vec3) Vec3 {
	l := v.Len()
	if l <= 1e-6 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Basis derives right and up axes for a forward direction given a reference
// up vector. When forward is parallel to up, FallbackAxis is used instead so
// right never has zero length.
func Basis(forward, up Vec3) (right, trueUp Vec3) {
	forward = UnitOrZero(forward)
	if forward.Dot(forward) < epsilon {
		forward = WorldForward
	}
	right = forward.Cross(up)
	if right.Dot(right) < 1e-6 {
		right = forward.Cross(FallbackAxis)
	}
	if right.Dot(right) < 1e-6 {
		right = forward.Cross(Vec3{0, 0, 1})
	}
	right = UnitOrZero(right)
	trueUp = UnitOrZero(right.Cross(forward))
	return right, trueUp
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Finite reports whether every component of v is a real number.
func Finite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
