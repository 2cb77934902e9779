package core

import "math"

// Pi and Tau as float32 to keep all angle math in one precision.
const (
	Pi  = float32(math.Pi)
	Tau = float32(2 * math.Pi)
)

// NormalizeAngle wraps an angle to [-π, π).
func NormalizeAngle(a float32) float32 {
	for a >= Pi {
		a -= Tau
	}
	for a < -Pi {
		a += Tau
	}
	return a
}

// AngleDiff returns the shortest signed difference from a to b, in [-π, π).
func AngleDiff(a, b float32) float32 {
	return NormalizeAngle(b - a)
}

// PolarToCartesian converts (r, theta) to cartesian coordinates.
func PolarToCartesian(r, theta float32) Vec2 {
	return Vec2{r * Cos(theta), r * Sin(theta)}
}

// CartesianToPolar converts a point to (r, theta).
func CartesianToPolar(p Vec2) (r, theta float32) {
	return p.Length(), Atan2(p.Y, p.X)
}

// Sin is float32 sine.
func Sin(a float32) float32 {
	return float32(math.Sin(float64(a)))
}

// Cos is float32 cosine.
func Cos(a float32) float32 {
	return float32(math.Cos(float64(a)))
}

// Atan2 is float32 atan2.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Abs32 returns the absolute value of f.
func Abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
