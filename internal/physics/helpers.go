package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 1e-6

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// IsFinite reports whether every component of v is a real number.
func IsFinite(v rl.Vector3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// normalizeSafe returns the unit vector of v and its length.
// ok is false when v is too short or not finite to give a direction.
func normalizeSafe(v rl.Vector3) (rl.Vector3, float32, bool) {
	if !IsFinite(v) {
		return rl.Vector3{}, 0, false
	}
	length := rl.Vector3Length(v)
	if length < epsilon {
		return rl.Vector3{}, 0, false
	}
	return rl.Vector3Scale(v, 1/length), length, true
}

// project returns the component of v along the unit vector n.
func project(v, n rl.Vector3) rl.Vector3 {
	return rl.Vector3Scale(n, rl.Vector3DotProduct(v, n))
}

// horizontal drops the vertical component of v.
func horizontal(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: v.X, Z: v.Z}
}

func getAxisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func expf(x float32) float32 {
	return float32(math.Exp(float64(x)))
}
