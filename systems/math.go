package systems

import "math"

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeDegrees wraps a heading to [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0.0000001 wraps to 360 after the addition
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
