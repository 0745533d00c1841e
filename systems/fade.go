package systems

import "math"

// FadeIn ramps linearly from 0 at t=0 to 1 at t=m.
func FadeIn(t, m float64) float64 {
	return t / m
}

// FadeOut ramps linearly from 1 at t=0 to 0 at t=m.
func FadeOut(t, m float64) float64 {
	return (m - t) / m
}

// FadeInOut is a triangular wave over a lifetime m: 0 at spawn, 1 at m/2,
// back to 0 at m. Ages past m wrap around. Non-positive or non-finite
// lifetimes give 0.
func FadeInOut(t, m float64) float64 {
	if !(m > 0) || !finite(t, m) {
		return 0
	}
	half := 0.5 * m
	// math.Mod keeps the dividend's sign, so negative ages can exceed 1.
	a := math.Abs(math.Mod(t+half, m)-half) / half
	return clamp(a, 0, 1)
}
