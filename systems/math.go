package systems

import (
	"math"
	"math/rand"
)

// Angle constants
const (
	Tau    = 2 * math.Pi
	HalfPi = 0.5 * math.Pi
)

// Lerp interpolates from a to b by t (0 = a, 1 = b).
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Angle returns the heading in radians from (x1,y1) to (x2,y2).
func Angle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// WrapHue wraps a hue in degrees to [0, 360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// randomRange returns a uniform value in [-n, n).
func randomRange(rng *rand.Rand, n float64) float64 {
	return rng.Float64()*2*n - n
}

// randomUpTo returns a uniform value in [0, n).
func randomUpTo(rng *rand.Rand, n float64) float64 {
	return rng.Float64() * n
}

// finite reports whether every value is neither NaN nor infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
