package systems

import "math"

// CountSpec describes how many particles a canvas holds: a fixed count, or
// one particle per Cut square pixels capped at Limit.
type CountSpec struct {
	Dynamic bool
	Fixed   int
	Limit   int
	Cut     float64
}

// ParticleCount resolves the particle count for a canvas. Degenerate input
// (non-positive dimensions, cut or count) yields zero.
func ParticleCount(spec CountSpec, width, height float64) int {
	if !spec.Dynamic {
		if spec.Fixed < 0 {
			return 0
		}
		return spec.Fixed
	}
	if !(width > 0) || !(height > 0) || !(spec.Cut > 0) || spec.Limit <= 0 {
		return 0
	}
	n := math.Floor(width * height / spec.Cut)
	if n > float64(spec.Limit) {
		return spec.Limit
	}
	return int(n)
}

// Center converts axis percentages into canvas coordinates.
func Center(xAxis, yAxis, width, height float64) (float64, float64) {
	return xAxis / 100 * width, yAxis / 100 * height
}
