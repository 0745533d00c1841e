package renderer

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLA builds a colour the way CSS hsla() does: hue in degrees (wrapped),
// saturation and lightness in percent, alpha in [0, 1].
func HSLA(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, clampUnit(s/100), clampUnit(l/100)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clampUnit(a) * 255))}
}

// Circle and line colours for the two particle shapes.
func circleColor(hue, alpha float64) color.NRGBA { return HSLA(hue, 60, 30, alpha) }
func lineColor(hue, alpha float64) color.NRGBA   { return HSLA(hue, 100, 60, alpha) }

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
