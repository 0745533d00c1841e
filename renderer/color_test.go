package renderer

import (
	"image/color"
	"testing"
)

func TestHSLA(t *testing.T) {
	tests := []struct {
		name       string
		h, s, l, a float64
		want       color.NRGBA
	}{
		{"red", 0, 100, 50, 1, color.NRGBA{R: 255, A: 255}},
		{"green half alpha", 120, 100, 50, 0.5, color.NRGBA{G: 255, A: 128}},
		{"hue wraps negative", -240, 100, 50, 1, color.NRGBA{G: 255, A: 255}},
		{"hue wraps past 360", 480, 100, 50, 1, color.NRGBA{G: 255, A: 255}},
		{"background grey", 0, 0, 5, 1, color.NRGBA{R: 13, G: 13, B: 13, A: 255}},
		{"alpha clamps high", 0, 0, 100, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"alpha clamps low", 0, 0, 0, -1, color.NRGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSLA(tt.h, tt.s, tt.l, tt.a)
			if got != tt.want {
				t.Errorf("HSLA(%v, %v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, tt.a, got, tt.want)
			}
		})
	}
}

func TestShapeColors(t *testing.T) {
	c := circleColor(0, 1)
	l := lineColor(0, 1)

	// Lines are brighter and more saturated than circles of the same hue.
	if l.R <= c.R {
		t.Errorf("line red %d should exceed circle red %d", l.R, c.R)
	}
	if c.A != 255 || l.A != 255 {
		t.Errorf("alpha = %d/%d, want 255", c.A, l.A)
	}
	if got := circleColor(0, 0).A; got != 0 {
		t.Errorf("zero alpha circle has A=%d", got)
	}
}
