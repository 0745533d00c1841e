// Package renderer draws particle field frames onto a drawing surface.
package renderer

import "image/color"

// Composite is the blend mode used when a surface draws onto itself.
type Composite uint8

const (
	CompositeSourceOver Composite = iota
	CompositeLighter              // additive
)

// Filter is applied to the source image of a self-draw.
type Filter struct {
	Blur       float64 // gaussian std-dev in pixels
	Brightness float64 // percent; 0 is treated as 100
}

// Factor returns the brightness multiplier.
func (f Filter) Factor() float64 {
	if f.Brightness <= 0 {
		return 1
	}
	return f.Brightness / 100
}

// Surface is an immediate-mode 2D drawing target.
//
// Filter and composite state affect DrawSelf only; Save and Restore push
// and pop that state.
type Surface interface {
	Size() (width, height int)
	Clear(bg color.Color)
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
	Save()
	Restore()
	SetFilter(f Filter)
	SetComposite(op Composite)
	DrawSelf()
}

// Resizer is implemented by surfaces that can be reallocated.
type Resizer interface {
	Resize(width, height int)
}

// drawState is the save/restore-able part of a surface.
type drawState struct {
	filter    Filter
	composite Composite
}

// stateStack implements Save/Restore for surfaces.
type stateStack struct {
	cur   drawState
	saved []drawState
}

func (s *stateStack) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved state; an unmatched Restore resets to the
// default state.
func (s *stateStack) Restore() {
	n := len(s.saved)
	if n == 0 {
		s.cur = drawState{}
		return
	}
	s.cur = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

func (s *stateStack) SetFilter(f Filter)        { s.cur.filter = f }
func (s *stateStack) SetComposite(op Composite) { s.cur.composite = op }
