package renderer

import "github.com/pthm-cable/drift/systems"

// Glow configures the once-per-frame post-process.
type Glow struct {
	Blur       float64 // px
	Brightness float64 // percent
	ScreenPass bool    // add an unfiltered additive self-draw after the glow
}

// Pass draws particles for one motion model.
type Pass struct {
	motion systems.Motion
}

// NewPass creates a render pass.
func NewPass(motion systems.Motion) *Pass {
	return &Pass{motion: motion}
}

// Draw renders one particle with its triangular-fade alpha. Radial
// particles are filled circles; flow particles are round-capped segments
// from the pre-step to the post-step position. Fully transparent or
// zero-size particles are skipped.
func (p *Pass) Draw(s Surface, rec systems.DrawRecord) {
	alpha := systems.FadeInOut(rec.Age, rec.Lifetime)
	if alpha <= 0 || !(rec.Radius > 0) {
		return
	}

	switch p.motion {
	case systems.MotionRadial:
		s.FillCircle(rec.X, rec.Y, rec.Radius, circleColor(rec.Hue, alpha))
	default:
		s.StrokeLine(rec.X, rec.Y, rec.X2, rec.Y2, rec.Radius, lineColor(rec.Hue, alpha))
	}
}

// PostProcess composites a blurred, brightened copy of the frame onto
// itself additively, then optionally adds the unfiltered frame once more.
func PostProcess(s Surface, g Glow) {
	s.Save()
	s.SetFilter(Filter{Blur: g.Blur, Brightness: g.Brightness})
	s.SetComposite(CompositeLighter)
	s.DrawSelf()
	s.Restore()

	if !g.ScreenPass {
		return
	}
	s.Save()
	s.SetComposite(CompositeLighter)
	s.DrawSelf()
	s.Restore()
}
