package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Software is a CPU surface backed by an RGBA image. Primitives are
// rasterized with gg; the self-draw filter uses imaging.
type Software struct {
	stateStack
	img *image.RGBA
	dc  *gg.Context
}

// NewSoftware allocates a software surface.
func NewSoftware(width, height int) *Software {
	s := &Software{}
	s.Resize(width, height)
	return s
}

// Resize reallocates the backing image; contents are discarded. Drawing
// on a zero-sized surface is a no-op.
func (s *Software) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.dc = nil
	if width > 0 && height > 0 {
		s.dc = gg.NewContextForRGBA(s.img)
	}
}

// Image returns the backing image. It aliases the surface.
func (s *Software) Image() *image.RGBA { return s.img }

// Size returns the surface dimensions.
func (s *Software) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear replaces every pixel with bg.
func (s *Software) Clear(bg color.Color) {
	if s.dc == nil {
		return
	}
	s.dc.SetColor(bg)
	s.dc.Clear()
}

// FillCircle fills a circle with source-over blending.
func (s *Software) FillCircle(x, y, r float64, c color.Color) {
	if s.dc == nil {
		return
	}
	s.dc.DrawCircle(x, y, r)
	s.dc.SetColor(c)
	s.dc.Fill()
}

// StrokeLine strokes a round-capped segment.
func (s *Software) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	if s.dc == nil {
		return
	}
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineWidth(width)
	s.dc.SetColor(c)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

// DrawSelf composites the current frame onto itself through the active
// filter and composite mode.
func (s *Software) DrawSelf() {
	if s.dc == nil {
		return
	}
	src := imaging.Clone(s.img)
	if f := s.cur.filter; f.Blur > 0 {
		src = imaging.Blur(src, f.Blur)
	}
	composite(s.img, src, s.cur.filter.Factor(), s.cur.composite)
}

// SaveImage writes the current frame to path; the format follows the
// extension.
func (s *Software) SaveImage(path string) error {
	if err := imaging.Save(s.img, path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}

// composite blends a straight-alpha source onto a premultiplied
// destination of the same size. Colour channels are scaled by brightness.
func composite(dst *image.RGBA, src *image.NRGBA, brightness float64, op Composite) {
	n := len(dst.Pix)
	if len(src.Pix) < n {
		n = len(src.Pix)
	}
	for i := 0; i+3 < n; i += 4 {
		a := float64(src.Pix[i+3])
		if a == 0 {
			continue
		}
		k := a / 255 * brightness
		sr := float64(src.Pix[i]) * k
		sg := float64(src.Pix[i+1]) * k
		sb := float64(src.Pix[i+2]) * k

		switch op {
		case CompositeLighter:
			dst.Pix[i] = addClamp(dst.Pix[i], sr)
			dst.Pix[i+1] = addClamp(dst.Pix[i+1], sg)
			dst.Pix[i+2] = addClamp(dst.Pix[i+2], sb)
			dst.Pix[i+3] = addClamp(dst.Pix[i+3], a)
		default:
			inv := 1 - a/255
			dst.Pix[i] = addClamp(0, sr+float64(dst.Pix[i])*inv)
			dst.Pix[i+1] = addClamp(0, sg+float64(dst.Pix[i+1])*inv)
			dst.Pix[i+2] = addClamp(0, sb+float64(dst.Pix[i+2])*inv)
			dst.Pix[i+3] = addClamp(0, a+float64(dst.Pix[i+3])*inv)
		}
	}
}

func addClamp(d uint8, v float64) uint8 {
	sum := float64(d) + v
	if sum >= 255 {
		return 255
	}
	if sum <= 0 {
		return 0
	}
	return uint8(sum + 0.5)
}
