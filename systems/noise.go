package systems

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// offsetScale converts the configured per-axis offsets into sampling
// frequencies: an offset of 100 samples the raw coordinate at 0.01.
const offsetScale = 1.0 / 10000

// Perlin generator parameters: smoothness, frequency step and octaves.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Sampler evaluates raw 3D coherent noise.
// opensimplex.Noise satisfies it directly.
type Sampler interface {
	Eval3(x, y, z float64) float64
}

type perlinSampler struct {
	p *perlin.Perlin
}

func (s perlinSampler) Eval3(x, y, z float64) float64 {
	return s.p.Noise3D(x, y, z)
}

// Offsets hold the per-axis scale coefficients applied before sampling.
type Offsets struct {
	X, Y, Z float64
}

// NoiseField samples coherent noise in [-1, 1]. The underlying table is
// built once and never mutated, so a field is safe for concurrent use.
type NoiseField struct {
	src     Sampler
	Offsets Offsets
}

// NewNoiseField builds a noise field of the given kind.
func NewNoiseField(kind NoiseKind, seed int64, offsets Offsets) *NoiseField {
	var src Sampler
	switch kind {
	case NoisePerlin:
		src = perlinSampler{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
	default:
		src = opensimplex.New(seed)
	}
	return NewNoiseFieldFrom(src, offsets)
}

// NewNoiseFieldFrom wraps an arbitrary sampler.
func NewNoiseFieldFrom(src Sampler, offsets Offsets) *NoiseField {
	return &NoiseField{src: src, Offsets: offsets}
}

// Sample evaluates noise at raw coordinates, clamped to [-1, 1].
// Non-finite results collapse to 0.
func (n *NoiseField) Sample(x, y, z float64) float64 {
	v := n.src.Eval3(x, y, z)
	if !finite(v) {
		return 0
	}
	return clamp(v, -1, 1)
}

// SampleScaled evaluates noise after scaling each axis by its offset.
func (n *NoiseField) SampleScaled(x, y, z float64) float64 {
	return n.Sample(
		x*n.Offsets.X*offsetScale,
		y*n.Offsets.Y*offsetScale,
		z*n.Offsets.Z*offsetScale,
	)
}
