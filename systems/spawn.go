package systems

import (
	"math"
	"math/rand"
)

// minLifetime keeps spawned lifetimes strictly positive when the
// configured base and variation are both zero or negative.
const minLifetime = 1e-3

// Params holds the per-particle ranges and variant selection shared by
// spawning and stepping. Values are fixed for a sizing epoch.
type Params struct {
	Placement Placement
	Motion    Motion
	HueMode   HueMode

	BaseSpeed         float64
	SpeedVariation    float64
	BaseLifetime      float64
	LifetimeVariation float64
	BaseRadius        float64
	RadiusVariation   float64
	BaseColor         float64
	ColorVariation    float64

	NoiseSteps float64
	XAxisRange float64
	YAxisRange float64

	// Lerp is the per-tick blend factor toward the noise heading (flow only).
	Lerp float64
}

// Env is the per-tick environment a step or spawn sees.
type Env struct {
	Width, Height    float64
	CenterX, CenterY float64
	Tick             int64
	Hue              float64 // rotating hue counter
}

// SpawnPolicy computes initial state for a particle slot.
type SpawnPolicy struct {
	params Params
	noise  *NoiseField
	layout Layout
}

// NewSpawnPolicy creates a spawn policy.
func NewSpawnPolicy(params Params, noise *NoiseField) *SpawnPolicy {
	return &SpawnPolicy{
		params: params,
		noise:  noise,
		layout: LayoutFor(params.Motion),
	}
}

// Layout returns the slot layout this policy writes.
func (s *SpawnPolicy) Layout() Layout { return s.layout }

// position draws a spawn position for the configured placement.
func (s *SpawnPolicy) position(env Env, rng *rand.Rand) (x, y float64) {
	p := &s.params
	switch p.Placement {
	case PlacementX:
		return env.CenterX + randomRange(rng, p.XAxisRange), randomUpTo(rng, env.Height)
	case PlacementY:
		return randomUpTo(rng, env.Width), env.CenterY + randomRange(rng, p.YAxisRange)
	case PlacementXY:
		return env.CenterX + randomRange(rng, p.XAxisRange), env.CenterY + randomRange(rng, p.YAxisRange)
	default:
		return randomUpTo(rng, env.Width), randomUpTo(rng, env.Height)
	}
}

// hue draws a spawn hue for the configured hue mode.
func (s *SpawnPolicy) hue(x, y float64, env Env, rng *rand.Rand) float64 {
	p := &s.params
	switch p.HueMode {
	case HueRotating:
		n := 0.0
		if s.noise != nil {
			n = s.noise.SampleScaled(x, y, env.Hue*p.NoiseSteps*Tau)
		}
		return WrapHue(env.Hue + n*p.ColorVariation)
	default:
		return WrapHue(p.BaseColor + randomUpTo(rng, p.ColorVariation))
	}
}

// Spawn writes fresh state into slot i: age 0, new position, velocity,
// lifetime, radius and hue.
func (s *SpawnPolicy) Spawn(buf *Buffer, i int, env Env, rng *rand.Rand) {
	p := &s.params
	l := &s.layout
	if buf.Stride() < l.Width {
		return
	}

	x, y := s.position(env, rng)
	speed := p.BaseSpeed + randomUpTo(rng, p.SpeedVariation)

	var vx, vy float64
	if p.Motion == MotionRadial {
		t := randomUpTo(rng, Tau)
		vx = speed * math.Cos(t)
		vy = speed * math.Sin(t)
	}

	lifetime := p.BaseLifetime + randomUpTo(rng, p.LifetimeVariation)
	if !(lifetime >= minLifetime) {
		lifetime = minLifetime
	}
	radius := p.BaseRadius + randomUpTo(rng, p.RadiusVariation)
	hue := s.hue(x, y, env, rng)

	slot := buf.Slot(i)
	for f := range slot {
		slot[f] = 0
	}
	slot[l.X] = float32(x)
	slot[l.Y] = float32(y)
	slot[l.VX] = float32(vx)
	slot[l.VY] = float32(vy)
	slot[l.Age] = 0
	slot[l.Lifetime] = float32(lifetime)
	if l.Speed >= 0 {
		slot[l.Speed] = float32(speed)
	}
	slot[l.Radius] = float32(radius)
	slot[l.Hue] = float32(hue)
}

// SpawnAll respawns every slot in the buffer.
func (s *SpawnPolicy) SpawnAll(buf *Buffer, env Env, rng *rand.Rand) {
	for i := 0; i < buf.Count(); i++ {
		s.Spawn(buf, i, env, rng)
	}
}
