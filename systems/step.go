package systems

import (
	"math"
	"math/rand"
)

// DefaultLerp is the flow blend factor used when none is configured.
const DefaultLerp = 0.5

// DrawRecord is what the renderer needs to draw one particle for a tick.
// Position and age are the values at the start of the tick; X2/Y2 is the
// position after the step (the far end of a flow segment).
type DrawRecord struct {
	X, Y     float64
	X2, Y2   float64
	Age      float64
	Lifetime float64
	Radius   float64
	Hue      float64
}

// Stepper advances particles one tick at a time.
type Stepper struct {
	params Params
	noise  *NoiseField
	spawn  *SpawnPolicy
	layout Layout
}

// NewStepper creates a stepper sharing the spawn policy's params.
func NewStepper(spawn *SpawnPolicy, noise *NoiseField) *Stepper {
	p := spawn.params
	if !(p.Lerp > 0 && p.Lerp <= 1) {
		p.Lerp = DefaultLerp
	}
	return &Stepper{
		params: p,
		noise:  noise,
		spawn:  spawn,
		layout: spawn.layout,
	}
}

// Spawn exposes the policy used for respawns.
func (s *Stepper) Spawn() *SpawnPolicy { return s.spawn }

// Step advances particle i by one tick. The returned record holds the
// pre-step state for drawing. If the particle leaves the canvas, outlives
// its lifetime or holds non-finite state, the slot is respawned and the
// reason returned.
func (s *Stepper) Step(buf *Buffer, i int, env Env, rng *rand.Rand) (DrawRecord, Respawn) {
	l := &s.layout
	if buf.Stride() < l.Width {
		return DrawRecord{}, RespawnNone
	}
	slot := buf.Slot(i)

	x := float64(slot[l.X])
	y := float64(slot[l.Y])
	vx := float64(slot[l.VX])
	vy := float64(slot[l.VY])
	age := float64(slot[l.Age])
	lifetime := float64(slot[l.Lifetime])
	radius := float64(slot[l.Radius])
	hue := float64(slot[l.Hue])

	var dx, dy float64
	switch s.params.Motion {
	case MotionRadial:
		dx, dy = vx, vy
	default:
		speed := float64(slot[l.Speed])
		angle := 0.0
		if s.noise != nil {
			angle = s.noise.SampleScaled(x, y, float64(env.Tick)) * s.params.NoiseSteps * Tau
		}
		vx = Lerp(vx, math.Cos(angle), s.params.Lerp)
		vy = Lerp(vy, math.Sin(angle), s.params.Lerp)
		dx, dy = vx*speed, vy*speed
	}

	x2 := x + dx
	y2 := y + dy
	nextAge := age + 1

	rec := DrawRecord{
		X: x, Y: y,
		X2: x2, Y2: y2,
		Age:      age,
		Lifetime: lifetime,
		Radius:   radius,
		Hue:      hue,
	}

	reason := RespawnNone
	switch {
	case !finite(x2, y2, vx, vy, nextAge, lifetime, radius, hue):
		reason = RespawnInvalid
	case s.outOfBounds(x2, y2, radius, env):
		reason = RespawnBounds
	case nextAge > lifetime:
		reason = RespawnAge
	}

	if reason != RespawnNone {
		s.spawn.Spawn(buf, i, env, rng)
		return rec, reason
	}

	slot[l.X] = float32(x2)
	slot[l.Y] = float32(y2)
	slot[l.VX] = float32(vx)
	slot[l.VY] = float32(vy)
	slot[l.Age] = float32(nextAge)
	return rec, RespawnNone
}

// outOfBounds tests a position against the canvas. Circles may drift up to
// (but not reaching) their radius beyond an edge; segments must stay inside.
func (s *Stepper) outOfBounds(x, y, radius float64, env Env) bool {
	if s.params.Motion == MotionRadial {
		return x <= -radius || x >= env.Width+radius ||
			y <= -radius || y >= env.Height+radius
	}
	return x < 0 || x > env.Width || y < 0 || y > env.Height
}
