package systems

import (
	"math"
	"math/rand"
	"testing"
)

func swirlParams() Params {
	return Params{
		Placement:         PlacementY,
		Motion:            MotionFlow,
		HueMode:           HueSpread,
		BaseSpeed:         0.1,
		SpeedVariation:    2,
		BaseLifetime:      50,
		LifetimeVariation: 150,
		BaseRadius:        1,
		RadiusVariation:   4,
		BaseColor:         220,
		ColorVariation:    100,
		NoiseSteps:        8,
		XAxisRange:        100,
		YAxisRange:        100,
		Lerp:              0.5,
	}
}

func shiftParams() Params {
	return Params{
		Placement:         PlacementNone,
		Motion:            MotionRadial,
		HueMode:           HueRotating,
		BaseSpeed:         3,
		SpeedVariation:    8,
		BaseLifetime:      100,
		LifetimeVariation: 150,
		BaseRadius:        100,
		RadiusVariation:   200,
		BaseColor:         220,
		ColorVariation:    2,
		NoiseSteps:        8,
		XAxisRange:        100,
		YAxisRange:        100,
	}
}

func testEnv() Env {
	return Env{Width: 800, Height: 600, CenterX: 400, CenterY: 300, Tick: 1, Hue: 220}
}

func newTestStepper(p Params) (*Stepper, *Buffer) {
	noise := NewNoiseField(NoiseSimplex, 1, Offsets{X: 125, Y: 125, Z: 5})
	spawn := NewSpawnPolicy(p, noise)
	return NewStepper(spawn, noise), NewBuffer(200, spawn.Layout().Width)
}

func TestSpawnInitialState(t *testing.T) {
	for _, p := range []Params{swirlParams(), shiftParams()} {
		t.Run(p.Motion.String(), func(t *testing.T) {
			stepper, buf := newTestStepper(p)
			rng := rand.New(rand.NewSource(5))
			env := testEnv()
			stepper.Spawn().SpawnAll(buf, env, rng)

			l := stepper.Spawn().Layout()
			for i := 0; i < buf.Count(); i++ {
				if age := buf.Get(i, l.Age); age != 0 {
					t.Fatalf("particle %d age = %v, want 0", i, age)
				}
				lt := float64(buf.Get(i, l.Lifetime))
				if !(lt > 0) || lt > p.BaseLifetime+p.LifetimeVariation {
					t.Fatalf("particle %d lifetime = %v out of range", i, lt)
				}
				r := float64(buf.Get(i, l.Radius))
				if r < p.BaseRadius || r > p.BaseRadius+p.RadiusVariation {
					t.Fatalf("particle %d radius = %v out of range", i, r)
				}
				h := float64(buf.Get(i, l.Hue))
				if h < 0 || h >= 360 {
					t.Fatalf("particle %d hue = %v not wrapped", i, h)
				}
			}
		})
	}
}

func TestSpawnVelocity(t *testing.T) {
	t.Run("flow starts at rest", func(t *testing.T) {
		stepper, buf := newTestStepper(swirlParams())
		stepper.Spawn().SpawnAll(buf, testEnv(), rand.New(rand.NewSource(1)))
		l := stepper.Spawn().Layout()
		for i := 0; i < buf.Count(); i++ {
			if buf.Get(i, l.VX) != 0 || buf.Get(i, l.VY) != 0 {
				t.Fatalf("particle %d has non-zero spawn velocity", i)
			}
			s := float64(buf.Get(i, l.Speed))
			if s < 0.1 || s > 2.1 {
				t.Fatalf("particle %d speed = %v out of range", i, s)
			}
		}
	})

	t.Run("radial speed in range", func(t *testing.T) {
		p := shiftParams()
		stepper, buf := newTestStepper(p)
		stepper.Spawn().SpawnAll(buf, testEnv(), rand.New(rand.NewSource(1)))
		l := stepper.Spawn().Layout()
		for i := 0; i < buf.Count(); i++ {
			v := math.Hypot(float64(buf.Get(i, l.VX)), float64(buf.Get(i, l.VY)))
			if v < p.BaseSpeed-1e-4 || v > p.BaseSpeed+p.SpeedVariation+1e-4 {
				t.Fatalf("particle %d speed = %v out of range", i, v)
			}
		}
	})
}

func TestSpawnPlacement(t *testing.T) {
	tests := []struct {
		name      string
		placement Placement
		check     func(x, y float64) bool
	}{
		{"none", PlacementNone, func(x, y float64) bool { return x >= 0 && x <= 800 && y >= 0 && y <= 600 }},
		{"x", PlacementX, func(x, y float64) bool { return math.Abs(x-400) <= 50 && y >= 0 && y <= 600 }},
		{"y", PlacementY, func(x, y float64) bool { return x >= 0 && x <= 800 && math.Abs(y-300) <= 50 }},
		{"xy", PlacementXY, func(x, y float64) bool { return math.Abs(x-400) <= 50 && math.Abs(y-300) <= 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := swirlParams()
			p.Placement = tt.placement
			p.XAxisRange = 50
			p.YAxisRange = 50
			stepper, buf := newTestStepper(p)
			rng := rand.New(rand.NewSource(9))
			l := stepper.Spawn().Layout()

			for round := 0; round < 20; round++ {
				stepper.Spawn().SpawnAll(buf, testEnv(), rng)
				for i := 0; i < buf.Count(); i++ {
					x := float64(buf.Get(i, l.X))
					y := float64(buf.Get(i, l.Y))
					if !tt.check(x, y) {
						t.Fatalf("particle %d spawned at (%v, %v)", i, x, y)
					}
				}
			}
		})
	}
}

func TestSpawnRotatingHueFollowsCounter(t *testing.T) {
	p := shiftParams()
	p.ColorVariation = 2
	stepper, buf := newTestStepper(p)
	env := testEnv()
	env.Hue = 10
	stepper.Spawn().SpawnAll(buf, env, rand.New(rand.NewSource(2)))

	l := stepper.Spawn().Layout()
	for i := 0; i < buf.Count(); i++ {
		h := float64(buf.Get(i, l.Hue))
		if math.Abs(h-10) > 2+1e-4 {
			t.Fatalf("particle %d hue = %v, want within 2 of 10", i, h)
		}
	}
}

func TestStepAgeMonotonic(t *testing.T) {
	for _, p := range []Params{swirlParams(), shiftParams()} {
		t.Run(p.Motion.String(), func(t *testing.T) {
			stepper, buf := newTestStepper(p)
			rng := rand.New(rand.NewSource(11))
			env := testEnv()
			stepper.Spawn().SpawnAll(buf, env, rng)
			l := stepper.Spawn().Layout()

			for tick := int64(1); tick <= 300; tick++ {
				env.Tick = tick
				for i := 0; i < buf.Count(); i++ {
					before := buf.Get(i, l.Age)
					_, reason := stepper.Step(buf, i, env, rng)
					after := buf.Get(i, l.Age)
					if reason != RespawnNone {
						if after != 0 {
							t.Fatalf("respawned particle %d has age %v", i, after)
						}
						continue
					}
					if after != before+1 {
						t.Fatalf("particle %d age %v -> %v", i, before, after)
					}
					if float64(after) > float64(buf.Get(i, l.Lifetime)) {
						t.Fatalf("particle %d survived past its lifetime", i)
					}
				}
			}
		})
	}
}

func TestStepDrawsPreStepState(t *testing.T) {
	p := shiftParams()
	stepper, buf := newTestStepper(p)
	l := stepper.Spawn().Layout()
	env := testEnv()

	slot := buf.Slot(0)
	slot[l.X], slot[l.Y] = 100, 200
	slot[l.VX], slot[l.VY] = 3, -4
	slot[l.Age], slot[l.Lifetime] = 7, 50
	slot[l.Radius], slot[l.Hue] = 10, 42

	rec, reason := stepper.Step(buf, 0, env, rand.New(rand.NewSource(1)))
	if reason != RespawnNone {
		t.Fatalf("unexpected respawn: %v", reason)
	}
	if rec.X != 100 || rec.Y != 200 || rec.Age != 7 {
		t.Errorf("record = (%v, %v, age %v), want pre-step (100, 200, age 7)", rec.X, rec.Y, rec.Age)
	}
	if rec.X2 != 103 || rec.Y2 != 196 {
		t.Errorf("record end = (%v, %v), want (103, 196)", rec.X2, rec.Y2)
	}
	if buf.Get(0, l.X) != 103 || buf.Get(0, l.Y) != 196 || buf.Get(0, l.Age) != 8 {
		t.Errorf("buffer not advanced: (%v, %v, age %v)", buf.Get(0, l.X), buf.Get(0, l.Y), buf.Get(0, l.Age))
	}
	if buf.Get(0, l.VX) != 3 || buf.Get(0, l.VY) != -4 {
		t.Error("radial velocity changed during step")
	}
}

func TestStepFlowSmoothsVelocity(t *testing.T) {
	p := swirlParams()
	noise := NewNoiseFieldFrom(constSampler(0), Offsets{X: 1, Y: 1, Z: 1})
	spawn := NewSpawnPolicy(p, noise)
	stepper := NewStepper(spawn, noise)
	buf := NewBuffer(1, spawn.Layout().Width)
	l := spawn.Layout()

	// Constant zero noise means a target heading of (1, 0).
	slot := buf.Slot(0)
	slot[l.X], slot[l.Y] = 100, 100
	slot[l.VX], slot[l.VY] = 0, 1
	slot[l.Lifetime], slot[l.Speed] = 100, 2
	slot[l.Radius], slot[l.Hue] = 1, 220

	rec, reason := stepper.Step(buf, 0, testEnv(), rand.New(rand.NewSource(1)))
	if reason != RespawnNone {
		t.Fatalf("unexpected respawn: %v", reason)
	}
	if buf.Get(0, l.VX) != 0.5 || buf.Get(0, l.VY) != 0.5 {
		t.Errorf("velocity = (%v, %v), want (0.5, 0.5)", buf.Get(0, l.VX), buf.Get(0, l.VY))
	}
	if rec.X2 != 101 || rec.Y2 != 101 {
		t.Errorf("segment end = (%v, %v), want (101, 101)", rec.X2, rec.Y2)
	}
	if rec.X != 100 || rec.Y != 100 {
		t.Errorf("segment start = (%v, %v), want (100, 100)", rec.X, rec.Y)
	}
}

func TestStepRespawnTriggers(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		x, y   float32
		age    float32
		want   Respawn
	}{
		{"circle exactly radius left", shiftParams(), -10, 300, 0, RespawnBounds},
		{"circle exactly radius right", shiftParams(), 810, 300, 0, RespawnBounds},
		{"circle exactly radius top", shiftParams(), 400, -10, 0, RespawnBounds},
		{"circle exactly radius bottom", shiftParams(), 400, 610, 0, RespawnBounds},
		{"circle partly outside", shiftParams(), -9, 300, 0, RespawnNone},
		{"circle aged out", shiftParams(), 400, 300, 50.001, RespawnAge},
		{"line outside left", swirlParams(), -0.5, 300, 0, RespawnBounds},
		{"line on edge", swirlParams(), 0, 300, 0, RespawnNone},
		{"line aged out", swirlParams(), 400, 300, 50.5, RespawnAge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noise := NewNoiseFieldFrom(constSampler(0), Offsets{})
			spawn := NewSpawnPolicy(tt.params, noise)
			stepper := NewStepper(spawn, noise)
			buf := NewBuffer(1, spawn.Layout().Width)
			l := spawn.Layout()

			slot := buf.Slot(0)
			slot[l.X], slot[l.Y] = tt.x, tt.y
			slot[l.Age], slot[l.Lifetime] = tt.age, 50
			slot[l.Radius], slot[l.Hue] = 10, 220
			if l.Speed >= 0 {
				slot[l.Speed] = 0
			}

			_, reason := stepper.Step(buf, 0, testEnv(), rand.New(rand.NewSource(1)))
			if reason != tt.want {
				t.Fatalf("reason = %v, want %v", reason, tt.want)
			}
			if reason != RespawnNone && buf.Get(0, l.Age) != 0 {
				t.Errorf("respawned age = %v, want 0", buf.Get(0, l.Age))
			}
		})
	}
}

func TestStepInvalidStateRespawns(t *testing.T) {
	stepper, buf := newTestStepper(shiftParams())
	l := stepper.Spawn().Layout()
	env := testEnv()
	stepper.Spawn().SpawnAll(buf, env, rand.New(rand.NewSource(1)))

	buf.Set(0, l.X, float32(math.NaN()))
	buf.Set(1, l.VY, float32(math.Inf(1)))

	for i := 0; i < 2; i++ {
		_, reason := stepper.Step(buf, i, env, rand.New(rand.NewSource(1)))
		if reason != RespawnInvalid {
			t.Errorf("particle %d reason = %v, want invalid", i, reason)
		}
		if !finite(float64(buf.Get(i, l.X)), float64(buf.Get(i, l.VY))) {
			t.Errorf("particle %d still non-finite after respawn", i)
		}
	}
}

func TestStepShortStrideIsNoop(t *testing.T) {
	stepper, _ := newTestStepper(swirlParams())
	buf := NewBuffer(3, 4)
	_, reason := stepper.Step(buf, 0, testEnv(), rand.New(rand.NewSource(1)))
	if reason != RespawnNone {
		t.Errorf("reason = %v, want none", reason)
	}
}
