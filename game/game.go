// Package game runs the particle field frame loop.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// State is the frame loop state.
type State uint8

const (
	// StateIdle waits for the surface to become ready; ticks are no-ops.
	StateIdle State = iota
	// StateRunning steps and draws every tick.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed      int64 // 0 = field.seed from config
	LogStats  bool
	OutputDir string

	// StatsCallback is called with every flushed stats window.
	StatsCallback func(telemetry.FieldStats)
}

// Game owns the particle buffer and drives one frame per Tick.
//
// Tick, Ready and Resize are serialized; a tick never sees a buffer that
// is being rebuilt.
type Game struct {
	mu    sync.Mutex
	state State

	cfg     *config.Config
	surface renderer.Surface
	rng     *rand.Rand
	seed    int64

	// Simulation
	noise   *systems.NoiseField
	stepper *systems.Stepper
	buf     *systems.Buffer
	env     systems.Env
	count   systems.CountSpec
	stride  int
	records []systems.DrawRecord
	reasons []systems.Respawn

	// Rendering
	pass       *renderer.Pass
	glow       renderer.Glow
	background color.NRGBA

	// State
	tick      int64
	recovered int
	width     int
	height    int

	parallel          *parallelState
	parallelThreshold int

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.FieldStats)
	frameEvery    int
	frameFormat   string
}

// NewGame creates a game in the Idle state drawing onto surface.
func NewGame(cfg *config.Config, surface renderer.Surface, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Field.Seed
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	d := &cfg.Derived
	noise := systems.NewNoiseField(d.Noise, seed, d.Offsets)
	spawn := systems.NewSpawnPolicy(d.Params, noise)

	stride := d.Stride
	if w := spawn.Layout().Width; stride < w {
		slog.Warn("stride_raised", "configured", stride, "stride", w, "motion", d.Params.Motion.String())
		stride = w
	}

	bg := cfg.Field.Background
	g := &Game{
		cfg:        cfg,
		surface:    surface,
		rng:        rand.New(rand.NewSource(seed)),
		seed:       seed,
		noise:      noise,
		stepper:    systems.NewStepper(spawn, noise),
		buf:        systems.NewBuffer(0, stride),
		count:      d.Count,
		stride:     stride,
		pass:       renderer.NewPass(d.Params.Motion),
		background: renderer.HSLA(bg.H, bg.S, bg.L, bg.A),
		glow: renderer.Glow{
			Blur:       cfg.Field.Blur,
			Brightness: cfg.Field.Brightness,
			ScreenPass: cfg.Field.ScreenPass,
		},
		env: systems.Env{Hue: d.Params.BaseColor},

		parallelThreshold: cfg.Simulation.ParallelThreshold,

		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		outputManager: om,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		frameEvery:    cfg.Export.FrameEvery,
		frameFormat:   cfg.Export.Format,
	}

	workers := cfg.Simulation.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > 1 {
		g.parallel = newParallelState(workers, seed)
	}

	return g, nil
}

// Ready sizes the field to the surface, spawns every particle and starts
// the loop. Calling Ready while running behaves like Resize.
func (g *Game) Ready(width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sizeLocked(width, height)
	g.collector.Reset(g.tick)
	g.state = StateRunning

	slog.Info("field_ready",
		"width", g.width,
		"height", g.height,
		"particles", g.buf.Count(),
		"stride", g.stride,
		"motion", g.cfg.Derived.Params.Motion.String(),
		"placement", g.cfg.Derived.Params.Placement.String(),
		"seed", g.seed,
	)
}

// Resize recomputes the particle count and centre for a new surface size,
// reallocates the buffer and respawns every particle.
func (g *Game) Resize(width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sizeLocked(width, height)

	slog.Info("field_resized",
		"width", g.width,
		"height", g.height,
		"particles", g.buf.Count(),
		"state", g.state.String(),
	)
}

// sizeLocked applies a host surface size. Explicit field.width/height
// override the host dimensions; a degenerate size holds no particles.
func (g *Game) sizeLocked(width, height int) {
	if g.cfg.Field.Width > 0 {
		width = g.cfg.Field.Width
	}
	if g.cfg.Field.Height > 0 {
		height = g.cfg.Field.Height
	}
	width = max(width, 0)
	height = max(height, 0)
	g.width, g.height = width, height

	if r, ok := g.surface.(renderer.Resizer); ok {
		r.Resize(width, height)
	}

	w, h := float64(width), float64(height)
	g.env.Width, g.env.Height = w, h
	g.env.CenterX, g.env.CenterY = systems.Center(g.cfg.Field.XAxis, g.cfg.Field.YAxis, w, h)

	n := 0
	if width > 0 && height > 0 {
		n = systems.ParticleCount(g.count, w, h)
	}

	g.buf.Resize(n, g.stride)
	g.records = resizeSlice(g.records, n)
	g.reasons = resizeSlice(g.reasons, n)

	g.stepper.Spawn().SpawnAll(g.buf, g.env, g.rng)
}

func resizeSlice[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}

// Tick runs one frame: clear, step every particle, draw in slot order,
// post-process and flush telemetry. In the Idle state it does nothing.
// A panic inside the frame is recovered and logged.
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateRunning {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			g.recovered++
			slog.Error("tick_recovered",
				"tick", g.tick,
				"panic", fmt.Sprint(r),
				"recovered", g.recovered,
			)
		}
	}()

	n := g.buf.Count()
	g.perfCollector.RecordFrame()
	g.perfCollector.StartTick()

	g.tick++
	g.env.Tick = g.tick
	if g.cfg.Derived.Params.HueMode == systems.HueRotating {
		g.env.Hue = systems.WrapHue(g.env.Hue + 1)
	}

	g.perfCollector.StartPhase(telemetry.PhaseClear)
	g.surface.Clear(g.background)

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	if g.parallel != nil && n >= g.parallelThreshold {
		g.stepParallel(n)
	} else {
		g.stepRange(0, n, g.rng)
	}

	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	for i := 0; i < n; i++ {
		g.pass.Draw(g.surface, g.records[i])
		g.collector.RecordRespawn(g.reasons[i])
	}

	g.perfCollector.StartPhase(telemetry.PhasePostProcess)
	renderer.PostProcess(g.surface, g.glow)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick(n)
}

// stepRange steps slots [i0, i1) and stores their draw records.
func (g *Game) stepRange(i0, i1 int, rng *rand.Rand) {
	for i := i0; i < i1; i++ {
		g.records[i], g.reasons[i] = g.stepper.Step(g.buf, i, g.env, rng)
	}
}

// State returns the loop state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Count returns the current particle count.
func (g *Game) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.Count()
}

// BufferLen returns the length of the particle buffer in floats.
func (g *Game) BufferLen() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.Len()
}

// Size returns the effective field dimensions.
func (g *Game) Size() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

// TickCount returns the number of frames run.
func (g *Game) TickCount() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tick
}

// Recovered returns how many ticks ended in a recovered panic.
func (g *Game) Recovered() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recovered
}

// Unload stops workers and closes output files.
func (g *Game) Unload() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
