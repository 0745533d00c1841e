package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/drift/systems"
)

// Collector accumulates respawn events within tick windows and produces
// FieldStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	// Respawn counters for current window
	respawnBounds  int
	respawnAge     int
	respawnInvalid int
}

// NewCollector creates a new stats collector flushing every windowTicks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordRespawn records a respawn with its reason. RespawnNone is ignored.
func (c *Collector) RecordRespawn(r systems.Respawn) {
	switch r {
	case systems.RespawnBounds:
		c.respawnBounds++
	case systems.RespawnAge:
		c.respawnAge++
	case systems.RespawnInvalid:
		c.respawnInvalid++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Reset discards the current window and starts a new one at tick.
func (c *Collector) Reset(tick int64) {
	c.windowStartTick = tick
	c.respawnBounds = 0
	c.respawnAge = 0
	c.respawnInvalid = 0
}

// Sample is the field state captured at the end of a window.
type Sample struct {
	Width, Height int
	Hue           float64
	Ages          []float64
	Alphas        []float64
	Speeds        []float64
}

// Flush produces a FieldStats and resets counters for the next window.
// The particle count is taken from len(sample.Ages).
func (c *Collector) Flush(currentTick int64, sample Sample) FieldStats {
	particles := len(sample.Ages)
	ticks := currentTick - c.windowStartTick

	respawns := c.respawnBounds + c.respawnAge + c.respawnInvalid
	var rate float64
	if particles > 0 && ticks > 0 {
		rate = float64(respawns) / float64(particles) / float64(ticks)
	}

	age := Summarize(sample.Ages)
	alpha := Summarize(sample.Alphas)
	speed := Summarize(sample.Speeds)

	stats := FieldStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Width:     sample.Width,
		Height:    sample.Height,
		Particles: particles,

		RespawnBounds:  c.respawnBounds,
		RespawnAge:     c.respawnAge,
		RespawnInvalid: c.respawnInvalid,
		RespawnRate:    rate,

		AgeMean: age.Mean,
		AgeP10:  age.P10,
		AgeP50:  age.P50,
		AgeP90:  age.P90,

		AlphaMean: alpha.Mean,
		AlphaStd:  alpha.Std,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP90:  speed.P90,

		Hue: sample.Hue,
	}

	c.Reset(currentTick)
	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

// LogStats logs window statistics.
func (s FieldStats) LogStats() {
	slog.Info("field_stats",
		"tick", s.WindowEndTick,
		"particles", s.Particles,
		"width", s.Width,
		"height", s.Height,
		"respawn_bounds", s.RespawnBounds,
		"respawn_age", s.RespawnAge,
		"respawn_invalid", s.RespawnInvalid,
		"respawn_rate", s.RespawnRate,
		"age_p50", s.AgeP50,
		"alpha_mean", s.AlphaMean,
		"speed_mean", s.SpeedMean,
		"hue", s.Hue,
	)
}
