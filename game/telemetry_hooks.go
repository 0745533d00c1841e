package game

import (
	"image"
	"log/slog"

	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes
// stats, perf and exported frames.
func (g *Game) flushTelemetry() {
	g.exportFrame()

	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleField())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleField collects age, alpha and per-tick displacement from this
// tick's draw records.
func (g *Game) sampleField() telemetry.Sample {
	n := g.buf.Count()
	s := telemetry.Sample{
		Width:  g.width,
		Height: g.height,
		Hue:    g.env.Hue,
		Ages:   make([]float64, n),
		Alphas: make([]float64, n),
		Speeds: make([]float64, n),
	}
	for i, rec := range g.records[:n] {
		s.Ages[i] = rec.Age
		s.Alphas[i] = systems.FadeInOut(rec.Age, rec.Lifetime)
		s.Speeds[i] = systems.Distance(rec.X, rec.Y, rec.X2, rec.Y2)
	}
	return s
}

// imageSurface is implemented by surfaces whose frame can be read back.
type imageSurface interface {
	Image() *image.RGBA
}

// exportFrame saves the surface every export.frame_every ticks when an
// output directory is set.
func (g *Game) exportFrame() {
	if g.outputManager == nil || g.frameEvery <= 0 || g.tick%int64(g.frameEvery) != 0 {
		return
	}
	src, ok := g.surface.(imageSurface)
	if !ok {
		return
	}
	path, err := g.outputManager.WriteFrame(g.tick, src.Image(), g.frameFormat)
	if err != nil {
		slog.Error("failed to write frame", "tick", g.tick, "error", err)
		return
	}
	if g.logStats {
		slog.Info("frame_exported", "tick", g.tick, "path", path)
	}
}
