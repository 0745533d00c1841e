package game

import (
	"context"
	"log/slog"
)

// RunHeadless ticks as fast as possible until ctx is cancelled or
// maxTicks frames have run (0 = unlimited). The game must be Ready.
func (g *Game) RunHeadless(ctx context.Context, maxTicks int64) {
	if g.State() != StateRunning {
		slog.Warn("headless run skipped", "state", g.State().String())
		return
	}
	for {
		select {
		case <-ctx.Done():
			slog.Info("headless run stopped", "tick", g.TickCount(), "reason", ctx.Err().Error())
			return
		default:
		}

		g.Tick()

		if maxTicks > 0 && g.TickCount() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.TickCount())
			return
		}
	}
}
