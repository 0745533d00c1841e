package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Field preset: swirl or shift (empty = config)")
	headless := flag.Bool("headless", false, "Run without a window, rendering in software")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and frames")
	seed := flag.Int64("seed", 0, "Noise and spawn seed (0 = field.seed, then time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath, *preset); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Field.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks)
		return
	}
	runWindow(cfg, opts, *maxTicks)
}

// runHeadless renders into a software surface until interrupted or
// maxTicks is reached.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int64) {
	surface := renderer.NewSoftware(cfg.Screen.Width, cfg.Screen.Height)
	g, err := game.NewGame(cfg, surface, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting headless run",
		"preset", cfg.Preset,
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"output_dir", opts.OutputDir,
	)

	g.Ready(cfg.Screen.Width, cfg.Screen.Height)
	g.RunHeadless(ctx, maxTicks)
}

// runWindow opens a raylib window and ticks once per frame.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int64) {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	surface := renderer.NewRaylib(cfg.Screen.Width, cfg.Screen.Height)
	defer surface.Unload()

	g, err := game.NewGame(cfg, surface, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return
	}
	defer g.Unload()

	g.Ready(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			g.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
		}

		surface.BeginFrame()
		g.Tick()
		surface.EndFrame()

		if maxTicks > 0 && g.TickCount() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.TickCount())
			break
		}
	}
}
