// Field tuner - live particle field preview with sliders.
//
// Usage: go run ./cmd/fieldtuner [-preset shift]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
)

const (
	windowWidth  = 1280
	windowHeight = 760
	previewW     = 800
	previewH     = 600
	panelWidth   = windowWidth - previewW - 30
)

// slider binds a field value to a labelled slider.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(f *config.FieldConfig) *float64
}

var sliders = []slider{
	{"Base speed", 0, 10, "%.2f", func(f *config.FieldConfig) *float64 { return &f.BaseSpeed }},
	{"Speed variation", 0, 10, "%.2f", func(f *config.FieldConfig) *float64 { return &f.SpeedVariation }},
	{"Base lifetime", 1, 300, "%.0f", func(f *config.FieldConfig) *float64 { return &f.BaseLifetime }},
	{"Lifetime variation", 0, 300, "%.0f", func(f *config.FieldConfig) *float64 { return &f.LifetimeVariation }},
	{"Base radius", 0, 200, "%.1f", func(f *config.FieldConfig) *float64 { return &f.BaseRadius }},
	{"Radius variation", 0, 300, "%.1f", func(f *config.FieldConfig) *float64 { return &f.RadiusVariation }},
	{"Base colour (hue)", 0, 360, "%.0f", func(f *config.FieldConfig) *float64 { return &f.BaseColor }},
	{"Colour variation", 0, 360, "%.0f", func(f *config.FieldConfig) *float64 { return &f.ColorVariation }},
	{"Noise steps", 1, 16, "%.0f", func(f *config.FieldConfig) *float64 { return &f.NoiseSteps }},
	{"Offset X/Y", 1, 400, "%.0f", func(f *config.FieldConfig) *float64 { return &f.OffsetX }},
	{"Offset Z", 0, 50, "%.1f", func(f *config.FieldConfig) *float64 { return &f.OffsetZ }},
	{"Y axis range", 0, 300, "%.0f", func(f *config.FieldConfig) *float64 { return &f.YAxisRange }},
	{"Blur", 0, 60, "%.0f", func(f *config.FieldConfig) *float64 { return &f.Blur }},
	{"Brightness", 0, 300, "%.0f", func(f *config.FieldConfig) *float64 { return &f.Brightness }},
}

func main() {
	preset := flag.String("preset", config.PresetSwirl, "Starting preset: swirl or shift")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load("", *preset)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Simulation.Workers = 1

	rl.InitWindow(windowWidth, windowHeight, "Field Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	surface := renderer.NewRaylib(previewW, previewH)
	defer surface.Unload()

	g := rebuild(nil, cfg, surface)
	seed := int64(1)

	for !rl.WindowShouldClose() {
		surface.BeginFrame()
		g.Tick()
		surface.Finish()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		surface.DrawAt(10, 10)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Preset: %s  Particles: %d  Tick: %d  FPS: %d",
			cfg.Preset, g.Count(), g.TickCount(), rl.GetFPS()), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30

		changed := false
		for _, s := range sliders {
			v := s.value(&cfg.Field)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
			nv := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 18},
				"", "",
				float32(*v), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if nv != float32(*v) {
				*v = float64(nv)
				changed = true
			}
			panelY += 26
		}
		// Offsets X and Y move together.
		cfg.Field.OffsetY = cfg.Field.OffsetX

		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Swirl") {
			changed = switchPreset(cfg, config.PresetSwirl) || changed
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Shift") {
			changed = switchPreset(cfg, config.PresetShift) || changed
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			seed++
			cfg.Field.Seed = seed
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Print YAML") {
			fmt.Println(fieldYAML(cfg))
		}

		rl.DrawText("Press C to copy the field block to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fieldYAML(cfg))
		}

		rl.EndDrawing()

		if changed {
			g = rebuild(g, cfg, surface)
		}
	}
	g.Unload()
}

// rebuild re-derives the config and starts a fresh game on the surface.
// On a derive error the previous game keeps running.
func rebuild(prev *game.Game, cfg *config.Config, surface *renderer.Raylib) *game.Game {
	if err := cfg.ComputeDerived(); err != nil {
		slog.Error("invalid field config", "error", err)
		return prev
	}
	g, err := game.NewGame(cfg, surface, game.Options{Seed: cfg.Field.Seed})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return prev
	}
	if prev != nil {
		prev.Unload()
	}
	g.Ready(previewW, previewH)
	return g
}

// switchPreset replaces the field values with a preset's.
func switchPreset(cfg *config.Config, name string) bool {
	if cfg.Preset == name {
		return false
	}
	field, err := config.PresetField(name)
	if err != nil {
		return false
	}
	field.Seed = cfg.Field.Seed
	cfg.Preset = name
	cfg.Field = field
	return true
}

// fieldYAML renders the preset and field block for pasting into a config file.
func fieldYAML(cfg *config.Config) string {
	out := struct {
		Preset string             `yaml:"preset"`
		Field  config.FieldConfig `yaml:"field"`
	}{cfg.Preset, cfg.Field}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Sprintf("# marshal failed: %v", err)
	}
	return strings.TrimSpace(string(data))
}
