// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/drift/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Preset     string           `yaml:"preset"`
	Field      FieldConfig      `yaml:"field"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Export     ExportConfig     `yaml:"export"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig holds the particle field options. Base/variation pairs give
// the spawn range [base, base+variation).
type FieldConfig struct {
	ParticleCount     ParticleCount `yaml:"particle_count"`      // integer or "dynamic"
	ParticlePropCount int           `yaml:"particle_prop_count"` // buffer stride (0 = layout width)

	BaseSpeed         float64 `yaml:"base_speed"`
	SpeedVariation    float64 `yaml:"speed_variation"`
	BaseLifetime      float64 `yaml:"base_lifetime"` // ticks
	LifetimeVariation float64 `yaml:"lifetime_variation"`
	BaseRadius        float64 `yaml:"base_radius"` // px
	RadiusVariation   float64 `yaml:"radius_variation"`
	BaseColor         float64 `yaml:"base_color"` // hue degrees
	ColorVariation    float64 `yaml:"color_variation"`

	OffsetX    float64 `yaml:"offset_x"` // noise scale, divided by 10000
	OffsetY    float64 `yaml:"offset_y"`
	OffsetZ    float64 `yaml:"offset_z"`
	NoiseSteps float64 `yaml:"noise_steps"`
	Noise      string  `yaml:"noise"` // simplex | perlin
	Seed       int64   `yaml:"seed"`  // 0 = from -seed flag or time

	Variant string `yaml:"variant"`  // none | x | y | xy
	Motion  string `yaml:"motion"`   // flow | radial
	HueMode string `yaml:"hue_mode"` // spread | rotating

	XAxis      float64 `yaml:"x_axis"` // centre, % of width
	YAxis      float64 `yaml:"y_axis"` // centre, % of height
	XAxisRange float64 `yaml:"x_axis_range"`
	YAxisRange float64 `yaml:"y_axis_range"`

	DynamicLimit int     `yaml:"dynamic_limit"`
	DynamicCut   float64 `yaml:"dynamic_cut"` // px² per particle

	Blur       float64 `yaml:"blur"`       // px
	Brightness float64 `yaml:"brightness"` // percent
	ScreenPass bool    `yaml:"screen_pass"`

	Width  int `yaml:"width"` // override host surface width (0 = host)
	Height int `yaml:"height"`

	Background HSLAConfig `yaml:"background"`
	Lerp       float64    `yaml:"lerp"` // flow heading blend per tick
}

// HSLAConfig is a CSS-style colour: hue in degrees, saturation and
// lightness in percent, alpha in [0, 1].
type HSLAConfig struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	L float64 `yaml:"l"`
	A float64 `yaml:"a"`
}

// SimulationConfig holds stepping parameters.
type SimulationConfig struct {
	Workers           int `yaml:"workers"`            // 0 = NumCPU, 1 = serial
	ParallelThreshold int `yaml:"parallel_threshold"` // minimum particles before stepping in parallel
}

// TelemetryConfig holds stats and perf window sizes.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks
	PerfWindow  int `yaml:"perf_window"`  // ticks
}

// ExportConfig holds headless frame export settings.
type ExportConfig struct {
	FrameEvery int    `yaml:"frame_every"` // ticks, 0 = off
	Format     string `yaml:"format"`      // png | jpg
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Params  systems.Params
	Count   systems.CountSpec
	Stride  int // configured stride, defaulted to the layout width
	Noise   systems.NoiseKind
	Offsets systems.Offsets
}

// ParticleCount is a fixed particle count or the "dynamic" keyword, which
// derives the count from the canvas area.
type ParticleCount struct {
	Dynamic bool
	N       int
}

// UnmarshalYAML accepts an integer or "dynamic".
func (p *ParticleCount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("particle_count: expected scalar, got line %d", value.Line)
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "dynamic", "auto":
		*p = ParticleCount{Dynamic: true}
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("particle_count: %w", err)
	}
	*p = ParticleCount{N: n}
	return nil
}

// MarshalYAML writes "dynamic" or the integer count.
func (p ParticleCount) MarshalYAML() (interface{}, error) {
	if p.Dynamic {
		return "dynamic", nil
	}
	return p.N, nil
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// A non-empty preset overrides the preset named in the file.
// Must be called before Cfg().
func Init(path, preset string) error {
	cfg, err := Load(path, preset)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path, preset string) {
	if err := Init(path, preset); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
//
// Layering, lowest first: embedded defaults, the preset's field values,
// the user file. The preset is chosen by the preset argument, then the
// file's preset key, then the default.
func Load(path, preset string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		var peek struct {
			Preset string `yaml:"preset"`
		}
		if err := yaml.Unmarshal(data, &peek); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if peek.Preset != "" {
			cfg.Preset = peek.Preset
		}
	}
	if preset != "" {
		cfg.Preset = preset
	}

	field, err := PresetField(cfg.Preset)
	if err != nil {
		return nil, err
	}
	cfg.Field = field

	if data != nil {
		// Unmarshal into same struct - only overwrites fields present in file
		chosen := cfg.Preset
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.Preset = chosen
	}

	if err := cfg.ComputeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ComputeDerived parses enum names and builds the simulation parameters.
// Call it again after editing Field in place.
func (c *Config) ComputeDerived() error {
	f := &c.Field

	placement, err := systems.ParsePlacement(f.Variant)
	if err != nil {
		return fmt.Errorf("field.variant: %w", err)
	}
	motion, err := systems.ParseMotion(f.Motion)
	if err != nil {
		return fmt.Errorf("field.motion: %w", err)
	}
	hueMode, err := systems.ParseHueMode(f.HueMode)
	if err != nil {
		return fmt.Errorf("field.hue_mode: %w", err)
	}
	noise, err := systems.ParseNoiseKind(f.Noise)
	if err != nil {
		return fmt.Errorf("field.noise: %w", err)
	}

	c.Derived.Params = systems.Params{
		Placement:         placement,
		Motion:            motion,
		HueMode:           hueMode,
		BaseSpeed:         f.BaseSpeed,
		SpeedVariation:    f.SpeedVariation,
		BaseLifetime:      f.BaseLifetime,
		LifetimeVariation: f.LifetimeVariation,
		BaseRadius:        f.BaseRadius,
		RadiusVariation:   f.RadiusVariation,
		BaseColor:         f.BaseColor,
		ColorVariation:    f.ColorVariation,
		NoiseSteps:        f.NoiseSteps,
		XAxisRange:        f.XAxisRange,
		YAxisRange:        f.YAxisRange,
		Lerp:              f.Lerp,
	}
	c.Derived.Count = systems.CountSpec{
		Dynamic: f.ParticleCount.Dynamic,
		Fixed:   f.ParticleCount.N,
		Limit:   f.DynamicLimit,
		Cut:     f.DynamicCut,
	}
	c.Derived.Noise = noise
	c.Derived.Offsets = systems.Offsets{X: f.OffsetX, Y: f.OffsetY, Z: f.OffsetZ}

	c.Derived.Stride = f.ParticlePropCount
	if c.Derived.Stride <= 0 {
		c.Derived.Stride = systems.LayoutFor(motion).Width
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
