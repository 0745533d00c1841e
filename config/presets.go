package config

import (
	"fmt"
	"strings"
)

// Preset names.
const (
	PresetSwirl = "swirl"
	PresetShift = "shift"
)

var background = HSLAConfig{H: 0, S: 0, L: 5, A: 1}

// SwirlField is the flow-field preset: noise-steered line segments in a
// horizontal band, count derived from canvas area.
func SwirlField() FieldConfig {
	return FieldConfig{
		ParticleCount:     ParticleCount{Dynamic: true},
		ParticlePropCount: 9,
		BaseSpeed:         0.1,
		SpeedVariation:    2,
		BaseLifetime:      50,
		LifetimeVariation: 150,
		BaseRadius:        1,
		RadiusVariation:   4,
		BaseColor:         220,
		ColorVariation:    100,
		OffsetX:           125,
		OffsetY:           125,
		OffsetZ:           5,
		NoiseSteps:        8,
		Noise:             "simplex",
		Variant:           "y",
		Motion:            "flow",
		HueMode:           "spread",
		XAxis:             50,
		YAxis:             50,
		XAxisRange:        100,
		YAxisRange:        100,
		DynamicLimit:      100,
		DynamicCut:        7000,
		Blur:              8,
		Brightness:        200,
		ScreenPass:        true,
		Background:        background,
		Lerp:              0.5,
	}
}

// ShiftField is the radial preset: large soft circles drifting outward
// with a slowly rotating hue.
func ShiftField() FieldConfig {
	return FieldConfig{
		ParticleCount:     ParticleCount{N: 150},
		ParticlePropCount: 8,
		BaseSpeed:         3,
		SpeedVariation:    8,
		BaseLifetime:      100,
		LifetimeVariation: 150,
		BaseRadius:        100,
		RadiusVariation:   200,
		BaseColor:         220,
		ColorVariation:    2,
		OffsetX:           15,
		OffsetY:           15,
		OffsetZ:           15,
		NoiseSteps:        8,
		Noise:             "simplex",
		Variant:           "none",
		Motion:            "radial",
		HueMode:           "rotating",
		XAxis:             50,
		YAxis:             50,
		XAxisRange:        100,
		YAxisRange:        100,
		DynamicLimit:      100,
		DynamicCut:        7000,
		Blur:              50,
		Brightness:        100,
		Background:        background,
		Lerp:              0.5,
	}
}

// PresetField returns the field values for a named preset.
func PresetField(name string) (FieldConfig, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetSwirl:
		return SwirlField(), nil
	case PresetShift:
		return ShiftField(), nil
	}
	return FieldConfig{}, fmt.Errorf("unknown preset %q", name)
}
