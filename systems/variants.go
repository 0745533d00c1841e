// Package systems provides the particle field simulation: the packed state
// buffer, noise sampling, spawning and per-tick stepping.
package systems

import (
	"fmt"
	"strings"
)

// Placement selects where a (re)spawned particle is positioned.
type Placement uint8

const (
	PlacementNone Placement = iota // uniform over the whole canvas
	PlacementX                     // x near the centre, y anywhere
	PlacementY                     // y near the centre, x anywhere
	PlacementXY                    // both near the centre
)

func (p Placement) String() string {
	switch p {
	case PlacementNone:
		return "none"
	case PlacementX:
		return "x"
	case PlacementY:
		return "y"
	case PlacementXY:
		return "xy"
	}
	return fmt.Sprintf("Placement(%d)", uint8(p))
}

// ParsePlacement accepts the short names as well as LimiterX, LimiterY
// and LimiterXY.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PlacementNone, nil
	case "x", "limiterx":
		return PlacementX, nil
	case "y", "limitery":
		return PlacementY, nil
	case "xy", "limiterxy":
		return PlacementXY, nil
	}
	return PlacementNone, fmt.Errorf("unknown placement variant %q", s)
}

// Motion selects the velocity model.
type Motion uint8

const (
	// MotionFlow blends velocity toward a noise-derived heading every tick
	// and draws line segments.
	MotionFlow Motion = iota
	// MotionRadial keeps the velocity drawn at spawn and draws circles.
	MotionRadial
)

func (m Motion) String() string {
	switch m {
	case MotionFlow:
		return "flow"
	case MotionRadial:
		return "radial"
	}
	return fmt.Sprintf("Motion(%d)", uint8(m))
}

// ParseMotion parses a motion name.
func ParseMotion(s string) (Motion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flow", "swirl":
		return MotionFlow, nil
	case "radial", "shift":
		return MotionRadial, nil
	}
	return MotionFlow, fmt.Errorf("unknown motion %q", s)
}

// HueMode selects how a spawned particle's hue is chosen.
type HueMode uint8

const (
	// HueSpread draws baseColor + U(0, colorVariation).
	HueSpread HueMode = iota
	// HueRotating offsets the frame's rotating hue by a noise-scaled delta.
	HueRotating
)

func (h HueMode) String() string {
	switch h {
	case HueSpread:
		return "spread"
	case HueRotating:
		return "rotating"
	}
	return fmt.Sprintf("HueMode(%d)", uint8(h))
}

// ParseHueMode parses a hue mode name.
func ParseHueMode(s string) (HueMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "spread":
		return HueSpread, nil
	case "rotating":
		return HueRotating, nil
	}
	return HueSpread, fmt.Errorf("unknown hue mode %q", s)
}

// NoiseKind selects the coherent noise backend.
type NoiseKind uint8

const (
	NoiseSimplex NoiseKind = iota
	NoisePerlin
)

func (k NoiseKind) String() string {
	switch k {
	case NoiseSimplex:
		return "simplex"
	case NoisePerlin:
		return "perlin"
	}
	return fmt.Sprintf("NoiseKind(%d)", uint8(k))
}

// ParseNoiseKind parses a noise backend name.
func ParseNoiseKind(s string) (NoiseKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simplex", "opensimplex":
		return NoiseSimplex, nil
	case "perlin":
		return NoisePerlin, nil
	}
	return NoiseSimplex, fmt.Errorf("unknown noise kind %q", s)
}

// Respawn reports why a slot was respawned during a step.
type Respawn uint8

const (
	RespawnNone Respawn = iota
	RespawnBounds
	RespawnAge
	RespawnInvalid
)

func (r Respawn) String() string {
	switch r {
	case RespawnNone:
		return "none"
	case RespawnBounds:
		return "bounds"
	case RespawnAge:
		return "age"
	case RespawnInvalid:
		return "invalid"
	}
	return fmt.Sprintf("Respawn(%d)", uint8(r))
}
