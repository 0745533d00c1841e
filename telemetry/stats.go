package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FieldStats holds aggregated statistics for a window of ticks.
type FieldStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Canvas and population at window end
	Width     int `csv:"width"`
	Height    int `csv:"height"`
	Particles int `csv:"particles"`

	// Respawns during window, by reason
	RespawnBounds  int     `csv:"respawn_bounds"`
	RespawnAge     int     `csv:"respawn_age"`
	RespawnInvalid int     `csv:"respawn_invalid"`
	RespawnRate    float64 `csv:"respawn_rate"` // respawns per particle per tick

	// Age distribution (ticks, sampled at window end)
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	// Fade alpha distribution
	AlphaMean float64 `csv:"alpha_mean"`
	AlphaStd  float64 `csv:"alpha_std"`

	// Per-tick displacement
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Rotating hue counter
	Hue float64 `csv:"hue"`
}

// Summary describes a sample of values.
type Summary struct {
	N             int
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, sample standard deviation and empirical
// quantiles. Non-finite values are ignored; an empty sample gives zeros.
func Summarize(values []float64) Summary {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	n := len(sorted)
	if n == 0 {
		return Summary{}
	}
	sort.Float64s(sorted)

	s := Summary{
		N:    n,
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}
