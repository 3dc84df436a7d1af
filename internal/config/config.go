// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// MinRecommendedYearFrom is the data-quality guidance floor: source
// files before this year are too patchy to fit against. Guidance, not
// a hard error.
const MinRecommendedYearFrom = 2010

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataDir holds the normalized per-year match CSVs.
	DataDir string `koanf:"data_dir"`

	// OutDir receives rankings, predictions, and summary artifacts.
	OutDir string `koanf:"out_dir"`

	// MetricsAddr optionally exposes Prometheus metrics during long
	// runs, e.g. ":9090". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// YearFrom, YearTo, and TestSizeYears shape the temporal split.
	YearFrom      int `koanf:"year_from"`
	YearTo        int `koanf:"year_to"`
	TestSizeYears int `koanf:"test_size_years"`

	// Scale is the logistic link constant.
	Scale float64 `koanf:"scale"`

	// TierWeights maps tier names to their K factors. The lower-tier
	// circuit carries strictly less weight than the main tour.
	TierWeights map[string]float64 `koanf:"tier_weights"`

	// Margin multiplier shape.
	MarginSlope    float64 `koanf:"margin_slope"`
	SetSpreadBonus float64 `koanf:"set_spread_bonus"`
	MarginCap      float64 `koanf:"margin_cap"`

	// BaselineDrip is the fraction of each delta the baseline absorbs.
	BaselineDrip float64 `koanf:"baseline_drip"`

	// Blend weights: current-vs-baseline and form-to-points.
	BlendBeta  float64 `koanf:"blend_beta"`
	BlendGamma float64 `koanf:"blend_gamma"`

	// Form EWMA rate and inactivity half-life.
	FormAlpha        float64 `koanf:"form_alpha"`
	FormHalfLifeDays float64 `koanf:"form_half_life_days"`

	// CalibrationBuckets sets the calibration table resolution.
	CalibrationBuckets int `koanf:"calibration_buckets"`
}

// New creates a Config using defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		DataDir:       "data",
		OutDir:        "out",
		YearFrom:      2010,
		YearTo:        2020,
		TestSizeYears: 2,
		Scale:         400,
		TierWeights: map[string]float64{
			"top":   32,
			"lower": 24,
		},
		MarginSlope:        0.15,
		SetSpreadBonus:     2.0,
		MarginCap:          2.5,
		BaselineDrip:       0.1,
		BlendBeta:          0.7,
		BlendGamma:         150,
		FormAlpha:          0.25,
		FormHalfLifeDays:   90,
		CalibrationBuckets: 10,
	}
}
