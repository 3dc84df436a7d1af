package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if TOPSPIN_CONFIG is set
//  3. env (prefix TOPSPIN_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("TOPSPIN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: TOPSPIN_DATA_DIR, TOPSPIN_YEAR_FROM, ...
	// Map env keys like TOPSPIN_YEAR_FROM -> year_from (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TOPSPIN_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "topspin_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate catches configuration-level problems before any match is
// processed. Year-range arithmetic is owned by the temporal splitter;
// this covers everything else.
func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.OutDir == "" {
		return fmt.Errorf("%w: out_dir must not be empty", ErrInvalidConfig)
	}
	if len(c.TierWeights) == 0 {
		return fmt.Errorf("%w: tier_weights must not be empty", ErrInvalidConfig)
	}
	for tier, w := range c.TierWeights {
		if w <= 0 {
			return fmt.Errorf("%w: tier_weights[%s] must be positive, got %v", ErrInvalidConfig, tier, w)
		}
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidConfig, c.Scale)
	}
	return nil
}
