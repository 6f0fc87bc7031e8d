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
//  1. defaults (New())
//  2. file (YAML) if ROSTERMATCH_CONFIG is set
//  3. env (prefix ROSTERMATCH_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ROSTERMATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROSTERMATCH_ADDR, ROSTERMATCH_FUZZY_THRESHOLD, ...
	// Map env keys like ROSTERMATCH_TEAM_BOOST -> team_boost (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ROSTERMATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rostermatch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the resolver cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Limit <= 0:
		return fmt.Errorf("%w: limit must be positive", ErrInvalidConfig)
	case c.FuzzyThreshold < 0 || c.FuzzyThreshold > 100:
		return fmt.Errorf("%w: fuzzy_threshold must be in [0,100]", ErrInvalidConfig)
	case c.FuzzyResultCap < 1:
		return fmt.Errorf("%w: fuzzy_result_cap must be at least 1", ErrInvalidConfig)
	case c.HighConfidenceCutoff < 0:
		return fmt.Errorf("%w: high_confidence_cutoff must not be negative", ErrInvalidConfig)
	}
	switch c.ScoringVariant {
	case "token_set", "token_sort":
	default:
		return fmt.Errorf("%w: unknown scoring_variant %q", ErrInvalidConfig, c.ScoringVariant)
	}
	return nil
}
