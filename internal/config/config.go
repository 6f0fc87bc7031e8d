// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Scoring policy values (boosts, penalties, cutoffs) live here, never
//   inline in domain code.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RosterFile, TeamsFile and AliasesFile point at YAML data files.
	// When empty, the embedded default dataset is used.
	RosterFile  string `koanf:"roster_file"`
	TeamsFile   string `koanf:"teams_file"`
	AliasesFile string `koanf:"aliases_file"`

	// FuzzyThreshold discards fuzzy results scoring below it (0-100).
	FuzzyThreshold float64 `koanf:"fuzzy_threshold"`

	// FuzzyResultCap bounds how many fuzzy results are requested per call.
	FuzzyResultCap int `koanf:"fuzzy_result_cap"`

	// ScoringVariant selects the similarity variant: token_set or token_sort.
	ScoringVariant string `koanf:"scoring_variant"`

	// Limit caps the number of matches returned per resolution.
	Limit int `koanf:"limit"`

	// TeamBoost is added to candidates whose team was mentioned.
	TeamBoost float64 `koanf:"team_boost"`

	// SurnameBoost and SurnamePenalty adjust same-surname groups when team
	// context is available. SurnamePenalty is subtracted.
	SurnameBoost   float64 `koanf:"surname_boost"`
	SurnamePenalty float64 `koanf:"surname_penalty"`

	// HighConfidenceCutoff marks a top result as a singular answer.
	HighConfidenceCutoff float64 `koanf:"high_confidence_cutoff"`

	// Alias base weights used by the lexical matcher.
	LastNameWeight  float64 `koanf:"last_name_weight"`
	FirstNameWeight float64 `koanf:"first_name_weight"`
	NicknameWeight  float64 `koanf:"nickname_weight"`

	// CacheSize bounds the resolution cache. Zero disables caching.
	CacheSize int `koanf:"cache_size"`

	// PoolWorkers and PoolQueueSize configure the fuzzy scorer pool.
	PoolWorkers   int `koanf:"pool_workers"`
	PoolQueueSize int `koanf:"pool_queue_size"`

	// ResolveTimeoutMS is the per-request timeout the HTTP host applies
	// around one resolution call.
	ResolveTimeoutMS int `koanf:"resolve_timeout_ms"`
}

// New creates a Config populated with defaults. The scoring defaults mirror
// the resolution policy: direct last-name hits at 80, first names at 70,
// nicknames at 90, a fuzzy floor of 30 and a +20 team-context boost.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		FuzzyThreshold:       30,
		FuzzyResultCap:       10,
		ScoringVariant:       "token_set",
		Limit:                5,
		TeamBoost:            20,
		SurnameBoost:         30,
		SurnamePenalty:       10,
		HighConfidenceCutoff: 85,
		LastNameWeight:       80,
		FirstNameWeight:      70,
		NicknameWeight:       90,
		CacheSize:            10_000,
		PoolWorkers:          runtime.NumCPU(),
		PoolQueueSize:        1024,
		ResolveTimeoutMS:     2000,
	}
}
