package app

import "errors"

// Sentinel errors returned by the service.
var (
	// ErrNoIndex indicates Resolve was called before any roster was loaded.
	ErrNoIndex = errors.New("no roster index available")
	// ErrSaturated indicates the scoring pool rejected the request; callers
	// should treat this as backpressure and retry later.
	ErrSaturated = errors.New("scoring pool saturated")
	// ErrScoring wraps failures from the similarity scorer.
	ErrScoring = errors.New("similarity scoring failed")
	// ErrBuildIndex wraps roster index build failures.
	ErrBuildIndex = errors.New("failed to build roster index")
)
