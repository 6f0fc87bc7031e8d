package app

import (
	"github.com/okian/rostermatch/internal/domain/cache"
	"github.com/okian/rostermatch/internal/domain/fuzzy"
	"github.com/okian/rostermatch/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorer replaces the similarity scorer. Useful for plugging in an
// alternative metric or a test double.
func WithScorer(s fuzzy.Scorer) Option {
	return func(svc *Service) {
		if s != nil {
			svc.scorer = s
		}
	}
}

// WithCache replaces the resolution cache. A nil cache is ignored; use
// config CacheSize 0 to disable caching.
func WithCache(c cache.Cache) Option {
	return func(svc *Service) {
		if c != nil {
			svc.cache = c
		}
	}
}

// WithLogger sets the logger used by the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}
