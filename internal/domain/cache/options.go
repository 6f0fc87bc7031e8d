// Package cache memoizes resolution results per index version.
package cache

// Option applies a configuration option to the InMemoryCache.
type Option func(*inMemoryCache)

// WithMaxSize sets the maximum number of resolutions to keep in memory.
// If maxSize > 0: bounded mode with LIFO eviction.
// If maxSize <= 0: unbounded mode (no eviction, no size limit).
func WithMaxSize(maxSize int) Option {
	return func(c *inMemoryCache) {
		c.maxSize = maxSize
	}
}
