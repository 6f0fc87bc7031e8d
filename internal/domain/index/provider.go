package index

import (
	"sync/atomic"

	"github.com/okian/rostermatch/pkg/metrics"
)

// Provider hands out the active Index and swaps in replacements atomically.
// Readers observe either the previous fully built index or the next one,
// never a partially populated alias table.
type Provider struct {
	current atomic.Pointer[Index]
}

// NewProvider creates a Provider serving idx.
func NewProvider(idx *Index) *Provider {
	p := &Provider{}
	p.Swap(idx)
	return p
}

// Current returns the active index. Safe for concurrent use.
func (p *Provider) Current() *Index {
	return p.current.Load()
}

// Swap atomically replaces the active index. In-flight resolutions keep
// the index they started with.
func (p *Provider) Swap(idx *Index) {
	p.current.Store(idx)
	metrics.UpdateIndexSizes(idx.EntityCount(), idx.TeamCount(), idx.AliasCount())
}
