// Package cache memoizes resolution results per index version.
//
// Resolution is idempotent against an unchanged index, so a (version, text)
// key can be served from memory safely; swapping in a new index changes the
// version and leaves stale entries to age out of the bounded store.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/rostermatch/internal/domain/model"
)

// Cache stores resolutions keyed by an opaque string.
type Cache interface {
	// Get returns the cached resolution for key, if any.
	Get(ctx context.Context, key string) (model.Resolution, bool)

	// Put records the resolution for key, evicting if the cache is full.
	Put(ctx context.Context, key string, res model.Resolution)

	Size() int64
}

// Key builds a cache key from the index version and the input text.
func Key(version, text string) string {
	return version + "\x00" + text
}

// node is a single entry in the eviction list.
type node struct {
	key   string
	value model.Resolution
	next  *node
}

// reset clears the node state for reuse.
func (n *node) reset() {
	n.key = ""
	n.value = model.Resolution{}
	n.next = nil
}

// inMemoryCache implements Cache with a map plus a linked list for LIFO
// eviction in bounded mode; unbounded mode is a plain map.
type inMemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]*node
	head     *node        // most recently added
	maxSize  int          // 0 or negative = unbounded
	size     atomic.Int64 // current number of entries
	nodePool sync.Pool
}

// defaultMaxSize bounds the cache unless overridden.
const defaultMaxSize = 10_000

// NewInMemoryCache creates a new in-memory cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[string]*node)
	if c.maxSize > 0 {
		c.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	}
	return c
}

// Get returns the cached resolution for key, if any.
func (c *inMemoryCache) Get(ctx context.Context, key string) (model.Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.entries[key]
	if !ok {
		return model.Resolution{}, false
	}
	if n == nil {
		// Unbounded mode stores values directly in the map via sentinel
		// nodes; nil never happens there, guard anyway.
		return model.Resolution{}, false
	}
	return n.value, true
}

// Put records the resolution for key. Re-putting an existing key replaces
// its value without growing the cache.
func (c *inMemoryCache) Put(ctx context.Context, key string, res model.Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok && existing != nil {
		existing.value = res
		return
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLIFO()
	}

	var n *node
	if c.maxSize > 0 {
		n = c.nodePool.Get().(*node)
	} else {
		n = &node{}
	}
	n.key = key
	n.value = res
	n.next = c.head

	c.head = n
	c.entries[key] = n
	c.size.Add(1)
}

// evictLIFO removes the least recently added entry (tail of the list).
// Must be called with c.mu held.
func (c *inMemoryCache) evictLIFO() {
	if len(c.entries) == 0 || c.head == nil {
		return
	}

	// Single entry.
	if c.head.next == nil {
		delete(c.entries, c.head.key)
		c.head.reset()
		c.nodePool.Put(c.head)
		c.head = nil
		c.size.Add(-1)
		return
	}

	// Walk to the second-to-last node.
	var prev *node
	current := c.head
	for current.next != nil {
		prev = current
		current = current.next
	}

	prev.next = nil
	delete(c.entries, current.key)
	current.reset()
	c.nodePool.Put(current)
	c.size.Add(-1)
}

// Size returns the current number of cached entries.
func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
