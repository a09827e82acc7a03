package table

// options.go is the single owned cache for the advisory filter option lists.
// Components that need options (filter UIs, select editors) share one cache
// instead of each fetching independently; invalidation is explicit.

import (
	"context"
	"sync"

	"github.com/taxdesk/taxdesk/internal/store"
)

// OptionsCache caches the remote filter options. A fetch failure degrades to
// empty option lists and is never surfaced as an error: missing options must
// not block a table from rendering.
type OptionsCache struct {
	store store.Store

	mu     sync.Mutex
	loaded bool
	opts   store.FilterOptions
}

// NewOptionsCache creates a cache over the given store.
func NewOptionsCache(st store.Store) *OptionsCache {
	return &OptionsCache{store: st}
}

// Get returns the cached options, fetching them on first use or after an
// invalidation. On fetch failure it returns zero-value (empty) lists.
func (c *OptionsCache) Get(ctx context.Context) store.FilterOptions {
	c.mu.Lock()
	if c.loaded {
		opts := c.opts
		c.mu.Unlock()
		return opts
	}
	c.mu.Unlock()

	opts, err := c.store.Options(ctx)
	if err != nil {
		return store.FilterOptions{}
	}

	c.mu.Lock()
	c.opts = opts
	c.loaded = true
	c.mu.Unlock()
	return opts
}

// Invalidate drops the cached options so the next Get re-fetches.
func (c *OptionsCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.opts = store.FilterOptions{}
	c.mu.Unlock()
}
