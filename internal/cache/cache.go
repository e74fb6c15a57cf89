// Package cache provides a process-wide, generation-tagged listing
// cache. Each view holds one snapshot with the generation observed at
// fill time; writers bump the generation to invalidate, readers serve
// a snapshot only while its generation is current and its TTL has not
// passed. A loader failure is always propagated, a stale snapshot is
// never served in its place.
package cache

import (
	"context"
	"sync"
	"time"

	"launchboard/internal/metrics"
)

type entry[T any] struct {
	items   []T
	gen     uint64
	expires time.Time
}

type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	gens    map[string]uint64
	entries map[string]entry[T]
}

func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		now:     time.Now,
		gens:    make(map[string]uint64),
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached snapshot for view if it is still valid,
// otherwise it runs load and caches the result. A snapshot filled
// before an intervening Invalidate is never returned nor stored.
func (c *Cache[T]) Get(ctx context.Context, view string, load func(context.Context) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	gen := c.gens[view]
	if e, ok := c.entries[view]; ok && e.gen == gen && c.now().Before(e.expires) {
		c.mu.Unlock()
		metrics.IncCacheLookup(view, true)
		return e.items, nil
	}
	c.mu.Unlock()
	metrics.IncCacheLookup(view, false)

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gens[view] == gen {
		c.entries[view] = entry[T]{
			items:   items,
			gen:     gen,
			expires: c.now().Add(c.ttl),
		}
	}
	c.mu.Unlock()

	return items, nil
}

// Invalidate marks the snapshot for view as no longer trustworthy.
// Safe to call even when nothing is cached.
func (c *Cache[T]) Invalidate(view string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[view]++
	delete(c.entries, view)
}

// InvalidateAll drops every cached view. Used after writes whose
// affected views are not known precisely.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for view := range c.entries {
		if _, ok := c.gens[view]; !ok {
			c.gens[view] = 0
		}
	}
	for view := range c.gens {
		c.gens[view]++
	}
	clear(c.entries)
}
