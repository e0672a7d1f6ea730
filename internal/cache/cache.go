// Package cache provides an in-process TTL cache for serialized response
// payloads. Entries expire lazily on access; there is no background sweeper
// and writes elsewhere in the system never invalidate an entry.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ComputeFunc produces the payload for a missing or expired key.
type ComputeFunc func(ctx context.Context) ([]byte, error)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// Cache is a mutex-guarded map of payloads with per-entry expiry.
// Two concurrent misses on the same key may both compute; the later store wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the payload for key if present and unexpired.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key until now+ttl. A non-positive ttl is a no-op.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// GetOrCompute returns the cached payload for key, or calls compute and
// caches its result for ttl. The boolean reports a hit. Compute errors are
// returned and nothing is cached. The lock is not held while computing.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, bool, error) {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}
	c.misses.Add(1)

	v, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	c.Set(key, v, ttl)
	return v, false, nil
}

// Stats returns hit and miss counters and the number of stored entries,
// including expired ones not yet evicted.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: n}
}
