// Package poolcache provides the expiring in-memory cache that shields the
// slow, rate-limited upstream sources from redundant calls.
//
// Entries carry their insertion time and a fixed per-cache TTL; expiry is
// checked lazily on read and nothing is evicted in the background. The key
// domain is small and fixed (pool types, one mapping key), so the cache is
// unbounded on purpose.
package poolcache

import (
	"context"
	"sync"
	"time"

	"github.com/okian/lootpool/pkg/clock"
	"github.com/okian/lootpool/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// entry pairs a value with its insertion time.
type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a TTL-bounded key-value store. Get and Put cannot fail; they only
// report presence or absence. Concurrent misses on the same key are collapsed
// into one fetch by GetOrFetch.
type Cache[K ~string, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]

	ttl  time.Duration
	clk  clock.Clock
	name string

	group singleflight.Group
}

// Option applies a configuration option to the Cache.
type Option[K ~string, V any] func(*Cache[K, V])

// WithClock injects the clock used for TTL checks.
func WithClock[K ~string, V any](clk clock.Clock) Option[K, V] {
	return func(c *Cache[K, V]) {
		if clk != nil {
			c.clk = clk
		}
	}
}

// WithName sets the cache name used as the metrics label.
func WithName[K ~string, V any](name string) Option[K, V] {
	return func(c *Cache[K, V]) {
		if name != "" {
			c.name = name
		}
	}
}

// New constructs a Cache with the given TTL. The system clock is used unless
// WithClock overrides it.
func New[K ~string, V any](ttl time.Duration, opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		clk:     clock.System(),
		name:    "cache",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the value for key when it is present and younger than the TTL.
// Expired entries are reported as misses but kept in the map so Peek can
// still serve them as stale fallbacks.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.clk.Now().Sub(e.insertedAt) >= c.ttl {
		metrics.RecordCacheMiss(c.name)
		var zero V
		return zero, false
	}

	metrics.RecordCacheHit(c.name)
	return e.value, true
}

// Peek returns the stored value for key regardless of age. Used to serve
// stale data when a refresh fails wholesale.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, stamping it with the current time.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, insertedAt: c.clk.Now()}
}

// Len returns the number of stored entries, including expired ones.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// GetOrFetch returns the cached value for key or runs fetch to obtain it.
// Concurrent callers missing the same key share a single fetch; the winner's
// result is stored and handed to everyone. A fetch error is returned to all
// waiters and nothing is stored, so the next call retries immediately.
func (c *Cache[K, V]) GetOrFetch(ctx context.Context, key K, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, shared := c.group.Do(string(key), func() (interface{}, error) {
		// A concurrent flight may have filled the cache after our miss.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(key, v)
		return v, nil
	})
	if shared {
		metrics.RecordSharedFetch(c.name)
	}
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
