// Package requestcache is an in-process key/value cache with per-entry TTL.
//
// Expiry is lazy: an entry past its deadline is dropped by the read that
// observes it, or by Clear. Nothing sweeps in the background. When a maximum
// entry count is configured the cache also evicts least recently used entries.
package requestcache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultTTL applies when neither the cache nor the insert names a TTL.
const DefaultTTL = 60 * time.Second

// CacheEntry is the stored record for a key.
type CacheEntry[T any] struct {
	Value      T
	InsertedAt time.Time
	ExpiresAt  time.Time
}

// expired reports whether the entry is no longer visible at now.
func (e *CacheEntry[T]) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Entries     int    `json:"entries"`
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Expirations uint64 `json:"expirations"`
	Evictions   uint64 `json:"evictions"`
}

// Cache maps string keys to values of type T. It is safe for concurrent use.
type Cache[T any] struct {
	mu         sync.Mutex
	store      store[T]
	defaultTTL time.Duration
	clock      clock.Clock

	hits        uint64
	misses      uint64
	expirations uint64
	evictions   uint64
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	defaultTTL time.Duration
	clock      clock.Clock
	maxEntries int
}

// WithDefaultTTL sets the TTL used by Set and by SetWithTTL with a non-positive ttl.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.defaultTTL = d
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMaxEntries bounds the cache to n entries with LRU eviction. n <= 0 means unbounded.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// New creates an empty cache.
func New[T any](opts ...Option) *Cache[T] {
	o := options{defaultTTL: DefaultTTL, clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Cache[T]{defaultTTL: o.defaultTTL, clock: o.clock}
	if o.maxEntries > 0 {
		c.store = newLRUStore[T](o.maxEntries, func() { c.evictions++ })
	} else {
		c.store = newMapStore[T]()
	}
	return c
}

// Set stores value under key with the default TTL, replacing any existing entry.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, 0)
}

// SetWithTTL stores value under key for ttl. A non-positive ttl means the default TTL.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.put(key, &CacheEntry[T]{Value: value, InsertedAt: now, ExpiresAt: now.Add(ttl)})
}

// Get returns the value for key if it is present and unexpired. An expired
// entry is removed as part of the read.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.store.get(key)
	if !ok {
		c.misses++
		return zero, false
	}
	if e.expired(now) {
		c.store.remove(key)
		c.expirations++
		c.misses++
		return zero, false
	}
	c.hits++
	return e.Value, true
}

// Entry returns a copy of the live entry for key, with the same lazy expiry as Get.
func (c *Cache[T]) Entry(key string) (CacheEntry[T], bool) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.store.get(key)
	if !ok {
		return CacheEntry[T]{}, false
	}
	if e.expired(now) {
		c.store.remove(key)
		c.expirations++
		return CacheEntry[T]{}, false
	}
	return *e, true
}

// Delete removes key. Deleting an absent key is a no-op.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.remove(key)
}

// DeletePrefix removes every key starting with prefix and returns how many were removed.
func (c *Cache[T]) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, k := range c.store.keys() {
		if strings.HasPrefix(k, prefix) {
			c.store.remove(k)
			n++
		}
	}
	return n
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.purge()
}

// Len returns the number of stored entries, including expired ones not yet observed.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len()
}

// Keys returns the stored keys in sorted order. Expired entries are not reported
// but are left in place.
func (c *Cache[T]) Keys() []string {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, c.store.len())
	for _, k := range c.store.keys() {
		if e, ok := c.store.peek(k); ok && !e.expired(now) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:     c.store.len(),
		Hits:        c.hits,
		Misses:      c.misses,
		Expirations: c.expirations,
		Evictions:   c.evictions,
	}
}
