// Package loader coordinates cached, de-duplicated fetches.
//
// A Coordinator answers Execute from its request cache when it can. On a miss
// it runs the supplied fetch once per key at a time, retries with linear
// backoff when asked to, writes successful results through to the cache and
// keeps a per-key loading flag raised for a minimum display time.
package loader

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/platform/requestcache"
)

// FetchFunc loads the value for a key. It should honour ctx.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Coordinator wraps fetches for values of type T.
type Coordinator[T any] struct {
	cache    *requestcache.Cache[T]
	loading  *loadingFlags
	clock    clock.Clock
	logger   *logrus.Logger
	metrics  *Metrics
	defaults Options

	mu      sync.Mutex
	flights map[string]*flight[T]
}

// flight is one in-progress fetch for a key. Its context is owned by the
// flight and is cancelled only once every waiter has gone.
type flight[T any] struct {
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	waiters int
	// stale is set when the key was invalidated mid-flight; the result is
	// still handed to waiters but never written to the cache.
	stale bool
	val   T
	err   error
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption[T any] func(*Coordinator[T])

// WithLogger logs retries and exhausted fetches to l.
func WithLogger[T any](l *logrus.Logger) CoordinatorOption[T] {
	return func(c *Coordinator[T]) { c.logger = l }
}

// WithClock replaces the wall clock used for backoff and loading flags.
func WithClock[T any](cl clock.Clock) CoordinatorOption[T] {
	return func(c *Coordinator[T]) {
		if cl != nil {
			c.clock = cl
		}
	}
}

// WithMetrics records lookups and fetch attempts on m.
func WithMetrics[T any](m *Metrics) CoordinatorOption[T] {
	return func(c *Coordinator[T]) { c.metrics = m }
}

// WithDefaults sets the options every Execute starts from.
func WithDefaults[T any](opts ...Option) CoordinatorOption[T] {
	return func(c *Coordinator[T]) {
		for _, o := range opts {
			o(&c.defaults)
		}
	}
}

// NewCoordinator creates a Coordinator over cache. The cache is shared by
// reference; callers may still Set, Delete or Clear it directly, but only the
// Coordinator's own Invalidate, InvalidatePrefix and Clear stop a running
// fetch from writing its result back.
func NewCoordinator[T any](cache *requestcache.Cache[T], opts ...CoordinatorOption[T]) *Coordinator[T] {
	c := &Coordinator[T]{
		cache:    cache,
		clock:    clock.New(),
		defaults: DefaultOptions(),
		flights:  make(map[string]*flight[T]),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.loading = newLoadingFlags(c.clock)
	return c
}

// Cache returns the underlying request cache.
func (c *Coordinator[T]) Cache() *requestcache.Cache[T] { return c.cache }

// Execute returns the value for key.
//
// A live cache entry wins. Otherwise, if fetching is enabled, fetch runs
// unless a fetch for key is already in flight, in which case this call waits
// for that flight and shares its result. Cancelling ctx returns ctx.Err() to
// this caller only. The flight keeps running for the remaining waiters and is
// cancelled, with retries stopped and the cache write skipped, once none are left.
func (c *Coordinator[T]) Execute(ctx context.Context, key string, fetch FetchFunc[T], opts ...Option) (T, error) {
	var zero T
	o := c.defaults
	for _, opt := range opts {
		opt(&o)
	}

	if v, ok := c.cache.Get(key); ok {
		c.metrics.lookup(true)
		return v, nil
	}
	c.metrics.lookup(false)

	if !o.Enabled {
		return zero, ErrNotCached
	}

	c.mu.Lock()
	f, ok := c.flights[key]
	if !ok {
		// A flight may have finished between the miss above and taking the lock.
		if v, hit := c.cache.Get(key); hit {
			c.mu.Unlock()
			return v, nil
		}
		f = c.startFlight(ctx, key, fetch, o)
	}
	f.waiters++
	c.mu.Unlock()

	select {
	case <-f.done:
		c.leave(key, f)
		return f.val, f.err
	case <-ctx.Done():
		c.leave(key, f)
		return zero, ctx.Err()
	}
}

// startFlight registers and launches a fetch for key. c.mu must be held.
func (c *Coordinator[T]) startFlight(ctx context.Context, key string, fetch FetchFunc[T], o Options) *flight[T] {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &flight[T]{ctx: fctx, cancel: cancel, done: make(chan struct{})}
	c.flights[key] = f
	go c.run(key, f, fetch, o)
	return f
}

// leave drops one waiter. The last waiter out of an unfinished flight cancels
// it and detaches it so the next miss starts over.
func (c *Coordinator[T]) leave(key string, f *flight[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	select {
	case <-f.done:
	default:
		f.cancel()
		c.detach(key, f)
	}
}

// detach removes f from the in-flight set and marks it stale. c.mu must be held.
func (c *Coordinator[T]) detach(key string, f *flight[T]) {
	f.stale = true
	if c.flights[key] == f {
		delete(c.flights, key)
	}
}

func (c *Coordinator[T]) run(key string, f *flight[T], fetch FetchFunc[T], o Options) {
	defer f.cancel()

	start := c.clock.Now()
	gen := c.loading.raise(key)
	v, attempts, err := c.fetchWithRetry(f.ctx, key, fetch, o)
	if err == nil && f.ctx.Err() != nil {
		err = &FetchError{Key: key, Attempts: attempts, Err: f.ctx.Err()}
	}
	c.loading.lower(key, gen, start, o.MinLoadingTime)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil && !f.stale {
		c.cache.SetWithTTL(key, v, o.CacheTime)
	}
	if c.flights[key] == f {
		delete(c.flights, key)
	}
	f.val, f.err = v, err
	close(f.done)
}

// fetchWithRetry returns the value, the number of fetch invocations made and the final error.
func (c *Coordinator[T]) fetchWithRetry(ctx context.Context, key string, fetch FetchFunc[T], o Options) (T, int, error) {
	var zero T
	var lastErr error
	total := o.attempts()

	for attempt := 0; attempt < total; attempt++ {
		if attempt > 0 {
			delay := o.backoff(attempt)
			if c.logger != nil {
				c.logger.WithFields(logrus.Fields{"key": key, "attempt": attempt + 1, "delay": delay.String()}).WithError(lastErr).Debug("loader: retrying fetch")
			}
			if err := c.sleep(ctx, delay); err != nil {
				return zero, attempt, &FetchError{Key: key, Attempts: attempt, Err: err}
			}
		}

		began := c.clock.Now()
		v, err := fetch(ctx)
		c.metrics.attempt(err, c.clock.Since(began).Seconds())
		if err == nil {
			return v, attempt + 1, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, attempt + 1, &FetchError{Key: key, Attempts: attempt + 1, Err: ctx.Err()}
		}
	}

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{"key": key, "attempts": total}).WithError(lastErr).Warn("loader: fetch failed")
	}
	if total > 1 {
		return zero, total, &ExhaustedRetriesError{Key: key, Attempts: total, Err: lastErr}
	}
	return zero, 1, &FetchError{Key: key, Attempts: 1, Err: lastErr}
}

func (c *Coordinator[T]) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := c.clock.Timer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsLoading reports whether the loading flag for key is raised.
func (c *Coordinator[T]) IsLoading(key string) bool { return c.loading.isLoading(key) }

// LoadingKeys returns the keys whose loading flag is raised, sorted.
func (c *Coordinator[T]) LoadingKeys() []string { return c.loading.list() }

// Invalidate drops the cached value for key. A fetch already running for key
// still answers its waiters but does not write back, and the next miss starts
// a new fetch.
func (c *Coordinator[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.flights[key]; ok {
		c.detach(key, f)
	}
	c.cache.Delete(key)
}

// InvalidatePrefix is Invalidate for every key starting with prefix. It
// returns how many cached values were dropped.
func (c *Coordinator[T]) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, f := range c.flights {
		if strings.HasPrefix(key, prefix) {
			c.detach(key, f)
		}
	}
	return c.cache.DeletePrefix(prefix)
}

// Clear is Invalidate for every key.
func (c *Coordinator[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, f := range c.flights {
		c.detach(key, f)
	}
	c.cache.Clear()
}

// Forget detaches any in-flight fetch for key so the next miss starts a new
// one. The detached fetch does not write back.
func (c *Coordinator[T]) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.flights[key]; ok {
		c.detach(key, f)
	}
}
