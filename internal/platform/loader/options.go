package loader

import "time"

// Defaults for a single Execute call.
const (
	DefaultMinLoadingTime = 500 * time.Millisecond
	DefaultMaxAttempts    = 3
	DefaultBaseDelay      = time.Second
)

// Options control one Execute call.
type Options struct {
	// CacheTime overrides the cache's default TTL for the write-through. Zero keeps the default.
	CacheTime time.Duration
	// Enabled=false serves only from cache and never fetches.
	Enabled bool
	// RetryOnError retries a failed fetch up to MaxAttempts total invocations.
	RetryOnError bool
	// MinLoadingTime holds the loading flag at least this long after the fetch starts.
	MinLoadingTime time.Duration
	MaxAttempts    int
	// BaseDelay is multiplied by the attempt number to get the pause before a retry.
	BaseDelay time.Duration
}

// DefaultOptions returns the options used when a call passes none.
func DefaultOptions() Options {
	return Options{
		Enabled:        true,
		MinLoadingTime: DefaultMinLoadingTime,
		MaxAttempts:    DefaultMaxAttempts,
		BaseDelay:      DefaultBaseDelay,
	}
}

// Option mutates Options.
type Option func(*Options)

// CacheTime sets the TTL of the write-through; zero keeps the cache default.
func CacheTime(d time.Duration) Option { return func(o *Options) { o.CacheTime = d } }

// Enabled(false) serves from cache only and returns ErrNotCached on a miss.
func Enabled(v bool) Option { return func(o *Options) { o.Enabled = v } }

// RetryOnError turns on retries up to MaxAttempts.
func RetryOnError(v bool) Option { return func(o *Options) { o.RetryOnError = v } }

// MinLoadingTime sets how long the loading flag stays raised at minimum.
func MinLoadingTime(d time.Duration) Option { return func(o *Options) { o.MinLoadingTime = d } }

// MaxAttempts caps total fetch invocations when retrying. Non-positive values are ignored.
func MaxAttempts(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxAttempts = n
		}
	}
}

// BaseDelay sets the backoff unit; retry N waits N times this. Negative values are ignored.
func BaseDelay(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.BaseDelay = d
		}
	}
}

// attempts is the total number of fetch invocations the options allow.
func (o Options) attempts() int {
	if !o.RetryOnError || o.MaxAttempts < 1 {
		return 1
	}
	return o.MaxAttempts
}

// backoff is the pause before the given retry; attempt counts from 1.
func (o Options) backoff(attempt int) time.Duration {
	return o.BaseDelay * time.Duration(attempt)
}
