package loader

import (
	"errors"
	"fmt"
)

// ErrNotCached is returned when fetching is disabled and the key has no live cache entry.
var ErrNotCached = errors.New("loader: key not cached and fetching disabled")

// FetchError wraps a failed fetch that was not retried, or a fetch interrupted by
// cancellation.
type FetchError struct {
	Key      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("loader: fetch %q failed after %d attempt(s): %v", e.Key, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExhaustedRetriesError is returned once every allowed attempt has failed. Err is
// the error from the final attempt.
type ExhaustedRetriesError struct {
	Key      string
	Attempts int
	Err      error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("loader: fetch %q exhausted %d attempts: %v", e.Key, e.Attempts, e.Err)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.Err }
