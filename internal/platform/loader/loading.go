package loader

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// loadingFlags tracks which keys are showing a loading indicator. A flag is
// raised when a fetch starts and lowered no earlier than the minimum display
// time after that, even if the fetch finished sooner.
type loadingFlags struct {
	mu    sync.Mutex
	clock clock.Clock
	gen   uint64
	keys  map[string]*loadingFlag
}

type loadingFlag struct {
	gen   uint64
	timer *clock.Timer
}

func newLoadingFlags(c clock.Clock) *loadingFlags {
	return &loadingFlags{clock: c, keys: make(map[string]*loadingFlag)}
}

// raise marks key as loading and cancels any pending lower from an earlier flight.
func (l *loadingFlags) raise(key string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.keys[key]; ok && f.timer != nil {
		f.timer.Stop()
	}
	l.gen++
	l.keys[key] = &loadingFlag{gen: l.gen}
	return l.gen
}

// lower clears the flag raised with gen, deferring until start+minDisplay when needed.
func (l *loadingFlags) lower(key string, gen uint64, start time.Time, minDisplay time.Duration) {
	remaining := minDisplay - l.clock.Since(start)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.keys[key]
	if !ok || f.gen != gen {
		return
	}
	if remaining <= 0 {
		delete(l.keys, key)
		return
	}
	f.timer = l.clock.AfterFunc(remaining, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if cur, ok := l.keys[key]; ok && cur.gen == gen {
			delete(l.keys, key)
		}
	})
}

func (l *loadingFlags) isLoading(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.keys[key]
	return ok
}

func (l *loadingFlags) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.keys))
	for k := range l.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
