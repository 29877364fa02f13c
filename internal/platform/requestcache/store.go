package requestcache

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// store is the backing map. Callers hold Cache.mu.
type store[T any] interface {
	get(key string) (*CacheEntry[T], bool)
	peek(key string) (*CacheEntry[T], bool)
	put(key string, e *CacheEntry[T])
	remove(key string)
	purge()
	len() int
	keys() []string
}

type mapStore[T any] struct {
	m map[string]*CacheEntry[T]
}

func newMapStore[T any]() *mapStore[T] {
	return &mapStore[T]{m: make(map[string]*CacheEntry[T])}
}

func (s *mapStore[T]) get(key string) (*CacheEntry[T], bool) {
	e, ok := s.m[key]
	return e, ok
}

func (s *mapStore[T]) peek(key string) (*CacheEntry[T], bool) { return s.get(key) }

func (s *mapStore[T]) put(key string, e *CacheEntry[T]) { s.m[key] = e }

func (s *mapStore[T]) remove(key string) { delete(s.m, key) }

func (s *mapStore[T]) purge() { s.m = make(map[string]*CacheEntry[T]) }

func (s *mapStore[T]) len() int { return len(s.m) }

func (s *mapStore[T]) keys() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	return out
}

// lruStore bounds the entry count. Reads through get refresh recency; peek does not.
type lruStore[T any] struct {
	lru     *simplelru.LRU[string, *CacheEntry[T]]
	onEvict func()
}

func newLRUStore[T any](size int, onEvict func()) *lruStore[T] {
	// simplelru only rejects non-positive sizes, which New never passes.
	l, _ := simplelru.NewLRU[string, *CacheEntry[T]](size, nil)
	return &lruStore[T]{lru: l, onEvict: onEvict}
}

func (s *lruStore[T]) get(key string) (*CacheEntry[T], bool) { return s.lru.Get(key) }

func (s *lruStore[T]) peek(key string) (*CacheEntry[T], bool) { return s.lru.Peek(key) }

func (s *lruStore[T]) put(key string, e *CacheEntry[T]) {
	if evicted := s.lru.Add(key, e); evicted && s.onEvict != nil {
		s.onEvict()
	}
}

func (s *lruStore[T]) remove(key string) { s.lru.Remove(key) }

func (s *lruStore[T]) purge() { s.lru.Purge() }

func (s *lruStore[T]) len() int { return s.lru.Len() }

func (s *lruStore[T]) keys() []string { return s.lru.Keys() }
