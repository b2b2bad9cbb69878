package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[T any] struct {
	value T
	// zero means never expires; stale entries stay around as the
	// fallback for failed refreshes
	expiresAt time.Time
}

func (e entry[T]) fresh(now time.Time) bool {
	return e.expiresAt.IsZero() || e.expiresAt.After(now)
}

// Store is an in-memory cache with a bounded freshness window and
// explicit invalidation. Concurrent callers that miss on the same key
// are coalesced into a single loader run, and a failed or empty reload
// never displaces the previous good value.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	group   singleflight.Group

	// test seam
	now func() time.Time
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[T]) lookup(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !e.fresh(s.now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// lookupStale returns the entry regardless of freshness.
func (s *Store[T]) lookupStale(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (s *Store[T]) store(key string, value T) {
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[T]{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

// Get returns the cached value for key, running loader when the entry
// is missing or stale. The loader's retain flag decides whether its
// result becomes the new cache entry: loaders return retain == false
// for failed or empty extractions, in which case the previous good
// value is served when one exists.
func (s *Store[T]) Get(ctx context.Context, key string, loader func(context.Context) (T, bool, error)) (T, error) {
	if value, ok := s.lookup(key); ok {
		return value, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		if cached, ok := s.lookup(key); ok {
			return cached, nil
		}

		loaded, retain, err := loader(ctx)
		if err == nil && retain {
			s.store(key, loaded)
			return loaded, nil
		}
		if stale, ok := s.lookupStale(key); ok {
			return stale, nil
		}
		return loaded, err
	})

	value, ok := result.(T)
	if !ok {
		var zero T
		return zero, err
	}
	return value, err
}

// Invalidate expires the entry so the next access reloads. The old
// value is kept as the stale fallback in case that reload fails.
func (s *Store[T]) Invalidate(key string) {
	past := s.now().Add(-time.Nanosecond)

	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		e.expiresAt = past
		s.entries[key] = e
	}
	s.mu.Unlock()
}
