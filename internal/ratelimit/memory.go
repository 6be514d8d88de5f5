package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore keeps windows in process memory. Counters are per instance, so
// a multi-replica deployment should use the Redis store instead.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: map[string]*window{}}
}

func (s *MemoryStore) Incr(_ context.Context, key string, windowDur time.Duration) (int64, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.windows[key]
	if !exists || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(windowDur)}
		s.windows[key] = w
		s.gcLocked(now)
	}

	w.count++
	return w.count, w.resetAt, nil
}

func (s *MemoryStore) gcLocked(now time.Time) {
	if len(s.windows) < 10000 {
		return
	}

	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
}
