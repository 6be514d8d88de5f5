// Package ratelimit implements fixed-window request counting, bucketed per
// client IP. Counters live in a Store so deployments can share state through
// Redis or keep it in process memory.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key within a fixed window.
type Store interface {
	// Incr records one hit against key, starting a new window if none is
	// active, and returns the hit count plus the active window's end.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// Limit caps requests per window for one bucket.
type Limit struct {
	Requests int64
	Window   time.Duration
}

type Result struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter applies one Limit under a bucket name, so the same client IP is
// counted independently per bucket.
type Limiter struct {
	name  string
	limit Limit
	store Store
}

func NewLimiter(name string, limit Limit, store Store) *Limiter {
	if limit.Requests <= 0 {
		limit.Requests = 100
	}
	if limit.Window <= 0 {
		limit.Window = 15 * time.Minute
	}

	return &Limiter{name: name, limit: limit, store: store}
}

func (l *Limiter) Allow(ctx context.Context, clientIP string) (Result, error) {
	count, resetAt, err := l.store.Incr(ctx, l.name+":"+clientIP, l.limit.Window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.limit.Requests - count
	if remaining < 0 {
		remaining = 0
	}

	retryAfter := time.Until(resetAt)
	if retryAfter < 0 {
		retryAfter = 0
	}

	return Result{
		Allowed:    count <= l.limit.Requests,
		Limit:      l.limit.Requests,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}, nil
}
