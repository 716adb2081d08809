// ABOUTME: Per-key sliding-window-by-reset rate limiter for chat requests
// ABOUTME: In-memory with process lifetime; counts reset when the window expires
package core

import (
	"sync"
	"time"
)

// Default quota: requests per key per window
const (
	DefaultRateLimit  = 10
	DefaultRateWindow = time.Hour
)

// Decision is the outcome of a rate-limit check
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type rateEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter bounds how many requests a single session/IP key may issue per
// window. State is in memory only and resets on process restart; a multi-
// process deployment needs a shared store behind the same Check contract.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
	limit   int
	window  time.Duration
	now     func() time.Time // overridable in tests
}

// NewRateLimiter creates a limiter allowing limit requests per key per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		entries: make(map[string]*rateEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Check records a request attempt for key and reports whether it is allowed.
// The check-and-increment sequence runs under one lock so two concurrent
// requests cannot both claim the last slot.
func (l *RateLimiter) Check(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]

	if !ok || now.After(entry.resetAt) {
		entry = &rateEntry{count: 1, resetAt: now.Add(l.window)}
		l.entries[key] = entry
		return Decision{Allowed: true, Remaining: l.limit - 1, ResetAt: entry.resetAt}
	}

	if entry.count >= l.limit {
		return Decision{Allowed: false, Remaining: 0, ResetAt: entry.resetAt}
	}

	entry.count++
	return Decision{Allowed: true, Remaining: l.limit - entry.count, ResetAt: entry.resetAt}
}
