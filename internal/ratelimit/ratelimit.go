// Package ratelimit implements fixed-window request counting per
// caller key.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// Limiter caps requests per key to a fixed ceiling over a fixed
// window. A key's counter resets when its window expires; there is no
// sliding behavior.
type Limiter struct {
	mu     sync.Mutex
	m      map[string]*window
	limit  int
	period time.Duration
	now    func() time.Time
}

// New creates a Limiter allowing limit requests per period for each
// key.
func New(limit int, period time.Duration) *Limiter {
	return &Limiter{
		m:      make(map[string]*window),
		limit:  limit,
		period: period,
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits the
// current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.m[key]
	if !ok || now.Sub(w.start) >= l.period {
		if len(l.m) > 4*1024 {
			l.prune(now)
		}
		l.m[key] = &window{start: now, count: 1}
		return l.limit >= 1
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// prune drops expired windows. Caller holds the lock.
func (l *Limiter) prune(now time.Time) {
	for k, w := range l.m {
		if now.Sub(w.start) >= l.period {
			delete(l.m, k)
		}
	}
}
