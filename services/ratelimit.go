package services

import (
	"context"
	"sync"
	"time"
)

// slotBuffer is added to every computed wait so a woken caller lands just
// after the oldest timestamp expires, not exactly on it.
const slotBuffer = 100 * time.Millisecond

// RateLimiter is a sliding-window admission gate for outbound calls. It has
// no idea what it is limiting; every external call site shares one window.
type RateLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	requests    []time.Time
	now         func() time.Time
}

// NewRateLimiter creates a limiter allowing maxRequests per window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// CanProceed reports whether another request fits in the trailing window.
// Expired timestamps are pruned on every check.
func (r *RateLimiter) CanProceed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune(r.now())
	return len(r.requests) < r.maxRequests
}

// Record registers a request at the current time.
func (r *RateLimiter) Record() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, r.now())
}

// CurrentCount returns the number of requests inside the window.
func (r *RateLimiter) CurrentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune(r.now())
	return len(r.requests)
}

// TimeUntilNextSlot returns how long until a request would be admitted,
// zero if one can proceed right now.
func (r *RateLimiter) TimeUntilNextSlot() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.prune(now)
	if len(r.requests) < r.maxRequests {
		return 0
	}
	return r.window - now.Sub(r.requests[0])
}

// AwaitSlot blocks until a request would be admitted or the context is
// cancelled. It re-checks after every wake since concurrent recordings may
// have refilled the window.
func (r *RateLimiter) AwaitSlot(ctx context.Context) error {
	for {
		wait := r.TimeUntilNextSlot()
		if wait <= 0 {
			return nil
		}
		timer := time.NewTimer(wait + slotBuffer)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// prune drops timestamps older than the window. Caller holds the lock.
// Timestamps are appended in order, so the slice stays sorted.
func (r *RateLimiter) prune(now time.Time) {
	cutoff := 0
	for cutoff < len(r.requests) && now.Sub(r.requests[cutoff]) >= r.window {
		cutoff++
	}
	if cutoff > 0 {
		r.requests = r.requests[cutoff:]
	}
}
