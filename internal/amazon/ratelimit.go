package amazon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the upstream call quota for
// the current 24-hour window has been exhausted.
var ErrDailyLimitReached = errors.New("daily upstream limit reached")

// RateLimiter bounds upstream calls with a token bucket plus a rolling
// 24-hour quota. The window opens on construction and resets 24 hours
// later.
type RateLimiter struct {
	bucket   *rate.Limiter
	used     atomic.Int64
	maxDaily int64

	mu      sync.Mutex
	resetAt time.Time

	nowFunc func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a limiter allowing perSecond sustained calls
// with the given burst, capped at maxDaily calls per rolling window.
func NewRateLimiter(perSecond float64, burst int, maxDaily int64, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		bucket:   rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(24 * time.Hour)
	return r
}

// Wait blocks until a call is allowed or the context is canceled. It
// returns ErrDailyLimitReached once the window quota is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.rollWindow()

	if r.used.Load() >= r.maxDaily {
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.used.Load(), r.maxDaily)
	}

	if err := r.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.used.Add(1)
	return nil
}

// Used returns the number of calls made in the current window.
func (r *RateLimiter) Used() int64 {
	return r.used.Load()
}

// Remaining returns the calls left in the current window.
func (r *RateLimiter) Remaining() int64 {
	remaining := r.maxDaily - r.used.Load()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResetAt returns when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) rollWindow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.used.Store(0)
		r.resetAt = now.Add(24 * time.Hour)
	}
}
