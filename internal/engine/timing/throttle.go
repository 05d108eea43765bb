package timing

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttler passes an action through and then drops every further action until
// its cooldown window has elapsed. Dropped actions are not queued.
// Safe for concurrent use.
type Throttler struct {
	window  time.Duration
	limiter *rate.Limiter
	now     func() time.Time
}

// NewThrottler returns a Throttler with the given cooldown window.
// A zero window never drops.
func NewThrottler(window time.Duration) *Throttler {
	limit := rate.Inf
	if window > 0 {
		limit = rate.Every(window)
	}
	return &Throttler{
		window:  window,
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (t *Throttler) WithClock(now func() time.Time) *Throttler {
	t.now = now
	return t
}

// Window returns the cooldown window.
func (t *Throttler) Window() time.Duration {
	return t.window
}

// Allow reports whether an action may run now. A true result opens a new window.
func (t *Throttler) Allow() bool {
	return t.limiter.AllowN(t.now(), 1)
}
