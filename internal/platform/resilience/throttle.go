package resilience

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the part of *rate.Limiter the throttle depends on.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Throttle spaces outbound requests by at least one interval. The first
// Wait never blocks.
type Throttle struct {
	limiter Limiter
}

// NewThrottle allows one call per interval with a burst of one. A
// non-positive interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return newThrottle(rate.NewLimiter(limit, 1))
}

func newThrottle(limiter Limiter) *Throttle {
	return &Throttle{limiter: limiter}
}

// Wait blocks until the next call is allowed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}
