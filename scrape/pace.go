package scrape

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a fixed minimum interval between fetches using a token
// bucket with a burst of 1. A Pacer is safe for concurrent use, so a
// single instance spaces out requests across a whole worker pool.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given interval. A zero or negative
// interval disables pacing. The initial token is drained so the first
// Wait already observes the interval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	l := rate.NewLimiter(rate.Every(interval), 1)
	l.Allow()
	return &Pacer{limiter: l}
}

// Wait blocks until the interval allows the next request. Returns an
// error only if the context is canceled first.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}
