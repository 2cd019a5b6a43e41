package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the configured inter-request delay as a blocking pause on
// the single execution path, using a token bucket with no bursting.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer that allows one request per delay interval.
// A zero or negative delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is allowed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
