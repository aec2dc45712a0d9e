package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket limiter shared by all outgoing Telegram
// traffic. Bot API throttling starts around 30 messages per second
// globally; the notifier and the interactive handler share one bucket so
// a large fan-out cannot starve callback replies into 429s.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained
// with the given burst capacity.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow blocks until a token is available or the context is canceled.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
