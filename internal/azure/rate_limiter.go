package azure

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles ARM calls so a large tenant scan stays under the
// management-plane request quotas.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a token-bucket limiter.
// rps: requests per second; burst is 2x the rate.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), rps*2),
	}
}

// Wait blocks until the rate limiter allows an action
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Allow checks if an action is allowed without blocking
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
