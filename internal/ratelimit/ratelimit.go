// Package ratelimit throttles request handling in the server loop.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket limiter with a burst of one, so one
// request proceeds immediately and subsequent requests wait out the
// configured rate.
type Limiter struct {
	limiter *rate.Limiter
}

// New builds a limiter. A zero or negative rate disables limiting.
func New(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}

	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1)}
}

// Wait blocks until a request may proceed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit reports the configured rate, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
