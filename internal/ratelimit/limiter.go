// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit paces calls to the remote photo service so that the
// service's per-hour ceiling is never exceeded.
//
// A Limiter hands out one call slot per minimum interval. Every attempt
// consumes a slot whether it succeeds or fails, so for N attempts the total
// elapsed time is at least (N-1) times the interval.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum spacing between consecutive remote calls.
// The zero interval disables pacing. A Limiter is safe for concurrent use.
type Limiter struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// New returns a Limiter that allows one call per interval. A non-positive
// interval yields a Limiter that never blocks.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// PerHour returns a Limiter that allows at most ceiling calls per hour.
// A non-positive ceiling disables pacing.
func PerHour(ceiling int) *Limiter {
	if ceiling <= 0 {
		return New(0)
	}
	return New(time.Hour / time.Duration(ceiling))
}

// Interval reports the minimum spacing between calls.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the next call slot is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Run waits for a call slot and then invokes op. When the wait is cut short
// by ctx, op is not invoked and the context error is returned.
func Run[T any](ctx context.Context, l *Limiter, op func(context.Context) (T, error)) (T, error) {
	if err := l.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}
