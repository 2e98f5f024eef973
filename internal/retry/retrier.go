// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package retry

import (
	"context"
	"time"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/ratelimit"
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Outcome describes how a retried call ended.
type Outcome[T any] struct {
	Value    T
	Decision Decision
	// Attempts is the number of times the operation was invoked.
	Attempts int
	// Err is the last error observed; nil on Success.
	Err error
}

// Recovered reports whether the call succeeded after at least one failure.
func (o Outcome[T]) Recovered() bool {
	return o.Decision == Success && o.Attempts > 1
}

// Retrier runs remote operations under a Policy, pacing every attempt with a
// shared Limiter.
type Retrier struct {
	limiter *ratelimit.Limiter
	policy  Policy
	sleep   SleepFunc
	logger  *logger.Logger
}

// NewRetrier returns a Retrier that paces attempts with limiter and retries
// according to policy.
func NewRetrier(limiter *ratelimit.Limiter, policy Policy, log *logger.Logger) *Retrier {
	return &Retrier{
		limiter: limiter,
		policy:  policy,
		sleep:   sleepContext,
		logger:  log,
	}
}

// WithSleep replaces the delay function and returns r.
func (r *Retrier) WithSleep(fn SleepFunc) *Retrier {
	r.sleep = fn
	return r
}

// Policy returns the retry policy in effect.
func (r *Retrier) Policy() Policy {
	return r.policy
}

// Call invokes op until it succeeds, fails fatally, exhausts the retry
// budget, or ctx ends. isFatal classifies errors for this call in addition to
// errors already marked with Fatal; it may be nil.
//
// Call never commits anything: the caller acts on the returned Outcome.
func Call[T any](ctx context.Context, r *Retrier, name string, op func(context.Context) (T, error), isFatal func(error) bool) Outcome[T] {
	var (
		out     Outcome[T]
		retries int
	)

	for {
		value, err := ratelimit.Run(ctx, r.limiter, func(ctx context.Context) (T, error) {
			out.Attempts++
			return op(ctx)
		})
		if err != nil && ctx.Err() != nil {
			out.Decision, out.Err = Canceled, ctx.Err()
			return out
		}
		if err != nil && isFatal != nil && isFatal(err) {
			err = Fatal(err)
		}
		if err != nil && !IsFatal(err) {
			retries++
		}

		decision := r.policy.Decide(err, retries)
		out.Decision, out.Err = decision, err

		switch decision {
		case Success:
			out.Value = value
			if out.Attempts > 1 {
				r.logger.Info().Str("call", name).Int("attempts", out.Attempts).Msg("remote call recovered")
			}
			return out
		case FatalSkip:
			r.logger.Warn().Err(err).Str("call", name).Int("attempt", out.Attempts).
				Msg("remote call failed with a non-retryable error, skipping")
			return out
		case ExhaustedSkip:
			r.logger.Error().Err(err).Str("call", name).Int("attempts", out.Attempts).
				Msg("remote call retries exhausted, skipping")
			return out
		case Canceled:
			return out
		}

		r.logger.Warn().Err(err).
			Str("call", name).
			Int("attempt", out.Attempts).
			Int("max_retries", r.policy.MaxRetries).
			Dur("delay", r.policy.Delay).
			Msg("remote call failed, retrying")

		if err = r.sleep(ctx, r.policy.Delay); err != nil {
			out.Decision, out.Err = Canceled, err
			return out
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
