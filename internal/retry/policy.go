// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package retry wraps a single remote operation in a bounded retry loop.
//
// Each attempt is paced by a ratelimit.Limiter. A failure is either fatal
// (returned at once, never retried) or transient (retried after a fixed
// delay). A transient failure is attempted at most MaxRetries+1 times before
// the item is skipped; the caller decides what a skip means.
package retry

import (
	"errors"
	"time"
)

// Default policy values, matching the remote service's tolerance.
const (
	DefaultMaxRetries = 30
	DefaultDelay      = 10 * time.Second
)

// Decision is the outcome of one step of the retry state machine.
type Decision int

const (
	// Success means the operation returned without error.
	Success Decision = iota
	// FatalSkip means the operation failed in a way retrying cannot fix.
	FatalSkip
	// Retry means the failure was transient and another attempt follows.
	Retry
	// ExhaustedSkip means the transient retry budget is used up.
	ExhaustedSkip
	// Canceled means the context ended before the operation could finish.
	Canceled
)

func (d Decision) String() string {
	switch d {
	case Success:
		return "success"
	case FatalSkip:
		return "fatal_skip"
	case Retry:
		return "retry"
	case ExhaustedSkip:
		return "exhausted_skip"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Skipped reports whether the decision leaves the item uncommitted for this
// run.
func (d Decision) Skipped() bool {
	return d == FatalSkip || d == ExhaustedSkip
}

// Policy bounds the retry loop.
type Policy struct {
	// MaxRetries is the number of transient failures tolerated after the
	// first attempt.
	MaxRetries int
	// Delay is the fixed pause between attempts. There is no backoff.
	Delay time.Duration
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, Delay: DefaultDelay}
}

// fatalError marks an error that must not be retried.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }

func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks err as non-retryable. Fatal(nil) returns nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err, or any error it wraps, was marked with Fatal.
func IsFatal(err error) bool {
	var fe *fatalError
	return errors.As(err, &fe)
}

// Decide is the transition function of the retry state machine. err is the
// result of the latest attempt and retries is the number of transient
// failures observed so far, the latest one included. Cancellation is not
// decided here: an operation's own timeout is an ordinary transient failure,
// only the end of the caller's context stops the loop.
func (p Policy) Decide(err error, retries int) Decision {
	switch {
	case err == nil:
		return Success
	case IsFatal(err):
		return FatalSkip
	case retries > p.MaxRetries:
		return ExhaustedSkip
	default:
		return Retry
	}
}
