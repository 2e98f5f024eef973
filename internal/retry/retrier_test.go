package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/internal/ratelimit"
)

// sleepRecorder replaces the real delay and records every requested pause.
type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

func newTestRetrier(maxRetries int) (*Retrier, *sleepRecorder) {
	rec := &sleepRecorder{}
	r := NewRetrier(ratelimit.New(0), Policy{MaxRetries: maxRetries, Delay: 10 * time.Second}, logger.Nop()).
		WithSleep(rec.sleep)
	return r, rec
}

func TestCall_SuccessFirstAttempt(t *testing.T) {
	r, rec := newTestRetrier(3)

	out := Call(context.Background(), r, "upload", func(context.Context) (string, error) {
		return "5550001", nil
	}, nil)

	assert.Equal(t, Success, out.Decision)
	assert.Equal(t, "5550001", out.Value)
	assert.Equal(t, 1, out.Attempts)
	assert.NoError(t, out.Err)
	assert.False(t, out.Recovered())
	assert.Empty(t, rec.delays)
}

// TestCall_TransientFailureAttemptedMaxPlusOne checks the retry bound: an
// always-failing operation runs exactly MaxRetries+1 times.
func TestCall_TransientFailureAttemptedMaxPlusOne(t *testing.T) {
	const maxRetries = 3
	r, rec := newTestRetrier(maxRetries)
	transient := errors.New("503 service unavailable")

	calls := 0
	out := Call(context.Background(), r, "upload", func(context.Context) (string, error) {
		calls++
		return "", transient
	}, nil)

	assert.Equal(t, ExhaustedSkip, out.Decision)
	assert.Equal(t, maxRetries+1, calls)
	assert.Equal(t, maxRetries+1, out.Attempts)
	assert.ErrorIs(t, out.Err, transient)
	assert.Len(t, rec.delays, maxRetries)
	for _, d := range rec.delays {
		assert.Equal(t, 10*time.Second, d, "delay is fixed, no backoff")
	}
}

func TestCall_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	r, rec := newTestRetrier(0)

	out := Call(context.Background(), r, "upload", func(context.Context) (int, error) {
		return 0, errors.New("timeout")
	}, nil)

	assert.Equal(t, ExhaustedSkip, out.Decision)
	assert.Equal(t, 1, out.Attempts)
	assert.Empty(t, rec.delays)
}

func TestCall_RecoversAfterTransientFailures(t *testing.T) {
	r, rec := newTestRetrier(30)

	calls := 0
	out := Call(context.Background(), r, "set_location", func(context.Context) (struct{}, error) {
		calls++
		if calls < 3 {
			return struct{}{}, errors.New("connection reset by peer")
		}
		return struct{}{}, nil
	}, nil)

	assert.Equal(t, Success, out.Decision)
	assert.Equal(t, 3, out.Attempts)
	assert.True(t, out.Recovered())
	assert.NoError(t, out.Err)
	assert.Len(t, rec.delays, 2)
}

func TestCall_FatalErrorIsNotRetried(t *testing.T) {
	r, rec := newTestRetrier(30)
	fatal := errors.New("file does not exist")

	calls := 0
	out := Call(context.Background(), r, "upload", func(context.Context) (string, error) {
		calls++
		return "", Fatal(fatal)
	}, nil)

	assert.Equal(t, FatalSkip, out.Decision)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, out.Err, fatal)
	assert.Empty(t, rec.delays)
}

func TestCall_PredicateClassifiesFatal(t *testing.T) {
	r, _ := newTestRetrier(30)
	apiErr := errors.New("photo not found")

	calls := 0
	out := Call(context.Background(), r, "add_photo", func(context.Context) (int, error) {
		calls++
		return 0, apiErr
	}, func(err error) bool { return errors.Is(err, apiErr) })

	assert.Equal(t, FatalSkip, out.Decision)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, out.Err, apiErr)
}

func TestCall_CanceledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	r := NewRetrier(ratelimit.New(0), Policy{MaxRetries: 30, Delay: time.Hour}, logger.Nop()).
		WithSleep(func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		})

	out := Call(ctx, r, "upload", func(context.Context) (string, error) {
		calls++
		return "", errors.New("timeout")
	}, nil)

	assert.Equal(t, Canceled, out.Decision)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, out.Err, context.Canceled)
}

func TestCall_CanceledBeforeFirstAttempt(t *testing.T) {
	r, _ := newTestRetrier(30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	out := Call(ctx, r, "upload", func(context.Context) (string, error) {
		calls++
		return "x", nil
	}, nil)

	assert.Equal(t, Canceled, out.Decision)
	assert.Zero(t, calls)
	assert.Zero(t, out.Attempts)
}

// TestCall_EveryAttemptIsPaced runs a failing call through a real limiter
// and checks that attempts are spaced by the limiter interval.
func TestCall_EveryAttemptIsPaced(t *testing.T) {
	const interval = 30 * time.Millisecond
	r := NewRetrier(ratelimit.New(interval), Policy{MaxRetries: 3}, logger.Nop())

	start := time.Now()
	out := Call(context.Background(), r, "upload", func(context.Context) (string, error) {
		return "", errors.New("timeout")
	}, nil)
	elapsed := time.Since(start)

	require.Equal(t, ExhaustedSkip, out.Decision)
	assert.Equal(t, 4, out.Attempts)
	assert.GreaterOrEqual(t, elapsed, 3*interval-5*time.Millisecond)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
