package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resilience/retry"
)

// noSleep makes retry loops instantaneous while still honoring cancellation.
func noSleep(ctx context.Context, _ time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func TestRetrier_Do(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 3}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		err = r.Do(ctx, func(context.Context) error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("invokes exactly max attempts and returns the last error", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 3}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		err = r.Do(ctx, func(context.Context) error {
			calls++
			return fmt.Errorf("failure %d", calls)
		})
		assert.Equal(t, 3, calls)
		assert.EqualError(t, err, "failure 3")
	})

	t.Run("error is propagated verbatim", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("boom")
		r, err := retry.New(retry.Config{MaxAttempts: 2}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		got := r.Do(ctx, func(context.Context) error { return sentinel })
		assert.Same(t, sentinel, got)
	})

	t.Run("never predicate runs once", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 5, RetryIf: retry.Never}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		_ = r.Do(ctx, func(context.Context) error {
			calls++
			return errors.New("nope")
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("predicate sees error and attempt number", func(t *testing.T) {
		t.Parallel()

		var seen []int
		cfg := retry.Config{
			MaxAttempts: 4,
			RetryIf: func(err error, attempt int) bool {
				seen = append(seen, attempt)
				return attempt < 2
			},
		}
		r, err := retry.New(cfg, retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		_ = r.Do(ctx, func(context.Context) error {
			calls++
			return errors.New("x")
		})
		// Attempt 1 retried, attempt 2 declined; the final attempt is never
		// passed to the predicate when the budget is exhausted.
		assert.Equal(t, []int{1, 2}, seen)
		assert.Equal(t, 2, calls)
	})

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 5}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		err = r.Do(ctx, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("on retry callback observes delay", func(t *testing.T) {
		t.Parallel()

		type retryEvent struct {
			attempt int
			delay   time.Duration
		}
		var events []retryEvent
		cfg := retry.Config{
			MaxAttempts:   3,
			BaseDelay:     100 * time.Millisecond,
			BackoffFactor: 2,
			OnRetry: func(attempt int, err error, delay time.Duration) {
				events = append(events, retryEvent{attempt, delay})
			},
		}
		r, err := retry.New(cfg, retry.WithSleep(noSleep))
		require.NoError(t, err)

		_ = r.Do(ctx, func(context.Context) error { return errors.New("x") })
		require.Len(t, events, 2)
		assert.Equal(t, retryEvent{1, 100 * time.Millisecond}, events[0])
		assert.Equal(t, retryEvent{2, 200 * time.Millisecond}, events[1])
	})

	t.Run("cancellation during backoff stops retrying", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		r, err := retry.New(retry.Config{MaxAttempts: 10, BaseDelay: time.Millisecond})
		require.NoError(t, err)

		calls := 0
		err = r.Do(cctx, func(context.Context) error {
			calls++
			cancel()
			return errors.New("x")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestRetrier_DoWithReport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("traces retried attempts", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 3, Jitter: false}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		rep := r.DoWithReport(ctx, func(context.Context) error {
			calls++
			return fmt.Errorf("failure %d", calls)
		})

		assert.False(t, rep.Success())
		assert.EqualError(t, rep.Err, "failure 3")
		require.Len(t, rep.Attempts, 2)
		assert.Equal(t, 1, rep.Attempts[0].Number)
		assert.EqualError(t, rep.Attempts[0].Err, "failure 1")
		assert.Equal(t, 100*time.Millisecond, rep.Attempts[0].Delay)
		assert.Equal(t, 2, rep.Attempts[1].Number)
		assert.Equal(t, 200*time.Millisecond, rep.Attempts[1].Delay)
		assert.GreaterOrEqual(t, rep.TotalTime, time.Duration(0))
	})

	t.Run("empty trace on first-try success", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		rep := r.DoWithReport(ctx, func(context.Context) error { return nil })
		assert.True(t, rep.Success())
		assert.Empty(t, rep.Attempts)
	})

	t.Run("each call gets a fresh trace", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 2}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		fail := func(context.Context) error { return errors.New("x") }
		first := r.DoWithReport(ctx, fail)
		second := r.DoWithReport(ctx, fail)
		assert.Len(t, first.Attempts, 1)
		assert.Len(t, second.Attempts, 1)
	})
}

func TestDo_Generic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns the value on success", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 3}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		got, err := retry.Do(ctx, r, func(context.Context) (int, error) {
			calls++
			if calls < 2 {
				return 0, errors.New("transient")
			}
			return 42, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("returns zero value on failure", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.Config{MaxAttempts: 2}, retry.WithSleep(noSleep))
		require.NoError(t, err)

		got, err := retry.Do(ctx, r, func(context.Context) (string, error) {
			return "partial", errors.New("boom")
		})
		assert.Error(t, err)
		assert.Empty(t, got)
	})
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := retry.New(retry.Config{MaxAttempts: -1})
	assert.ErrorIs(t, err, retry.ErrInvalidConfig)

	_, err = retry.New(retry.Config{BaseDelay: -time.Second})
	assert.ErrorIs(t, err, retry.ErrInvalidConfig)

	_, err = retry.New(retry.Config{BackoffFactor: -2})
	assert.ErrorIs(t, err, retry.ErrInvalidConfig)
}

func TestPresets(t *testing.T) {
	t.Parallel()

	t.Run("presets are independent values", func(t *testing.T) {
		t.Parallel()

		a := retry.StandardConfig()
		a.MaxAttempts = 99
		b := retry.StandardConfig()
		assert.Equal(t, 3, b.MaxAttempts)
	})

	t.Run("no retry preset runs once", func(t *testing.T) {
		t.Parallel()

		r, err := retry.New(retry.NoRetryConfig(), retry.WithSleep(noSleep))
		require.NoError(t, err)

		calls := 0
		_ = r.Do(context.Background(), func(context.Context) error {
			calls++
			return errors.New("x")
		})
		assert.Equal(t, 1, calls)
	})
}
