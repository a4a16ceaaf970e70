package retry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/resilience/retry"
)

func TestDelay_Strategies(t *testing.T) {
	t.Parallel()

	base := 100 * time.Millisecond
	maxDelay := 10 * time.Second

	t.Run("exponential", func(t *testing.T) {
		t.Parallel()

		want := []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
			800 * time.Millisecond,
		}
		for i, expected := range want {
			got := retry.Delay(retry.Exponential, i+1, base, maxDelay, 2, false)
			assert.Equal(t, expected, got, "attempt %d", i+1)
		}
	})

	t.Run("fixed", func(t *testing.T) {
		t.Parallel()

		for attempt := 1; attempt <= 5; attempt++ {
			assert.Equal(t, base, retry.Delay(retry.Fixed, attempt, base, maxDelay, 2, false))
		}
	})

	t.Run("linear", func(t *testing.T) {
		t.Parallel()

		for attempt := 1; attempt <= 4; attempt++ {
			want := time.Duration(attempt) * base
			assert.Equal(t, want, retry.Delay(retry.Linear, attempt, base, maxDelay, 2, false))
		}
	})

	t.Run("fibonacci", func(t *testing.T) {
		t.Parallel()

		want := []time.Duration{
			100 * time.Millisecond, // fib(1) = 1
			100 * time.Millisecond, // fib(2) = 1
			200 * time.Millisecond, // fib(3) = 2
			300 * time.Millisecond, // fib(4) = 3
			500 * time.Millisecond, // fib(5) = 5
			800 * time.Millisecond, // fib(6) = 8
		}
		for i, expected := range want {
			got := retry.Delay(retry.Fibonacci, i+1, base, maxDelay, 2, false)
			assert.Equal(t, expected, got, "attempt %d", i+1)
		}
	})
}

func TestDelay_Clamping(t *testing.T) {
	t.Parallel()

	t.Run("clamps to max delay", func(t *testing.T) {
		t.Parallel()

		got := retry.Delay(retry.Exponential, 20, 100*time.Millisecond, time.Second, 2, false)
		assert.Equal(t, time.Second, got)
	})

	t.Run("zero max delay means no clamp", func(t *testing.T) {
		t.Parallel()

		got := retry.Delay(retry.Exponential, 10, 100*time.Millisecond, 0, 2, false)
		assert.Equal(t, 100*512*time.Millisecond, got)
	})

	t.Run("invalid inputs yield zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, time.Duration(0), retry.Delay(retry.Exponential, 0, time.Second, 0, 2, false))
		assert.Equal(t, time.Duration(0), retry.Delay(retry.Exponential, 1, 0, 0, 2, false))
	})
}

func TestDelay_Jitter(t *testing.T) {
	t.Parallel()

	base := 100 * time.Millisecond
	for range 200 {
		got := retry.Delay(retry.Exponential, 3, base, 10*time.Second, 2, true)
		// 400ms jittered by [0.5, 1.0) and floored to whole milliseconds.
		assert.GreaterOrEqual(t, got, 200*time.Millisecond)
		assert.Less(t, got, 400*time.Millisecond)
		assert.Zero(t, got%time.Millisecond)
	}
}

func TestStrategy_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exponential", retry.Exponential.String())
	assert.Equal(t, "fixed", retry.Fixed.String())
	assert.Equal(t, "linear", retry.Linear.String())
	assert.Equal(t, "fibonacci", retry.Fibonacci.String())
	assert.Equal(t, "unknown", retry.Strategy(42).String())
}
