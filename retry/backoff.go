package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy selects how inter-attempt delay grows with the attempt number.
type Strategy int

const (
	// Exponential grows the delay by BackoffFactor each attempt.
	Exponential Strategy = iota
	// Fixed uses BaseDelay for every attempt.
	Fixed
	// Linear grows the delay proportionally to the attempt number.
	Linear
	// Fibonacci grows the delay along the Fibonacci sequence.
	Fibonacci
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case Exponential:
		return "exponential"
	case Fixed:
		return "fixed"
	case Linear:
		return "linear"
	case Fibonacci:
		return "fibonacci"
	default:
		return "unknown"
	}
}

// Delay computes the backoff delay before the attempt following the given
// one. Attempts are numbered from 1. The result is clamped to maxDelay,
// multiplied by a uniform random factor in [0.5, 1.0) when jitter is set,
// and floored to whole milliseconds.
func Delay(strategy Strategy, attempt int, baseDelay, maxDelay time.Duration, factor float64, jitter bool) time.Duration {
	if attempt < 1 || baseDelay <= 0 {
		return 0
	}

	base := float64(baseDelay) / float64(time.Millisecond)

	var ms float64
	switch strategy {
	case Fixed:
		ms = base
	case Linear:
		ms = base * float64(attempt)
	case Exponential:
		ms = base * math.Pow(factor, float64(attempt-1))
	case Fibonacci:
		ms = base * float64(fib(attempt))
	default:
		ms = base
	}

	if maxDelay > 0 {
		ms = math.Min(ms, float64(maxDelay)/float64(time.Millisecond))
	}
	if jitter {
		ms *= 0.5 + rand.Float64()*0.5
	}

	return time.Duration(math.Floor(ms)) * time.Millisecond
}

// fib returns the nth Fibonacci number with fib(1) = fib(2) = 1. The input
// is capped to keep the result within uint64 range; delays that large are
// clamped by maxDelay anyway.
func fib(n int) uint64 {
	if n > 90 {
		n = 90
	}
	a, b := uint64(1), uint64(1)
	for i := 2; i < n; i++ {
		a, b = b, a+b
	}
	return b
}
