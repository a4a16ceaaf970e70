package ratelimiter

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// TokenBucket implements the token bucket algorithm with continuous refill.
// Tokens accumulate at a constant rate up to a fixed capacity; consumers
// withdraw tokens atomically. Fractional tokens are supported, so low refill
// rates behave smoothly.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	clock      func() time.Time
}

// NewTokenBucket creates a bucket holding up to capacity tokens, refilled at
// refillRate tokens per second. The bucket starts full.
func NewTokenBucket(capacity, refillRate float64, opts ...Option) (*TokenBucket, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %v", ErrInvalidConfig, capacity)
	}
	if refillRate <= 0 {
		return nil, fmt.Errorf("%w: refill rate must be positive, got %v", ErrInvalidConfig, refillRate)
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     capacity,
		lastRefill: s.clock(),
		clock:      s.clock,
	}, nil
}

// Consume attempts to withdraw n tokens. It returns true and subtracts the
// tokens when enough are available after refill; otherwise it returns false
// and leaves the (refilled) balance untouched.
func (tb *TokenBucket) Consume(n float64) bool {
	if n <= 0 {
		return n == 0
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens < n {
		return false
	}
	tb.tokens -= n
	return true
}

// Allow is shorthand for Consume(1).
func (tb *TokenBucket) Allow() bool {
	return tb.Consume(1)
}

// Tokens returns the current token balance after refill. The value may be
// fractional.
func (tb *TokenBucket) Tokens() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}

// TimeUntilRefill returns how long until at least one token is available,
// or zero if one already is.
func (tb *TokenBucket) TimeUntilRefill() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1 {
		return 0
	}
	ms := math.Ceil((1 - tb.tokens) / tb.refillRate * 1000)
	return time.Duration(ms) * time.Millisecond
}

// Reset refills the bucket to capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = tb.clock()
}

// refill credits tokens proportional to elapsed time. Callers must hold tb.mu.
// Negative elapsed time (clock stepped backwards) credits nothing.
func (tb *TokenBucket) refill() {
	now := tb.clock()
	elapsed := now.Sub(tb.lastRefill)
	if elapsed > 0 {
		tb.tokens = math.Min(tb.capacity, tb.tokens+elapsed.Seconds()*tb.refillRate)
	}
	tb.lastRefill = now
}
