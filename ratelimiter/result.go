package ratelimiter

import "time"

// Result reports the outcome of a limiter check for a single request.
type Result struct {
	// Limit is the configured maximum number of requests per window.
	Limit int
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetAt is when the current window expires and capacity is restored.
	ResetAt time.Time

	allowed    bool
	retryAfter time.Duration
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool {
	return r.allowed
}

// RetryAfter returns how long the caller should wait before retrying.
// Zero when the request was allowed.
func (r Result) RetryAfter() time.Duration {
	return r.retryAfter
}
