// Package middleware provides net/http middleware built on the library's
// rate limiters.
package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/resilience/logger"
	"github.com/dmitrymomot/resilience/ratelimiter"
)

// Limiter is the keyed-limiter surface the middleware needs. Both
// ratelimiter.SlidingWindow and ratelimiter.FixedWindow satisfy it.
type Limiter interface {
	Check(identifier string) ratelimiter.Result
}

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Limiter is the rate limiting implementation to use. Required.
	Limiter Limiter
	// KeyExtractor derives the rate limiting key from the request.
	// Defaults to the client IP.
	KeyExtractor func(r *http.Request) string
	// ErrorHandler writes the response for a rejected request.
	// Defaults to a plain 429.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, res ratelimiter.Result)
	// Skip short-circuits the middleware for matching requests.
	Skip func(r *http.Request) bool
	// SetHeaders enables X-RateLimit-* response headers.
	SetHeaders bool
	// Logger records rejected requests. Optional.
	Logger *slog.Logger
}

// RateLimit creates rate limiting middleware from the provided
// configuration. It enforces per-key limits (by client IP unless a custom
// KeyExtractor is set) and answers 429 Too Many Requests with retry
// guidance when a limit is exceeded. Panics if no limiter is provided.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = ClientIP
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := cfg.KeyExtractor(r)
			res := cfg.Limiter.Check(key)

			if cfg.SetHeaders {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			}

			if !res.Allowed() {
				retryAfter := int(math.Ceil(res.RetryAfter().Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				if cfg.Logger != nil {
					cfg.Logger.WarnContext(r.Context(), "rate limit exceeded",
						logger.Component("ratelimit"),
						logger.Key(key),
						logger.RequestID(RequestID(w, r)),
						slog.Duration("retry_after", res.RetryAfter()))
				}

				cfg.ErrorHandler(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
