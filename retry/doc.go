// Package retry re-invokes fallible operations with configurable backoff.
//
// A Retrier runs an operation up to MaxAttempts times, consulting a
// Predicate after each failure to decide whether the error is worth another
// attempt, and sleeping between attempts according to the configured
// backoff strategy. The error from the final attempt is returned verbatim,
// never wrapped, so callers can keep inspecting failure types with
// errors.Is and errors.As.
//
// # Usage
//
//	r, err := retry.New(retry.StandardConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = r.Do(ctx, func(ctx context.Context) error {
//		return client.Ping(ctx)
//	})
//
// Operations returning a value use the generic helper:
//
//	user, err := retry.Do(ctx, r, func(ctx context.Context) (*User, error) {
//		return client.GetUser(ctx, id)
//	})
//
// # Backoff strategies
//
// Delays are computed per attempt, clamped to MaxDelay, optionally jittered
// by a uniform factor in [0.5, 1.0), and floored to whole milliseconds:
//
//   - Exponential: BaseDelay * BackoffFactor^(attempt-1) (default)
//   - Fixed: BaseDelay
//   - Linear: BaseDelay * attempt
//   - Fibonacci: BaseDelay * fib(attempt), fib(1) = fib(2) = 1
//
// # Retry predicates
//
// Predicates decide whether a failure is retryable. The package ships
// Always, Never, NetworkErrors, ServerErrors, HTTPStatus, Errors, and the
// combinators Any and All:
//
//	cfg := retry.StandardConfig()
//	cfg.RetryIf = retry.Any(retry.NetworkErrors, retry.HTTPStatus(429, 503))
//
// # Presets
//
// StandardConfig, AggressiveConfig, ConservativeConfig, NetworkConfig, and
// NoRetryConfig return fresh Config values. They are constructors rather
// than shared globals, so mutating one call's result never affects another.
//
// # Observability
//
// Each Do call is independent; a Retrier holds no mutable state and is safe
// for concurrent use. DoWithReport returns the full attempt trace (error,
// delay, and timestamp per retried attempt) alongside the outcome. An
// optional slog.Logger records scheduled retries.
package retry
