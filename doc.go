// Package resilience is a toolkit of small, composable reliability
// primitives: rate limiting, retry with backoff, and circuit breaking.
// Every component is an independent package with no shared state, built on
// modern Go patterns: generics for type safety, functional options for
// configuration, and injected clocks for deterministic testing.
//
// # Packages
//
// Rate limiting:
//
//   - github.com/dmitrymomot/resilience/ratelimiter: token bucket, sliding
//     window, and fixed window limiters with background stale-key cleanup.
//
// Failure handling:
//
//   - github.com/dmitrymomot/resilience/retry: bounded re-execution with
//     fixed, linear, exponential, and Fibonacci backoff, retry predicates,
//     and named presets.
//   - github.com/dmitrymomot/resilience/circuitbreaker: three-state
//     failure-isolation gate composing a retrier.
//
// Supporting:
//
//   - github.com/dmitrymomot/resilience/middleware: net/http rate limiting
//     middleware with X-RateLimit-* headers.
//   - github.com/dmitrymomot/resilience/config: cached, type-safe
//     environment configuration loading.
//   - github.com/dmitrymomot/resilience/logger: slog attribute helpers.
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/dmitrymomot/resilience/ratelimiter
//	go doc -all github.com/dmitrymomot/resilience/retry
package resilience
