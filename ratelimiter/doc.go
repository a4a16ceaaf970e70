// Package ratelimiter provides in-memory rate limiting with three
// interchangeable algorithms: token bucket, sliding window, and fixed window.
//
// All limiters compute validity lazily from an injected clock rather than
// from background timers, so behavior is fully deterministic under test.
// Keyed limiters (sliding and fixed window) additionally support a
// background sweep that evicts stale keys to bound memory growth.
//
// # Algorithms
//
// TokenBucket holds a capped, continuously refilled counter of permits and
// supports bulk consumption. It naturally absorbs bursts up to its capacity
// while enforcing an average rate:
//
//	tb, err := ratelimiter.NewTokenBucket(100, 10) // 100 burst, 10 tokens/sec
//	if err != nil {
//		log.Fatal(err)
//	}
//	if tb.Consume(5) {
//		// proceed with batch of 5
//	}
//
// SlidingWindow counts requests per key over a trailing interval ending at
// "now". The window boundary is half-open: a timestamp exactly one window
// old no longer counts.
//
//	sw, err := ratelimiter.NewSlidingWindow(ratelimiter.SlidingWindowConfig{
//		Window:      time.Minute,
//		MaxRequests: 100,
//	})
//	res := sw.Check("user:123")
//	if !res.Allowed() {
//		log.Printf("rate limited, retry after %v", res.RetryAfter())
//	}
//
// FixedWindow counts requests per key in discrete, non-overlapping
// intervals. Windows are request-anchored: a key idle across several
// intervals starts a fresh window at the next request, not at a wall-clock
// boundary.
//
// # Background cleanup
//
// Keyed limiters grow one map entry per distinct key. Start the sweep to
// evict entries that no longer count toward any limit:
//
//	sw, _ := ratelimiter.NewSlidingWindow(cfg,
//		ratelimiter.WithCleanupInterval(5*time.Minute))
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(sw.Run(ctx))
//
// Cleanup can also be invoked manually via Cleanup().
//
// # Deterministic testing
//
// Inject a clock to control time in tests:
//
//	now := time.Now()
//	tb, _ := ratelimiter.NewTokenBucket(5, 1,
//		ratelimiter.WithClock(func() time.Time { return now }))
//	tb.Consume(5)
//	now = now.Add(time.Second)
//	tb.Consume(1) // true: one token refilled
//
// # Concurrency
//
// All limiters are safe for concurrent use. Check-then-mutate sequences are
// atomic under an internal mutex. State is process-local; multi-instance
// deployments need an external shared store, which this package does not
// provide.
package ratelimiter
