package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Stats provides observability metrics for a keyed limiter.
type Stats struct {
	ActiveKeys  int   // Current number of tracked keys
	KeysRemoved int64 // Total number of keys evicted by cleanup
	IsRunning   bool  // Whether the background sweep is running
}

// sweeper runs a limiter's Cleanup on a fixed interval. It is embedded by
// keyed limiters and owns the lifecycle of the cleanup goroutine.
type sweeper struct {
	mu       sync.Mutex
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	sweep    func() int // returns number of keys evicted

	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	keysRemoved atomic.Int64
}

func (sw *sweeper) init(s settings, sweep func() int) {
	sw.interval = s.cleanupInterval
	sw.timeout = s.shutdownTimeout
	sw.logger = s.logger
	sw.sweep = sweep
}

// Start begins the background sweep. This is a blocking operation that runs
// until the context is cancelled; call it in a goroutine or use Run with an
// errgroup.
func (sw *sweeper) Start(ctx context.Context) error {
	sw.mu.Lock()
	if sw.cancel != nil {
		sw.mu.Unlock()
		return ErrAlreadyStarted
	}
	if sw.interval <= 0 {
		sw.mu.Unlock()
		return fmt.Errorf("%w: cleanup interval must be > 0, got %v", ErrInvalidConfig, sw.interval)
	}
	sw.ctx, sw.cancel = context.WithCancel(ctx)
	sw.mu.Unlock()

	sw.running.Store(true)
	defer sw.running.Store(false)

	sw.logger.InfoContext(sw.ctx, "rate limiter cleanup started",
		slog.Duration("cleanup_interval", sw.interval))

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-sw.ctx.Done():
			sw.logger.InfoContext(context.Background(), "rate limiter cleanup stopping")
			return sw.ctx.Err()
		case <-ticker.C:
			sw.sweepWithWait()
		}
	}
}

// Stop gracefully shuts down the background sweep, waiting up to the
// configured shutdown timeout for an in-progress cleanup to finish.
func (sw *sweeper) Stop() error {
	sw.mu.Lock()
	if sw.cancel == nil {
		sw.mu.Unlock()
		return ErrNotStarted
	}
	cancel := sw.cancel
	sw.cancel = nil
	sw.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), sw.timeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		sw.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		sw.logger.WarnContext(context.Background(), "rate limiter cleanup shutdown timeout exceeded",
			slog.Duration("timeout", sw.timeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", sw.timeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function starts the sweep, monitors context cancellation, and
// performs graceful shutdown when the context is cancelled.
func (sw *sweeper) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- sw.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = sw.Stop() // Ignore stop error in normal shutdown
			<-errCh       // Wait for Start() to exit
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Healthcheck validates that the sweep is operational. Returns nil when
// healthy. Suitable for use in health check endpoints.
func (sw *sweeper) Healthcheck(ctx context.Context) error {
	if sw.interval > 0 && !sw.running.Load() {
		return fmt.Errorf("cleanup is configured but not running")
	}
	return nil
}

// sweepWithWait tracks an in-progress cleanup with the WaitGroup so Stop can
// wait for it.
func (sw *sweeper) sweepWithWait() {
	sw.mu.Lock()
	if sw.cancel == nil {
		sw.mu.Unlock()
		return
	}
	sw.wg.Add(1)
	sw.mu.Unlock()

	defer sw.wg.Done()
	sw.runSweep()
}

// runSweep invokes the limiter's eviction pass and records the result.
func (sw *sweeper) runSweep() int {
	removed := sw.sweep()
	if removed > 0 {
		sw.keysRemoved.Add(int64(removed))
		sw.logger.DebugContext(context.Background(), "rate limiter cleanup evicted keys",
			slog.Int("removed", removed))
	}
	return removed
}

func (sw *sweeper) stats(activeKeys int) Stats {
	return Stats{
		ActiveKeys:  activeKeys,
		KeysRemoved: sw.keysRemoved.Load(),
		IsRunning:   sw.running.Load(),
	}
}
