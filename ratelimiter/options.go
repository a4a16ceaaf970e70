package ratelimiter

import (
	"io"
	"log/slog"
	"time"
)

// settings holds cross-cutting limiter configuration applied via options.
type settings struct {
	clock           func() time.Time
	logger          *slog.Logger
	cleanupInterval time.Duration
	shutdownTimeout time.Duration
}

func defaultSettings() settings {
	return settings{
		clock:           time.Now,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
	}
}

// Option configures a limiter.
type Option func(*settings)

// WithClock sets the time source. Defaults to time.Now. Injecting a clock
// makes limiter behavior deterministic in tests; production callers should
// keep the default, which is monotonic across process-local measurements.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger for background cleanup operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCleanupInterval sets how often the background sweep evicts stale keys.
// Applies to keyed limiters only. Set to 0 to disable the sweep.
func WithCleanupInterval(interval time.Duration) Option {
	return func(s *settings) {
		s.cleanupInterval = interval
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout for the background
// sweep. Applies to keyed limiters only.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}
