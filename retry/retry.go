package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Package-level error definitions.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds retry behavior. Zero values fall back to the standard
// defaults: 3 attempts, 100ms base delay, 10s max delay, exponential
// backoff with factor 2, retry every error.
type Config struct {
	// MaxAttempts is how many times the operation may run in total.
	MaxAttempts int
	// BaseDelay seeds the backoff computation.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay.
	MaxDelay time.Duration
	// BackoffFactor is the exponential growth factor.
	BackoffFactor float64
	// Strategy selects the backoff curve. Defaults to Exponential.
	Strategy Strategy
	// Jitter randomizes each delay by a uniform factor in [0.5, 1.0).
	Jitter bool
	// RetryIf decides whether a failure is worth another attempt.
	// Defaults to Always.
	RetryIf Predicate
	// OnRetry is invoked after a failed attempt once a retry is scheduled,
	// before the backoff sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Attempt records one failed attempt that led to a retry.
type Attempt struct {
	Number int
	Err    error
	Delay  time.Duration
	At     time.Time
}

// Report is the full trace of one Do call. Attempts lists the failures that
// were retried; the final outcome (success, or the last attempt's error)
// lives in Err.
type Report struct {
	Err       error
	Attempts  []Attempt
	TotalTime time.Duration
}

// Success reports whether the operation eventually succeeded.
func (r Report) Success() bool {
	return r.Err == nil
}

// Retrier executes operations with retries. It holds no per-call state and
// is safe for concurrent use.
type Retrier struct {
	cfg    Config
	logger *slog.Logger
	sleep  func(context.Context, time.Duration) error
	clock  func() time.Time
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithLogger sets the logger used to record scheduled retries.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retrier) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSleep replaces the backoff sleep primitive. Intended for tests that
// need to run retry loops without real delays.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(r *Retrier) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// WithClock sets the time source used for attempt timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *Retrier) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// New creates a Retrier from cfg, applying defaults for zero values.
func New(cfg Config, opts ...Option) (*Retrier, error) {
	if cfg.MaxAttempts < 0 {
		return nil, fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidConfig, cfg.MaxAttempts)
	}
	if cfg.BaseDelay < 0 || cfg.MaxDelay < 0 {
		return nil, fmt.Errorf("%w: delays must not be negative", ErrInvalidConfig)
	}
	if cfg.BackoffFactor < 0 {
		return nil, fmt.Errorf("%w: backoff factor must not be negative, got %v", ErrInvalidConfig, cfg.BackoffFactor)
	}

	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = 100 * time.Millisecond
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = 10 * time.Second
	}
	if cfg.BackoffFactor == 0 {
		cfg.BackoffFactor = 2
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = Always
	}

	r := &Retrier{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep:  sleepContext,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Do runs fn until it succeeds, the attempt budget is exhausted, or the
// retry predicate declines. The returned error is the last attempt's error,
// unwrapped and unmodified. A context cancellation during backoff returns
// the context's error.
func (r *Retrier) Do(ctx context.Context, fn func(context.Context) error) error {
	return r.run(ctx, fn).Err
}

// DoWithReport runs fn like Do and returns the full attempt trace.
func (r *Retrier) DoWithReport(ctx context.Context, fn func(context.Context) error) Report {
	return r.run(ctx, fn)
}

// Do runs fn through the retrier and returns its value on success.
func Do[T any](ctx context.Context, r *Retrier, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (r *Retrier) run(ctx context.Context, fn func(context.Context) error) Report {
	start := r.clock()
	var rep Report

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			rep.TotalTime = r.clock().Sub(start)
			return rep
		}

		if attempt == r.cfg.MaxAttempts || !r.cfg.RetryIf(err, attempt) {
			rep.Err = err
			rep.TotalTime = r.clock().Sub(start)
			return rep
		}

		delay := Delay(r.cfg.Strategy, attempt, r.cfg.BaseDelay, r.cfg.MaxDelay, r.cfg.BackoffFactor, r.cfg.Jitter)
		rep.Attempts = append(rep.Attempts, Attempt{
			Number: attempt,
			Err:    err,
			Delay:  delay,
			At:     r.clock(),
		})

		if r.cfg.OnRetry != nil {
			r.cfg.OnRetry(attempt, err, delay)
		}
		r.logger.InfoContext(ctx, "operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		if serr := r.sleep(ctx, delay); serr != nil {
			rep.Err = serr
			rep.TotalTime = r.clock().Sub(start)
			return rep
		}
	}

	// Unreachable: the loop always returns on the final attempt.
	rep.TotalTime = r.clock().Sub(start)
	return rep
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
