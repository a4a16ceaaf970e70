package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/resilience/retry"
)

// Package-level error definitions.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrOpen is returned by Do while the circuit is open. It is never
	// produced by the wrapped operation, so callers can branch on it with
	// errors.Is.
	ErrOpen = errors.New("circuit breaker is open")
)

// State represents the circuit breaker state.
type State int

const (
	StateClosed   State = iota // Normal operation; calls pass through.
	StateOpen                  // Failing; calls are rejected immediately.
	StateHalfOpen              // Probing; the next call tests recovery.
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config configures a Breaker.
type Config struct {
	// FailureThreshold is how many consecutive overall failures open the
	// circuit. Defaults to 5.
	FailureThreshold int
	// RecoveryTimeout is how long an open circuit waits before letting a
	// probe through. Defaults to 30s.
	RecoveryTimeout time.Duration
	// Retry configures the embedded retrier applied to every call.
	Retry retry.Config
}

// Breaker gates calls to a failing dependency. Safe for concurrent use;
// the gate decision and the outcome bookkeeping each run under a mutex,
// while the wrapped operation itself runs unlocked so slow calls do not
// serialize each other.
type Breaker struct {
	mu          sync.Mutex
	cfg         Config
	retrier     *retry.Retrier
	state       State
	failures    int
	lastFailure time.Time

	logger      *slog.Logger
	clock       func() time.Time
	retrierOpts []retry.Option
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithLogger sets the logger used to record state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Breaker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock sets the time source. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(b *Breaker) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithRetrierOptions forwards options to the embedded retrier.
func WithRetrierOptions(opts ...retry.Option) Option {
	return func(b *Breaker) {
		b.retrierOpts = append(b.retrierOpts, opts...)
	}
}

// New creates a Breaker from cfg, applying defaults for zero values.
func New(cfg Config, opts ...Option) (*Breaker, error) {
	if cfg.FailureThreshold < 0 {
		return nil, fmt.Errorf("%w: failure threshold must not be negative, got %d", ErrInvalidConfig, cfg.FailureThreshold)
	}
	if cfg.RecoveryTimeout < 0 {
		return nil, fmt.Errorf("%w: recovery timeout must not be negative, got %v", ErrInvalidConfig, cfg.RecoveryTimeout)
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.RecoveryTimeout == 0 {
		cfg.RecoveryTimeout = 30 * time.Second
	}

	b := &Breaker{
		cfg:    cfg,
		state:  StateClosed,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	retrier, err := retry.New(cfg.Retry, b.retrierOpts...)
	if err != nil {
		return nil, err
	}
	b.retrier = retrier
	return b, nil
}

// Do runs fn through the embedded retrier, gated by the circuit state.
// While the circuit is open and the recovery timeout has not elapsed, Do
// returns ErrOpen without invoking fn.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	b.mu.Lock()
	now := b.clock()
	next := advance(b.state, now, b.lastFailure, b.cfg.RecoveryTimeout)
	b.setState(ctx, next)
	if b.state == StateOpen {
		b.mu.Unlock()
		return ErrOpen
	}
	b.mu.Unlock()

	err := b.retrier.Do(ctx, fn)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.setState(ctx, settle(b.state, outcomeSuccess, 0, b.cfg.FailureThreshold))
		return nil
	}

	b.failures++
	b.lastFailure = b.clock()
	b.setState(ctx, settle(b.state, outcomeFailure, b.failures, b.cfg.FailureThreshold))
	return err
}

// Run runs fn through the breaker and returns its value on success.
func Run[T any](ctx context.Context, b *Breaker, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := b.Do(ctx, func(ctx context.Context) error {
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

// State returns the current circuit state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the consecutive-failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Reset forces the breaker back to closed with a clean failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.lastFailure = time.Time{}
	b.setState(context.Background(), StateClosed)
}

// setState applies a transition and logs it. Callers must hold b.mu.
func (b *Breaker) setState(ctx context.Context, next State) {
	if next == b.state {
		return
	}
	b.logger.InfoContext(ctx, "circuit breaker state changed",
		slog.String("from", b.state.String()),
		slog.String("to", next.String()),
		slog.Int("failures", b.failures))
	b.state = next
}

// outcome is the overall result of one gated call.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
)

// advance computes the pre-call transition: an open circuit whose recovery
// timeout has elapsed since the last failure moves to half-open. Pure
// function, exhaustively tested.
func advance(s State, now, lastFailure time.Time, recovery time.Duration) State {
	if s == StateOpen && now.Sub(lastFailure) > recovery {
		return StateHalfOpen
	}
	return s
}

// settle computes the post-call transition from the call's overall outcome.
// failures is the consecutive-failure count already including this call.
// Pure function, exhaustively tested.
func settle(s State, o outcome, failures, threshold int) State {
	if o == outcomeSuccess {
		return StateClosed
	}
	if failures >= threshold {
		return StateOpen
	}
	return s
}
