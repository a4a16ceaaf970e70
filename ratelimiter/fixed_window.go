package ratelimiter

import (
	"fmt"
	"sync"
	"time"
)

// FixedWindowConfig configures a FixedWindow limiter.
type FixedWindowConfig struct {
	// Window is the length of each counting interval.
	Window time.Duration
	// MaxRequests is the maximum number of requests allowed per interval.
	MaxRequests int
	// KeyFunc derives the bucketing key from the caller-supplied identifier.
	// Defaults to identity.
	KeyFunc func(identifier string) string
}

// fixedWindowEntry is one key's counter for the current interval. resetAt is
// the exclusive end of the interval: once now >= resetAt the entry is
// replaced with a fresh one, never rolled over.
type fixedWindowEntry struct {
	count   int
	resetAt time.Time
}

// FixedWindow limits requests per key in discrete, non-overlapping
// intervals. Windows are request-anchored: the first request after an
// interval expires starts a new window at that moment rather than at a
// calendar boundary, so a key idle for several intervals skips straight to
// a window anchored at "now".
type FixedWindow struct {
	sweeper

	mu      sync.Mutex
	cfg     FixedWindowConfig
	windows map[string]*fixedWindowEntry
	clock   func() time.Time
}

// NewFixedWindow creates a fixed window limiter.
func NewFixedWindow(cfg FixedWindowConfig, opts ...Option) (*FixedWindow, error) {
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, cfg.Window)
	}
	if cfg.MaxRequests <= 0 {
		return nil, fmt.Errorf("%w: max requests must be positive, got %d", ErrInvalidConfig, cfg.MaxRequests)
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(identifier string) string { return identifier }
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	fw := &FixedWindow{
		cfg:     cfg,
		windows: make(map[string]*fixedWindowEntry),
		clock:   s.clock,
	}
	fw.sweeper.init(s, fw.evictExpired)
	return fw, nil
}

// Check decides whether a request for the given identifier may proceed and,
// when allowed, counts it against the current window.
func (fw *FixedWindow) Check(identifier string) Result {
	key := fw.cfg.KeyFunc(identifier)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.clock()
	w := fw.current(key, now)

	if w.count >= fw.cfg.MaxRequests {
		return Result{
			Limit:      fw.cfg.MaxRequests,
			Remaining:  0,
			ResetAt:    w.resetAt,
			retryAfter: w.resetAt.Sub(now),
		}
	}

	w.count++
	return Result{
		Limit:     fw.cfg.MaxRequests,
		Remaining: fw.cfg.MaxRequests - w.count,
		ResetAt:   w.resetAt,
		allowed:   true,
	}
}

// Status reports the current window state for the identifier without
// counting a request.
func (fw *FixedWindow) Status(identifier string) Result {
	key := fw.cfg.KeyFunc(identifier)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.clock()
	w, ok := fw.windows[key]
	if !ok || !now.Before(w.resetAt) {
		// No live window: a request now would start a fresh one.
		return Result{
			Limit:     fw.cfg.MaxRequests,
			Remaining: fw.cfg.MaxRequests,
			ResetAt:   now.Add(fw.cfg.Window),
			allowed:   true,
		}
	}

	res := Result{
		Limit:     fw.cfg.MaxRequests,
		Remaining: max(0, fw.cfg.MaxRequests-w.count),
		ResetAt:   w.resetAt,
		allowed:   w.count < fw.cfg.MaxRequests,
	}
	if !res.allowed {
		res.retryAfter = w.resetAt.Sub(now)
	}
	return res
}

// ResetKey drops the identifier's current window.
func (fw *FixedWindow) ResetKey(identifier string) {
	key := fw.cfg.KeyFunc(identifier)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	delete(fw.windows, key)
}

// Reset drops all windows.
func (fw *FixedWindow) Reset() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.windows = make(map[string]*fixedWindowEntry)
}

// Cleanup drops windows whose interval has ended. The background sweep calls
// this on the configured interval.
func (fw *FixedWindow) Cleanup() {
	fw.runSweep()
}

// Stats returns current limiter statistics for observability.
func (fw *FixedWindow) Stats() Stats {
	fw.mu.Lock()
	active := len(fw.windows)
	fw.mu.Unlock()

	return fw.sweeper.stats(active)
}

// current returns the key's live window, replacing an expired one with a
// fresh window anchored at now. Callers must hold fw.mu.
func (fw *FixedWindow) current(key string, now time.Time) *fixedWindowEntry {
	w, ok := fw.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &fixedWindowEntry{resetAt: now.Add(fw.cfg.Window)}
		fw.windows[key] = w
	}
	return w
}

func (fw *FixedWindow) evictExpired() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.clock()
	removed := 0
	for key, w := range fw.windows {
		if !now.Before(w.resetAt) {
			delete(fw.windows, key)
			removed++
		}
	}
	return removed
}
