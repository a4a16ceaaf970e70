package ratelimiter

import (
	"fmt"
	"sync"
	"time"
)

// SlidingWindowConfig configures a SlidingWindow limiter.
type SlidingWindowConfig struct {
	// Window is the trailing interval over which requests are counted.
	Window time.Duration
	// MaxRequests is the maximum number of requests allowed per window.
	MaxRequests int
	// KeyFunc derives the bucketing key from the caller-supplied identifier.
	// Defaults to identity.
	KeyFunc func(identifier string) string
	// SkipSuccessful makes Record ignore requests reported as successful.
	SkipSuccessful bool
	// SkipFailed makes Record ignore requests reported as failed.
	SkipFailed bool
}

// SlidingWindow limits requests per key over a trailing time interval ending
// at "now". Each key tracks the timestamps of its recent requests; a request
// is allowed while fewer than MaxRequests timestamps fall within the window.
//
// The window boundary is half-open: a timestamp exactly Window old is
// already outside the window.
type SlidingWindow struct {
	sweeper

	mu    sync.Mutex
	cfg   SlidingWindowConfig
	log   map[string][]time.Time
	clock func() time.Time
}

// NewSlidingWindow creates a sliding window limiter.
func NewSlidingWindow(cfg SlidingWindowConfig, opts ...Option) (*SlidingWindow, error) {
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

	sw := &SlidingWindow{
		cfg:   cfg,
		log:   make(map[string][]time.Time),
		clock: s.clock,
	}
	sw.sweeper.init(s, sw.evictStale)
	return sw, nil
}

// Check decides whether a request for the given identifier may proceed and,
// when allowed, records it. Rejected attempts are not recorded, so a client
// hammering a full window does not push its own recovery further out.
func (sw *SlidingWindow) Check(identifier string) Result {
	key := sw.cfg.KeyFunc(identifier)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.clock()
	valid := sw.prune(key, now)

	if len(valid) >= sw.cfg.MaxRequests {
		sw.log[key] = valid
		return Result{
			Limit:      sw.cfg.MaxRequests,
			Remaining:  0,
			ResetAt:    valid[0].Add(sw.cfg.Window),
			retryAfter: valid[0].Add(sw.cfg.Window).Sub(now),
		}
	}

	valid = append(valid, now)
	sw.log[key] = valid

	return Result{
		Limit:     sw.cfg.MaxRequests,
		Remaining: sw.cfg.MaxRequests - len(valid),
		ResetAt:   valid[0].Add(sw.cfg.Window),
		allowed:   true,
	}
}

// Status reports the current window state for the identifier without
// recording a request. Its arithmetic is the authoritative remaining count.
func (sw *SlidingWindow) Status(identifier string) Result {
	key := sw.cfg.KeyFunc(identifier)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.clock()
	valid := sw.prune(key, now)
	sw.log[key] = valid
	if len(valid) == 0 {
		delete(sw.log, key)
		return Result{
			Limit:     sw.cfg.MaxRequests,
			Remaining: sw.cfg.MaxRequests,
			ResetAt:   now.Add(sw.cfg.Window),
			allowed:   true,
		}
	}

	res := Result{
		Limit:     sw.cfg.MaxRequests,
		Remaining: max(0, sw.cfg.MaxRequests-len(valid)),
		ResetAt:   valid[0].Add(sw.cfg.Window),
		allowed:   len(valid) < sw.cfg.MaxRequests,
	}
	if !res.allowed {
		res.retryAfter = valid[0].Add(sw.cfg.Window).Sub(now)
	}
	return res
}

// Record appends a request timestamp without checking the limit, honoring
// the SkipSuccessful and SkipFailed config flags. Use it when the decision
// to count a request depends on its outcome.
func (sw *SlidingWindow) Record(identifier string, success bool) {
	if success && sw.cfg.SkipSuccessful {
		return
	}
	if !success && sw.cfg.SkipFailed {
		return
	}

	key := sw.cfg.KeyFunc(identifier)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.log[key] = append(sw.log[key], sw.clock())
}

// ResetKey removes all recorded requests for the identifier.
func (sw *SlidingWindow) ResetKey(identifier string) {
	key := sw.cfg.KeyFunc(identifier)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	delete(sw.log, key)
}

// Reset removes all recorded requests for all keys.
func (sw *SlidingWindow) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.log = make(map[string][]time.Time)
}

// Cleanup evicts keys whose every timestamp has left the window and compacts
// the rest. The background sweep calls this on the configured interval.
func (sw *SlidingWindow) Cleanup() {
	sw.runSweep()
}

// Stats returns current limiter statistics for observability.
func (sw *SlidingWindow) Stats() Stats {
	sw.mu.Lock()
	active := len(sw.log)
	sw.mu.Unlock()

	return sw.sweeper.stats(active)
}

// prune returns the key's timestamps still inside the window ending at now.
// Callers must hold sw.mu. The boundary is strict: t > now-Window.
func (sw *SlidingWindow) prune(key string, now time.Time) []time.Time {
	windowStart := now.Add(-sw.cfg.Window)
	entries := sw.log[key]

	// Timestamps are appended in order, so find the first valid one.
	i := 0
	for i < len(entries) && !entries[i].After(windowStart) {
		i++
	}
	if i == 0 {
		return entries
	}
	return append([]time.Time(nil), entries[i:]...)
}

func (sw *SlidingWindow) evictStale() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.clock()
	removed := 0
	for key := range sw.log {
		valid := sw.prune(key, now)
		if len(valid) == 0 {
			delete(sw.log, key)
			removed++
			continue
		}
		sw.log[key] = valid
	}
	return removed
}
