package retry

import "time"

// Preset constructors return fresh Config values so callers can tweak a
// preset without affecting anyone else. None of them share state.

// StandardConfig suits most transient failures: 3 attempts with jittered
// exponential backoff from 100ms.
func StandardConfig() Config {
	return Config{
		MaxAttempts:   3,
		BaseDelay:     100 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
		Strategy:      Exponential,
		Jitter:        true,
	}
}

// AggressiveConfig retries quickly and often, for latency-sensitive calls
// against flaky dependencies.
func AggressiveConfig() Config {
	return Config{
		MaxAttempts:   5,
		BaseDelay:     50 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2,
		Strategy:      Exponential,
		Jitter:        true,
	}
}

// ConservativeConfig backs off slowly with few attempts, for expensive
// operations where hammering a struggling dependency makes things worse.
func ConservativeConfig() Config {
	return Config{
		MaxAttempts:   2,
		BaseDelay:     time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2,
		Strategy:      Exponential,
		Jitter:        true,
	}
}

// NetworkConfig is StandardConfig restricted to network-level failures.
func NetworkConfig() Config {
	cfg := StandardConfig()
	cfg.RetryIf = NetworkErrors
	return cfg
}

// NoRetryConfig runs the operation exactly once.
func NoRetryConfig() Config {
	cfg := StandardConfig()
	cfg.MaxAttempts = 1
	cfg.RetryIf = Never
	return cfg
}
