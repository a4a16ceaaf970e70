// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/resilience/config"
//
//	type RateLimitSettings struct {
//		Window      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
//		MaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
//	}
//
//	func main() {
//		var rl RateLimitSettings
//
//		// Load with error handling
//		if err := config.Load(&rl); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&rl)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 RateLimitSettings
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 RateLimitSettings
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type RetrySettings struct {
//		MaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
//		BaseDelay   time.Duration `env:"RETRY_BASE_DELAY" envDefault:"100ms"`
//	}
//
//	type BreakerSettings struct {
//		FailureThreshold int           `env:"BREAKER_FAILURE_THRESHOLD" envDefault:"5"`
//		RecoveryTimeout  time.Duration `env:"BREAKER_RECOVERY_TIMEOUT" envDefault:"30s"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&RetrySettings{})
//	config.MustLoad(&BreakerSettings{})
package config
