// Package circuitbreaker implements a three-state failure-isolation gate
// around a retried operation.
//
// A Breaker wraps an internal retry.Retrier. The state machine judges each
// Do call's overall outcome — success, or failure after the retrier gave up
// — never individual attempts inside the retry loop.
//
// # States
//
//	Closed (normal):
//	    Calls pass through; consecutive overall failures are counted.
//	    Reaching FailureThreshold opens the circuit.
//
//	Open (tripped):
//	    Calls fail fast with ErrOpen without invoking the operation.
//	    Once RecoveryTimeout has elapsed since the last failure, the next
//	    call probes in half-open.
//
//	HalfOpen (probing):
//	    A success closes the circuit and clears the failure count; a
//	    failure counts toward the threshold like any other.
//
// Transitions are computed by pure functions of (state, outcome, elapsed
// time), checked lazily on each call — there is no background timer.
//
// # Usage
//
//	b, err := circuitbreaker.New(circuitbreaker.Config{
//		FailureThreshold: 5,
//		RecoveryTimeout:  30 * time.Second,
//		Retry:            retry.StandardConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = b.Do(ctx, func(ctx context.Context) error {
//		return client.Charge(ctx, amount)
//	})
//	if errors.Is(err, circuitbreaker.ErrOpen) {
//		return handleFallback()
//	}
//
// Operations returning a value use the generic helper:
//
//	user, err := circuitbreaker.Run(ctx, b, func(ctx context.Context) (*User, error) {
//		return client.GetUser(ctx, id)
//	})
//
// ErrOpen is a distinct sentinel, always distinguishable from the wrapped
// operation's own errors.
package circuitbreaker
