// Package retry holds the backoff policy for storage contention. The policy is a pure
// decision over (attempts made, error class); Run is the loop that applies it.
package retry

import (
	"context"
	"log/slog"
	"time"

	"pos-checkout/internal/pkg/config"
	"pos-checkout/internal/pkg/errs"
)

type Class int

const (
	// ClassFatal covers semantic failures and unknown faults. They are never retried.
	ClassFatal Class = iota
	// ClassTransient is lock or serialization contention that a fresh transaction may not hit.
	ClassTransient
)

func (c Class) String() string {
	if c == ClassTransient {
		return "transient"
	}
	return "fatal"
}

var ErrAttemptsExhausted = errs.New("retry attempts exhausted")

type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func NewPolicy(cfg config.CheckoutConfig) Policy {
	return Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
	}
}

// Decide is called after attempt number `attempt` (1-based) failed with an error of the given
// class. The delay before attempt n+1 is BaseDelay*n.
func (p Policy) Decide(attempt int, class Class) (bool, time.Duration) {
	if class != ClassTransient {
		return false, 0
	}
	if attempt < 1 || attempt >= p.MaxAttempts {
		return false, 0
	}
	return true, p.BaseDelay * time.Duration(attempt)
}

// Budget is the total time spent waiting between attempts when every attempt fails.
func (p Policy) Budget() time.Duration {
	var total time.Duration
	for n := 1; n < p.MaxAttempts; n++ {
		total += p.BaseDelay * time.Duration(n)
	}
	return total
}

// Run calls fn until it succeeds or the policy says stop. Each call gets its attempt number.
// It returns the number of attempts made. When the policy runs out on a transient error
// the returned error is marked with ErrAttemptsExhausted.
func Run(ctx context.Context, p Policy, classify func(error) Class, fn func(ctx context.Context, attempt int) error) (int, error) {
	for attempt := 1; ; attempt++ {
		err := fn(ctx, attempt)
		if err == nil {
			return attempt, nil
		}

		class := classify(err)
		retry, wait := p.Decide(attempt, class)
		if !retry {
			if class == ClassTransient {
				slog.Error("giving up after transient errors",
					"attempts", attempt,
					"error", err.Error())
				return attempt, errs.Mark(err, ErrAttemptsExhausted)
			}
			return attempt, err
		}

		slog.Warn("retrying after transient error",
			"attempt", attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, errs.Wrap(ctx.Err(), "retry wait aborted")
		case <-timer.C:
		}
	}
}
