//go:build unit

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pos-checkout/internal/pkg/errs"
	"pos-checkout/internal/usecase/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBusy   = errors.New("busy")
	errBroken = errors.New("broken")
)

func classify(err error) retry.Class {
	if errors.Is(err, errBusy) {
		return retry.ClassTransient
	}
	return retry.ClassFatal
}

func TestPolicy_Decide(t *testing.T) {
	p := retry.Policy{MaxAttempts: 4, BaseDelay: 50 * time.Millisecond}

	cases := []struct {
		name    string
		attempt int
		class   retry.Class
		retry   bool
		wait    time.Duration
	}{
		{name: "first transient failure", attempt: 1, class: retry.ClassTransient, retry: true, wait: 50 * time.Millisecond},
		{name: "second transient failure", attempt: 2, class: retry.ClassTransient, retry: true, wait: 100 * time.Millisecond},
		{name: "third transient failure", attempt: 3, class: retry.ClassTransient, retry: true, wait: 150 * time.Millisecond},
		{name: "last attempt", attempt: 4, class: retry.ClassTransient, retry: false},
		{name: "fatal is never retried", attempt: 1, class: retry.ClassFatal, retry: false},
		{name: "attempt zero is invalid", attempt: 0, class: retry.ClassTransient, retry: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, wait := p.Decide(tc.attempt, tc.class)
			assert.Equal(t, tc.retry, ok)
			assert.Equal(t, tc.wait, wait)
		})
	}

	t.Run("single attempt policy never retries", func(t *testing.T) {
		ok, _ := retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond}.Decide(1, retry.ClassTransient)
		assert.False(t, ok)
	})
}

func TestPolicy_Budget(t *testing.T) {
	p := retry.Policy{MaxAttempts: 4, BaseDelay: 50 * time.Millisecond}
	assert.Equal(t, 300*time.Millisecond, p.Budget())
	assert.Equal(t, time.Duration(0), retry.Policy{MaxAttempts: 1, BaseDelay: time.Second}.Budget())
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	p := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	t.Run("returns after the first success", func(t *testing.T) {
		var seen []int
		attempts, err := retry.Run(ctx, p, classify, func(_ context.Context, attempt int) error {
			seen = append(seen, attempt)
			if attempt < 2 {
				return errBusy
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.Equal(t, []int{1, 2}, seen)
	})

	t.Run("fatal errors stop immediately", func(t *testing.T) {
		attempts, err := retry.Run(ctx, p, classify, func(context.Context, int) error { return errBroken })
		require.ErrorIs(t, err, errBroken)
		assert.Equal(t, 1, attempts)
		assert.False(t, errs.Is(err, retry.ErrAttemptsExhausted))
	})

	t.Run("exhaustion is marked", func(t *testing.T) {
		calls := 0
		attempts, err := retry.Run(ctx, p, classify, func(context.Context, int) error {
			calls++
			return errBusy
		})
		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 3, calls)
		assert.True(t, errs.Is(err, retry.ErrAttemptsExhausted))
		assert.True(t, errs.Is(err, errBusy))
	})

	t.Run("cancellation during backoff stops the loop", func(t *testing.T) {
		slow := retry.Policy{MaxAttempts: 5, BaseDelay: time.Hour}
		cctx, cancel := context.WithCancel(ctx)

		attempts, err := retry.Run(cctx, slow, classify, func(context.Context, int) error {
			cancel()
			return errBusy
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}
