// Package retry holds the backoff policy composed with the transport by
// the orchestrator. The policy is deliberately separate from the HTTP
// client so both can be unit-tested without the network.
package retry

import (
	"context"
	"time"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	sretry "github.com/sethvargo/go-retry"
)

// Policy is an exponential backoff policy with a fixed attempt budget.
type Policy struct {
	MaxAttempts int
	Base        time.Duration
}

// DefaultPolicy matches the production defaults: 3 attempts, 1s base.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, Base: time.Second}
}

// Delay returns the wait before retry number attempt (1-based):
// base, 2*base, 4*base, ...
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return p.Base << (attempt - 1)
}

// Retryable reports whether err can change outcome on a retry. Rate
// limits, timeouts and server errors are transient; NoData and malformed
// responses are terminal.
func Retryable(err error) bool {
	return mlbstats.IsKind(err, mlbstats.KindRateLimited) ||
		mlbstats.IsKind(err, mlbstats.KindTimeout) ||
		mlbstats.IsKind(err, mlbstats.KindServerError)
}

// Do runs fn, retrying retryable failures with exponential backoff until
// the attempt budget is exhausted. Terminal failures return immediately.
// The returned error is the last attempt's error.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	base := p.Base
	if base <= 0 {
		base = time.Second
	}
	b := sretry.WithMaxRetries(uint64(maxAttempts-1), sretry.NewExponential(base))
	return sretry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if Retryable(err) {
			return sretry.RetryableError(err)
		}
		return err
	})
}
