package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayIsExponential(t *testing.T) {
	p := retry.Policy{MaxAttempts: 4, Base: time.Second}

	assert.Equal(t, time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	assert.Equal(t, 4*time.Second, p.Delay(3))
	assert.Equal(t, time.Duration(0), p.Delay(0))
}

func TestRetryableClassification(t *testing.T) {
	assert.True(t, retry.Retryable(&mlbstats.FetchError{Kind: mlbstats.KindRateLimited}))
	assert.True(t, retry.Retryable(&mlbstats.FetchError{Kind: mlbstats.KindTimeout}))
	assert.True(t, retry.Retryable(&mlbstats.FetchError{Kind: mlbstats.KindServerError}))

	assert.False(t, retry.Retryable(&mlbstats.FetchError{Kind: mlbstats.KindNoData}))
	assert.False(t, retry.Retryable(&mlbstats.FetchError{Kind: mlbstats.KindMalformed}))
	assert.False(t, retry.Retryable(errors.New("some other error")))
}

func TestDoConvergesWithinBudget(t *testing.T) {
	// Fails with a retryable error on the first 2 attempts, succeeds on the 3rd.
	makeFn := func(calls *int) func(context.Context) error {
		return func(ctx context.Context) error {
			*calls++
			if *calls < 3 {
				return &mlbstats.FetchError{Kind: mlbstats.KindRateLimited}
			}
			return nil
		}
	}

	t.Run("succeeds with 3 attempts", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 3, Base: time.Millisecond}
		calls := 0
		err := p.Do(context.Background(), makeFn(&calls))
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("fails with 2 attempts", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 2, Base: time.Millisecond}
		calls := 0
		err := p.Do(context.Background(), makeFn(&calls))
		require.Error(t, err)
		assert.True(t, mlbstats.IsKind(err, mlbstats.KindRateLimited))
		assert.Equal(t, 2, calls)
	})
}

func TestDoDoesNotRetryTerminalErrors(t *testing.T) {
	p := retry.Policy{MaxAttempts: 3, Base: time.Millisecond}

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &mlbstats.FetchError{Kind: mlbstats.KindMalformed}
	})

	require.Error(t, err)
	assert.True(t, mlbstats.IsKind(err, mlbstats.KindMalformed))
	assert.Equal(t, 1, calls, "terminal errors must not be retried")
}
