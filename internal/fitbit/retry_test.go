package fitbit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRetrier records requested delays instead of sleeping
func newTestRetrier(delays *[]time.Duration) *Retrier {
	r := NewRetrier(nil)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return r
}

func TestRetrier_Handle(t *testing.T) {
	r := NewRetrier(nil)

	t.Run("rate limit backs off exponentially", func(t *testing.T) {
		for retryCount, want := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
			d := r.Handle(&APIError{Kind: KindRateLimit, Status: 429}, retryCount)
			assert.True(t, d.Retry)
			assert.Equal(t, want, d.Delay)
			assert.Nil(t, d.Err)
		}
	})

	t.Run("rate limit gives up after max retries", func(t *testing.T) {
		d := r.Handle(&APIError{Kind: KindRateLimit, Status: 429}, MaxRetries)
		assert.False(t, d.Retry)
		require.NotNil(t, d.Err)
		assert.Equal(t, KindRateLimit, d.Err.Kind)
		assert.Equal(t, 429, d.Err.Status)
	})

	t.Run("invalid token becomes reconnect required", func(t *testing.T) {
		d := r.Handle(&APIError{Kind: KindInvalidToken, Status: 401}, 0)
		assert.False(t, d.Retry)
		require.NotNil(t, d.Err)
		assert.Equal(t, KindReconnectRequired, d.Err.Kind)
		assert.Equal(t, 401, d.Err.Status)
	})

	t.Run("expired token propagates unchanged", func(t *testing.T) {
		rec := &APIError{Kind: KindExpiredToken, Status: 401, Message: "expired"}
		d := r.Handle(rec, 0)
		assert.False(t, d.Retry)
		assert.Same(t, rec, d.Err)
	})

	t.Run("other kinds propagate", func(t *testing.T) {
		for _, kind := range []ErrorKind{KindNetworkError, KindTimeout, KindUnauthorized, KindForbidden, KindNotFound, KindServerError, KindUnknownError} {
			rec := &APIError{Kind: kind}
			d := r.Handle(rec, 0)
			assert.False(t, d.Retry, string(kind))
			assert.Same(t, rec, d.Err, string(kind))
		}
	})
}

func TestRetrier_Do_RecoversAfterThreeRateLimits(t *testing.T) {
	var delays []time.Duration
	r := newTestRetrier(&delays)

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls <= 3 {
			return ClassifyStatus(429)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, delays)
}

func TestRetrier_Do_FourthRateLimitIsTerminal(t *testing.T) {
	var delays []time.Duration
	r := newTestRetrier(&delays)

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return ClassifyStatus(429)
	})

	require.Error(t, err)
	assert.Equal(t, KindRateLimit, KindOf(err))
	assert.Equal(t, 4, calls)
	assert.Len(t, delays, 3)
}

func TestRetrier_Do_NoRetryForOtherKinds(t *testing.T) {
	var delays []time.Duration
	r := newTestRetrier(&delays)

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return ClassifyStatus(500)
	})

	assert.Equal(t, KindServerError, KindOf(err))
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestRetrier_Do_ClassifiesPlainErrors(t *testing.T) {
	r := NewRetrier(nil)
	err := r.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("boom")
	})
	assert.Equal(t, KindUnknownError, KindOf(err))
}

func TestRetrier_Do_StopsWhenContextEnds(t *testing.T) {
	r := NewRetrier(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := r.Do(ctx, func(ctx context.Context) error {
		return ClassifyStatus(429)
	})
	assert.Equal(t, KindTimeout, KindOf(err))
}
