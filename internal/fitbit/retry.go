package fitbit

import (
	"context"
	"log/slog"
	"net/http"
	"restwell/internal/metrics"
	"time"
)

const (
	MaxRetries     = 3
	BaseRetryDelay = time.Second
)

// Decision is the outcome of handling one failed attempt
type Decision struct {
	Retry bool
	Delay time.Duration
	Err   *APIError
}

// Retrier applies the provider retry policy: only rate limits are retried, with exponential backoff
type Retrier struct {
	maxRetries int
	baseDelay  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	logger     *slog.Logger
}

// NewRetrier creates a retrier with the default policy
func NewRetrier(logger *slog.Logger) *Retrier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrier{
		maxRetries: MaxRetries,
		baseDelay:  BaseRetryDelay,
		sleep:      sleepContext,
		logger:     logger,
	}
}

// Handle decides what to do with a failure seen after retryCount earlier retries
func (r *Retrier) Handle(rec *APIError, retryCount int) Decision {
	switch rec.Kind {
	case KindRateLimit:
		if retryCount < r.maxRetries {
			return Decision{Retry: true, Delay: r.baseDelay * time.Duration(1<<retryCount)}
		}
		return Decision{Err: &APIError{
			Kind:    KindRateLimit,
			Status:  http.StatusTooManyRequests,
			Message: "Rate limit exceeded. Please try again later.",
		}}
	case KindInvalidToken:
		return Decision{Err: &APIError{
			Kind:    KindReconnectRequired,
			Status:  http.StatusUnauthorized,
			Message: "Please reconnect your Fitbit account",
		}}
	default:
		return Decision{Err: rec}
	}
}

// Do runs op, re-running the same request while Handle asks for a retry
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	for retryCount := 0; ; retryCount++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		decision := r.Handle(ClassifyTransport(err), retryCount)
		if !decision.Retry {
			return decision.Err
		}

		r.logger.Warn("Fitbit request rate limited, backing off",
			"component", "fitbit",
			"retry", retryCount+1,
			"delay", decision.Delay.String(),
		)
		metrics.RecordRetry(string(KindRateLimit))

		if err := r.sleep(ctx, decision.Delay); err != nil {
			return ClassifyTransport(err)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
