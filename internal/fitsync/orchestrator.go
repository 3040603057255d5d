package fitsync

import (
	"context"
	"log/slog"
	"restwell/internal/core"
	"time"

	"golang.org/x/sync/errgroup"
)

// TokenSource yields an access token with enough validity left for a sync.
// A nil pair with nil error means the user must reconnect.
type TokenSource interface {
	EnsureFreshToken(ctx context.Context) (*core.TokenPair, error)
}

// MetricsFetcher fetches the four normalized daily metrics from the provider
type MetricsFetcher interface {
	FetchSleep(ctx context.Context, accessToken, date string) (core.SleepSummary, error)
	FetchHeartRate(ctx context.Context, accessToken, date string) (core.HeartRateSummary, error)
	FetchSteps(ctx context.Context, accessToken, date string) (core.StepsSummary, error)
	FetchCalories(ctx context.Context, accessToken, date string) (core.CaloriesSummary, error)
}

// Orchestrator assembles daily snapshots from parallel provider fetches
type Orchestrator struct {
	tokens  TokenSource
	fetcher MetricsFetcher
	now     func() time.Time
	logger  *slog.Logger
}

// NewOrchestrator creates a sync orchestrator
func NewOrchestrator(tokens TokenSource, fetcher MetricsFetcher, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		tokens:  tokens,
		fetcher: fetcher,
		now:     time.Now,
		logger:  logger,
	}
}

// FetchDailySnapshot fetches sleep, heart rate, steps and calories for date in parallel.
// Any failed fetch fails the whole snapshot.
func (o *Orchestrator) FetchDailySnapshot(ctx context.Context, accessToken, date string) (*core.DailySnapshot, error) {
	snapshot := &core.DailySnapshot{Date: date}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sleep, err := o.fetcher.FetchSleep(gctx, accessToken, date)
		snapshot.Sleep = sleep
		return err
	})
	g.Go(func() error {
		heart, err := o.fetcher.FetchHeartRate(gctx, accessToken, date)
		snapshot.HeartRate = heart
		return err
	})
	g.Go(func() error {
		steps, err := o.fetcher.FetchSteps(gctx, accessToken, date)
		snapshot.Steps = steps
		return err
	})
	g.Go(func() error {
		calories, err := o.fetcher.FetchCalories(gctx, accessToken, date)
		snapshot.Calories = calories
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// SyncUserData fetches today's and yesterday's snapshots with a fresh token.
// Returns core.ErrNoCredentials without contacting the provider when no usable token exists.
func (o *Orchestrator) SyncUserData(ctx context.Context) (*core.SyncResult, error) {
	pair, err := o.tokens.EnsureFreshToken(ctx)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, core.ErrNoCredentials
	}

	now := o.now().UTC()
	today := now.Truncate(24 * time.Hour)
	yesterday := today.Add(-24 * time.Hour)

	var todaySnap, yesterdaySnap *core.DailySnapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := o.FetchDailySnapshot(gctx, pair.AccessToken, today.Format(core.DateLayout))
		todaySnap = snap
		return err
	})
	g.Go(func() error {
		snap, err := o.FetchDailySnapshot(gctx, pair.AccessToken, yesterday.Format(core.DateLayout))
		yesterdaySnap = snap
		return err
	})

	if err := g.Wait(); err != nil {
		o.logger.Error("Sync failed",
			"component", "fitsync",
			"date", today.Format(core.DateLayout),
			"error", err,
		)
		return nil, err
	}

	return &core.SyncResult{
		Today:     todaySnap,
		Yesterday: yesterdaySnap,
		LastSync:  o.now(),
	}, nil
}
