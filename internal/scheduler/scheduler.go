package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"restwell/internal/core"
	"time"
)

// DefaultInterval is used when no positive interval is configured
const DefaultInterval = 60 * time.Minute

// SyncRunner performs one sync and persists the result
type SyncRunner interface {
	Run(ctx context.Context) (*core.SyncResult, error)
}

// Scheduler runs periodic background syncs
type Scheduler struct {
	runner   SyncRunner
	interval time.Duration
	timeout  time.Duration
	stopChan chan struct{}
	logger   *slog.Logger
}

// NewScheduler creates a new scheduler. Each sync is bounded by timeout when it is positive.
func NewScheduler(runner SyncRunner, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		runner:   runner,
		interval: interval,
		timeout:  timeout,
		stopChan: make(chan struct{}),
		logger:   logger,
	}
}

// Start begins the scheduler loop with an immediate first sync
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick()
	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopChan:
			s.logger.Info("Scheduler stopped")
			return
		}
	}
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

// tick performs one sync cycle
func (s *Scheduler) tick() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.runner.Run(ctx)
	if errors.Is(err, core.ErrNoCredentials) {
		s.logger.Warn("Skipping scheduled sync, Fitbit account not connected")
		return
	}
	if err != nil {
		s.logger.Error("Scheduled sync failed", "error", err)
		return
	}

	s.logger.Debug("Scheduled sync completed",
		"today", result.Today.Date,
		"last_sync", result.LastSync)
}
