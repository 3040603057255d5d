package fitsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"restwell/internal/core"
	"restwell/internal/metrics"
	"time"
)

// Syncer produces a sync result
type Syncer interface {
	SyncUserData(ctx context.Context) (*core.SyncResult, error)
}

// SnapshotStore persists both snapshots of a sync and its time atomically
type SnapshotStore interface {
	SaveSyncResult(ctx context.Context, result *core.SyncResult) error
}

// Service runs a sync and persists its result
type Service struct {
	syncer Syncer
	store  SnapshotStore
	logger *slog.Logger
}

// NewService creates a sync service
func NewService(syncer Syncer, store SnapshotStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		syncer: syncer,
		store:  store,
		logger: logger,
	}
}

// Run performs one sync, stores both snapshots and records the sync time
func (s *Service) Run(ctx context.Context) (*core.SyncResult, error) {
	start := time.Now()

	result, err := s.syncer.SyncUserData(ctx)
	if err != nil {
		status := "failure"
		if errors.Is(err, core.ErrNoCredentials) {
			status = "no_credentials"
		}
		metrics.RecordSync(status, time.Since(start).Seconds())
		return nil, err
	}

	if err := s.store.SaveSyncResult(ctx, result); err != nil {
		metrics.RecordSync("failure", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to store sync result: %w", err)
	}

	metrics.RecordSync("success", time.Since(start).Seconds())
	s.logger.Info("Sync completed",
		"component", "fitsync",
		"today", result.Today.Date,
		"steps", result.Today.Steps.Steps,
		"sleep_minutes", result.Today.Sleep.TotalMinutes,
		"duration", time.Since(start),
	)
	return result, nil
}
