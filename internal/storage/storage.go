package storage

import (
	"context"
	"restwell/internal/core"
	"time"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Fitbit tokens (single slot)
	GetTokenPair(ctx context.Context) (*core.TokenPair, error)
	SaveTokenPair(ctx context.Context, pair *core.TokenPair) error
	ClearTokenPair(ctx context.Context) error

	// OAuth authorization state
	SaveOAuthState(ctx context.Context, state string) error
	ConsumeOAuthState(ctx context.Context, state string, maxAge time.Duration) error

	// Daily snapshots
	SaveSnapshot(ctx context.Context, snapshot *core.DailySnapshot, syncedAt time.Time) error
	SaveSyncResult(ctx context.Context, result *core.SyncResult) error
	GetSnapshot(ctx context.Context, date string) (*core.DailySnapshot, error)
	GetLatestSnapshot(ctx context.Context) (*core.DailySnapshot, error)
	ListRecentSnapshots(ctx context.Context, limit int) ([]*core.DailySnapshot, error)
	SetLastSync(ctx context.Context, at time.Time) error
	GetLastSync(ctx context.Context) (time.Time, error)

	// Profile
	GetProfile(ctx context.Context) (*core.UserProfile, error)
	SaveProfile(ctx context.Context, profile *core.UserProfile) error

	// Recommendations
	SaveRecommendations(ctx context.Context, recs *core.Recommendations) error
	GetRecommendations(ctx context.Context) (*core.Recommendations, error)
	GetRecommendationHistory(ctx context.Context) ([]*core.RecommendationHistoryEntry, error)
	ClearRecommendationHistory(ctx context.Context) error

	// Lifecycle
	Close() error
}
