package tokens

import (
	"context"
	"fmt"
	"log/slog"
	"restwell/internal/core"
	"restwell/internal/metrics"
	"time"
)

// RefreshThreshold is how close to expiry a token may get before it is refreshed
const RefreshThreshold = 5 * time.Minute

// clearTimeout bounds the store clear after a failed refresh
const clearTimeout = 5 * time.Second

// Refresher exchanges a refresh token for a new grant at the provider
type Refresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (*core.TokenGrant, error)
}

// Status describes the stored connection for display
type Status struct {
	Connected        bool      `json:"connected"`
	AccessValid      bool      `json:"access_token_valid"`
	ExpiresAt        time.Time `json:"expires_at,omitzero"`
	ExpiresInSeconds int       `json:"expires_in_seconds"`
}

// Manager owns the token lifecycle: it is the only writer of the Store.
// Concurrent EnsureFreshToken calls near expiry may both refresh; the last write wins.
type Manager struct {
	store     Store
	refresher Refresher
	now       func() time.Time
	logger    *slog.Logger
}

// NewManager creates a token lifecycle manager
func NewManager(store Store, refresher Refresher, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:     store,
		refresher: refresher,
		now:       time.Now,
		logger:    logger,
	}
}

// EnsureFreshToken returns a token pair with at least RefreshThreshold of validity left,
// refreshing it first when needed. A nil pair with nil error means the user must reconnect.
func (m *Manager) EnsureFreshToken(ctx context.Context) (*core.TokenPair, error) {
	pair, err := m.store.GetTokenPair(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored tokens: %w", err)
	}
	if pair == nil {
		return nil, nil
	}

	if pair.Remaining(m.now()) >= RefreshThreshold {
		return pair, nil
	}

	m.logger.Info("Access token near expiry, refreshing",
		"component", "tokens",
		"expires_at", pair.ExpiresAtTime(),
	)

	grant, err := m.refresher.RefreshToken(ctx, pair.RefreshToken)
	if err != nil {
		m.failClosed(ctx, err)
		return nil, nil
	}

	if grant.RefreshToken == "" {
		grant.RefreshToken = pair.RefreshToken
	}
	refreshed := core.NewTokenPair(grant, m.now())

	if err := m.store.SaveTokenPair(ctx, refreshed); err != nil {
		m.failClosed(ctx, fmt.Errorf("failed to save refreshed tokens: %w", err))
		return nil, nil
	}

	metrics.RecordTokenRefresh("success")
	m.logger.Info("Access token refreshed",
		"component", "tokens",
		"expires_at", refreshed.ExpiresAtTime(),
	)
	return refreshed, nil
}

// failClosed clears the stored session after an unrecoverable refresh failure.
// The clear outlives the caller's context, which is often the reason the refresh failed.
func (m *Manager) failClosed(ctx context.Context, cause error) {
	metrics.RecordTokenRefresh("failure")
	m.logger.Error("Token refresh failed, clearing stored credentials",
		"component", "tokens",
		"error", cause,
	)

	clearCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clearTimeout)
	defer cancel()
	if err := m.store.ClearTokenPair(clearCtx); err != nil {
		m.logger.Error("Failed to clear stored tokens",
			"component", "tokens",
			"error", err,
		)
	}
}

// Connect stores the grant obtained from an authorization code exchange
func (m *Manager) Connect(ctx context.Context, grant *core.TokenGrant) (*core.TokenPair, error) {
	pair := core.NewTokenPair(grant, m.now())
	if err := m.store.SaveTokenPair(ctx, pair); err != nil {
		return nil, fmt.Errorf("failed to save tokens: %w", err)
	}

	m.logger.Info("Fitbit account connected",
		"component", "tokens",
		"expires_at", pair.ExpiresAtTime(),
	)
	return pair, nil
}

// Disconnect removes the stored tokens
func (m *Manager) Disconnect(ctx context.Context) error {
	if err := m.store.ClearTokenPair(ctx); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	m.logger.Info("Fitbit account disconnected", "component", "tokens")
	return nil
}

// Status reports whether tokens are stored and whether the access token is still valid
func (m *Manager) Status(ctx context.Context) (*Status, error) {
	pair, err := m.store.GetTokenPair(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored tokens: %w", err)
	}
	if pair == nil {
		return &Status{}, nil
	}

	now := m.now()
	status := &Status{
		Connected:   true,
		AccessValid: pair.IsValid(now),
		ExpiresAt:   pair.ExpiresAtTime(),
	}
	if status.AccessValid {
		status.ExpiresInSeconds = int(pair.Remaining(now).Seconds())
	}
	return status, nil
}
