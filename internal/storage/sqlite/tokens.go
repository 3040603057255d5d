package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"restwell/internal/core"
	"time"
)

// GetTokenPair retrieves the stored Fitbit tokens.
// Returns nil, nil when no account is connected.
func (s *SQLiteStorage) GetTokenPair(ctx context.Context) (*core.TokenPair, error) {
	var pair core.TokenPair

	err := s.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, expires_at
		FROM fitbit_tokens WHERE id = 1
	`).Scan(&pair.AccessToken, &pair.RefreshToken, &pair.ExpiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &pair, nil
}

// SaveTokenPair replaces the stored Fitbit tokens
func (s *SQLiteStorage) SaveTokenPair(ctx context.Context, pair *core.TokenPair) error {
	now := s.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fitbit_tokens (id, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, pair.AccessToken, pair.RefreshToken, pair.ExpiresAt, now, now)
	if err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// ClearTokenPair removes the stored Fitbit tokens
func (s *SQLiteStorage) ClearTokenPair(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM fitbit_tokens WHERE id = 1`)
	return err
}

// SaveOAuthState records a state value issued with an authorization URL
func (s *SQLiteStorage) SaveOAuthState(ctx context.Context, state string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO oauth_states (state, created_at) VALUES (?, ?)
	`, state, s.now().UTC())
	return err
}

// ConsumeOAuthState deletes a previously issued state.
// Unknown, reused, or states older than maxAge return core.ErrInvalidOAuthState.
func (s *SQLiteStorage) ConsumeOAuthState(ctx context.Context, state string, maxAge time.Duration) error {
	cutoff := s.now().UTC().Add(-maxAge)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		// Drop stale states so the table does not grow with abandoned logins
		if _, err := tx.ExecContext(ctx, `DELETE FROM oauth_states WHERE created_at < ?`, cutoff); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM oauth_states WHERE state = ?`, state)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return core.ErrInvalidOAuthState
		}
		return nil
	})
}
