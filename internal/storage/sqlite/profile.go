package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"restwell/internal/core"
)

// GetProfile retrieves the stored user profile
func (s *SQLiteStorage) GetProfile(ctx context.Context) (*core.UserProfile, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM user_profile WHERE id = 1`).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, core.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	var profile core.UserProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile validates and replaces the stored user profile
func (s *SQLiteStorage) SaveProfile(ctx context.Context, profile *core.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	profile.UpdatedAt = s.now()
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_profile (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, string(data), profile.UpdatedAt)
	return err
}
