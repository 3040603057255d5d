package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"restwell/internal/core"
	"time"
)

// SaveRecommendations stores recs as the current set.
// The previous current set, if any, replaces the single history entry.
func (s *SQLiteStorage) SaveRecommendations(ctx context.Context, recs *core.Recommendations) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var previous string
		err := tx.QueryRowContext(ctx, `SELECT data FROM recommendations WHERE id = 1`).Scan(&previous)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return err
		default:
			if err := moveToHistory(ctx, tx, previous, s.now()); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recommendations (id, data, generated_at) VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				data = excluded.data,
				generated_at = excluded.generated_at
		`, string(data), recs.GeneratedAt)
		return err
	})
}

func moveToHistory(ctx context.Context, tx *sql.Tx, previous string, movedAt time.Time) error {
	var recs core.Recommendations
	if err := json.Unmarshal([]byte(previous), &recs); err != nil {
		return fmt.Errorf("failed to unmarshal previous recommendations: %w", err)
	}

	entry := core.RecommendationHistoryEntry{
		FitnessRecommendations: recs.FitnessRecommendations,
		RelaxationRoutines:     recs.RelaxationRoutines,
		MovedToHistoryAt:       movedAt,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recommendation_history (id, data, moved_to_history_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			moved_to_history_at = excluded.moved_to_history_at
	`, string(data), movedAt)
	return err
}

// GetRecommendations retrieves the current recommendation set
func (s *SQLiteStorage) GetRecommendations(ctx context.Context) (*core.Recommendations, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM recommendations WHERE id = 1`).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, core.ErrRecommendationNotFound
	}
	if err != nil {
		return nil, err
	}

	var recs core.Recommendations
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}
	return &recs, nil
}

// GetRecommendationHistory returns the displaced sets; at most one is kept
func (s *SQLiteStorage) GetRecommendationHistory(ctx context.Context) ([]*core.RecommendationHistoryEntry, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM recommendation_history WHERE id = 1`).Scan(&data)

	if err == sql.ErrNoRows {
		return []*core.RecommendationHistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entry core.RecommendationHistoryEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
	}
	return []*core.RecommendationHistoryEntry{&entry}, nil
}

// ClearRecommendationHistory removes the history entry
func (s *SQLiteStorage) ClearRecommendationHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recommendation_history`)
	return err
}
