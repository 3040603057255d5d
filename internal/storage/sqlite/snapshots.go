package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"restwell/internal/core"
	"time"
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveSnapshot stores the snapshot for its date, replacing any earlier sync of the same day
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snapshot *core.DailySnapshot, syncedAt time.Time) error {
	return saveSnapshot(ctx, s.db, snapshot, syncedAt)
}

// SaveSyncResult stores both snapshots of a sync and its time in one transaction
func (s *SQLiteStorage) SaveSyncResult(ctx context.Context, result *core.SyncResult) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, snapshot := range []*core.DailySnapshot{result.Yesterday, result.Today} {
			if err := saveSnapshot(ctx, tx, snapshot, result.LastSync); err != nil {
				return fmt.Errorf("failed to save snapshot %s: %w", snapshot.Date, err)
			}
		}
		if err := setLastSync(ctx, tx, result.LastSync); err != nil {
			return fmt.Errorf("failed to record sync time: %w", err)
		}
		return nil
	})
}

func saveSnapshot(ctx context.Context, db execer, snapshot *core.DailySnapshot, syncedAt time.Time) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO daily_snapshots (date, data, synced_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			data = excluded.data,
			synced_at = excluded.synced_at
	`, snapshot.Date, string(data), syncedAt)
	return err
}

// GetSnapshot retrieves the snapshot for a YYYY-MM-DD date
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, date string) (*core.DailySnapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM daily_snapshots WHERE date = ?
	`, date).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, core.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(data)
}

// GetLatestSnapshot retrieves the snapshot with the most recent date
func (s *SQLiteStorage) GetLatestSnapshot(ctx context.Context) (*core.DailySnapshot, error) {
	snapshots, err := s.ListRecentSnapshots(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, core.ErrSnapshotNotFound
	}
	return snapshots[0], nil
}

// ListRecentSnapshots returns up to limit snapshots, newest date first
func (s *SQLiteStorage) ListRecentSnapshots(ctx context.Context, limit int) ([]*core.DailySnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM daily_snapshots ORDER BY date DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]*core.DailySnapshot, 0, limit)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		snapshot, err := decodeSnapshot(data)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// SetLastSync records the time of the last successful sync
func (s *SQLiteStorage) SetLastSync(ctx context.Context, at time.Time) error {
	return setLastSync(ctx, s.db, at)
}

func setLastSync(ctx context.Context, db execer, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO sync_state (id, last_sync) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET last_sync = excluded.last_sync
	`, at)
	return err
}

// GetLastSync returns the last successful sync time, or the zero time if none
func (s *SQLiteStorage) GetLastSync(ctx context.Context) (time.Time, error) {
	var at time.Time
	err := s.db.QueryRowContext(ctx, `SELECT last_sync FROM sync_state WHERE id = 1`).Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	return at, err
}

func decodeSnapshot(data string) (*core.DailySnapshot, error) {
	var snapshot core.DailySnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
