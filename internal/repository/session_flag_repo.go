package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bloggify-frontend/internal/database"
	"github.com/lib/pq"
)

// sessionFlagRepo is the PostgreSQL implementation of SessionFlagRepository
type sessionFlagRepo struct {
	db *database.DB
}

// NewSessionFlagRepo creates a new PostgreSQL session flag repository
func NewSessionFlagRepo(db *database.DB) SessionFlagRepository {
	return &sessionFlagRepo{db: db}
}

// Get retrieves all flags of a session
func (r *sessionFlagRepo) Get(ctx context.Context, sessionID string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM session_flags WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan session flag: %w", err)
		}
		flags[key] = value
	}
	return flags, rows.Err()
}

// Set upserts flags for a session
func (r *sessionFlagRepo) Set(ctx context.Context, sessionID string, flags map[string]string) error {
	if len(flags) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO session_flags (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	for key, value := range flags {
		if _, err := tx.ExecContext(ctx, query, sessionID, key, value, now); err != nil {
			return fmt.Errorf("upsert session flag %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session flags: %w", err)
	}
	return nil
}

// Delete removes flags of a session; both logout flags disappear together
func (r *sessionFlagRepo) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM session_flags WHERE session_id = $1 AND key = ANY($2)`,
		sessionID, pq.Array(keys),
	)
	if err != nil {
		return fmt.Errorf("delete session flags: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session flags: %w", err)
	}
	return nil
}

// Prune removes flags of sessions older than the cookie lifetime
func (r *sessionFlagRepo) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	return r.db.PruneSessionFlags(ctx, olderThan)
}
