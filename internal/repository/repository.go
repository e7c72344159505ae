package repository

import (
	"context"
	"time"

	"github.com/bloggify-frontend/internal/database"
)

// SessionFlagRepository stores the per-session string flags ("token", "role")
type SessionFlagRepository interface {
	// Get returns every flag stored for the session; an unknown session yields an empty map
	Get(ctx context.Context, sessionID string) (map[string]string, error)
	// Set upserts the given flags in one transaction
	Set(ctx context.Context, sessionID string, flags map[string]string) error
	// Delete removes the given keys in one transaction
	Delete(ctx context.Context, sessionID string, keys ...string) error
	// Prune removes sessions whose flags were last written before olderThan
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	SessionFlags SessionFlagRepository

	ping func(ctx context.Context) error
}

// New creates all repositories backed by PostgreSQL
func New(db *database.DB) *Repositories {
	return &Repositories{
		SessionFlags: NewSessionFlagRepo(db),
		ping:         db.HealthCheck,
	}
}

// NewInMemory creates all repositories backed by process memory
func NewInMemory() *Repositories {
	return &Repositories{
		SessionFlags: NewMemorySessionFlagRepo(),
	}
}

// HealthCheck verifies the backing store is reachable
func (r *Repositories) HealthCheck(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}
