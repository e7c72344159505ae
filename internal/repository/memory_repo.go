package repository

import (
	"context"
	"sync"
	"time"
)

// memorySessionFlagRepo keeps session flags in process memory
type memorySessionFlagRepo struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
	updated  map[string]time.Time
}

// NewMemorySessionFlagRepo creates an in-memory session flag repository
func NewMemorySessionFlagRepo() SessionFlagRepository {
	return &memorySessionFlagRepo{
		sessions: make(map[string]map[string]string),
		updated:  make(map[string]time.Time),
	}
}

func (r *memorySessionFlagRepo) Get(ctx context.Context, sessionID string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flags := make(map[string]string, len(r.sessions[sessionID]))
	for k, v := range r.sessions[sessionID] {
		flags[k] = v
	}
	return flags, nil
}

func (r *memorySessionFlagRepo) Set(ctx context.Context, sessionID string, flags map[string]string) error {
	if len(flags) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions[sessionID]
	if !ok {
		stored = make(map[string]string, len(flags))
		r.sessions[sessionID] = stored
	}
	for k, v := range flags {
		stored[k] = v
	}
	r.updated[sessionID] = time.Now()
	return nil
}

func (r *memorySessionFlagRepo) Delete(ctx context.Context, sessionID string, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(stored, k)
	}
	if len(stored) == 0 {
		delete(r.sessions, sessionID)
		delete(r.updated, sessionID)
	}
	return nil
}

func (r *memorySessionFlagRepo) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, at := range r.updated {
		if at.Before(olderThan) {
			n += int64(len(r.sessions[id]))
			delete(r.sessions, id)
			delete(r.updated, id)
		}
	}
	return n, nil
}
