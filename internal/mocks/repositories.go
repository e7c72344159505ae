package mocks

import (
	"context"
	"sync"
	"time"
)

// MockSessionFlagRepository is a mock implementation of SessionFlagRepository
type MockSessionFlagRepository struct {
	mu       sync.Mutex
	Flags    map[string]map[string]string
	GetError error
	SetError error
	DelError error
	SetCalls int
	DelCalls int

	PruneError  error
	PruneCalls  []time.Time
	PruneResult int64
}

func NewMockSessionFlagRepository() *MockSessionFlagRepository {
	return &MockSessionFlagRepository{
		Flags: make(map[string]map[string]string),
	}
}

func (m *MockSessionFlagRepository) Get(ctx context.Context, sessionID string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	out := make(map[string]string, len(m.Flags[sessionID]))
	for k, v := range m.Flags[sessionID] {
		out[k] = v
	}
	return out, nil
}

func (m *MockSessionFlagRepository) Set(ctx context.Context, sessionID string, flags map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}
	if m.Flags[sessionID] == nil {
		m.Flags[sessionID] = make(map[string]string)
	}
	for k, v := range flags {
		m.Flags[sessionID][k] = v
	}
	return nil
}

func (m *MockSessionFlagRepository) Delete(ctx context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DelCalls++
	if m.DelError != nil {
		return m.DelError
	}
	for _, k := range keys {
		delete(m.Flags[sessionID], k)
	}
	return nil
}

func (m *MockSessionFlagRepository) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PruneCalls = append(m.PruneCalls, olderThan)
	if m.PruneError != nil {
		return 0, m.PruneError
	}
	return m.PruneResult, nil
}

// PruneCount returns the number of Prune calls so far
func (m *MockSessionFlagRepository) PruneCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.PruneCalls)
}
