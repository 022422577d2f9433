package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/rogue-engine/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu         sync.RWMutex
	gamestates map[uuid.UUID]*state.GameState
	pingError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates: make(map[uuid.UUID]*state.GameState),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamestates[id] = gs
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gamestates[id], nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	return nil
}
