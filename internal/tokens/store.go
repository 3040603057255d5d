package tokens

import (
	"context"
	"restwell/internal/core"
	"sync"
)

// Store persists the single Fitbit token slot.
// GetTokenPair returns nil with no error when the slot is empty.
type Store interface {
	GetTokenPair(ctx context.Context) (*core.TokenPair, error)
	SaveTokenPair(ctx context.Context, pair *core.TokenPair) error
	ClearTokenPair(ctx context.Context) error
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu   sync.Mutex
	pair *core.TokenPair
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetTokenPair(ctx context.Context) (*core.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pair == nil {
		return nil, nil
	}
	pair := *s.pair
	return &pair, nil
}

func (s *MemoryStore) SaveTokenPair(ctx context.Context, pair *core.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *pair
	s.pair = &stored
	return nil
}

func (s *MemoryStore) ClearTokenPair(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = nil
	return nil
}
