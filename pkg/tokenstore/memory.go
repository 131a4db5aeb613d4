package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
// The token does not survive process restarts; use it in tests and in
// short-lived processes that re-authenticate on every run.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read returns the stored token or ErrTokenNotFound.
func (s *MemoryStore) Read(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return "", ErrTokenNotFound
	}
	return s.token, nil
}

// Write replaces the stored token.
func (s *MemoryStore) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.set = true
	return nil
}

// Clear empties the slot.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.set = false
	return nil
}
