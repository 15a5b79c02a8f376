package store

import (
	"context"
	"sync"

	"smartbartender/internal/domain"
)

// MemoryStore keeps the mapping in process memory. State is lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	creds domain.Credentials
	saves int
}

// NewMemoryStore returns a MemoryStore seeded with a copy of initial.
func NewMemoryStore(initial domain.Credentials) *MemoryStore {
	return &MemoryStore{creds: initial.Clone()}
}

// Load returns a copy of the current mapping.
func (s *MemoryStore) Load(ctx context.Context) (domain.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Clone(), nil
}

// Save replaces the mapping with a copy of creds.
func (s *MemoryStore) Save(ctx context.Context, creds domain.Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Compile-time assertion that MemoryStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*MemoryStore)(nil)
