// Package memory implements ports.ResponseStore in process memory. It is
// the default store: a single-occasion invitation site rarely needs more.
package memory

import (
	"context"
	"sync"

	"github.com/kdvornichenko/birthday/pkg/domain"
)

// Store implements ports.ResponseStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Response
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Response),
	}
}

// Save persists the response in memory. The stored copy is detached from
// the caller's pointer.
func (s *Store) Save(ctx context.Context, sessionID string, resp *domain.Response) error {
	copied := resp.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the response from memory. A copy is returned so the
// caller cannot mutate store state through the pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return resp.Clone(), nil
}

// Delete removes the response.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
