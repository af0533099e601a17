package memory

import (
	"context"
	"sync"

	"github.com/aretw0/portrait/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use. Sessions are copied on the way in and out so
// callers never share a pointer with the store.
type Store struct {
	data map[string]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Session),
	}
}

// Create stores a fresh idle session, overwriting any existing one.
func (s *Store) Create(ctx context.Context, userID string) (*domain.Session, error) {
	session := domain.NewSession(userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = session.Clone()
	return session, nil
}

// Get retrieves a copy of the user's session.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Put replaces the user's session.
func (s *Store) Put(ctx context.Context, userID string, session *domain.Session) error {
	copied := session.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = copied
	return nil
}

// Remove drops the session.
func (s *Store) Remove(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
