package ports

import (
	"context"

	"github.com/aretw0/portrait/pkg/domain"
)

// SessionStore maps user ids to sessions.
// Implementations must tolerate concurrent access for distinct user ids.
type SessionStore interface {
	// Create stores a fresh idle session for the user, replacing any existing one.
	Create(ctx context.Context, userID string) (*domain.Session, error)

	// Get returns the user's session.
	// Returns domain.ErrSessionNotFound if the user has none.
	Get(ctx context.Context, userID string) (*domain.Session, error)

	// Put replaces the user's session with the given snapshot.
	Put(ctx context.Context, userID string, session *domain.Session) error

	// Remove drops the user's session. Removing a missing session is not an error.
	Remove(ctx context.Context, userID string) error
}
