package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/portrait/internal/logging"
	"github.com/aretw0/portrait/pkg/domain"
)

// Handler processes one turn for a user. *portrait.Engine satisfies it.
type Handler interface {
	Handle(ctx context.Context, userID string, ev domain.Event) (domain.View, error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes turns per user, so that two updates from the same user
// never interleave their read-modify-write of the session.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	handler Handler

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager in front of handler.
func NewManager(handler Handler, opts ...Option) *Manager {
	m := &Manager{
		handler: handler,
		locks:   make(map[string]*lockEntry),
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(userID) after unlocking.
func (m *Manager) acquire(userID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		entry = &lockEntry{}
		m.locks[userID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, userID)
	}
}

// Handle runs one turn for userID while holding that user's lock.
func (m *Manager) Handle(ctx context.Context, userID string, ev domain.Event) (domain.View, error) {
	var view domain.View
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		var err error
		view, err = m.handler.Handle(ctx, userID, ev)
		return err
	})
	if err != nil {
		m.logger.Debug("turn failed", "user_id", userID, "event", ev.Type, "err", err)
	}
	return view, err
}

// WithLock executes a function while holding the lock for the user.
// It gives up with the context error if ctx is done before fn runs.
func (m *Manager) WithLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	entry := m.acquire(userID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(userID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
