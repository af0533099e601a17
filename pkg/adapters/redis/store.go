package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/portrait/pkg/domain"
	"github.com/aretw0/portrait/pkg/persistence"
)

// Store implements ports.SessionStore using Redis, so sessions survive a
// restart of the bot.
type Store struct {
	client *backend.Client
	codec  persistence.Codec
	prefix string
	ttl    time.Duration
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithSessionTTL expires idle sessions. Zero keeps them forever.
func WithSessionTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithSessionPrefix sets the key prefix for sessions.
func WithSessionPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithCodec replaces the JSON encoding, e.g. with an encrypted codec.
func WithCodec(codec persistence.Codec) StoreOption {
	return func(s *Store) {
		s.codec = codec
	}
}

// NewStore creates a session store on an existing client.
func NewStore(client *backend.Client, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		codec:  persistence.JSONCodec{},
		prefix: DefaultPrefix + "session:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromAddr dials addr and creates a session store.
func NewStoreFromAddr(addr, password string, opts ...StoreOption) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
	})
	return NewStore(client, opts...)
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

// Create stores a fresh idle session, overwriting any existing one.
func (s *Store) Create(ctx context.Context, userID string) (*domain.Session, error) {
	session := domain.NewSession(userID)
	if err := s.Put(ctx, userID, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads the user's session.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return s.codec.Decode(data)
}

// Put replaces the user's session and refreshes its expiry.
func (s *Store) Put(ctx context.Context, userID string, session *domain.Session) error {
	data, err := s.codec.Encode(session)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Remove drops the session.
func (s *Store) Remove(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
