// Package redis keeps sessions and cached lookups in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/portrait/internal/logging"
	"github.com/aretw0/portrait/pkg/ports"
)

const (
	DefaultPrefix = "portrait:"
	DefaultTTL    = 10 * time.Minute
)

// CachedFeed implements ports.FeedSummarizer by caching another summarizer.
// Redis failures degrade to calling the wrapped summarizer directly.
type CachedFeed struct {
	client *backend.Client
	next   ports.FeedSummarizer
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the cache.
type Option func(*CachedFeed)

// WithTTL sets how long a summary is served from the cache.
func WithTTL(ttl time.Duration) Option {
	return func(c *CachedFeed) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix namespaces the cache key.
func WithPrefix(prefix string) Option {
	return func(c *CachedFeed) {
		c.prefix = prefix
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CachedFeed) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCachedFeed wraps next with a cache backed by client.
func NewCachedFeed(client *backend.Client, next ports.FeedSummarizer, opts ...Option) *CachedFeed {
	c := &CachedFeed{
		client: client,
		next:   next,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCachedFeedFromAddr dials addr and wraps next.
func NewCachedFeedFromAddr(addr, password string, next ports.FeedSummarizer, opts ...Option) *CachedFeed {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
	})
	return NewCachedFeed(client, next, opts...)
}

func (c *CachedFeed) key() string {
	return c.prefix + "feed:summary"
}

// Summary returns the cached summary, refreshing it on a miss.
// Empty summaries and errors are not cached.
func (c *CachedFeed) Summary(ctx context.Context) (string, error) {
	cached, err := c.client.Get(ctx, c.key()).Result()
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, backend.Nil):
	default:
		c.logger.Warn("feed cache unavailable", "err", err)
	}

	summary, err := c.next.Summary(ctx)
	if err != nil {
		return "", err
	}
	if summary == "" {
		return "", nil
	}

	if err := c.client.Set(ctx, c.key(), summary, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache feed summary", "err", err)
	}
	return summary, nil
}

// Ping checks the connection.
func (c *CachedFeed) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// Close releases the client.
func (c *CachedFeed) Close() error {
	return c.client.Close()
}
