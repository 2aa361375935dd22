// Package redis caches catalog responses in Redis.
//
// The cache is a decorator over ports.CatalogGateway. Redis is an optimization
// only: any Redis failure is logged and the call falls through to the wrapped
// gateway. Upstream errors are never cached.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/animefmt/internal/logging"
	"github.com/aretw0/animefmt/pkg/domain"
	"github.com/aretw0/animefmt/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every key written by the cache.
	DefaultPrefix = "animefmt:catalog:"
	// DefaultTTL is how long a catalog response stays cached.
	DefaultTTL = 15 * time.Minute
)

// CachedGateway implements ports.CatalogGateway on top of another gateway.
type CachedGateway struct {
	next   ports.CatalogGateway
	client backend.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a CachedGateway.
type Option func(*CachedGateway)

// WithTTL sets the cache entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *CachedGateway) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *CachedGateway) {
		c.prefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *CachedGateway) {
		c.logger = l
	}
}

// NewFromClient wraps next with a cache backed by client.
func NewFromClient(client backend.UniversalClient, next ports.CatalogGateway, opts ...Option) *CachedGateway {
	c := &CachedGateway{
		next:   next,
		client: client,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New connects to addr and wraps next. The connection is verified with PING.
func New(ctx context.Context, addr, password string, db int, next ports.CatalogGateway, opts ...Option) (*CachedGateway, error) {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return NewFromClient(client, next, opts...), nil
}

// Close releases the Redis connection.
func (c *CachedGateway) Close() error {
	return c.client.Close()
}

// Search returns a cached page or fetches and caches it.
func (c *CachedGateway) Search(ctx context.Context, term string, page, perPage int) (*domain.SearchPage, error) {
	key := fmt.Sprintf("%ssearch:%d:%d:%s", c.prefix, perPage, page, term)

	var cached domain.SearchPage
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.next.Search(ctx, term, page, perPage)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, result)
	return result, nil
}

// Media returns a cached detail record or fetches and caches it.
func (c *CachedGateway) Media(ctx context.Context, id int) (*domain.MediaDetail, error) {
	key := fmt.Sprintf("%smedia:%d", c.prefix, id)

	var cached domain.MediaDetail
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.next.Media(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, result)
	return result, nil
}

func (c *CachedGateway) load(ctx context.Context, key string, out any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, backend.Nil) {
			c.logger.Warn("catalog cache read failed", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("catalog cache entry corrupt", "key", key, "err", err)
		return false
	}
	return true
}

func (c *CachedGateway) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", "key", key, "err", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "err", err)
	}
}
