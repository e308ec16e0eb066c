// Package metacache keeps resolved book metadata in Redis so repeated
// lookups of the same volume do not reach the metadata provider.
package metacache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"libraryapi/internal/book"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "metadata:volume:"
	dialTimeout = 3 * time.Second
	pingTimeout = 2 * time.Second
)

// Store is the subset of *redis.Client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Resolver is a read-through cache in front of another book.Resolver.
// Cache failures are logged and never fail a lookup.
type Resolver struct {
	store  Store
	next   book.Resolver
	ttl    time.Duration
	logger *slog.Logger
}

func NewResolver(store Store, next book.Resolver, ttl time.Duration, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, next: next, ttl: ttl, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, volumeID string) (book.Book, error) {
	key := keyPrefix + volumeID

	raw, err := r.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var b book.Book
		if jsonErr := json.Unmarshal(raw, &b); jsonErr == nil {
			return b, nil
		}
		r.logger.Warn("metadata cache entry unreadable", "key", key)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("metadata cache get failed", "key", key, "error", err)
	}

	b, err := r.next.Resolve(ctx, volumeID)
	if err != nil {
		return book.Book{}, err
	}

	payload, err := json.Marshal(b)
	if err != nil {
		return b, nil
	}
	if err := r.store.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("metadata cache set failed", "key", key, "error", err)
	}
	return b, nil
}

// Connect parses redisURL, opens a client and pings it.
func Connect(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	options.DialTimeout = dialTimeout

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	logger.Info("redis client connected", "addr", options.Addr)
	return client, nil
}
