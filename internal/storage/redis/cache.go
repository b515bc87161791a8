package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key is absent or expired. Callers treat
// it the same as a cold cache.
var ErrCacheMiss = errors.New("cache miss")

type backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Cache is the two-tier cache facade. It talks to Redis when reachable and
// silently downgrades to an in-process store otherwise, so a missing cache
// server costs latency, never correctness.
type Cache struct {
	store    backend
	logger   *zap.Logger
	fallback bool
}

// New connects to Redis at addr. If the connection cannot be established
// the cache degrades to an in-process store; construction never fails.
func New(addr, password string, db int, logger *zap.Logger) *Cache {
	store, err := newRedisBackend(addr, password, db, logger)
	if err != nil {
		logger.Warn("redis unavailable, using in-process cache",
			zap.String("addr", addr),
			zap.Error(err),
		)
		return &Cache{store: newMemoryBackend(), logger: logger, fallback: true}
	}

	logger.Info("successfully connected to Redis", zap.String("addr", addr))
	return &Cache{store: store, logger: logger}
}

// InMemory builds a cache backed only by the in-process store. Used by
// tests and by callers that explicitly opt out of Redis.
func InMemory(logger *zap.Logger) *Cache {
	return &Cache{store: newMemoryBackend(), logger: logger, fallback: true}
}

// Fallback reports whether the cache is running on the in-process store.
func (c *Cache) Fallback() bool {
	return c.fallback
}

func (c *Cache) Close() error {
	return c.store.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// Set marshals value to JSON and stores it under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.Error("failed to set cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("set cache: %w", err)
	}

	return nil
}

// Get loads the value under key into dest. Returns ErrCacheMiss when the
// key is absent; store errors are logged and also reported as a miss so
// reads never fail a request.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return ErrCacheMiss
	}
	if err != nil {
		c.logger.Error("failed to get cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return ErrCacheMiss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Error("failed to delete cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("delete cache: %w", err)
	}

	return nil
}
