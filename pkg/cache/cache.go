// Package cache stores JSON-encoded values in Redis, with an in-process
// fallback used when Redis is not reachable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/crm/config"
	"github.com/shashiranjanraj/crm/pkg/metrics"
)

// Store is a JSON value cache. A zero ttl means no expiry.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get reports a miss as (false, nil).
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
}

// ── Redis ────────────────────────────────────────────────────────────────────

type RedisStore struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Connect dials REDIS_ADDR and verifies the connection with a ping, so the
// caller can fall back to NewMemory.
func Connect(ctx context.Context) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return NewRedis(rdb), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// ── Memory ───────────────────────────────────────────────────────────────────

type memItem struct {
	data    []byte
	expires time.Time
}

type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
	now   func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{items: map[string]memItem{}, now: time.Now}
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := memItem{data: data}
	if ttl > 0 {
		item.expires = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || (!item.expires.IsZero() && s.now().After(item.expires)) {
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return false, nil
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		return false, err
	}
	metrics.CacheHits.WithLabelValues("memory").Inc()
	return true, nil
}
