package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// RedisCacheStore implements portsrepo.CacheStore on top of Redis strings and sets.
type RedisCacheStore struct {
	client redis.Cmdable
	logger *slog.Logger
}

// NewRedisCacheStore creates a RedisCacheStore. Keys are used verbatim so other
// clients of the same Redis see the documented cache namespace.
func NewRedisCacheStore(client redis.Cmdable, logger *slog.Logger) *RedisCacheStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCacheStore{client: client, logger: logger}
}

var _ portsrepo.CacheStore = (*RedisCacheStore)(nil)

func (r *RedisCacheStore) GetString(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	r.logger.Debug("Redis cache hit", "key", key)
	return val, true, nil
}

func (r *RedisCacheStore) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	r.logger.Debug("Redis cache set", "key", key, "ttl", ttl)
	return nil
}

func (r *RedisCacheStore) SetMembers(ctx context.Context, key string) ([]string, error) {
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Error("Redis cache smembers error", "key", key, "error", err)
		return nil, fmt.Errorf("redis smembers %s: %w", key, err)
	}
	return members, nil
}

func (r *RedisCacheStore) AddToSet(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, len(values))
	for i, v := range values {
		members[i] = v
	}
	if err := r.client.SAdd(ctx, key, members...).Err(); err != nil {
		r.logger.Error("Redis cache sadd error", "key", key, "error", err)
		return fmt.Errorf("redis sadd %s: %w", key, err)
	}
	r.logger.Debug("Redis cache set members added", "key", key, "count", len(values))
	return nil
}

func (r *RedisCacheStore) SetTTL(ctx context.Context, key string, ttl time.Duration) error {
	if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
		r.logger.Error("Redis cache expire error", "key", key, "error", err)
		return fmt.Errorf("redis expire %s: %w", key, err)
	}
	return nil
}
