package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings; callers fall back to the in-process
// store when this fails.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisIdempotencyStore guards order creation keyed by caller + X-Idempotency-Key.
// idemp:<scope>:<key> is the in-flight lock, idemp:map:<scope>:<key> the created order id.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func lockKey(scope, key string) string { return "idemp:" + scope + ":" + key }
func mapKey(scope, key string) string  { return "idemp:map:" + scope + ":" + key }

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, lockKey(scope, key), "1", s.ttl).Result()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, mapKey(scope, key), value, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, mapKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Release drops the lock so a failed attempt can be retried with the same key.
func (s *RedisIdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return s.rdb.Del(ctx, lockKey(scope, key)).Err()
}

var _ usecase.IdempotencyStore = (*RedisIdempotencyStore)(nil)
