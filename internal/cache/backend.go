package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend is the key-value surface the page cache needs. Implementations
// must treat a missing key as (nil, false, nil), not as an error.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	KeysMatching(ctx context.Context, pattern string) ([]string, error)
	DeleteKeys(ctx context.Context, keys []string) error
}

// RedisBackend implements Backend on a Redis client.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend returns a new RedisBackend.
func NewRedisBackend(rdb *redis.Client) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.rdb.Set(ctx, key, value, ttl).Err()
}

func (b *RedisBackend) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := b.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (b *RedisBackend) DeleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.rdb.Del(ctx, keys...).Err()
}
