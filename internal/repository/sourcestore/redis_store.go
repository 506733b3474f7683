// internal/repository/sourcestore/redis_store.go
package sourcestore

import (
	"context"
	"fmt"
	"time"

	xerrors "customer-lookup-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const lastSourceKey = "lookup:source:last"

// RedisStore keeps the last loaded source url in Redis so a restart can reload it.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Remember(ctx context.Context, url string) error {
	if err := s.client.Set(ctx, lastSourceKey, url, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store source url in redis: %w", err)
	}
	return nil
}

// Recall returns "" when nothing is remembered.
func (s *RedisStore) Recall(ctx context.Context) (string, error) {
	url, err := s.client.Get(ctx, lastSourceKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read source url from redis: %w", err)
	}
	return url, nil
}

func (s *RedisStore) Forget(ctx context.Context) error {
	return xerrors.Wrap(s.client.Del(ctx, lastSourceKey).Err(), "failed to delete source url from redis")
}
