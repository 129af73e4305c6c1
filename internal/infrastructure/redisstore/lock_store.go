package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/halvora/transaction-service/internal/domain"
)

// RedisLockStore implements the lease-based create-if-absent primitive on a
// single SET NX. The key expires on its own; there is no unlock path, the
// state guard covers stale retries after expiry.
type RedisLockStore struct {
	client *redis.Client
}

func NewRedisLockStore(client *redis.Client) *RedisLockStore {
	return &RedisLockStore{client: client}
}

func (s *RedisLockStore) SaveIfAbsent(ctx context.Context, lock domain.Lock, lease time.Duration) (bool, error) {
	acquired, err := s.client.SetNX(ctx, lockKey(lock.ID), lock.HolderName, lease).Result()
	if err != nil {
		return false, fmt.Errorf("acquiring lock %s: %w", lock.ID, err)
	}
	return acquired, nil
}

func lockKey(id string) string {
	return "locks:" + id
}
