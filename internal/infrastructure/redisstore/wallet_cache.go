package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/halvora/transaction-service/internal/domain"
)

// RedisWalletSessionCache keeps the wallet/APM gateway session keyed by
// transaction id so a later redirect callback can be correlated. Entries live
// as long as the payment token.
type RedisWalletSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisWalletSessionCache(client *redis.Client, ttl time.Duration) *RedisWalletSessionCache {
	return &RedisWalletSessionCache{client: client, ttl: ttl}
}

func (c *RedisWalletSessionCache) Save(ctx context.Context, transactionID string, info domain.WalletPaymentInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling wallet payment info: %w", err)
	}

	if err := c.client.Set(ctx, walletKey(transactionID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching wallet payment info for %s: %w", transactionID, err)
	}
	return nil
}

func walletKey(transactionID string) string {
	return "wallet-payment-info:" + transactionID
}
