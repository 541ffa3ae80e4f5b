package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const balanceKeyPrefix = "point:balance:"

// RedisBalanceStore keeps one balance per user under point:balance:<id>.
// A missing key reads as balance 0, matching the implicit-creation rule.
type RedisBalanceStore struct {
	client *redis.Client
}

func NewRedisBalanceStore(client *redis.Client) *RedisBalanceStore {
	return &RedisBalanceStore{client: client}
}

func balanceKey(userID int64) string {
	return fmt.Sprintf("%s%d", balanceKeyPrefix, userID)
}

func (s *RedisBalanceStore) GetBalance(ctx context.Context, userID int64) (int64, error) {
	balance, err := s.client.Get(ctx, balanceKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get balance for user %d: %w", userID, err)
	}
	return balance, nil
}

func (s *RedisBalanceStore) SetBalance(ctx context.Context, userID int64, newBalance int64) error {
	if err := s.client.Set(ctx, balanceKey(userID), newBalance, 0).Err(); err != nil {
		return fmt.Errorf("redis set balance for user %d: %w", userID, err)
	}
	return nil
}
