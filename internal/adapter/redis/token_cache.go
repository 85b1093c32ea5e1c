package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Taraansh/e-commerce/internal/gateway"
	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "token:"

// TokenCache keeps issued session tokens so logout can invalidate them before
// they expire.
type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) gateway.TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) CacheToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := c.client.Set(ctx, tokenKeyPrefix+userID, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache token: %w", err)
	}
	return nil
}

func (c *TokenCache) InvalidateToken(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, tokenKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}
	return nil
}
