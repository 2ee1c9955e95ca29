// internal/pkg/kvstore/redis.go
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter stores snapshots as JSON strings in Redis
type RedisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter creates a Redis-backed snapshot store
func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// Get retrieves and decodes a snapshot
func (a *RedisAdapter) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := a.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}

	return nil
}

// Set encodes and stores a snapshot with the given expiration
func (a *RedisAdapter) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	return a.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a snapshot
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}
