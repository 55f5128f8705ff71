package resultcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"altscore/pkg/platform/sentinel"
)

const keyPrefix = "altscore:result:"

// Redis backs the cache with a Redis instance so cached decisions survive
// restarts and are shared across replicas. Expiry uses Redis native TTLs.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Put(ctx context.Context, token string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, keyPrefix+token, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache result: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, token string) ([]byte, error) {
	value, err := r.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch cached result: %w: %w", sentinel.ErrUnavailable, err)
	}
	return value, nil
}
