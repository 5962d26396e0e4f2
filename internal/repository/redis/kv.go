package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/finflow/identity/internal/model"
)

var _ model.KeyValueStore = (*KV)(nil)

// KV adapts a redis client to the shared key/value contract. Per-key expiry
// is handled by redis itself; entries disappear without any sweeper.
type KV struct {
	client *goredis.Client
}

func NewKV(client *goredis.Client) *KV {
	return &KV{client: client}
}

func (s *KV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrUnavailable, err)
	}
	return nil
}

func (s *KV) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", model.ErrUnavailable, err)
	}
	return val, nil
}
