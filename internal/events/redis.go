package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/finflow/identity/internal/model"
)

var _ model.Publisher = (*RedisPublisher)(nil)

// RedisPublisher announces domain events over redis pub/sub. At-least-once
// is acceptable for consumers; the producer side never retries.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrUnavailable, err)
	}
	return nil
}
