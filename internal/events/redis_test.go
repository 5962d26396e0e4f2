package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/identity/internal/model"
)

func TestRedisPublisher_DeliversToSubscriber(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sub := client.Subscribe(ctx, model.TopicUserCreated)
	t.Cleanup(func() { _ = sub.Close() })

	_, err := sub.Receive(ctx)
	require.NoError(t, err, "subscription must be confirmed before publishing")

	p := NewRedisPublisher(client)
	require.NoError(t, p.Publish(ctx, model.TopicUserCreated, []byte(`{"user_id":"42"}`)))

	recvCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	msg, err := sub.ReceiveMessage(recvCtx)
	require.NoError(t, err)
	assert.Equal(t, model.TopicUserCreated, msg.Channel)
	assert.JSONEq(t, `{"user_id":"42"}`, msg.Payload)
}

func TestRedisPublisher_ServerDown(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mr.Close()

	p := NewRedisPublisher(client)
	err := p.Publish(ctx, model.TopicUserCreated, []byte("{}"))
	require.ErrorIs(t, err, model.ErrUnavailable)
}
