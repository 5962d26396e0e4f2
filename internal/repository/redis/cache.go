package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/finflow/identity/internal/logger"
	"github.com/finflow/identity/internal/model"
)

var _ model.UserStore = (*UserCache)(nil)

const userCacheKeyPrefix = "users:"

// UserCache is a read-through accelerator for user-by-id lookups wrapped
// around another UserStore. Correctness never depends on it: every cache
// failure falls back to the underlying store, and mutations invalidate the
// cached record. Email lookups always hit the underlying store.
type UserCache struct {
	store  model.UserStore
	client *goredis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewUserCache(store model.UserStore, client *goredis.Client, ttl time.Duration, logger *logger.Logger) *UserCache {
	return &UserCache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func userCacheKey(id uuid.UUID) string {
	return userCacheKeyPrefix + id.String()
}

func (c *UserCache) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	key := userCacheKey(id)

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var user model.User
		if err := json.Unmarshal(data, &user); err == nil {
			return user, nil
		}
		c.logger.Debug("user cache: dropping undecodable entry", "key", key)
		c.invalidate(ctx, id)
	}

	user, err := c.store.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if data, err := json.Marshal(user); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("user cache: failed to store entry",
				"key", key,
				"error", err.Error())
		}
	}

	return user, nil
}

func (c *UserCache) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return c.store.GetByEmail(ctx, email)
}

func (c *UserCache) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return c.store.ExistsByEmail(ctx, email)
}

func (c *UserCache) Create(ctx context.Context, user model.User) (model.User, error) {
	return c.store.Create(ctx, user)
}

func (c *UserCache) Update(ctx context.Context, user model.User) (model.User, error) {
	updated, err := c.store.Update(ctx, user)
	if err != nil {
		return model.User{}, err
	}

	c.invalidate(ctx, updated.ID)

	return updated, nil
}

func (c *UserCache) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, userCacheKey(id)).Err(); err != nil {
		c.logger.Debug("user cache: failed to invalidate entry",
			"user_id", id,
			"error", err.Error())
	}
}
