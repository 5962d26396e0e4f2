package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/identity/internal/model"
	"github.com/finflow/identity/internal/testutil"
)

// countingStore records how often each lookup reaches the underlying store.
type countingStore struct {
	users      map[uuid.UUID]model.User
	getByID    int
	getByEmail int
}

func newCountingStore(users ...model.User) *countingStore {
	s := &countingStore{users: map[uuid.UUID]model.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *countingStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.users[user.ID] = user
	return user, nil
}

func (s *countingStore) Update(_ context.Context, user model.User) (model.User, error) {
	if _, ok := s.users[user.ID]; !ok {
		return model.User{}, model.ErrNotFound
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *countingStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.getByID++
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *countingStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.getByEmail++
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *countingStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func cachedUser() model.User {
	now := time.Now().Truncate(time.Second)
	return model.User{
		ID:        uuid.New(),
		Email:     "a@x.com",
		FirstName: "Ada",
		Status:    model.StatusActive,
		KYCStatus: model.KYCPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserCache_SecondReadSkipsStore(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	user := cachedUser()
	store := newCountingStore(user)

	cache := NewUserCache(store, client, time.Minute, testutil.MakeNoopLogger())

	first, err := cache.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, first.Email)

	second, err := cache.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, store.getByID, "second read should be served from cache")
}

func TestUserCache_EntryExpiresBackToStore(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestRedis(t)
	user := cachedUser()
	store := newCountingStore(user)

	cache := NewUserCache(store, client, time.Minute, testutil.MakeNoopLogger())

	_, err := cache.GetByID(ctx, user.ID)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cache.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.getByID)
}

func TestUserCache_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	user := cachedUser()
	store := newCountingStore(user)

	cache := NewUserCache(store, client, time.Minute, testutil.MakeNoopLogger())

	_, err := cache.GetByID(ctx, user.ID)
	require.NoError(t, err)

	user.KYCStatus = model.KYCVerified
	_, err = cache.Update(ctx, user)
	require.NoError(t, err)

	fresh, err := cache.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.KYCVerified, fresh.KYCStatus, "stale cached record must not survive an update")
	assert.Equal(t, 2, store.getByID)
}

func TestUserCache_MissPropagatesNotFound(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	store := newCountingStore()

	cache := NewUserCache(store, client, time.Minute, testutil.MakeNoopLogger())

	_, err := cache.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserCache_RedisDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestRedis(t)
	user := cachedUser()
	store := newCountingStore(user)

	cache := NewUserCache(store, client, time.Minute, testutil.MakeNoopLogger())

	mr.Close()

	got, err := cache.GetByID(ctx, user.ID)
	require.NoError(t, err, "cache outage must not break reads")
	assert.Equal(t, user.Email, got.Email)
}

func TestUserCache_UndecodableEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestRedis(t)
	user := cachedUser()
	store := newCountingStore(user)

	require.NoError(t, mr.Set(userCacheKey(user.ID), "{not json"))

	cache := NewUserCache(store, client, time.Minute, testutil.MakeNoopLogger())

	got, err := cache.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, 1, store.getByID)
}

func TestUserCache_EmailLookupsBypassCache(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	user := cachedUser()
	store := newCountingStore(user)

	cache := NewUserCache(store, client, time.Minute, testutil.MakeNoopLogger())

	for i := 0; i < 2; i++ {
		got, err := cache.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	}
	assert.Equal(t, 2, store.getByEmail)

	exists, err := cache.ExistsByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, exists)
}
