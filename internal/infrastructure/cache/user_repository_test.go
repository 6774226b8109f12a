package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/internal/domain/repository/mocks"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestUserRepository_FailsOpenWhenRedisIsDown(t *testing.T) {
	store := mocks.NewUserRepository(t)
	logger, hook := test.NewNullLogger()
	repo := NewUserRepository(store, unreachableRedis(t), time.Minute, logger)
	ctx := context.Background()

	want := &entity.User{ID: 9, Name: "Ann", Email: "a@x.com"}
	store.On("FindByID", mock.Anything, int64(9)).Return(want, nil).Once()
	store.On("Update", mock.Anything, want).Return(nil).Once()

	got, err := repo.FindByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Update(ctx, want))

	require.NotEmpty(t, hook.Entries)
	for _, e := range hook.Entries {
		assert.Equal(t, logrus.WarnLevel, e.Level)
	}
}

func TestUserRepository_PassesNotFoundThrough(t *testing.T) {
	store := mocks.NewUserRepository(t)
	repo := NewUserRepository(store, unreachableRedis(t), time.Minute, nil)

	store.On("FindByID", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound).Once()
	_, err := repo.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DelegatesUncachedCalls(t *testing.T) {
	store := mocks.NewUserRepository(t)
	repo := NewUserRepository(store, unreachableRedis(t), time.Minute, nil)

	store.On("FindByEmailFold", mock.Anything, "A@X.com").Return(nil, repository.ErrNotFound).Once()
	_, err := repo.FindByEmailFold(context.Background(), "A@X.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "user:42", userKey(42))
}
