// Package cache decorates a user repository with a Redis read-through cache
// for lookups by id.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/pkg/helpers"
)

// UserRepository caches FindByID results. Redis failures are logged and
// fall through to the wrapped store.
type UserRepository struct {
	repository.UserRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewUserRepository(next repository.UserRepository, rdb redis.Cmdable, ttl time.Duration, logger logrus.FieldLogger) *UserRepository {
	return &UserRepository{UserRepository: next, rdb: rdb, ttl: ttl, logger: helpers.OrDiscard(logger)}
}

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var cached entity.User
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, userKey(id), &cached)
	if err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache read failed")
	}
	if hit {
		return &cached, nil
	}

	u, err := r.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, r.rdb, userKey(id), u, r.ttl); err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache write failed")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := r.UserRepository.Update(ctx, u); err != nil {
		return err
	}
	r.evict(ctx, u.ID)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, u *entity.User) error {
	if err := r.UserRepository.Delete(ctx, u); err != nil {
		return err
	}
	r.evict(ctx, u.ID)
	return nil
}

func (r *UserRepository) evict(ctx context.Context, id int64) {
	if err := helpers.RedisDel(ctx, r.rdb, userKey(id)); err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache evict failed")
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
