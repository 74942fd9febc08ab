package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/logger"
)

type userRepoCache struct {
	UserRepository
	cache interfaces.Cache
	ttl   time.Duration
}

// NewUserRepoCache cache user directory lookup, cache failure fall back to underlying repository
func NewUserRepoCache(repo UserRepository, cache interfaces.Cache, ttl time.Duration) UserRepository {
	return &userRepoCache{UserRepository: repo, cache: cache, ttl: ttl}
}

// UserCacheKey key of cached user record
func UserCacheKey(id string) string {
	return "notif:user:" + id
}

func (r *userRepoCache) FindUser(ctx context.Context, id string) (*domain.User, error) {
	if cached, err := r.cache.Get(ctx, UserCacheKey(id)); err == nil {
		var user domain.User
		if json.Unmarshal(cached, &user) == nil {
			return &user, nil
		}
	}

	user, err := r.UserRepository.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(user); err == nil {
		logger.LogIfError(r.cache.Set(ctx, UserCacheKey(id), b, r.ttl))
	}
	return user, nil
}

func (r *userRepoCache) SaveUser(ctx context.Context, data *domain.User) error {
	if err := r.UserRepository.SaveUser(ctx, data); err != nil {
		return err
	}
	logger.LogIfError(r.cache.Delete(ctx, UserCacheKey(data.ID)))
	return nil
}
