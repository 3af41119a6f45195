package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-rest-service/internal/adapter/cache"
	domain "user-rest-service/internal/domain/user"
	"user-rest-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a backing repository and a cache implementation; reads follow the
// cache-aside pattern, guarded by single-flight against stampedes.
type CachedUserRepository struct {
	backing user.Repository
	cache   cache.UserCache
	log     *zap.Logger
	group   singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(backing user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		backing: backing,
		cache:   cache,
		log:     log,
	}
}

// Create inserts through the backing repository and warms the cache with the
// new record. Users are never updated or deleted, so the entry cannot go stale.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	id, err := r.backing.Create(ctx, u)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		created := &domain.User{ID: id, Name: u.Name, Email: u.Email}
		if err := r.cache.Set(ctx, created); err != nil {
			r.log.Warn("failed to warm cache after create", zap.Int64("id", id), zap.Error(err))
		}
	}

	return id, nil
}

// GetByID retrieves a user by ID using the cache-aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	// Try to get from cache first
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to store", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		u, err := r.backing.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Misses are not cached; a future create under this id must be visible
		if u != nil && r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	return u, nil
}

// List delegates to the backing repository; the full collection is never cached.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.backing.List(ctx)
}

// Count delegates to the backing repository.
func (r *CachedUserRepository) Count(ctx context.Context) (int64, error) {
	return r.backing.Count(ctx)
}
