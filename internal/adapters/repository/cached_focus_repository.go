package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

const DefaultCacheTTL = 5 * time.Minute

var _ domain.FocusRepository = (*CachedFocusRepository)(nil)

// CachedFocusRepository caches whole user snapshots in redis. Redis failures
// degrade to the underlying repository and are only logged.
type CachedFocusRepository struct {
	next   domain.FocusRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedFocusRepository(next domain.FocusRepository, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedFocusRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFocusRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "focus_cache"),
	}
}

func (r *CachedFocusRepository) cacheKey(userID string) string {
	return fmt.Sprintf("focuses:%s", userID)
}

// Invalidate drops the cached snapshot of the user.
func (r *CachedFocusRepository) Invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.logger.Warn("failed to invalidate", "user_id", userID, "error", err)
	}
}

func (r *CachedFocusRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Focus, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var focuses []*domain.Focus
		if err := json.Unmarshal([]byte(val), &focuses); err == nil {
			return focuses, nil
		}

		r.logger.Warn("corrupted snapshot, cleaning up key", "user_id", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", "error", err)
	}

	focuses, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(focuses); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("redis set error", "error", setErr)
		}
	}

	return focuses, nil
}

func (r *CachedFocusRepository) GetByID(ctx context.Context, userID, id string) (*domain.Focus, error) {
	return r.next.GetByID(ctx, userID, id)
}
