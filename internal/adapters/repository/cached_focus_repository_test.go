package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/fokus-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

type countingRepo struct {
	*InMemoryFocusRepository
	lists int
}

func (r *countingRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Focus, error) {
	r.lists++
	return r.InMemoryFocusRepository.ListByUserID(ctx, userID)
}

func TestCachedFocusRepository_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.NewRedisClient(cache.Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       1,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err(), "Failed to flush test DB")

	userID := "user-cache-1"
	day := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	inner := &countingRepo{InMemoryFocusRepository: NewInMemoryFocusRepository()}
	require.NoError(t, inner.Save(&domain.Focus{
		ID: "f1", UserID: userID, Title: "Read", CreatedAt: day,
		CompletionDates: []time.Time{day},
	}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewCachedFocusRepository(inner, rdb, time.Minute, logger)

	t.Run("Second read is served from cache", func(t *testing.T) {
		first, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		second, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 1, inner.lists)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.True(t, second[0].CompletionDates[0].Equal(day))
	})

	t.Run("Invalidate forces a reload", func(t *testing.T) {
		before := inner.lists
		repo.Invalidate(ctx, userID)

		_, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, before+1, inner.lists)
	})

	t.Run("Corrupted entry falls back to the store", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, repo.cacheKey(userID), "{not json", time.Minute).Err())
		before := inner.lists

		focuses, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, focuses, 1)
		assert.Equal(t, before+1, inner.lists)
	})
}
