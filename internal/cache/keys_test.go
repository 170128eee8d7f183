package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipair/match-service/internal/cache"
	"github.com/unipair/match-service/internal/config"
	"github.com/unipair/match-service/internal/db"
)

func setupCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	return cache.NewRedisCache(cfg), mr
}

func TestGetSetJSON(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	type entry struct {
		Score int `json:"score"`
	}

	var got entry
	assert.False(t, c.GetJSON(ctx, "k", &got), "miss on absent key")

	c.SetJSON(ctx, "k", entry{Score: 88}, time.Hour)
	require.True(t, c.GetJSON(ctx, "k", &got))
	assert.Equal(t, 88, got.Score)

	// entries expire with their TTL
	mr.FastForward(time.Hour + time.Minute)
	assert.False(t, c.GetJSON(ctx, "k", &got))
}

func TestInvalidateMatches_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	c.SetJSON(ctx, cache.MatchKey(1, db.CategoryRoommate), 1, time.Hour)
	c.SetJSON(ctx, cache.MatchKey(1, ""), 1, time.Hour)
	c.SetJSON(ctx, cache.MatchKey(2, db.CategoryRoommate), 1, time.Hour)

	c.InvalidateMatches(ctx, 1)

	assert.False(t, mr.Exists(cache.MatchKey(1, db.CategoryRoommate)))
	assert.False(t, mr.Exists(cache.MatchKey(1, "")))
	assert.True(t, mr.Exists(cache.MatchKey(2, db.CategoryRoommate)), "other users' entries survive")
}

func TestInvalidateLikes_BothDirections(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	c.SetJSON(ctx, cache.LikeListKey(1, cache.DirectionGiven, ""), 1, time.Hour)
	c.SetJSON(ctx, cache.LikeListKey(1, cache.DirectionReceived, db.CategoryMentor), 1, time.Hour)
	c.SetJSON(ctx, cache.LikeCheckKey(1, 2, db.CategoryRoommate), true, time.Hour)
	c.SetJSON(ctx, cache.LikeCheckKey(3, 1, db.CategoryRoommate), true, time.Hour)
	c.SetJSON(ctx, cache.LikeListKey(2, cache.DirectionGiven, ""), 1, time.Hour)

	c.InvalidateLikes(ctx, 1)

	assert.False(t, mr.Exists(cache.LikeListKey(1, cache.DirectionGiven, "")))
	assert.False(t, mr.Exists(cache.LikeListKey(1, cache.DirectionReceived, db.CategoryMentor)))
	assert.False(t, mr.Exists(cache.LikeCheckKey(1, 2, db.CategoryRoommate)), "check keys as liker")
	assert.False(t, mr.Exists(cache.LikeCheckKey(3, 1, db.CategoryRoommate)), "check keys as liked party")
	assert.True(t, mr.Exists(cache.LikeListKey(2, cache.DirectionGiven, "")))
}
