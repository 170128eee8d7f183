package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/unipair/match-service/internal/db"
	"github.com/unipair/match-service/internal/logger"
)

// Cached data is never trusted past its TTL; both key families share the
// same one-hour bound.
const (
	MatchCacheTTL = time.Hour
	LikeCacheTTL  = time.Hour

	matchPrefix = "matches"
	likePrefix  = "likes"
)

// Direction distinguishes likes a user gave from likes they received.
type Direction string

const (
	DirectionGiven    Direction = "given"
	DirectionReceived Direction = "received"
)

// MatchKey is the candidate-set cache key for one category.
// Empty category means the combined all-categories set.
func MatchKey(userID uint64, category db.Category) string {
	if category == "" {
		return fmt.Sprintf("%s:%d:all", matchPrefix, userID)
	}
	return fmt.Sprintf("%s:%d:%s", matchPrefix, userID, category)
}

// LikeListKey caches a user's like list (given or received) per category.
func LikeListKey(userID uint64, dir Direction, category db.Category) string {
	if category == "" {
		return fmt.Sprintf("%s:%d:%s:all", likePrefix, userID, dir)
	}
	return fmt.Sprintf("%s:%d:%s:%s", likePrefix, userID, dir, category)
}

// LikeCheckKey caches the pairwise "has A liked B" boolean.
func LikeCheckKey(likerID, likedID uint64, category db.Category) string {
	return fmt.Sprintf("%s:check:%d:%d:%s", likePrefix, likerID, likedID, category)
}

// InvalidateMatches drops every candidate-set entry for the user.
// Must be called on any mutation that can change candidate-set outcomes.
// Failures are logged, not propagated: entries expire via TTL anyway.
func (c *RedisCache) InvalidateMatches(ctx context.Context, userID uint64) {
	pattern := fmt.Sprintf("%s:%d:*", matchPrefix, userID)
	n, err := c.DeleteByPattern(ctx, pattern)
	if err != nil {
		logger.Warn("match cache invalidation failed", "user_id", userID, "err", err)
		return
	}
	logger.Debug("invalidated match cache", "user_id", userID, "keys", n)
}

// InvalidateLikes drops the user's like lists and every pairwise check key
// involving them, as liker and as liked party.
func (c *RedisCache) InvalidateLikes(ctx context.Context, userID uint64) {
	patterns := []string{
		fmt.Sprintf("%s:%d:*", likePrefix, userID),
		fmt.Sprintf("%s:check:%d:*", likePrefix, userID),
		fmt.Sprintf("%s:check:*:%d:*", likePrefix, userID),
	}

	total := 0
	for _, pattern := range patterns {
		n, err := c.DeleteByPattern(ctx, pattern)
		if err != nil {
			logger.Warn("like cache invalidation failed", "user_id", userID, "pattern", pattern, "err", err)
			continue
		}
		total += n
	}
	logger.Debug("invalidated like cache", "user_id", userID, "keys", total)
}

// InvalidateUser drops everything cached for the user across both key
// families. Called by the profile subsystem when preferences change.
func (c *RedisCache) InvalidateUser(ctx context.Context, userID uint64) {
	c.InvalidateMatches(ctx, userID)
	c.InvalidateLikes(ctx, userID)
}
