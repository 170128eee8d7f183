package like

import (
	"context"
	"errors"

	"github.com/unipair/match-service/internal/app"
	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/cache"
	"github.com/unipair/match-service/internal/db"
	"github.com/unipair/match-service/internal/repository"
)

// Result is the caller-facing outcome of a like/unlike call. Rejections
// (duplicate like, self-like) come back as Success=false with a message,
// not as errors; only infrastructure failures surface as errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LikeWithProfile is a like edge enriched with the counterpart's profile
// snapshot. Lists are cached as a unit, enrichment included, to avoid
// repeated joins.
type LikeWithProfile struct {
	db.Like
	Profile *db.Profile `json:"profile,omitempty"`
}

// Service records directional interest edges and keeps the like caches
// consistent with the source of truth.
type Service struct {
	appCtx   *app.AppContext
	likes    *repository.LikeRepository
	profiles *repository.ProfileRepository
}

// NewService creates a new like service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		likes:    repository.NewLikeRepository(appCtx.DB),
		profiles: repository.NewProfileRepository(appCtx.DB),
	}
}

// Like records a directional like edge.
//
// Ordering within the call: source-of-truth write, then pairwise cache
// write, then invalidation of both users' caches. A duplicate triple is an
// idempotent rejection, never an overwrite.
func (s *Service) Like(ctx context.Context, likerID, likedID uint64, category db.Category) (Result, error) {
	if likerID == likedID {
		return Result{Success: false, Message: "cannot like yourself"}, nil
	}

	checkKey := cache.LikeCheckKey(likerID, likedID, category)

	// cache-first duplicate check
	var alreadyLiked bool
	if s.appCtx.RedisCache.GetJSON(ctx, checkKey, &alreadyLiked) && alreadyLiked {
		return Result{Success: false, Message: "already liked this user"}, nil
	}

	exists, err := s.likes.Exists(ctx, likerID, likedID, category)
	if err != nil {
		return Result{}, err
	}
	if exists {
		s.appCtx.RedisCache.SetJSON(ctx, checkKey, true, cache.LikeCacheTTL)
		return Result{Success: false, Message: "already liked this user"}, nil
	}

	if _, err := s.likes.Create(ctx, likerID, likedID, category); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			// lost a race against a concurrent like of the same triple
			return Result{Success: false, Message: "already liked this user"}, nil
		}
		return Result{}, err
	}

	s.appCtx.RedisCache.SetJSON(ctx, checkKey, true, cache.LikeCacheTTL)

	// a new like can change downstream eligibility for both parties
	s.appCtx.RedisCache.InvalidateUser(ctx, likerID)
	s.appCtx.RedisCache.InvalidateUser(ctx, likedID)

	s.appCtx.Logger.Info("user liked",
		"liker_id", likerID, "liked_id", likedID, "category", category)
	return Result{Success: true, Message: "user liked successfully"}, nil
}

// Unlike removes a like edge. Removing an absent edge succeeds: deletion
// does not distinguish "didn't exist" from "removed".
func (s *Service) Unlike(ctx context.Context, likerID, likedID uint64, category db.Category) (Result, error) {
	if err := s.likes.Delete(ctx, likerID, likedID, category); err != nil {
		return Result{}, err
	}

	checkKey := cache.LikeCheckKey(likerID, likedID, category)
	if err := s.appCtx.RedisCache.Del(ctx, checkKey); err != nil {
		s.appCtx.Logger.Warn("failed to delete like check key", "key", checkKey, "err", err)
	}

	s.appCtx.RedisCache.InvalidateUser(ctx, likerID)
	s.appCtx.RedisCache.InvalidateUser(ctx, likedID)

	s.appCtx.Logger.Info("user unliked",
		"liker_id", likerID, "liked_id", likedID, "category", category)
	return Result{Success: true, Message: "user unliked successfully"}, nil
}

// IsLiked reports whether liker has liked liked within a category.
// Cache-first; on miss the source of truth is consulted and the result
// (positive or negative) is cached for future checks.
func (s *Service) IsLiked(ctx context.Context, likerID, likedID uint64, category db.Category) (bool, error) {
	checkKey := cache.LikeCheckKey(likerID, likedID, category)

	var cached bool
	if s.appCtx.RedisCache.GetJSON(ctx, checkKey, &cached) {
		return cached, nil
	}

	liked, err := s.likes.Exists(ctx, likerID, likedID, category)
	if err != nil {
		return false, err
	}

	s.appCtx.RedisCache.SetJSON(ctx, checkKey, liked, cache.LikeCacheTTL)
	return liked, nil
}

// UserLikes returns the likes the user gave, enriched with the liked
// users' profiles. Empty category means all categories.
func (s *Service) UserLikes(ctx context.Context, userID uint64, category db.Category) ([]LikeWithProfile, error) {
	return s.likeList(ctx, userID, cache.DirectionGiven, category)
}

// LikedBy returns the likes the user received, enriched with the likers'
// profiles. Empty category means all categories.
func (s *Service) LikedBy(ctx context.Context, userID uint64, category db.Category) ([]LikeWithProfile, error) {
	return s.likeList(ctx, userID, cache.DirectionReceived, category)
}

// InvalidateCache drops every like cache entry involving the user.
func (s *Service) InvalidateCache(ctx context.Context, userID uint64) {
	s.appCtx.RedisCache.InvalidateLikes(ctx, userID)
}

func (s *Service) likeList(ctx context.Context, userID uint64, dir cache.Direction, category db.Category) ([]LikeWithProfile, error) {
	key := cache.LikeListKey(userID, dir, category)

	var cached []LikeWithProfile
	if s.appCtx.RedisCache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	var likes []db.Like
	var err error
	if dir == cache.DirectionGiven {
		likes, err = s.likes.ListGiven(ctx, userID, category)
	} else {
		likes, err = s.likes.ListReceived(ctx, userID, category)
	}
	if err != nil {
		s.appCtx.Logger.Warn("like list fetch failed", "user_id", userID, "direction", dir, "err", err)
		return []LikeWithProfile{}, nil
	}

	enriched := s.enrich(ctx, likes, dir)
	s.appCtx.RedisCache.SetJSON(ctx, key, enriched, cache.LikeCacheTTL)
	return enriched, nil
}

// enrich attaches the counterpart profile to each edge: the liked user for
// given likes, the liker for received ones. A failed profile fetch leaves
// entries unenriched rather than failing the list.
func (s *Service) enrich(ctx context.Context, likes []db.Like, dir cache.Direction) []LikeWithProfile {
	enriched := make([]LikeWithProfile, 0, len(likes))
	if len(likes) == 0 {
		return enriched
	}

	ids := make([]uint64, 0, len(likes))
	for _, l := range likes {
		if dir == cache.DirectionGiven {
			ids = append(ids, l.LikedID)
		} else {
			ids = append(ids, l.LikerID)
		}
	}

	byID := make(map[uint64]*db.Profile, len(ids))
	profiles, err := s.profiles.ListByUserIDs(ctx, ids)
	if err != nil {
		s.appCtx.Logger.Warn("like enrichment fetch failed", "err", err)
	} else {
		for i := range profiles {
			byID[profiles[i].UserID] = &profiles[i]
		}
	}

	for _, l := range likes {
		entry := LikeWithProfile{Like: l}
		if dir == cache.DirectionGiven {
			entry.Profile = byID[l.LikedID]
		} else {
			entry.Profile = byID[l.LikerID]
		}
		enriched = append(enriched, entry)
	}
	return enriched
}
