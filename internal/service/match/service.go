package match

import (
	"context"

	"github.com/unipair/match-service/internal/app"
	"github.com/unipair/match-service/internal/cache"
	"github.com/unipair/match-service/internal/db"
	"github.com/unipair/match-service/internal/repository"
)

// Enqueuer hands recompute jobs to the queue backend. The queue package
// provides the production implementation; tests substitute a fake.
type Enqueuer interface {
	EnqueueCalculateMatches(ctx context.Context, userID uint64) error
}

// Service implements the matching API consumed by the controller and
// admin layers. It contains the business logic on top of repository and
// cache layers: hard filtering, scoring, read-through caching, and
// persisted match records.
type Service struct {
	appCtx   *app.AppContext
	profiles *repository.ProfileRepository
	matches  *repository.MatchRepository
	enqueuer Enqueuer
}

// NewService creates a new match service with dependencies from AppContext.
func NewService(appCtx *app.AppContext, enqueuer Enqueuer) *Service {
	return &Service{
		appCtx:   appCtx,
		profiles: repository.NewProfileRepository(appCtx.DB),
		matches:  repository.NewMatchRepository(appCtx.DB),
		enqueuer: enqueuer,
	}
}

// GetRoommateCandidates returns scored roommate candidates, best first,
// through the read-through cache.
func (s *Service) GetRoommateCandidates(ctx context.Context, userID uint64) ([]Candidate, error) {
	return s.categoryWithCache(ctx, userID, db.CategoryRoommate)
}

// GetMentorCandidates returns eligible mentors (fixed score 100) through
// the read-through cache.
func (s *Service) GetMentorCandidates(ctx context.Context, userID uint64) ([]Candidate, error) {
	return s.categoryWithCache(ctx, userID, db.CategoryMentor)
}

// GetCommunicationCandidates returns same-country, same-term contacts
// (fixed score 100) through the read-through cache.
func (s *Service) GetCommunicationCandidates(ctx context.Context, userID uint64) ([]Candidate, error) {
	return s.categoryWithCache(ctx, userID, db.CategoryCommunication)
}

// GetAllMatches returns candidates for one category, or for all three
// concatenated when category is empty. The combined set is cached as its
// own entry on top of the per-category entries.
func (s *Service) GetAllMatches(ctx context.Context, userID uint64, category db.Category) ([]Candidate, error) {
	if category != "" {
		return s.categoryWithCache(ctx, userID, category)
	}

	key := cache.MatchKey(userID, "")
	var cached []Candidate
	if s.appCtx.RedisCache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	all := make([]Candidate, 0)
	for _, cat := range db.Categories {
		candidates, err := s.categoryWithCache(ctx, userID, cat)
		if err != nil {
			return nil, err
		}
		all = append(all, candidates...)
	}

	s.appCtx.RedisCache.SetJSON(ctx, key, all, cache.MatchCacheTTL)
	return all, nil
}

// CalculateMatches recomputes every category from source of truth,
// refreshing the cache entries as it goes. This is the uncached path used
// by recompute jobs and RefreshMatches.
func (s *Service) CalculateMatches(ctx context.Context, userID uint64) ([]Candidate, error) {
	all := make([]Candidate, 0)
	for _, cat := range db.Categories {
		candidates, err := s.computeCategory(ctx, userID, cat)
		if err != nil {
			return nil, err
		}
		s.appCtx.RedisCache.SetJSON(ctx, cache.MatchKey(userID, cat), candidates, cache.MatchCacheTTL)
		all = append(all, candidates...)
	}

	s.appCtx.RedisCache.SetJSON(ctx, cache.MatchKey(userID, ""), all, cache.MatchCacheTTL)
	return all, nil
}

// SaveMatches replaces the user's persisted match rows wholesale with the
// given candidate set. A write failure propagates: returning success on a
// failed durable write would break the durability contract.
func (s *Service) SaveMatches(ctx context.Context, userID uint64, candidates []Candidate) error {
	rows := make([]db.Match, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, db.Match{
			UserFromID:     userID,
			UserToID:       c.UserID,
			Category:       c.Category,
			MatchScore:     c.MatchScore,
			ScoreBreakdown: c.ScoreBreakdown,
			Status:         db.MatchStatusPending,
		})
	}

	if err := s.matches.ReplaceForUser(ctx, userID, rows); err != nil {
		return err
	}

	s.appCtx.Logger.Info("saved matches", "user_id", userID, "count", len(rows))
	return nil
}

// RefreshMatches invalidates the user's cache and recomputes immediately.
// Used when the caller needs fresh data now rather than eventually.
func (s *Service) RefreshMatches(ctx context.Context, userID uint64) ([]Candidate, error) {
	s.InvalidateCache(ctx, userID)
	return s.CalculateMatches(ctx, userID)
}

// InvalidateCache drops the user's candidate-set cache entries. Called by
// the profile-edit collaborator when preferences change.
func (s *Service) InvalidateCache(ctx context.Context, userID uint64) {
	s.appCtx.RedisCache.InvalidateMatches(ctx, userID)
}

// TriggerAsyncMatchCalculation enqueues a recompute job so persisted
// matches are eventually refreshed without blocking the caller.
func (s *Service) TriggerAsyncMatchCalculation(ctx context.Context, userID uint64) error {
	if err := s.enqueuer.EnqueueCalculateMatches(ctx, userID); err != nil {
		s.appCtx.Logger.Error("failed to enqueue match calculation", "user_id", userID, "err", err)
		return err
	}
	s.appCtx.Logger.Info("queued match calculation", "user_id", userID)
	return nil
}

// categoryWithCache is the read-through path for one category: cache hit
// wins, otherwise compute, then write back with a fresh TTL.
func (s *Service) categoryWithCache(ctx context.Context, userID uint64, category db.Category) ([]Candidate, error) {
	key := cache.MatchKey(userID, category)

	var cached []Candidate
	if s.appCtx.RedisCache.GetJSON(ctx, key, &cached) {
		s.appCtx.Logger.Debug("match cache hit", "key", key)
		return cached, nil
	}

	candidates, err := s.computeCategory(ctx, userID, category)
	if err != nil {
		return nil, err
	}

	s.appCtx.RedisCache.SetJSON(ctx, key, candidates, cache.MatchCacheTTL)
	return candidates, nil
}
