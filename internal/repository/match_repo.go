package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/db"
)

// MatchRepository provides data access for persisted match records.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// MatchStats aggregates a user's persisted matches by status.
type MatchStats struct {
	Pending  int64
	Accepted int64
	Total    int64
}

// ReplaceForUser replaces the user's outgoing match rows wholesale:
// delete everything where user_from_id = userID, then bulk-insert the new
// set. Runs in one transaction so a reader never observes a mix of old and
// new rows.
//
// Example:
//
//	repo.ReplaceForUser(ctx, 42, freshMatches)
func (r *MatchRepository) ReplaceForUser(ctx context.Context, userID uint64, matches []db.Match) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_from_id = ?", userID).Delete(&db.Match{}).Error; err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		return tx.Create(&matches).Error
	})
	return apperr.Map(err)
}

// ListForUser returns the user's matches (either side of the pair), best
// score first, with an optional status filter and offset pagination.
// Returns the page plus the total row count for the filter.
func (r *MatchRepository) ListForUser(
	ctx context.Context,
	userID uint64,
	status string,
	page, limit int,
) ([]db.Match, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_from_id = ? OR user_to_id = ?", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Map(err)
	}

	var matches []db.Match
	err := query.
		Order("match_score DESC").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&matches).Error
	if err != nil {
		return nil, 0, apperr.Map(err)
	}
	return matches, total, nil
}

// GetByID loads a single match record.
func (r *MatchRepository) GetByID(ctx context.Context, matchID uint64) (*db.Match, error) {
	var match db.Match
	err := r.db.WithContext(ctx).First(&match, matchID).Error
	if err != nil {
		return nil, apperr.Map(err)
	}
	return &match, nil
}

// UpdateFields applies a partial update to a match row.
func (r *MatchRepository) UpdateFields(ctx context.Context, matchID uint64, fields map[string]any) error {
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("id = ?", matchID).
		Updates(fields).Error
	return apperr.Map(err)
}

// DeleteByID removes a single match record.
func (r *MatchRepository) DeleteByID(ctx context.Context, matchID uint64) error {
	err := r.db.WithContext(ctx).Delete(&db.Match{}, matchID).Error
	return apperr.Map(err)
}

// Stats counts the user's matches by status.
func (r *MatchRepository) Stats(ctx context.Context, userID uint64) (MatchStats, error) {
	var stats MatchStats

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&db.Match{}).
			Where("user_from_id = ? OR user_to_id = ?", userID, userID)
	}

	if err := base().Where("status = ?", db.MatchStatusPending).Count(&stats.Pending).Error; err != nil {
		return stats, apperr.Map(err)
	}
	if err := base().Where("status = ?", db.MatchStatusAccepted).Count(&stats.Accepted).Error; err != nil {
		return stats, apperr.Map(err)
	}
	if err := base().Count(&stats.Total).Error; err != nil {
		return stats, apperr.Map(err)
	}
	return stats, nil
}
