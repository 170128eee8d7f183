package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/db"
)

// LikeRepository provides data access for directional like edges.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// Create inserts a like edge.
//
// The unique index on (liker_id, liked_id, category) guarantees a single
// row per triple; a duplicate insert maps to apperr.ErrAlreadyExists.
func (r *LikeRepository) Create(ctx context.Context, likerID, likedID uint64, category db.Category) (*db.Like, error) {
	like := db.Like{
		LikerID:  likerID,
		LikedID:  likedID,
		Category: category,
	}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return nil, apperr.Map(err)
	}
	return &like, nil
}

// Delete removes a like edge. Deleting an absent edge is a no-op, not an
// error: unlike is idempotent.
func (r *LikeRepository) Delete(ctx context.Context, likerID, likedID uint64, category db.Category) error {
	err := r.db.WithContext(ctx).
		Where("liker_id = ? AND liked_id = ? AND category = ?", likerID, likedID, category).
		Delete(&db.Like{}).Error
	return apperr.Map(err)
}

// Exists reports whether the (liker, liked, category) edge is present.
func (r *LikeRepository) Exists(ctx context.Context, likerID, likedID uint64, category db.Category) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("liker_id = ? AND liked_id = ? AND category = ?", likerID, likedID, category).
		Count(&count).Error
	if err != nil {
		return false, apperr.Map(err)
	}
	return count > 0, nil
}

// ListGiven returns likes made by the user, newest first.
// Empty category means all categories.
func (r *LikeRepository) ListGiven(ctx context.Context, userID uint64, category db.Category) ([]db.Like, error) {
	query := r.db.WithContext(ctx).
		Where("liker_id = ?", userID).
		Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var likes []db.Like
	if err := query.Find(&likes).Error; err != nil {
		return nil, apperr.Map(err)
	}
	return likes, nil
}

// ListReceived returns likes targeting the user, newest first.
// Empty category means all categories.
func (r *LikeRepository) ListReceived(ctx context.Context, userID uint64, category db.Category) ([]db.Like, error) {
	query := r.db.WithContext(ctx).
		Where("liked_id = ?", userID).
		Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var likes []db.Like
	if err := query.Find(&likes).Error; err != nil {
		return nil, apperr.Map(err)
	}
	return likes, nil
}
