package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/db"
)

// ProfileRepository provides read-only access to profile + preference
// records. Profiles are owned by the profile subsystem; the matcher never
// writes them.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// CandidateQuery carries the hard SQL-level predicates of a candidate fetch.
// Preference-level predicates (lookingForRoommate, isMentor) live on the
// preferences row and are applied by the service after the fetch.
type CandidateQuery struct {
	DestinationCountryID uint64
	AcademicTerm         *string // nil = don't filter on term
	RequireReturned      bool
}

// GetProfileWithPreferences loads one profile with its preferences row.
//
// Example:
//
//	repo.GetProfileWithPreferences(ctx, 42)
func (r *ProfileRepository) GetProfileWithPreferences(ctx context.Context, userID uint64) (*db.Profile, error) {
	var profile db.Profile
	err := r.db.WithContext(ctx).
		Preload("Preferences").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, apperr.Map(err)
	}
	return &profile, nil
}

// FindCandidates returns profiles passing the SQL-level eligibility
// predicates for a seeker, preferences preloaded, no ordering guarantee.
//
// Always applied:
//   - candidate != seeker
//   - destination_country_id = q.DestinationCountryID (implies non-null)
func (r *ProfileRepository) FindCandidates(ctx context.Context, seekerID uint64, q CandidateQuery) ([]db.Profile, error) {
	query := r.db.WithContext(ctx).
		Preload("Preferences").
		Where("user_id <> ?", seekerID).
		Where("destination_country_id = ?", q.DestinationCountryID)

	if q.AcademicTerm != nil {
		query = query.Where("academic_term = ?", *q.AcademicTerm)
	}
	if q.RequireReturned {
		query = query.Where("has_returned_from_program = ?", true)
	}

	var profiles []db.Profile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, apperr.Map(err)
	}
	return profiles, nil
}

// ListByUserIDs loads profiles for a set of users, preferences preloaded.
// Used to enrich like lists with target-profile snapshots.
func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []uint64) ([]db.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []db.Profile
	err := r.db.WithContext(ctx).
		Preload("Preferences").
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, apperr.Map(err)
	}
	return profiles, nil
}

// EligibleUserIDs enumerates users the bulk sweep should process:
// active accounts whose profile visibility permits matching.
func (r *ProfileRepository) EligibleUserIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.active = ?", true).
		Where("profiles.visibility IN ?", []string{db.VisibilityPublic, db.VisibilityMatchesOnly}).
		Order("profiles.user_id").
		Pluck("profiles.user_id", &ids).Error
	if err != nil {
		return nil, apperr.Map(err)
	}
	return ids, nil
}
