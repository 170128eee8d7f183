package match

import (
	"context"
	"errors"
	"sort"

	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/db"
	"github.com/unipair/match-service/internal/repository"
)

// Candidate is an ephemeral scored recommendation produced per request.
// Not persisted unless written through SaveMatches.
type Candidate struct {
	UserID         uint64         `json:"userId"`
	Profile        db.Profile     `json:"profile"`
	MatchScore     int            `json:"matchScore"`
	ScoreBreakdown map[string]int `json:"scoreBreakdown"`
	Category       db.Category    `json:"category"`
}

// computeCategory runs the hard eligibility filter and the scoring engine
// for one category, bypassing the cache. Candidate discovery is
// best-effort: upstream read failures degrade to an empty result with a
// warning rather than an error.
func (s *Service) computeCategory(ctx context.Context, userID uint64, category db.Category) ([]Candidate, error) {
	seeker, err := s.profiles.GetProfileWithPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.appCtx.Logger.Warn("seeker profile not found", "user_id", userID)
		} else {
			s.appCtx.Logger.Warn("seeker profile fetch failed", "user_id", userID, "err", err)
		}
		return []Candidate{}, nil
	}

	if seeker.DestinationCountryID == nil {
		// every category requires a destination country
		return []Candidate{}, nil
	}

	query := repository.CandidateQuery{DestinationCountryID: *seeker.DestinationCountryID}
	switch category {
	case db.CategoryRoommate, db.CategoryCommunication:
		if seeker.AcademicTerm == nil {
			return []Candidate{}, nil
		}
		query.AcademicTerm = seeker.AcademicTerm
	case db.CategoryMentor:
		query.RequireReturned = true
	}

	profiles, err := s.profiles.FindCandidates(ctx, userID, query)
	if err != nil {
		s.appCtx.Logger.Warn("candidate fetch failed", "user_id", userID, "category", category, "err", err)
		return []Candidate{}, nil
	}

	candidates := make([]Candidate, 0, len(profiles))
	for i := range profiles {
		candidate := &profiles[i]
		if !eligible(category, candidate) {
			continue
		}

		var score int
		var breakdown map[string]int
		if category == db.CategoryRoommate {
			score, breakdown = RoommateScore(seeker.Preferences, candidate)
			if score < MinRoommateScore {
				continue
			}
		} else {
			score, breakdown = FixedScore()
		}

		candidates = append(candidates, Candidate{
			UserID:         candidate.UserID,
			Profile:        *candidate,
			MatchScore:     score,
			ScoreBreakdown: breakdown,
			Category:       category,
		})
	}

	// descending by score; stable sort keeps fetch order on ties
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	s.appCtx.Logger.Debug("computed candidates",
		"user_id", userID, "category", category, "count", len(candidates))
	return candidates, nil
}

// eligible applies the preference-level predicates that cannot be pushed
// into the SQL fetch because they live on the preferences row.
func eligible(category db.Category, candidate *db.Profile) bool {
	switch category {
	case db.CategoryRoommate:
		return candidate.Preferences != nil && candidate.Preferences.LookingForRoommate
	case db.CategoryMentor:
		return candidate.Preferences != nil && candidate.Preferences.IsMentor
	default:
		return true
	}
}
