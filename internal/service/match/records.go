package match

import (
	"context"
	"fmt"
	"time"

	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/db"
	"github.com/unipair/match-service/internal/repository"
)

// Persisted match record operations. These act on rows written by the
// recompute pipeline, not on the ephemeral candidate sets.

// MatchPage is one page of persisted match rows.
type MatchPage struct {
	Matches    []db.Match
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListMatches returns the user's persisted matches, best score first,
// optionally filtered by status.
func (s *Service) ListMatches(ctx context.Context, userID uint64, status string, page, limit int) (*MatchPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	matches, total, err := s.matches.ListForUser(ctx, userID, status, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &MatchPage{
		Matches:    matches,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// UpdateMatchStatus sets a match to ACCEPTED or REJECTED. Only a
// participant of the match may change it.
func (s *Service) UpdateMatchStatus(ctx context.Context, matchID, userID uint64, status string) (*db.Match, error) {
	if status != db.MatchStatusAccepted && status != db.MatchStatusRejected {
		return nil, fmt.Errorf("invalid match status %q", status)
	}

	m, err := s.participantMatch(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.matches.UpdateFields(ctx, m.ID, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	m.Status = status
	return m, nil
}

// ShareContact records that one side of a match agreed to share contact
// details. ContactSharedAt is set exactly once, when the second side
// shares.
func (s *Service) ShareContact(ctx context.Context, matchID, userID uint64) (*db.Match, error) {
	m, err := s.participantMatch(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if m.UserFromID == userID {
		fields["contact_shared_by_from"] = true
		m.ContactSharedByFrom = true
	} else {
		fields["contact_shared_by_to"] = true
		m.ContactSharedByTo = true
	}

	if m.ContactSharedByFrom && m.ContactSharedByTo && m.ContactSharedAt == nil {
		now := time.Now().UTC()
		fields["contact_shared_at"] = now
		m.ContactSharedAt = &now
	}

	if err := s.matches.UpdateFields(ctx, m.ID, fields); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMatch removes a persisted match. Only a participant may delete it.
func (s *Service) DeleteMatch(ctx context.Context, matchID, userID uint64) error {
	m, err := s.participantMatch(ctx, matchID, userID)
	if err != nil {
		return err
	}
	return s.matches.DeleteByID(ctx, m.ID)
}

// MatchStats counts the user's persisted matches by status.
func (s *Service) MatchStats(ctx context.Context, userID uint64) (repository.MatchStats, error) {
	return s.matches.Stats(ctx, userID)
}

// participantMatch loads a match and verifies the user is one of its two
// parties.
func (s *Service) participantMatch(ctx context.Context, matchID, userID uint64) (*db.Match, error) {
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.UserFromID != userID && m.UserToID != userID {
		return nil, apperr.Unauthorized("user is not part of this match")
	}
	return m, nil
}
