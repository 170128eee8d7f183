package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipair/match-service/internal/apperr"
	"github.com/unipair/match-service/internal/db"
	"github.com/unipair/match-service/internal/repository"
)

func TestProfileRepository_GetProfileWithPreferences(t *testing.T) {
	ctx := context.Background()
	gdb := setupDB(t)
	repo := repository.NewProfileRepository(gdb)

	seedProfile(t, gdb, 1, true, db.VisibilityPublic, 1, "2026-FALL")
	cleanliness := 3
	require.NoError(t, gdb.Create(&db.MatchPreferences{
		UserID:             1,
		Cleanliness:        &cleanliness,
		SmokingPreference:  db.SmokingNoPreference,
		SleepSchedule:      db.SleepEarlyBird,
		LookingForRoommate: true,
		ActivityTypes:      []string{"sports", "music"},
	}).Error)

	profile, err := repo.GetProfileWithPreferences(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, profile.Preferences)
	assert.Equal(t, 3, *profile.Preferences.Cleanliness)
	assert.True(t, profile.Preferences.LookingForRoommate)
	assert.Equal(t, []string{"sports", "music"}, profile.Preferences.ActivityTypes)

	_, err = repo.GetProfileWithPreferences(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProfileRepository_FindCandidates(t *testing.T) {
	ctx := context.Background()
	gdb := setupDB(t)
	repo := repository.NewProfileRepository(gdb)

	term := "2026-FALL"
	seedProfile(t, gdb, 1, true, db.VisibilityPublic, 1, term) // the seeker
	seedProfile(t, gdb, 2, true, db.VisibilityPublic, 1, term)
	seedProfile(t, gdb, 3, true, db.VisibilityPublic, 2, term)         // other country
	seedProfile(t, gdb, 4, true, db.VisibilityPublic, 1, "2026-SPRING") // other term
	seedProfile(t, gdb, 5, true, db.VisibilityPublic, 0, "")            // no destination at all

	ids := func(profiles []db.Profile) []uint64 {
		out := make([]uint64, 0, len(profiles))
		for _, p := range profiles {
			out = append(out, p.UserID)
		}
		return out
	}

	// country only
	got, err := repo.FindCandidates(ctx, 1, repository.CandidateQuery{DestinationCountryID: 1})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 4}, ids(got))

	// country + term
	got, err = repo.FindCandidates(ctx, 1, repository.CandidateQuery{
		DestinationCountryID: 1,
		AcademicTerm:         &term,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2}, ids(got))

	// returned-only narrows further
	require.NoError(t, gdb.Model(&db.Profile{}).
		Where("user_id = ?", 4).
		Update("has_returned_from_program", true).Error)
	got, err = repo.FindCandidates(ctx, 1, repository.CandidateQuery{
		DestinationCountryID: 1,
		RequireReturned:      true,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{4}, ids(got))
}

func TestProfileRepository_EligibleUserIDs(t *testing.T) {
	ctx := context.Background()
	gdb := setupDB(t)
	repo := repository.NewProfileRepository(gdb)

	seedProfile(t, gdb, 1, true, db.VisibilityPublic, 1, "")
	seedProfile(t, gdb, 2, true, db.VisibilityMatchesOnly, 1, "")
	seedProfile(t, gdb, 3, true, db.VisibilityPrivate, 1, "")
	seedProfile(t, gdb, 4, false, db.VisibilityPublic, 1, "")

	ids, err := repo.EligibleUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)
}
