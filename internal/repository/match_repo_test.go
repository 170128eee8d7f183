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

func matchRow(from, to uint64, category db.Category, score int) db.Match {
	return db.Match{
		UserFromID:     from,
		UserToID:       to,
		Category:       category,
		MatchScore:     score,
		ScoreBreakdown: map[string]int{"simpleMatch": score},
		Status:         db.MatchStatusPending,
	}
}

func TestMatchRepository_ReplaceForUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupDB(t))

	require.NoError(t, repo.ReplaceForUser(ctx, 1, []db.Match{
		matchRow(1, 2, db.CategoryRoommate, 80),
		matchRow(1, 3, db.CategoryMentor, 100),
	}))
	// another user's rows must survive the replace
	require.NoError(t, repo.ReplaceForUser(ctx, 9, []db.Match{
		matchRow(9, 2, db.CategoryRoommate, 60),
	}))

	require.NoError(t, repo.ReplaceForUser(ctx, 1, []db.Match{
		matchRow(1, 4, db.CategoryCommunication, 100),
	}))

	matches, total, err := repo.ListForUser(ctx, 1, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, matches, 1)
	assert.Equal(t, uint64(4), matches[0].UserToID)

	_, total, err = repo.ListForUser(ctx, 9, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// replacing with an empty set clears the user's rows
	require.NoError(t, repo.ReplaceForUser(ctx, 1, nil))
	_, total, err = repo.ListForUser(ctx, 1, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestMatchRepository_SamePairAcrossCategories(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupDB(t))

	// one candidate can match in every category at once
	require.NoError(t, repo.ReplaceForUser(ctx, 1, []db.Match{
		matchRow(1, 2, db.CategoryRoommate, 80),
		matchRow(1, 2, db.CategoryMentor, 100),
		matchRow(1, 2, db.CategoryCommunication, 100),
	}))

	_, total, err := repo.ListForUser(ctx, 1, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestMatchRepository_ListForUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupDB(t))

	require.NoError(t, repo.ReplaceForUser(ctx, 1, []db.Match{
		matchRow(1, 2, db.CategoryRoommate, 55),
		matchRow(1, 3, db.CategoryRoommate, 90),
	}))
	require.NoError(t, repo.ReplaceForUser(ctx, 4, []db.Match{
		matchRow(4, 1, db.CategoryMentor, 100),
	}))

	// either side of the pair counts, best score first
	matches, total, err := repo.ListForUser(ctx, 1, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, matches, 3)
	assert.Equal(t, 100, matches[0].MatchScore)
	assert.Equal(t, 90, matches[1].MatchScore)
	assert.Equal(t, 55, matches[2].MatchScore)

	// status filter
	require.NoError(t, repo.UpdateFields(ctx, matches[0].ID, map[string]any{"status": db.MatchStatusAccepted}))
	accepted, total, err := repo.ListForUser(ctx, 1, db.MatchStatusAccepted, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, accepted, 1)
	assert.Equal(t, db.MatchStatusAccepted, accepted[0].Status)

	// breakdown survives the JSON round trip
	assert.Equal(t, map[string]int{"simpleMatch": 100}, matches[0].ScoreBreakdown)
}

func TestMatchRepository_GetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupDB(t))

	_, err := repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMatchRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupDB(t))

	require.NoError(t, repo.ReplaceForUser(ctx, 1, []db.Match{
		matchRow(1, 2, db.CategoryRoommate, 80),
		matchRow(1, 3, db.CategoryRoommate, 70),
	}))
	require.NoError(t, repo.ReplaceForUser(ctx, 4, []db.Match{
		matchRow(4, 1, db.CategoryMentor, 100),
	}))

	matches, _, err := repo.ListForUser(ctx, 1, "", 1, 20)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateFields(ctx, matches[0].ID, map[string]any{"status": db.MatchStatusAccepted}))

	stats, err := repo.Stats(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Pending)
	assert.EqualValues(t, 1, stats.Accepted)
	assert.EqualValues(t, 3, stats.Total)
}
