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

func TestLikeRepository_DuplicateTriple(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLikeRepository(setupDB(t))

	_, err := repo.Create(ctx, 1, 2, db.CategoryRoommate)
	require.NoError(t, err)

	// the unique index rejects the exact triple
	_, err = repo.Create(ctx, 1, 2, db.CategoryRoommate)
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	// a different category is a distinct edge
	_, err = repo.Create(ctx, 1, 2, db.CategoryMentor)
	require.NoError(t, err)

	// so is the reverse direction
	_, err = repo.Create(ctx, 2, 1, db.CategoryRoommate)
	require.NoError(t, err)
}

func TestLikeRepository_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLikeRepository(setupDB(t))

	_, err := repo.Create(ctx, 1, 2, db.CategoryRoommate)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1, 2, db.CategoryRoommate))

	exists, err := repo.Exists(ctx, 1, 2, db.CategoryRoommate)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting an absent edge is not an error
	require.NoError(t, repo.Delete(ctx, 1, 2, db.CategoryRoommate))
}

func TestLikeRepository_Lists(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLikeRepository(setupDB(t))

	_, err := repo.Create(ctx, 1, 2, db.CategoryRoommate)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 1, 3, db.CategoryMentor)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 3, 1, db.CategoryRoommate)
	require.NoError(t, err)

	given, err := repo.ListGiven(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, given, 2)

	givenMentor, err := repo.ListGiven(ctx, 1, db.CategoryMentor)
	require.NoError(t, err)
	require.Len(t, givenMentor, 1)
	assert.Equal(t, uint64(3), givenMentor[0].LikedID)

	received, err := repo.ListReceived(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, uint64(3), received[0].LikerID)
}
