package repository_test

import (
	"testing"

	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func Test_memeRepository_UpdateVisibilityByOwner(t *testing.T) {
	ctx := testutil.MockContext()
	memeRepo := repository.NewMemeRepository()
	owner := testutil.SampleUser(ctx, nil)
	meme := testutil.SampleMeme(ctx, &entity.Meme{CreatedBy: owner.ID})

	affected, err := memeRepo.UpdateVisibilityByOwner(ctx, meme.ID, owner.ID,
		repository.MemeVisibilityFilter{AllowPublic: boolPtr(true)})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	got, err := memeRepo.GetByID(ctx, meme.ID)
	require.NoError(t, err)
	require.True(t, got.AllowPublic)
	require.False(t, got.AllowWorkspace)

	// Another user's update must not match any row.
	affected, err = memeRepo.UpdateVisibilityByOwner(ctx, meme.ID, "someone-else",
		repository.MemeVisibilityFilter{AllowPublic: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, int64(0), affected)
}

func Test_memeRepository_DeleteByOwner(t *testing.T) {
	ctx := testutil.MockContext()
	memeRepo := repository.NewMemeRepository()
	owner := testutil.SampleUser(ctx, nil)
	meme := testutil.SampleMeme(ctx, &entity.Meme{CreatedBy: owner.ID})

	affected, err := memeRepo.DeleteByOwner(ctx, meme.ID, "someone-else")
	require.NoError(t, err)
	require.Equal(t, int64(0), affected)

	affected, err = memeRepo.DeleteByOwner(ctx, meme.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	_, err = memeRepo.GetByID(ctx, meme.ID)
	require.Error(t, err)
}

func Test_memeRepository_GetListByUser(t *testing.T) {
	ctx := testutil.MockContext()
	memeRepo := repository.NewMemeRepository()
	owner := testutil.SampleUser(ctx, nil)

	for i := 0; i < 3; i++ {
		testutil.SampleMeme(ctx, &entity.Meme{CreatedBy: owner.ID})
	}
	testutil.SampleMeme(ctx, nil)

	memes, err := memeRepo.GetListByUser(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, memes, 3)
	for _, m := range memes {
		require.Equal(t, owner.ID, m.CreatedBy)
		// The listing projection must not carry the payload.
		require.Empty(t, m.Data)
	}

	memes, err = memeRepo.GetListByUser(ctx, owner.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, memes, 2)
}
