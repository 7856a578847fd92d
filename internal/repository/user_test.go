package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/testutil"
	"github.com/memegentino/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_userRepository_UpsertByEmail(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	first := entity.User{
		Base:  entity.Base{ID: uuid.NewString()},
		Name:  "First Name",
		Email: "someone@example.com",
		Role:  entity.MemberRole,
	}
	require.NoError(t, userRepo.UpsertByEmail(ctx, &first))

	// A second upsert with the same email must refresh the existing row
	// instead of creating another one.
	second := entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      "Renamed",
		Email:     "someone@example.com",
		AvatarURL: "https://example.com/avatar.png",
		Role:      entity.MemberRole,
	}
	require.NoError(t, userRepo.UpsertByEmail(ctx, &second))

	got, err := userRepo.GetByEmail(ctx, "someone@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, "https://example.com/avatar.png", got.AvatarURL)

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func Test_userRepository_GetByID_notFound(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	_, err := userRepo.GetByID(ctx, "no-such-user")
	require.Error(t, err)
}
