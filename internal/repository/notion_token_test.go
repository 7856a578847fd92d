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

func Test_notionTokenRepository_Upsert_replacesSameInstallation(t *testing.T) {
	ctx := testutil.MockContext()
	tokenRepo := repository.NewNotionTokenRepository()
	user := testutil.SampleUser(ctx, nil)

	first := entity.NotionToken{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      user.ID,
		BotID:       "bot-1",
		WorkspaceID: "ws-1",
		AccessToken: "secret_old",
		TokenType:   "bearer",
	}
	require.NoError(t, tokenRepo.Upsert(ctx, &first))

	second := entity.NotionToken{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        user.ID,
		BotID:         "bot-1",
		WorkspaceID:   "ws-1",
		WorkspaceName: "Renamed Workspace",
		AccessToken:   "secret_new",
		TokenType:     "bearer",
	}
	require.NoError(t, tokenRepo.Upsert(ctx, &second))

	got, err := tokenRepo.GetByUserBotID(ctx, user.ID, "bot-1")
	require.NoError(t, err)
	require.Equal(t, "secret_new", got.AccessToken)
	require.Equal(t, "Renamed Workspace", got.WorkspaceName)

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.NotionToken{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func Test_notionTokenRepository_Upsert_distinctUsersKeepOwnRows(t *testing.T) {
	ctx := testutil.MockContext()
	user1 := testutil.SampleUser(ctx, nil)
	user2 := testutil.SampleUser(ctx, nil)

	testutil.SampleNotionToken(ctx, &entity.NotionToken{UserID: user1.ID, BotID: "bot-1"})
	testutil.SampleNotionToken(ctx, &entity.NotionToken{UserID: user2.ID, BotID: "bot-1"})

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.NotionToken{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func Test_notionTokenRepository_GetByUserWorkspace(t *testing.T) {
	ctx := testutil.MockContext()
	tokenRepo := repository.NewNotionTokenRepository()
	user := testutil.SampleUser(ctx, nil)
	token := testutil.SampleNotionToken(ctx, &entity.NotionToken{UserID: user.ID, WorkspaceID: "ws-1"})

	got, err := tokenRepo.GetByUserWorkspace(ctx, user.ID, "ws-1")
	require.NoError(t, err)
	require.Equal(t, token.BotID, got.BotID)

	// A credential of another user must stay invisible.
	_, err = tokenRepo.GetByUserWorkspace(ctx, uuid.NewString(), "ws-1")
	require.Error(t, err)
}
