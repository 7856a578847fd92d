package repository

import (
	"context"

	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type NotionTokenRepository interface {
	Upsert(ctx context.Context, token *entity.NotionToken) error
	GetByUserWorkspace(ctx context.Context, userID, workspaceID string) (*entity.NotionToken, error)
	GetByUserBotID(ctx context.Context, userID, botID string) (*entity.NotionToken, error)
	GetAllByUserID(ctx context.Context, userID string) ([]entity.NotionToken, error)
}

type notionTokenRepository struct{}

func NewNotionTokenRepository() *notionTokenRepository {
	return &notionTokenRepository{}
}

// Upsert stores a credential keyed by (user, bot). Re-exchanging a code
// for an installation the user already connected replaces the stored
// token instead of adding a second row.
func (r *notionTokenRepository) Upsert(ctx context.Context, token *entity.NotionToken) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "bot_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"workspace_id", "workspace_name", "workspace_icon",
				"access_token", "token_type", "owner", "updated_at",
			}),
		}).
		Create(token).Error
}

func (r *notionTokenRepository) GetByUserWorkspace(
	ctx context.Context, userID, workspaceID string,
) (*entity.NotionToken, error) {
	var result entity.NotionToken
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND workspace_id=?", userID, workspaceID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *notionTokenRepository) GetByUserBotID(
	ctx context.Context, userID, botID string,
) (*entity.NotionToken, error) {
	var result entity.NotionToken
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND bot_id=?", userID, botID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *notionTokenRepository) GetAllByUserID(
	ctx context.Context, userID string,
) ([]entity.NotionToken, error) {
	var result []entity.NotionToken
	err := xcontext.DB(ctx).
		Order("created_at ASC").
		Find(&result, "user_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
