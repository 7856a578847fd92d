package repository

import (
	"context"

	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/pkg/xcontext"
)

type MemeVisibilityFilter struct {
	AllowPublic        *bool
	AllowWorkspace     *bool
	AllowBySourceBlock *bool
}

type MemeRepository interface {
	Create(ctx context.Context, meme *entity.Meme) error
	GetByID(ctx context.Context, id string) (*entity.Meme, error)
	GetListByUser(ctx context.Context, userID string, offset, limit int) ([]entity.Meme, error)
	UpdateVisibilityByOwner(ctx context.Context, id, userID string, filter MemeVisibilityFilter) (int64, error)
	DeleteByOwner(ctx context.Context, id, userID string) (int64, error)
}

type memeRepository struct{}

func NewMemeRepository() *memeRepository {
	return &memeRepository{}
}

func (r *memeRepository) Create(ctx context.Context, meme *entity.Meme) error {
	return xcontext.DB(ctx).Create(meme).Error
}

func (r *memeRepository) GetByID(ctx context.Context, id string) (*entity.Meme, error) {
	var result entity.Meme
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *memeRepository) GetListByUser(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Meme, error) {
	var result []entity.Meme
	err := xcontext.DB(ctx).
		Select("id", "created_at", "updated_at", "created_by", "created_with_bot_id",
			"source_block_id", "source_workspace_id", "mime_type",
			"width_px", "height_px", "top_text", "bottom_text", "effects",
			"allow_public", "allow_workspace", "allow_by_source_block").
		Where("created_by=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateVisibilityByOwner changes visibility flags of a meme only when it
// belongs to userID. The returned count tells the caller whether anything
// matched, so a foreign meme cannot be told apart from a missing one.
func (r *memeRepository) UpdateVisibilityByOwner(
	ctx context.Context, id, userID string, filter MemeVisibilityFilter,
) (int64, error) {
	updates := map[string]any{}
	if filter.AllowPublic != nil {
		updates["allow_public"] = *filter.AllowPublic
	}
	if filter.AllowWorkspace != nil {
		updates["allow_workspace"] = *filter.AllowWorkspace
	}
	if filter.AllowBySourceBlock != nil {
		updates["allow_by_source_block"] = *filter.AllowBySourceBlock
	}

	if len(updates) == 0 {
		return 0, nil
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Meme{}).
		Where("id=? AND created_by=?", id, userID).
		Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *memeRepository) DeleteByOwner(ctx context.Context, id, userID string) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("id=? AND created_by=?", id, userID).
		Delete(&entity.Meme{})
	return tx.RowsAffected, tx.Error
}
