package domain

import (
	"context"
	"errors"

	"github.com/memegentino/backend/internal/model"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	notionTokenRepo repository.NotionTokenRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	notionTokenRepo repository.NotionTokenRepository,
) UserDomain {
	return &userDomain{
		userRepo:        userRepo,
		notionTokenRepo: notionTokenRepo,
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	tokens, err := d.notionTokenRepo.GetAllByUserID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list workspace credentials: %v", err)
		return nil, errorx.Unknown
	}

	workspaces := []model.Workspace{}
	for _, token := range tokens {
		workspaces = append(workspaces, model.ConvertWorkspace(token))
	}

	return &model.GetMeResponse{
		User:       model.ConvertUser(*user),
		Workspaces: workspaces,
	}, nil
}
