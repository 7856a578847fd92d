package domain

import (
	"context"

	"github.com/memegentino/backend/internal/model"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/xcontext"
)

type WorkspaceDomain interface {
	GetWorkspaces(context.Context, *model.GetWorkspacesRequest) (*model.GetWorkspacesResponse, error)
}

type workspaceDomain struct {
	notionTokenRepo repository.NotionTokenRepository
}

func NewWorkspaceDomain(notionTokenRepo repository.NotionTokenRepository) WorkspaceDomain {
	return &workspaceDomain{notionTokenRepo: notionTokenRepo}
}

func (d *workspaceDomain) GetWorkspaces(
	ctx context.Context, req *model.GetWorkspacesRequest,
) (*model.GetWorkspacesResponse, error) {
	tokens, err := d.notionTokenRepo.GetAllByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list workspace credentials: %v", err)
		return nil, errorx.Unknown
	}

	workspaces := []model.Workspace{}
	for _, token := range tokens {
		workspaces = append(workspaces, model.ConvertWorkspace(token))
	}

	return &model.GetWorkspacesResponse{Workspaces: workspaces}, nil
}
