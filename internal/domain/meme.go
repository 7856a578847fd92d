package domain

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/memegentino/backend/internal/common"
	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/internal/model"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/crypto"
	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MemeDomain interface {
	Create(context.Context, *model.CreateMemeRequest) (*model.CreateMemeResponse, error)
	Update(context.Context, *model.UpdateMemeRequest) (*model.UpdateMemeResponse, error)
	Delete(context.Context, *model.DeleteMemeRequest) (*model.DeleteMemeResponse, error)
	Get(context.Context, *model.GetMemeRequest) (*model.GetMemeResponse, error)
	GetList(context.Context, *model.GetMemesRequest) (*model.GetMemesResponse, error)
	ServeData(ctx context.Context)
}

type memeDomain struct {
	memeRepo        repository.MemeRepository
	notionTokenRepo repository.NotionTokenRepository
}

func NewMemeDomain(
	memeRepo repository.MemeRepository,
	notionTokenRepo repository.NotionTokenRepository,
) MemeDomain {
	return &memeDomain{
		memeRepo:        memeRepo,
		notionTokenRepo: notionTokenRepo,
	}
}

func (d *memeDomain) Create(
	ctx context.Context, req *model.CreateMemeRequest,
) (*model.CreateMemeResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if req.CreatedWithBotID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing created_with_bot_id")
	}

	data, err := base64.StdEncoding.DecodeString(req.DataBase64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Payload is not valid base64")
	}

	if maxSize := xcontext.Configs(ctx).Meme.MaxSize; len(data) > maxSize {
		return nil, errorx.New(errorx.BadRequest,
			"Payload exceeds the maximum of %d bytes", maxSize)
	}

	// The workspace of origin is resolved once, from the credential used to
	// create the artifact, and denormalized onto the row.
	token, err := d.notionTokenRepo.GetByUserBotID(ctx, userID, req.CreatedWithBotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Unknown workspace credential")
		}

		xcontext.Logger(ctx).Errorf("Cannot load workspace credential: %v", err)
		return nil, errorx.Unknown
	}

	img, err := common.ProcessImage(req.MimeType, data, xcontext.Configs(ctx).Meme.MaxEdge)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot decode image: %v", err)
	}

	meme := &entity.Meme{
		Base:               entity.Base{ID: uuid.NewString()},
		CreatedBy:          userID,
		CreatedWithBotID:   token.BotID,
		SourceBlockID:      req.SourceBlockID,
		SourceWorkspaceID:  token.WorkspaceID,
		MimeType:           img.MimeType,
		Data:               img.Data,
		WidthPx:            sql.NullInt32{Int32: int32(img.Width), Valid: true},
		HeightPx:           sql.NullInt32{Int32: int32(img.Height), Valid: true},
		TopText:            req.TopText,
		BottomText:         req.BottomText,
		Effects:            req.Effects,
		AllowPublic:        req.AllowPublic,
		AllowWorkspace:     req.AllowWorkspace,
		AllowBySourceBlock: req.AllowBySourceBlock,
	}

	if err := d.memeRepo.Create(ctx, meme); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create meme: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateMemeResponse{Meme: model.ConvertMeme(*meme)}, nil
}

func (d *memeDomain) Update(
	ctx context.Context, req *model.UpdateMemeRequest,
) (*model.UpdateMemeResponse, error) {
	affected, err := d.memeRepo.UpdateVisibilityByOwner(
		ctx, req.ID, xcontext.RequestUserID(ctx),
		repository.MemeVisibilityFilter{
			AllowPublic:        req.AllowPublic,
			AllowWorkspace:     req.AllowWorkspace,
			AllowBySourceBlock: req.AllowBySourceBlock,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update meme: %v", err)
		return nil, errorx.Unknown
	}

	if affected == 0 {
		return nil, errorx.New(errorx.NotFound, "Not found meme")
	}

	return &model.UpdateMemeResponse{}, nil
}

func (d *memeDomain) Delete(
	ctx context.Context, req *model.DeleteMemeRequest,
) (*model.DeleteMemeResponse, error) {
	affected, err := d.memeRepo.DeleteByOwner(ctx, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete meme: %v", err)
		return nil, errorx.Unknown
	}

	if affected == 0 {
		return nil, errorx.New(errorx.NotFound, "Not found meme")
	}

	return &model.DeleteMemeResponse{}, nil
}

func (d *memeDomain) Get(
	ctx context.Context, req *model.GetMemeRequest,
) (*model.GetMemeResponse, error) {
	meme, err := d.loadVisible(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetMemeResponse{Meme: model.ConvertMeme(*meme)}, nil
}

func (d *memeDomain) GetList(
	ctx context.Context, req *model.GetMemesRequest,
) (*model.GetMemesResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	memes, err := d.memeRepo.GetListByUser(ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list memes: %v", err)
		return nil, errorx.Unknown
	}

	views := []model.Meme{}
	for _, meme := range memes {
		views = append(views, model.ConvertMeme(meme))
	}

	return &model.GetMemesResponse{Memes: views}, nil
}

// ServeData writes the artifact payload itself. It bypasses the response
// envelope since the body is the image, not JSON.
func (d *memeDomain) ServeData(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)

	req := xcontext.HTTPRequest(ctx)
	if req.Method != http.MethodGet {
		http.Error(w, "Only GET is supported", http.StatusBadRequest)
		return
	}

	id := req.URL.Query().Get("id")
	meme, err := d.loadVisible(ctx, id)
	if err != nil {
		var errx errorx.Error
		if !errors.As(err, &errx) {
			errx = errorx.Unknown
		}

		status := http.StatusInternalServerError
		switch errx.Code {
		case errorx.BadRequest:
			status = http.StatusBadRequest
		case errorx.NotFound:
			status = http.StatusNotFound
		case errorx.Unauthenticated:
			status = http.StatusUnauthorized
		case errorx.PermissionDenied:
			status = http.StatusForbidden
		}

		http.Error(w, errx.Message, status)
		return
	}

	// The payload is immutable once stored, so a digest tag lets browsers
	// revalidate without refetching the bytes.
	etag := `"` + crypto.SHA256(meme.Data) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if req.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", meme.MimeType)
	if _, err := w.Write(meme.Data); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write meme payload: %v", err)
	}
}

func (d *memeDomain) loadVisible(ctx context.Context, id string) (*entity.Meme, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing meme id")
	}

	meme, err := d.memeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found meme")
		}

		xcontext.Logger(ctx).Errorf("Cannot get meme: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.visibilityGate(ctx, meme); err != nil {
		return nil, err
	}

	return meme, nil
}

// visibilityGate decides whether the caller may read a meme. The checks
// run cheapest first and stop at the first grant.
//
// AllowBySourceBlock is deliberately not consulted: granting by source
// block would require proving the caller can read that block through the
// provider, and no stored credential of the caller is guaranteed to
// reach it. The flag is persisted and surfaced so owners keep their
// intent, but it never opens access on its own.
func (d *memeDomain) visibilityGate(ctx context.Context, meme *entity.Meme) error {
	if meme.AllowPublic {
		return nil
	}

	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if userID == meme.CreatedBy {
		return nil
	}

	if meme.AllowWorkspace {
		_, err := d.notionTokenRepo.GetByUserWorkspace(ctx, userID, meme.SourceWorkspaceID)
		if err == nil {
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot load workspace credential: %v", err)
			return errorx.Unknown
		}
	}

	return errorx.New(errorx.PermissionDenied, "Permission denied")
}
