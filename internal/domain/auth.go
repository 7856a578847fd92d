package domain

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"
	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/internal/model"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/api/notion"
	"github.com/memegentino/backend/pkg/crypto"
	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/xcontext"
)

type AuthDomain interface {
	OAuth2Login(context.Context, *model.OAuth2LoginRequest) (*model.OAuth2LoginResponse, error)
	OAuth2Callback(context.Context, *model.OAuth2CallbackRequest) (*model.OAuth2CallbackResponse, error)
}

type authDomain struct {
	userRepo        repository.UserRepository
	notionTokenRepo repository.NotionTokenRepository
	notionEndpoint  notion.IEndpoint
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	notionTokenRepo repository.NotionTokenRepository,
	notionEndpoint notion.IEndpoint,
) AuthDomain {
	return &authDomain{
		userRepo:        userRepo,
		notionTokenRepo: notionTokenRepo,
		notionEndpoint:  notionEndpoint,
	}
}

func (d *authDomain) OAuth2Login(
	ctx context.Context, req *model.OAuth2LoginRequest,
) (*model.OAuth2LoginResponse, error) {
	state, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate state: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OAuth2LoginResponse{
		RedirectURL: d.notionEndpoint.AuthCodeURL(state),
		State:       state,
	}, nil
}

// OAuth2Callback drives the exchange to completion or to an error
// redirect. It never returns an error object to the client directly,
// since the caller is a browser arriving from the provider.
func (d *authDomain) OAuth2Callback(
	ctx context.Context, req *model.OAuth2CallbackRequest,
) (*model.OAuth2CallbackResponse, error) {
	if req.State == "" || req.State != req.SessionState {
		return errorRedirect(ctx, errorx.BadRequest, "invalid_state"), nil
	}

	if req.Code == "" {
		return errorRedirect(ctx, errorx.BadRequest, "missing_code"), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, xcontext.Configs(ctx).Notion.Timeout)
	defer cancel()

	token, err := d.notionEndpoint.ExchangeCode(callCtx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot exchange authorization code: %v", err)
		return errorRedirect(ctx, errorx.TokenExchange, "token_exchange_failed"), nil
	}

	if token.Owner.Type != notion.OwnerTypeUser {
		return errorRedirect(ctx, errorx.UnsupportedOwner, "unsupported_owner"), nil
	}

	// The token payload only proves who installed the bot. The profile of
	// record comes from the provider's me endpoint under the new token.
	me, err := d.notionEndpoint.GetMe(callCtx, token.AccessToken)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fetch token identity: %v", err)
		return errorRedirect(ctx, errorx.IdentityResolution, "identity_resolution_failed"), nil
	}

	person, err := notion.PersonUser(me)
	if err != nil {
		if errors.Is(err, notion.ErrWorkspaceOwner) {
			return errorRedirect(ctx, errorx.UnsupportedOwner, "unsupported_owner"), nil
		}

		xcontext.Logger(ctx).Warnf("Cannot resolve person behind token: %v", err)
		return errorRedirect(ctx, errorx.IdentityResolution, "identity_resolution_failed"), nil
	}

	if person.Person.Email == "" {
		return errorRedirect(ctx, errorx.MissingEmail, "missing_email"), nil
	}

	user, err := d.upsertIdentity(ctx, person, token)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist identity: %v", err)
		return errorRedirect(ctx, errorx.Internal, "server_error"), nil
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:   user.ID,
			Name: user.Name,
			Role: user.Role,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return errorRedirect(ctx, errorx.Internal, "server_error"), nil
	}

	return &model.OAuth2CallbackResponse{
		RedirectURL: xcontext.Configs(ctx).Auth.SuccessURL,
		AccessToken: accessToken,
	}, nil
}

// upsertIdentity stores the user and the workspace credential in one
// transaction, so a failure half way leaves no partial identity behind.
func (d *authDomain) upsertIdentity(
	ctx context.Context, person *notion.User, token *notion.TokenResponse,
) (*entity.User, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.userRepo.UpsertByEmail(ctx, &entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      person.Name,
		Email:     person.Person.Email,
		AvatarURL: person.AvatarURL,
		Role:      entity.MemberRole,
	})
	if err != nil {
		return nil, err
	}

	// The upsert may have matched an existing row, so reload to learn the
	// canonical id.
	user, err := d.userRepo.GetByEmail(ctx, person.Person.Email)
	if err != nil {
		return nil, err
	}

	err = d.notionTokenRepo.Upsert(ctx, &entity.NotionToken{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        user.ID,
		BotID:         token.BotID,
		WorkspaceID:   token.WorkspaceID,
		WorkspaceName: token.WorkspaceName,
		WorkspaceIcon: token.WorkspaceIcon,
		AccessToken:   token.AccessToken,
		TokenType:     token.TokenType,
		Owner:         token.Owner.Raw(),
	})
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)
	return user, nil
}

// errorRedirect sends the browser to the error page with a coarse reason.
// The precise cause only goes to the log, keyed by its error code.
func errorRedirect(ctx context.Context, code errorx.Code, reason string) *model.OAuth2CallbackResponse {
	xcontext.Logger(ctx).Warnf("OAuth callback rejected with code %d: %s", code, reason)

	base := xcontext.Configs(ctx).Auth.ErrorURL

	u, err := url.Parse(base)
	if err != nil {
		return &model.OAuth2CallbackResponse{RedirectURL: base}
	}

	query := u.Query()
	query.Set("authError", reason)
	u.RawQuery = query.Encode()

	return &model.OAuth2CallbackResponse{RedirectURL: u.String()}
}
