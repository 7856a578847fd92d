package model

import (
	"context"
	"net/http"
	"time"

	"github.com/memegentino/backend/pkg/xcontext"
)

// AccessToken is the signed session object carried by the access-token
// cookie.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// OAuth2 Login
type OAuth2LoginRequest struct{}

type OAuth2LoginResponse struct {
	RedirectURL string `json:"-"`
	State       string `json:"-"`
}

func (r OAuth2LoginResponse) RedirectInfo() (int, string) {
	return http.StatusTemporaryRedirect, r.RedirectURL
}

func (r OAuth2LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"state": r.State}
}

// OAuth2 Callback
type OAuth2CallbackRequest struct {
	Code         string `json:"code"`
	State        string `json:"state"`
	SessionState string `json:"-" session:"state,delete"`
}

type OAuth2CallbackResponse struct {
	RedirectURL string `json:"-"`
	AccessToken string `json:"-"`
}

func (r OAuth2CallbackResponse) RedirectInfo() (int, string) {
	return http.StatusTemporaryRedirect, r.RedirectURL
}

func (r OAuth2CallbackResponse) CookieInfo(ctx context.Context) []http.Cookie {
	if r.AccessToken == "" {
		return nil
	}

	cfg := xcontext.Configs(ctx).Auth.AccessToken
	return []http.Cookie{
		{
			Name:     cfg.Name,
			Value:    r.AccessToken,
			Path:     "/",
			Expires:  time.Now().Add(cfg.Expiration),
			Secure:   true,
			HttpOnly: true,
			// The app is meant to run inside provider embed frames, which
			// requires cross-site cookies.
			SameSite: http.SameSiteNoneMode,
		},
	}
}
