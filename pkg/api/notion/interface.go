package notion

import (
	"context"
	"net/url"

	"github.com/memegentino/backend/pkg/api"
)

type IEndpoint interface {
	// AuthCodeURL builds the browser-facing authorization redirect target.
	AuthCodeURL(state string) string

	// ExchangeCode trades an authorization code for a workspace token using
	// the client-credential basic auth the provider requires.
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)

	// GetMe fetches the bot user the access token belongs to.
	GetMe(ctx context.Context, accessToken string) (*User, error)

	// RetrievePage fetches a page with its property values.
	RetrievePage(ctx context.Context, accessToken, pageID string) (*Page, error)

	// Forward relays an arbitrary call under the versioned API root. Any
	// downstream HTTP response is returned as-is; an error means the call
	// never produced one (transport failure or timeout).
	Forward(ctx context.Context, accessToken, method, path string, query url.Values, body []byte, contentType string) (*api.Response, error)
}
