package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/memegentino/backend/config"
	"github.com/memegentino/backend/pkg/api"
)

const defaultVersion = "2021-08-16"

type Endpoint struct {
	cfg          config.NotionConfigs
	apiGenerator api.Generator
}

func New(cfg config.NotionConfigs) *Endpoint {
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}

	return &Endpoint{
		cfg:          cfg,
		apiGenerator: api.NewGenerator(cfg.BaseURL),
	}
}

// APIError is a structured error response from the provider. Status, header,
// and raw body are kept so callers can mirror the response verbatim.
type APIError struct {
	Status  int
	Header  http.Header
	Body    []byte
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error with status %d", e.Status)
}

// IsTimeout reports whether an outbound call failed by running out of time
// rather than by a downstream decision.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

func newAPIError(resp *api.Response) *APIError {
	apiErr := &APIError{Status: resp.Code, Header: resp.Header, Body: resp.RawBody}
	if resp.Body != nil {
		apiErr.Code, _ = resp.Body.GetString("code")
		apiErr.Message, _ = resp.Body.GetString("message")
	}

	return apiErr
}

func (e *Endpoint) AuthCodeURL(state string) string {
	query := url.Values{}
	query.Set("owner", "user")
	query.Set("client_id", e.cfg.ClientID)
	query.Set("redirect_uri", e.cfg.CallbackURL)
	query.Set("response_type", "code")
	if state != "" {
		query.Set("state", state)
	}

	return e.cfg.BaseURL + "/v1/oauth/authorize?" + query.Encode()
}

func (e *Endpoint) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	resp, err := e.apiGenerator.New("/v1/oauth/token").
		Body(api.JSON{
			"grant_type":   "authorization_code",
			"code":         code,
			"redirect_uri": e.cfg.CallbackURL,
		}).
		POST(ctx, api.BasicAuth(e.cfg.ClientID, e.cfg.ClientSecret))
	if err != nil {
		return nil, err
	}

	if resp.Code != http.StatusOK {
		return nil, newAPIError(resp)
	}

	token := TokenResponse{}
	if err := json.Unmarshal(resp.RawBody, &token); err != nil {
		return nil, err
	}

	if token.AccessToken == "" || token.BotID == "" {
		return nil, errors.New("token response misses required fields")
	}

	return &token, nil
}

func (e *Endpoint) GetMe(ctx context.Context, accessToken string) (*User, error) {
	resp, err := e.apiGenerator.New("/v1/users/me").
		Header("Notion-Version", e.cfg.Version).
		GET(ctx, api.OAuth2("Bearer", accessToken))
	if err != nil {
		return nil, err
	}

	if resp.Code != http.StatusOK {
		return nil, newAPIError(resp)
	}

	user := User{}
	if err := json.Unmarshal(resp.RawBody, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (e *Endpoint) RetrievePage(ctx context.Context, accessToken, pageID string) (*Page, error) {
	resp, err := e.apiGenerator.New("/v1/pages/%s", pageID).
		Header("Notion-Version", e.cfg.Version).
		GET(ctx, api.OAuth2("Bearer", accessToken))
	if err != nil {
		return nil, err
	}

	if resp.Code != http.StatusOK {
		return nil, newAPIError(resp)
	}

	page := Page{}
	if err := json.Unmarshal(resp.RawBody, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (e *Endpoint) Forward(
	ctx context.Context, accessToken, method, path string,
	query url.Values, body []byte, contentType string,
) (*api.Response, error) {
	client := e.apiGenerator.New("/v1/%s", path).
		Header("Notion-Version", e.cfg.Version)

	if len(query) > 0 {
		client = client.RawQuery(query)
	}

	if len(body) > 0 {
		if contentType == "" {
			contentType = "application/json"
		}
		client = client.Body(api.RawBody{Data: body, ContentType: contentType})
	}

	return client.Do(ctx, method, api.OAuth2("Bearer", accessToken))
}
