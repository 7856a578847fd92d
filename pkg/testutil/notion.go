package testutil

import (
	"context"
	"errors"
	"net/url"

	"github.com/memegentino/backend/pkg/api"
	"github.com/memegentino/backend/pkg/api/notion"
)

// MockNotionEndpoint implements notion.IEndpoint with overridable
// function fields. Unset methods fail loudly so a test cannot reach the
// network by accident.
type MockNotionEndpoint struct {
	AuthCodeURLFunc  func(state string) string
	ExchangeCodeFunc func(ctx context.Context, code string) (*notion.TokenResponse, error)
	GetMeFunc        func(ctx context.Context, accessToken string) (*notion.User, error)
	RetrievePageFunc func(ctx context.Context, accessToken, pageID string) (*notion.Page, error)
	ForwardFunc      func(ctx context.Context, accessToken, method, path string,
		query url.Values, body []byte, contentType string) (*api.Response, error)
}

func (m *MockNotionEndpoint) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc == nil {
		return "https://notion.example/authorize?state=" + state
	}
	return m.AuthCodeURLFunc(state)
}

func (m *MockNotionEndpoint) ExchangeCode(ctx context.Context, code string) (*notion.TokenResponse, error) {
	if m.ExchangeCodeFunc == nil {
		return nil, errors.New("ExchangeCode is not mocked")
	}
	return m.ExchangeCodeFunc(ctx, code)
}

func (m *MockNotionEndpoint) GetMe(ctx context.Context, accessToken string) (*notion.User, error) {
	if m.GetMeFunc == nil {
		return nil, errors.New("GetMe is not mocked")
	}
	return m.GetMeFunc(ctx, accessToken)
}

func (m *MockNotionEndpoint) RetrievePage(ctx context.Context, accessToken, pageID string) (*notion.Page, error) {
	if m.RetrievePageFunc == nil {
		return nil, errors.New("RetrievePage is not mocked")
	}
	return m.RetrievePageFunc(ctx, accessToken, pageID)
}

func (m *MockNotionEndpoint) Forward(
	ctx context.Context, accessToken, method, path string,
	query url.Values, body []byte, contentType string,
) (*api.Response, error) {
	if m.ForwardFunc == nil {
		return nil, errors.New("Forward is not mocked")
	}
	return m.ForwardFunc(ctx, accessToken, method, path, query, body, contentType)
}
