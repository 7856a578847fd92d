package domain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/memegentino/backend/internal/entity"
	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/api"
	"github.com/memegentino/backend/pkg/testutil"
	"github.com/memegentino/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func proxyContext(t *testing.T, ctx context.Context, method, target, body string) (context.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()

	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx, w
}

func forwardNotReached(t *testing.T) *testutil.MockNotionEndpoint {
	return &testutil.MockNotionEndpoint{
		ForwardFunc: func(ctx context.Context, accessToken, method, path string,
			query url.Values, body []byte, contentType string) (*api.Response, error) {
			t.Fatal("no outbound call expected")
			return nil, nil
		},
	}
}

func Test_proxyDomain_unauthenticated(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewProxyDomain(repository.NewNotionTokenRepository(), forwardNotReached(t))

	ctx, w := proxyContext(t, ctx, http.MethodGet, "/api/notion/v1/users/me", "")
	d.Proxy(ctx)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t,
		`{"object":"error","code":"proxy_error","message":"Not authenticated"}`,
		w.Body.String())
}

func Test_proxyDomain_malformedSelector(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	d := NewProxyDomain(repository.NewNotionTokenRepository(), forwardNotReached(t))

	ctx, w := proxyContext(t, ctx, http.MethodGet, "/api/notion/v1/users/me", "")
	xcontext.HTTPRequest(ctx).Header.Set("Authorization", "Bearer something")
	d.Proxy(ctx)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_proxyDomain_unknownWorkspace(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	d := NewProxyDomain(repository.NewNotionTokenRepository(), forwardNotReached(t))

	ctx, w := proxyContext(t, ctx, http.MethodGet, "/api/notion/v1/users/me", "")
	xcontext.HTTPRequest(ctx).Header.Set("Authorization", "workspace_id:no-such-ws")
	d.Proxy(ctx)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Workspace no-such-ws not found")
}

func Test_proxyDomain_mirrorsDownstreamError(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	testutil.SampleNotionToken(ctx, &entity.NotionToken{
		UserID:      user.ID,
		WorkspaceID: "ws-1",
		AccessToken: "secret_tok",
	})
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	downstreamBody := `{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`
	endpoint := &testutil.MockNotionEndpoint{
		ForwardFunc: func(ctx context.Context, accessToken, method, path string,
			query url.Values, body []byte, contentType string) (*api.Response, error) {
			require.Equal(t, "secret_tok", accessToken)
			require.Equal(t, http.MethodGet, method)
			require.Equal(t, "pages/page-1", path)
			require.Empty(t, query.Get("notionApiProxyPath"))

			return &api.Response{
				Code:    http.StatusNotFound,
				Header:  http.Header{"Content-Type": []string{"application/json"}},
				RawBody: []byte(downstreamBody),
			}, nil
		},
	}
	d := NewProxyDomain(repository.NewNotionTokenRepository(), endpoint)

	ctx, w := proxyContext(t, ctx, http.MethodGet,
		"/api/notion/v1/pages/page-1?notionApiProxyPath=v1%2Fpages%2Fpage-1", "")
	xcontext.HTTPRequest(ctx).Header.Set("Authorization", "workspace_id:ws-1")
	d.Proxy(ctx)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, downstreamBody, w.Body.String())
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func Test_proxyDomain_timeout(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	testutil.SampleNotionToken(ctx, &entity.NotionToken{
		UserID:      user.ID,
		WorkspaceID: "ws-1",
	})
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	endpoint := &testutil.MockNotionEndpoint{
		ForwardFunc: func(ctx context.Context, accessToken, method, path string,
			query url.Values, body []byte, contentType string) (*api.Response, error) {
			return nil, context.DeadlineExceeded
		},
	}
	d := NewProxyDomain(repository.NewNotionTokenRepository(), endpoint)

	ctx, w := proxyContext(t, ctx, http.MethodPost, "/api/notion/v1/search", `{"query":"x"}`)
	xcontext.HTTPRequest(ctx).Header.Set("Authorization", "workspace_id:ws-1")
	d.Proxy(ctx)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "timed out")
}
