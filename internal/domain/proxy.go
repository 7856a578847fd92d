package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/memegentino/backend/internal/repository"
	"github.com/memegentino/backend/pkg/api/notion"
	"github.com/memegentino/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// workspaceSelectorPrefix is how the proxied request names the credential
// to use. The Authorization header cannot carry the real token, because
// the browser never holds it.
const workspaceSelectorPrefix = "workspace_id:"

// proxyPathParam is the router artifact query parameter, stripped before
// forwarding.
const proxyPathParam = "notionApiProxyPath"

type ProxyDomain interface {
	Proxy(ctx context.Context)
}

type proxyDomain struct {
	notionTokenRepo repository.NotionTokenRepository
	notionEndpoint  notion.IEndpoint
}

func NewProxyDomain(
	notionTokenRepo repository.NotionTokenRepository,
	notionEndpoint notion.IEndpoint,
) ProxyDomain {
	return &proxyDomain{
		notionTokenRepo: notionTokenRepo,
		notionEndpoint:  notionEndpoint,
	}
}

type proxyError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeProxyError(ctx context.Context, status int, message string) {
	w := xcontext.HTTPWriter(ctx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body, err := json.Marshal(proxyError{
		Object:  "error",
		Code:    "proxy_error",
		Message: message,
	})
	if err != nil {
		return
	}

	if _, err := w.Write(body); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write proxy error: %v", err)
	}
}

// Proxy relays the request to the provider under the caller's stored
// credential. Provider responses, including error ones, are mirrored
// verbatim; only transport failures produce a response of our own.
func (d *proxyDomain) Proxy(ctx context.Context) {
	req := xcontext.HTTPRequest(ctx)

	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		writeProxyError(ctx, http.StatusUnauthorized, "Not authenticated")
		return
	}

	// The selector is the last whitespace-separated token, so a scheme
	// prefix like "Notion workspace_id:<id>" is tolerated.
	fields := strings.Fields(req.Header.Get("Authorization"))
	selector := ""
	if len(fields) > 0 {
		selector = fields[len(fields)-1]
	}

	workspaceID := strings.TrimPrefix(selector, workspaceSelectorPrefix)
	if !strings.HasPrefix(selector, workspaceSelectorPrefix) || workspaceID == "" {
		writeProxyError(ctx, http.StatusBadRequest,
			"Authorization header must end with workspace_id:<id>")
		return
	}

	token, err := d.notionTokenRepo.GetByUserWorkspace(ctx, userID, workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeProxyError(ctx, http.StatusNotFound,
				fmt.Sprintf("Workspace %s not found", workspaceID))
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot load workspace credential: %v", err)
		writeProxyError(ctx, http.StatusInternalServerError, "Request failed")
		return
	}

	_, path, found := strings.Cut(req.URL.Path, "/v1/")
	if !found || path == "" {
		writeProxyError(ctx, http.StatusBadRequest, "Missing provider path")
		return
	}

	query := req.URL.Query()
	query.Del(proxyPathParam)

	body, err := io.ReadAll(req.Body)
	if err != nil {
		writeProxyError(ctx, http.StatusBadRequest, "Cannot read request body")
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, xcontext.Configs(ctx).Notion.Timeout)
	defer cancel()

	resp, err := d.notionEndpoint.Forward(
		callCtx, token.AccessToken, req.Method, path,
		query, body, req.Header.Get("Content-Type"))
	if err != nil {
		if notion.IsTimeout(err) {
			xcontext.Logger(ctx).Warnf("Proxied call timed out: %s %s", req.Method, path)
			writeProxyError(ctx, http.StatusInternalServerError, "Upstream request timed out")
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot forward request: %v", err)
		writeProxyError(ctx, http.StatusInternalServerError, "Upstream request failed")
		return
	}

	d.mirror(ctx, resp.Code, resp.Header, resp.RawBody)
}

func (d *proxyDomain) mirror(ctx context.Context, code int, header http.Header, body []byte) {
	w := xcontext.HTTPWriter(ctx)

	for name, values := range header {
		// Hop-by-hop and envelope framing headers belong to our own
		// response, not the mirrored one.
		switch http.CanonicalHeaderKey(name) {
		case "Connection", "Transfer-Encoding", "Content-Length":
			continue
		}

		for _, v := range values {
			w.Header().Add(name, v)
		}
	}

	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write mirrored response: %v", err)
	}
}
