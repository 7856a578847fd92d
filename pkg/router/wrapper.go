package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/memegentino/backend/internal/model"
	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := router.newContext(r, w)
		defer runClosers(router, ctx)

		err := func() error {
			if r.Method != method {
				return errorx.New(errorx.BadRequest, "Not supported method %s", r.Method)
			}

			for _, middleware := range router.befores {
				if err := middleware(ctx); err != nil {
					return err
				}
			}

			var req Request
			if err := router.bindRequest(ctx, method, &req); err != nil {
				return err
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return err
			}

			xcontext.SetResponse(ctx, resp)

			for _, middleware := range router.afters {
				if err := middleware(ctx); err != nil {
					return err
				}
			}

			return nil
		}()

		if err != nil {
			xcontext.SetError(ctx, err)
			writeErrorResponse(ctx, err)
			return
		}

		writeResponse(ctx)
	}
}

func (r *Router) newContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithRequestState(ctx)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)

	if id := r.requestUserID(req); id != "" {
		ctx = xcontext.WithRequestUserID(ctx, id)
	}

	return ctx
}

// requestUserID resolves the caller from a bearer Authorization header or
// the access-token cookie. The cookie fallback matters: the proxy endpoint
// repurposes the header slot for its workspace selector.
func (r *Router) requestUserID(req *http.Request) string {
	token := ""
	auth, value, found := strings.Cut(req.Header.Get("Authorization"), " ")
	if found && auth == "Bearer" {
		token = value
	}

	if token == "" {
		cookie, err := req.Cookie(r.cfg.Auth.AccessToken.Name)
		if err != nil {
			return ""
		}
		token = cookie.Value
	}

	var info model.AccessToken
	if err := r.tokenEngine.Verify(token, &info); err != nil {
		return ""
	}

	return info.ID
}

func (r *Router) bindRequest(ctx context.Context, method string, req any) error {
	httpReq := xcontext.HTTPRequest(ctx)

	switch method {
	case http.MethodGet, http.MethodDelete:
		if err := decodeQuery(httpReq, req); err != nil {
			return errorx.New(errorx.BadRequest, "Cannot bind the request query")
		}

	case http.MethodPost, http.MethodPut, http.MethodPatch:
		body, err := io.ReadAll(httpReq.Body)
		if err != nil {
			return errorx.New(errorx.BadRequest, "Cannot read the request body")
		}

		if len(body) > 0 {
			if err := json.Unmarshal(body, req); err != nil {
				return errorx.New(errorx.BadRequest, "Cannot bind the request body")
			}
		}
	}

	return bindSessionValues(ctx, req)
}

func runClosers(router *Router, ctx context.Context) {
	for _, closer := range router.closers {
		closer(ctx)
	}
}
