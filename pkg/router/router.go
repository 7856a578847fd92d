package router

import (
	"context"
	"net/http"

	"github.com/memegentino/backend/config"
	"github.com/memegentino/backend/pkg/authenticator"
	"github.com/memegentino/backend/pkg/logger"
	"github.com/memegentino/backend/pkg/session"
	"github.com/memegentino/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. A non-nil error aborts the
// request with an error envelope.
type MiddlewareFunc func(ctx context.Context) error

// CloserFunc always runs last, even for failed requests.
type CloserFunc func(ctx context.Context)

// RawHandlerFunc owns its wire format completely; the router only provides
// the request context and runs closers.
type RawHandlerFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux
	cfg config.Configs

	db           *gorm.DB
	logger       logger.Logger
	tokenEngine  authenticator.TokenEngine
	sessionStore *session.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		cfg:          cfg,
		db:           db,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine(cfg.Auth.AccessToken.Secret),
		sessionStore: session.NewCookieStore(cfg.Session.Name, []byte(cfg.Session.Secret)),
	}
}

// Branch returns a router sharing the same mux and dependencies but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]MiddlewareFunc{}, r.afters...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Raw registers a handler outside the response envelope. Before middlewares
// and closers still apply; After middlewares do not, since there is no
// response object to post-process.
func (r *Router) Raw(pattern string, handler RawHandlerFunc) {
	router := r.Branch()
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := router.newContext(req, w)
		defer runClosers(router, ctx)

		for _, middleware := range router.befores {
			if err := middleware(ctx); err != nil {
				xcontext.SetError(ctx, err)
				writeErrorResponse(ctx, err)
				return
			}
		}

		handler(ctx)
	})
}

func (r *Router) Handler() http.Handler {
	return r.mux
}
