package middleware

import (
	"context"
	"errors"

	"github.com/memegentino/backend/pkg/router"
	"github.com/memegentino/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) error {
		sessionResp, ok := xcontext.GetResponse(ctx).(SessionResponse)
		if !ok {
			return nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return errors.New("no session info")
		}

		session, err := xcontext.SessionStore(ctx).Get(xcontext.HTTPRequest(ctx))
		if err != nil {
			return err
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		return xcontext.SessionStore(ctx).Save(
			xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx), session)
	}
}
