package middleware

import (
	"context"

	"github.com/memegentino/backend/pkg/errorx"
	"github.com/memegentino/backend/pkg/xcontext"
)

func Authenticate() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if xcontext.RequestUserID(ctx) == "" {
			return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}
		return nil
	}
}
