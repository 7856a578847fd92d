package xcontext

import "context"

type stateKey struct{}

// state is a mutable holder shared between the router phases of one request,
// since derived contexts made inside a handler are not visible to the
// middlewares running after it.
type state struct {
	response any
	err      error
}

func WithRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, stateKey{}, &state{})
}

func requestState(ctx context.Context) *state {
	if s, ok := ctx.Value(stateKey{}).(*state); ok {
		return s
	}

	return &state{}
}

func SetResponse(ctx context.Context, resp any) {
	requestState(ctx).response = resp
}

func GetResponse(ctx context.Context) any {
	return requestState(ctx).response
}

func SetError(ctx context.Context, err error) {
	requestState(ctx).err = err
}

func GetError(ctx context.Context) error {
	return requestState(ctx).err
}
