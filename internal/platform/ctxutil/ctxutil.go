package ctxutil

import "context"

// Default returns ctx or context.Background when ctx is nil, so callers that
// plumb optional contexts never hand nil to net/http.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
