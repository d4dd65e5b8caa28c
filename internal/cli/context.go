package cli

import (
	"context"

	"github.com/thenoetrevino/mytasks/internal/app"
)

type contextKey string

const appKey contextKey = "app"

// WithApp makes commands run against a if they are executed with the returned context
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

func appFromContext(ctx context.Context) (*app.App, bool) {
	if ctx == nil {
		return nil, false
	}
	a, ok := ctx.Value(appKey).(*app.App)
	return a, ok && a != nil
}
