package middleware

import (
	"context"

	"github.com/craftcollective/craft-market/pkg/auth"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	if ctx == nil {
		return auth.Identity{}, false
	}
	id, ok := ctx.Value(ctxIdentity).(auth.Identity)
	return id, ok
}

// WithIdentity injects the caller identity into the context.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, id)
}
