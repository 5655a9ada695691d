package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/weichunauto/apigate/token"
)

// Context key type to avoid collisions
type contextKey string

// PrincipalKey is the context key for the authenticated principal
const PrincipalKey contextKey = "principal"

// GetRequestIDFromContext returns the id assigned by chi's RequestID middleware.
func GetRequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// PrincipalFromContext returns the principal stored by RequireAuth.
func PrincipalFromContext(ctx context.Context) (token.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(token.Principal)
	return principal, ok
}

// WithPrincipal adds the authenticated principal to the context
func WithPrincipal(ctx context.Context, principal token.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}
