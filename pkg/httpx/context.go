package httpx

import (
	"context"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyPrincipal ctxKey = "principal"
	CtxKeyClaims    ctxKey = "claims"
)

// PrincipalFromContext returns the authenticated principal id, or "" when
// the request did not pass through AuthnMiddleware.
func PrincipalFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyPrincipal).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified token claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// WithPrincipal stores an authenticated principal on ctx. Tests use it to
// skip token verification.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, CtxKeyPrincipal, principal)
}

func contextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	return context.WithValue(ctx, CtxKeyClaims, c)
}
