package authclaims

import (
	"context"
)

type ctxKey string

const authClaimsContextKey = ctxKey("auth-claims")

// AuthClaims is the verified caller identity attached to a request. IsAdmin
// mirrors the token's admin claim; the stored account flag is never
// consulted for authorization decisions.
type AuthClaims struct {
	Subject string
	Email   string
	IsAdmin bool
}

// ContextWithAuthClaims injects the provided AuthClaims into the parent context.
func ContextWithAuthClaims(parent context.Context, claims *AuthClaims) context.Context {
	return context.WithValue(parent, authClaimsContextKey, claims)
}

// AuthClaimsFromContext extracts the AuthClaims from the provided ctx (if any).
func AuthClaimsFromContext(ctx context.Context) (*AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*AuthClaims)
	if !ok {
		return nil, false
	}

	return claims, true
}
