package authclaims

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextWithAuthClaims(t *testing.T) {
	claims := AuthClaims{
		Subject: "account-1",
		Email:   "seller@example.com",
		IsAdmin: true,
	}
	ctx := ContextWithAuthClaims(context.Background(), &claims)
	claimsInContext, found := AuthClaimsFromContext(ctx)
	require.True(t, found)
	require.Equal(t, claims, *claimsInContext)
}

func TestAuthClaimsFromContext(t *testing.T) {
	claims, found := AuthClaimsFromContext(context.Background())
	require.Nil(t, claims)
	require.False(t, found)
}
