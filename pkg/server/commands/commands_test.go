package commands

import (
	"context"

	"github.com/kernelworx/psm/pkg/authclaims"
)

// authedContext builds a request context carrying verified claims, as the
// transport layer would after authentication.
func authedContext(subject string) context.Context {
	return authclaims.ContextWithAuthClaims(context.Background(), &authclaims.AuthClaims{
		Subject: subject,
		Email:   subject + "@example.com",
	})
}

func adminContext(subject string) context.Context {
	return authclaims.ContextWithAuthClaims(context.Background(), &authclaims.AuthClaims{
		Subject: subject,
		IsAdmin: true,
	})
}

func strptr(s string) *string { return &s }
