package authn

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kernelworx/psm/pkg/authclaims"
)

var (
	ErrUnauthenticated    = status.Error(codes.Unauthenticated, "unauthenticated")
	ErrMissingBearerToken = status.Error(codes.Unauthenticated, "missing bearer token")
)

type Authenticator interface {
	// Authenticate returns a nil error and the AuthClaims for the bearer
	// token if the subject is authenticated, or a non-nil error with an
	// appropriate error cause otherwise.
	Authenticate(requestContext context.Context, bearerToken string) (*authclaims.AuthClaims, error)

	// Close releases any resources held by the authenticator.
	Close()
}

// NoopAuthenticator accepts every request with an anonymous subject. It is
// only wired when authentication is disabled explicitly.
type NoopAuthenticator struct{}

var _ Authenticator = (*NoopAuthenticator)(nil)

func (n NoopAuthenticator) Authenticate(_ context.Context, _ string) (*authclaims.AuthClaims, error) {
	return &authclaims.AuthClaims{
		Subject: "anonymous",
	}, nil
}

func (n NoopAuthenticator) Close() {}
