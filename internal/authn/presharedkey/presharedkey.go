package presharedkey

import (
	"context"
	"errors"

	"github.com/kernelworx/psm/internal/authn"
	"github.com/kernelworx/psm/pkg/authclaims"
)

// PresharedKeyAuthenticator accepts a fixed set of bearer keys. Intended for
// service-to-service callers and local development; key callers act as the
// platform admin without a personal account.
type PresharedKeyAuthenticator struct {
	ValidKeys map[string]struct{}
}

var _ authn.Authenticator = (*PresharedKeyAuthenticator)(nil)

func NewPresharedKeyAuthenticator(validKeys []string) (*PresharedKeyAuthenticator, error) {
	if len(validKeys) < 1 {
		return nil, errors.New("invalid auth configuration, please specify at least one key")
	}
	vKeys := make(map[string]struct{})
	for _, k := range validKeys {
		vKeys[k] = struct{}{}
	}

	return &PresharedKeyAuthenticator{ValidKeys: vKeys}, nil
}

func (pka *PresharedKeyAuthenticator) Authenticate(_ context.Context, bearerToken string) (*authclaims.AuthClaims, error) {
	if bearerToken == "" {
		return nil, authn.ErrMissingBearerToken
	}

	if _, found := pka.ValidKeys[bearerToken]; found {
		return &authclaims.AuthClaims{
			Subject: "service",
			IsAdmin: true,
		}, nil
	}

	return nil, authn.ErrUnauthenticated
}

func (pka *PresharedKeyAuthenticator) Close() {}
