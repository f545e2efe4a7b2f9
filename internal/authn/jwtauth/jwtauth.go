// Package jwtauth authenticates bearer tokens issued by the identity
// provider. The token's subject becomes the caller account id and the
// token's admin claim is the only source of platform-admin rights.
package jwtauth

import (
	"context"
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kernelworx/psm/internal/authn"
	"github.com/kernelworx/psm/pkg/authclaims"
)

type Config struct {
	// Issuer, when set, must match the token's iss claim.
	Issuer string

	// Audience, when set, must be present in the token's aud claim.
	Audience string

	// HMACSecret verifies HS256/HS384/HS512 tokens.
	HMACSecret []byte

	// RSAPublicKey verifies RS256/RS384/RS512 tokens.
	RSAPublicKey *rsa.PublicKey
}

type JWTAuthenticator struct {
	config Config
	parser *jwt.Parser
}

var _ authn.Authenticator = (*JWTAuthenticator)(nil)

type tokenClaims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

func New(config Config) (*JWTAuthenticator, error) {
	if len(config.HMACSecret) == 0 && config.RSAPublicKey == nil {
		return nil, errors.New("invalid auth configuration, please specify a verification key")
	}

	var methods []string
	if len(config.HMACSecret) > 0 {
		methods = append(methods, "HS256", "HS384", "HS512")
	}
	if config.RSAPublicKey != nil {
		methods = append(methods, "RS256", "RS384", "RS512")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(methods), jwt.WithExpirationRequired()}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	if config.Audience != "" {
		opts = append(opts, jwt.WithAudience(config.Audience))
	}

	return &JWTAuthenticator{
		config: config,
		parser: jwt.NewParser(opts...),
	}, nil
}

func (a *JWTAuthenticator) Authenticate(_ context.Context, bearerToken string) (*authclaims.AuthClaims, error) {
	if bearerToken == "" {
		return nil, authn.ErrMissingBearerToken
	}

	claims := &tokenClaims{}
	_, err := a.parser.ParseWithClaims(bearerToken, claims, a.verificationKey)
	if err != nil {
		return nil, authn.ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, authn.ErrUnauthenticated
	}

	return &authclaims.AuthClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
		IsAdmin: claims.Admin,
	}, nil
}

func (a *JWTAuthenticator) verificationKey(token *jwt.Token) (any, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(a.config.HMACSecret) == 0 {
			return nil, errors.New("hmac tokens not accepted")
		}
		return a.config.HMACSecret, nil
	case *jwt.SigningMethodRSA:
		if a.config.RSAPublicKey == nil {
			return nil, errors.New("rsa tokens not accepted")
		}
		return a.config.RSAPublicKey, nil
	default:
		return nil, errors.New("unexpected signing method")
	}
}

func (a *JWTAuthenticator) Close() {}
