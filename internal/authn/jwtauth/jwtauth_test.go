package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/kernelworx/psm/internal/authn"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestJWTAuthenticator(t *testing.T) {
	authenticator, err := New(Config{HMACSecret: testSecret})
	require.NoError(t, err)
	defer authenticator.Close()

	t.Run("valid_token_yields_claims", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"sub":   "account-1",
			"email": "seller@example.com",
			"admin": true,
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		claims, err := authenticator.Authenticate(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, "account-1", claims.Subject)
		require.Equal(t, "seller@example.com", claims.Email)
		require.True(t, claims.IsAdmin)
	})

	t.Run("admin_claim_defaults_false", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"sub": "account-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		claims, err := authenticator.Authenticate(context.Background(), token)
		require.NoError(t, err)
		require.False(t, claims.IsAdmin)
	})

	t.Run("expired_token_rejected", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"sub": "account-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := authenticator.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, authn.ErrUnauthenticated)
	})

	t.Run("missing_subject_rejected", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := authenticator.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, authn.ErrUnauthenticated)
	})

	t.Run("empty_token_rejected", func(t *testing.T) {
		_, err := authenticator.Authenticate(context.Background(), "")
		require.ErrorIs(t, err, authn.ErrMissingBearerToken)
	})

	t.Run("wrong_secret_rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "account-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		_, err = authenticator.Authenticate(context.Background(), signed)
		require.ErrorIs(t, err, authn.ErrUnauthenticated)
	})
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestPresharedKeyStyleClaimsUnaffectedByIssuerWhenUnset(t *testing.T) {
	authenticator, err := New(Config{HMACSecret: testSecret})
	require.NoError(t, err)

	token := signedToken(t, jwt.MapClaims{
		"sub": "account-1",
		"iss": "anything",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = authenticator.Authenticate(context.Background(), token)
	require.NoError(t, err)
}
