package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/kernelworx/psm/internal/authn"
	"github.com/kernelworx/psm/pkg/authclaims"
	"github.com/kernelworx/psm/pkg/server"
	"github.com/kernelworx/psm/pkg/storage/memory"
)

func TestHTTPStatusFromCode(t *testing.T) {
	for _, tc := range []struct {
		code codes.Code
		want int
	}{
		{codes.OK, http.StatusOK},
		{codes.InvalidArgument, http.StatusBadRequest},
		{codes.Unauthenticated, http.StatusUnauthorized},
		{codes.PermissionDenied, http.StatusForbidden},
		{codes.NotFound, http.StatusNotFound},
		{codes.AlreadyExists, http.StatusConflict},
		{codes.FailedPrecondition, http.StatusConflict},
		{codes.ResourceExhausted, http.StatusTooManyRequests},
		{codes.Canceled, http.StatusRequestTimeout},
		{codes.Internal, http.StatusInternalServerError},
		{codes.Unknown, http.StatusInternalServerError},
	} {
		t.Run(tc.code.String(), func(t *testing.T) {
			require.Equal(t, tc.want, httpStatusFromCode(tc.code))
		})
	}
}

type rejectingAuthenticator struct{}

func (rejectingAuthenticator) Authenticate(context.Context, string) (*authclaims.AuthClaims, error) {
	return nil, authn.ErrMissingBearerToken
}

func (rejectingAuthenticator) Close() {}

func newTestAPI(t *testing.T, authenticator authn.Authenticator) http.Handler {
	t.Helper()
	ds := memory.New()
	t.Cleanup(ds.Close)
	srv := server.MustNewServerWithOpts(server.WithDatastore(ds))
	return New(srv, authenticator).Handler()
}

func TestHealthzBypassesAuthentication(t *testing.T) {
	handler := newTestAPI(t, rejectingAuthenticator{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestMetricsBypassesAuthentication(t *testing.T) {
	handler := newTestAPI(t, rejectingAuthenticator{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticationFailureIsA401JSONBody(t *testing.T) {
	handler := newTestAPI(t, rejectingAuthenticator{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalogs/public", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, codes.Unauthenticated.String(), body.Code)
	require.Equal(t, "missing bearer token", body.Message)
}

func TestAuthenticatedRoundTrip(t *testing.T) {
	handler := newTestAPI(t, authn.NoopAuthenticator{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalogs/public", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var catalogs []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalogs))
	require.Empty(t, catalogs)
}

func TestMalformedBodyIsA400(t *testing.T) {
	handler := newTestAPI(t, authn.NoopAuthenticator{})

	req := httptest.NewRequest(http.MethodPost, "/v1/profiles", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Request body is not valid JSON", body.Message)
}
