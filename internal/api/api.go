// Package api exposes the server operations as a JSON-over-HTTP surface.
//
// Every route except /healthz and /metrics requires a bearer token; the
// authenticator turns it into caller claims carried on the request context.
// Operation errors are gRPC statuses and are mapped onto HTTP codes here.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kernelworx/psm/internal/authn"
	"github.com/kernelworx/psm/pkg/authclaims"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/server"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "psm",
		Name:      "request_total",
		Help:      "Count of API requests by handler and gRPC status code.",
	}, []string{"handler", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "psm",
		Name:      "request_duration_seconds",
		Help:      "API request latency by handler.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"handler"})
)

// API is the HTTP front of a Server.
type API struct {
	srv           *server.Server
	authenticator authn.Authenticator
	logger        logger.Logger
}

type Option func(*API)

func WithLogger(l logger.Logger) Option {
	return func(a *API) {
		a.logger = l
	}
}

func New(srv *server.Server, authenticator authn.Authenticator, opts ...Option) *API {
	a := &API{
		srv:           srv,
		authenticator: authenticator,
		logger:        logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler builds the full middleware stack: mux → auth → CORS → otel.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	a.routes(mux)

	handler := a.authenticate(mux)
	handler = cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	}).Handler(handler)
	return otelhttp.NewHandler(handler, "psm.api")
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	ready, err := a.srv.IsReady(r.Context())
	if err != nil || !ready {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// authenticate resolves the bearer token into caller claims. /healthz and
// /metrics are registered before this wrapper runs and stay open.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		token := ""
		if h := r.Header.Get("Authorization"); h != "" {
			token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
		claims, err := a.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, "authenticate", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(authclaims.ContextWithAuthClaims(r.Context(), claims)))
	})
}

// httpStatusFromCode maps the operation error taxonomy onto HTTP.
func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Canceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, handler string, err error) {
	st := status.Convert(err)
	requestsTotal.WithLabelValues(handler, st.Code().String()).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusFromCode(st.Code()))
	_ = json.NewEncoder(w).Encode(errorBody{
		Code:    st.Code().String(),
		Message: st.Message(),
	})
}

func writeJSON(w http.ResponseWriter, handler string, statusCode int, payload any) {
	requestsTotal.WithLabelValues(handler, codes.OK.String()).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// handle wraps an operation handler with decoding-free plumbing: latency
// metric, error logging and the JSON envelope.
func handle[T any](a *API, name string, statusCode int, fn func(r *http.Request) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			requestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}()

		result, err := fn(r)
		if err != nil {
			a.logError(r.Context(), name, err)
			writeError(w, name, err)
			return
		}
		writeJSON(w, name, statusCode, result)
	}
}

func (a *API) logError(ctx context.Context, handler string, err error) {
	var internal serverErrors.InternalError
	if errors.As(err, &internal) {
		a.logger.ErrorWithContext(ctx, "internal error", zap.String("handler", handler), zap.Error(internal.Internal()))
		return
	}
	a.logger.DebugWithContext(ctx, "request rejected", zap.String("handler", handler), zap.Error(err))
}

func decode[T any](r *http.Request) (*T, error) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, status.Error(codes.InvalidArgument, "Request body is not valid JSON")
	}
	return &body, nil
}
