// Package run contains the command to run a psm server.
package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kernelworx/psm/internal/api"
	"github.com/kernelworx/psm/internal/authn"
	"github.com/kernelworx/psm/internal/authn/jwtauth"
	"github.com/kernelworx/psm/internal/authn/presharedkey"
	"github.com/kernelworx/psm/internal/build"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/server"
	serverconfig "github.com/kernelworx/psm/pkg/server/config"
	"github.com/kernelworx/psm/pkg/storage/memory"
	"github.com/kernelworx/psm/pkg/telemetry"
)

// NewRunCommand returns the command to start the server.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the psm server",
		Long:  "Run the psm server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := ReadConfig()
			if err != nil {
				return err
			}
			if err := config.Verify(); err != nil {
				return err
			}
			return RunServer(cmd.Context(), config)
		},
	}

	bindRunFlags(cmd)

	return cmd
}

// ReadConfig merges flag, env and config file values on top of the
// defaults.
func ReadConfig() (*serverconfig.Config, error) {
	config := serverconfig.DefaultConfig()

	viper.SetTypeByDefaultValue(true)
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

func buildAuthenticator(cfg *serverconfig.Config) (authn.Authenticator, error) {
	switch cfg.Authn.Method {
	case "none":
		return authn.NoopAuthenticator{}, nil
	case "preshared":
		return presharedkey.NewPresharedKeyAuthenticator(cfg.Authn.Preshared.Keys)
	case "jwt":
		return jwtauth.New(jwtauth.Config{
			Issuer:     cfg.Authn.JWT.Issuer,
			Audience:   cfg.Authn.JWT.Audience,
			HMACSecret: []byte(cfg.Authn.JWT.HMACSecret),
		})
	default:
		return nil, fmt.Errorf("unsupported authn method: %q", cfg.Authn.Method)
	}
}

// RunServer serves the API until ctx is cancelled or a termination signal
// arrives, then drains in-flight requests.
func RunServer(ctx context.Context, config *serverconfig.Config) error {
	log := logger.MustNewLogger(config.Log.Format, config.Log.Level)

	if config.Trace.Enabled {
		log.Info("🕵 tracing enabled", zap.String("endpoint", config.Trace.OTLPEndpoint))
		tp := telemetry.MustNewTracerProvider(
			telemetry.WithOTLPEndpoint(config.Trace.OTLPEndpoint),
			telemetry.WithServiceName(config.Trace.ServiceName),
			telemetry.WithSamplingRatio(config.Trace.SampleRatio),
		)
		defer func() {
			_ = tp.ForceFlush(context.Background())
			_ = tp.Shutdown(context.Background())
		}()
	}

	datastore := memory.New()
	defer datastore.Close()

	authenticator, err := buildAuthenticator(config)
	if err != nil {
		return err
	}
	defer authenticator.Close()

	srv, err := server.NewServerWithOpts(
		server.WithDatastore(datastore),
		server.WithLogger(log),
		server.WithSharedCampaignLimit(config.SharedCampaignLimit),
	)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    config.HTTP.Addr,
		Handler: api.New(srv, authenticator, api.WithLogger(log)).Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("🚀 starting psm service, version: %s, commit: %s", build.Version, build.Commit),
			zap.String("addr", config.HTTP.Addr),
			zap.String("datastore", config.Datastore.Engine),
			zap.String("authn", config.Authn.Method),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		return err
	case <-signalCtx.Done():
	}

	log.Info("draining in-flight requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server exiting. Goodbye 👋")
	return nil
}
