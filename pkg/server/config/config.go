// Package serverconfig holds the run command's configuration surface.
// Values come from CLI flags, PSM_-prefixed environment variables, or
// config.yaml, in that order.
package serverconfig

import (
	"fmt"
	"time"
)

const (
	DefaultHTTPAddr         = "0.0.0.0:8080"
	DefaultLogFormat        = "text"
	DefaultLogLevel         = "info"
	DefaultAuthnMethod      = "none"
	DefaultDatastoreEngine  = "memory"
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultTraceSampleRatio = 0.2
)

type DatastoreConfig struct {
	// Engine selects the Datastore implementation. Only "memory" ships
	// today; the URI is reserved for engines that need one.
	Engine string
	URI    string
}

type HTTPConfig struct {
	Addr string

	// ShutdownTimeout bounds how long in-flight requests get to finish on
	// SIGTERM.
	ShutdownTimeout time.Duration
}

type AuthnConfig struct {
	// Method is one of "none", "preshared", "jwt".
	Method string

	Preshared AuthnPresharedKeyConfig
	JWT       AuthnJWTConfig
}

// AuthnPresharedKeyConfig holds the accepted tokens for the preshared
// method.
type AuthnPresharedKeyConfig struct {
	Keys []string
}

// AuthnJWTConfig applies to the jwt method. HMACSecret is the HS* key;
// issuer and audience are enforced when non-empty.
type AuthnJWTConfig struct {
	Issuer     string
	Audience   string
	HMACSecret string
}

type LogConfig struct {
	Format string
	Level  string
}

type TraceConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRatio  float64
	ServiceName  string
}

type Config struct {
	Datastore DatastoreConfig
	HTTP      HTTPConfig
	Authn     AuthnConfig
	Log       LogConfig
	Trace     TraceConfig

	// SharedCampaignLimit caps published campaign templates per account.
	SharedCampaignLimit int
}

func DefaultConfig() *Config {
	return &Config{
		Datastore: DatastoreConfig{
			Engine: DefaultDatastoreEngine,
		},
		HTTP: HTTPConfig{
			Addr:            DefaultHTTPAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Authn: AuthnConfig{
			Method: DefaultAuthnMethod,
		},
		Log: LogConfig{
			Format: DefaultLogFormat,
			Level:  DefaultLogLevel,
		},
		Trace: TraceConfig{
			SampleRatio: DefaultTraceSampleRatio,
			ServiceName: "psm",
		},
		SharedCampaignLimit: 10,
	}
}

// Verify rejects configurations the run command cannot serve.
func (cfg *Config) Verify() error {
	switch cfg.Datastore.Engine {
	case "memory":
	default:
		return fmt.Errorf("unsupported datastore engine: %q", cfg.Datastore.Engine)
	}

	switch cfg.Authn.Method {
	case "none":
	case "preshared":
		if len(cfg.Authn.Preshared.Keys) == 0 {
			return fmt.Errorf("authn method %q requires at least one key", cfg.Authn.Method)
		}
	case "jwt":
		if cfg.Authn.JWT.HMACSecret == "" {
			return fmt.Errorf("authn method %q requires a signing secret", cfg.Authn.Method)
		}
	default:
		return fmt.Errorf("unsupported authn method: %q", cfg.Authn.Method)
	}

	if cfg.Trace.Enabled && cfg.Trace.OTLPEndpoint == "" {
		return fmt.Errorf("tracing is enabled but no otlp endpoint is set")
	}

	if cfg.SharedCampaignLimit < 1 {
		return fmt.Errorf("shared campaign limit must be at least 1")
	}

	return nil
}
