package run

import (
	"github.com/spf13/cobra"

	"github.com/kernelworx/psm/cmd/util"
	serverconfig "github.com/kernelworx/psm/pkg/server/config"
)

// bindRunFlags binds the cobra cmd flags to the equivalent config value
// being managed by viper. This bridges the config between cobra flags and
// viper flags.
func bindRunFlags(command *cobra.Command) {
	defaultConfig := serverconfig.DefaultConfig()
	flags := command.Flags()

	flags.String("datastore-engine", defaultConfig.Datastore.Engine, "the datastore engine that will be used for persistence")
	util.MustBindPFlag("datastore.engine", flags.Lookup("datastore-engine"))
	util.MustBindEnv("datastore.engine", "PSM_DATASTORE_ENGINE")

	flags.String("datastore-uri", defaultConfig.Datastore.URI, "the connection uri to use to connect to the datastore (for engines that need one)")
	util.MustBindPFlag("datastore.uri", flags.Lookup("datastore-uri"))
	util.MustBindEnv("datastore.uri", "PSM_DATASTORE_URI")

	flags.String("http-addr", defaultConfig.HTTP.Addr, "the host:port address to serve the HTTP server on")
	util.MustBindPFlag("http.addr", flags.Lookup("http-addr"))
	util.MustBindEnv("http.addr", "PSM_HTTP_ADDR")

	flags.Duration("http-shutdown-timeout", defaultConfig.HTTP.ShutdownTimeout, "how long in-flight requests get to finish on shutdown")
	util.MustBindPFlag("http.shutdownTimeout", flags.Lookup("http-shutdown-timeout"))
	util.MustBindEnv("http.shutdownTimeout", "PSM_HTTP_SHUTDOWN_TIMEOUT")

	flags.String("authn-method", defaultConfig.Authn.Method, "the authentication method to use (none, preshared, jwt)")
	util.MustBindPFlag("authn.method", flags.Lookup("authn-method"))
	util.MustBindEnv("authn.method", "PSM_AUTHN_METHOD")

	flags.StringSlice("authn-preshared-keys", defaultConfig.Authn.Preshared.Keys, "one or more preshared keys to use for authentication")
	util.MustBindPFlag("authn.preshared.keys", flags.Lookup("authn-preshared-keys"))
	util.MustBindEnv("authn.preshared.keys", "PSM_AUTHN_PRESHARED_KEYS")

	flags.String("authn-jwt-issuer", defaultConfig.Authn.JWT.Issuer, "the trusted jwt issuer (enforced when set)")
	util.MustBindPFlag("authn.jwt.issuer", flags.Lookup("authn-jwt-issuer"))
	util.MustBindEnv("authn.jwt.issuer", "PSM_AUTHN_JWT_ISSUER")

	flags.String("authn-jwt-audience", defaultConfig.Authn.JWT.Audience, "the expected jwt audience (enforced when set)")
	util.MustBindPFlag("authn.jwt.audience", flags.Lookup("authn-jwt-audience"))
	util.MustBindEnv("authn.jwt.audience", "PSM_AUTHN_JWT_AUDIENCE")

	flags.String("authn-jwt-hmac-secret", defaultConfig.Authn.JWT.HMACSecret, "the HMAC secret used to verify jwt signatures")
	util.MustBindPFlag("authn.jwt.hmacSecret", flags.Lookup("authn-jwt-hmac-secret"))
	util.MustBindEnv("authn.jwt.hmacSecret", "PSM_AUTHN_JWT_HMAC_SECRET")

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in (text, json)")
	util.MustBindPFlag("log.format", flags.Lookup("log-format"))
	util.MustBindEnv("log.format", "PSM_LOG_FORMAT")

	flags.String("log-level", defaultConfig.Log.Level, "the log level to use (none, debug, info, warn, error, panic, fatal)")
	util.MustBindPFlag("log.level", flags.Lookup("log-level"))
	util.MustBindEnv("log.level", "PSM_LOG_LEVEL")

	flags.Bool("trace-enabled", defaultConfig.Trace.Enabled, "enable tracing export over OTLP")
	util.MustBindPFlag("trace.enabled", flags.Lookup("trace-enabled"))
	util.MustBindEnv("trace.enabled", "PSM_TRACE_ENABLED")

	flags.String("trace-otlp-endpoint", defaultConfig.Trace.OTLPEndpoint, "the grpc endpoint of the trace collector")
	util.MustBindPFlag("trace.otlpEndpoint", flags.Lookup("trace-otlp-endpoint"))
	util.MustBindEnv("trace.otlpEndpoint", "PSM_TRACE_OTLP_ENDPOINT")

	flags.Float64("trace-sample-ratio", defaultConfig.Trace.SampleRatio, "the fraction of traces to sample")
	util.MustBindPFlag("trace.sampleRatio", flags.Lookup("trace-sample-ratio"))
	util.MustBindEnv("trace.sampleRatio", "PSM_TRACE_SAMPLE_RATIO")

	flags.String("trace-service-name", defaultConfig.Trace.ServiceName, "the service name attached to exported spans")
	util.MustBindPFlag("trace.serviceName", flags.Lookup("trace-service-name"))
	util.MustBindEnv("trace.serviceName", "PSM_TRACE_SERVICE_NAME")

	flags.Int("shared-campaign-limit", defaultConfig.SharedCampaignLimit, "the maximum number of shared campaign templates per account")
	util.MustBindPFlag("sharedCampaignLimit", flags.Lookup("shared-campaign-limit"))
	util.MustBindEnv("sharedCampaignLimit", "PSM_SHARED_CAMPAIGN_LIMIT")
}
