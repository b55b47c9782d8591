// Package web parses web command flags and composes the front-end server.
package web

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	entrypoint "github.com/louisbranch/tabletop/internal/platform/cmd"
	"github.com/louisbranch/tabletop/internal/platform/logging"
	"github.com/louisbranch/tabletop/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr      string        `env:"TABLETOP_WEB_HTTP_ADDR"   envDefault:"localhost:8080"`
	APIBaseURL    string        `env:"TABLETOP_API_BASE_URL"    envDefault:"http://localhost:8000"`
	APITimeout    time.Duration `env:"TABLETOP_API_TIMEOUT"     envDefault:"10s"`
	ArtPathPrefix string        `env:"TABLETOP_ART_PATH_PREFIX" envDefault:"/api/"`
	LogLevel      string        `env:"TABLETOP_LOG_LEVEL"       envDefault:"info"`
	LogFormat     string        `env:"TABLETOP_LOG_FORMAT"      envDefault:"text"`
	// TrustForwardedProto is set when a TLS-terminating proxy fronts the
	// server.
	TrustForwardedProto bool `env:"TABLETOP_WEB_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "campaign backend base URL (empty starts degraded)")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "timeout for one backend request")
	fs.StringVar(&cfg.ArtPathPrefix, "art-path-prefix", cfg.ArtPathPrefix, "path prefix of backend-relative art URLs")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "honor X-Forwarded-Proto in the origin check")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.APITimeout <= 0 {
		return Config{}, fmt.Errorf("api timeout must be positive, got %s", cfg.APITimeout)
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With("service", entrypoint.ServiceWeb)

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, logger, func(ctx context.Context) error {
		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			APIBaseURL:          cfg.APIBaseURL,
			APITimeout:          cfg.APITimeout,
			ArtPathPrefix:       cfg.ArtPathPrefix,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Logger:              logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
