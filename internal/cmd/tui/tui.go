// Package tui parses terminal browser flags and runs the bubbletea program.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	entrypoint "github.com/louisbranch/tabletop/internal/platform/cmd"
	"github.com/louisbranch/tabletop/internal/platform/logging"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/shared/restapi"
	"github.com/louisbranch/tabletop/internal/services/tui"
)

// Config holds the tui command configuration.
type Config struct {
	APIBaseURL    string        `env:"TABLETOP_API_BASE_URL"    envDefault:"http://localhost:8000"`
	APITimeout    time.Duration `env:"TABLETOP_API_TIMEOUT"     envDefault:"10s"`
	ArtPathPrefix string        `env:"TABLETOP_ART_PATH_PREFIX" envDefault:"/api/"`
	LogLevel      string        `env:"TABLETOP_LOG_LEVEL"       envDefault:"info"`
	// LogOutput is a file for JSON log records. The terminal belongs to the
	// program, so logs are discarded when it is empty.
	LogOutput string `env:"TABLETOP_TUI_LOG_OUTPUT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "campaign backend base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "timeout for one backend request")
	fs.StringVar(&cfg.ArtPathPrefix, "art-path-prefix", cfg.ArtPathPrefix, "path prefix of backend-relative art URLs")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogOutput, "log-output", cfg.LogOutput, "write JSON log records to this file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.APITimeout <= 0 {
		return Config{}, fmt.Errorf("api timeout must be positive, got %s", cfg.APITimeout)
	}
	return cfg, nil
}

// Run starts the terminal browser and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, cfg Config) error {
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger = logger.With("service", entrypoint.ServiceTUI)

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTUI, logger, func(ctx context.Context) error {
		client, err := restapi.New(restapi.Config{
			BaseURL:       cfg.APIBaseURL,
			ArtPathPrefix: cfg.ArtPathPrefix,
			HTTPClient:    &http.Client{Timeout: cfg.APITimeout},
			Logger:        logger.With("component", "restapi"),
		})
		if err != nil {
			return fmt.Errorf("build api client: %w", err)
		}

		model := tui.NewModel(ctx, gateway.NewREST(client))
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	})
}

func openLogger(cfg Config) (*slog.Logger, func(), error) {
	if cfg.LogOutput == "" {
		return logging.Discard(), func() {}, nil
	}
	file, err := os.OpenFile(cfg.LogOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}
	logger, err := logging.New(file, logging.Options{Level: cfg.LogLevel, Format: string(logging.FormatJSON)})
	if err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, func() { _ = file.Close() }, nil
}
