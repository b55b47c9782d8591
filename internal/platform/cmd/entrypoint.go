// Package cmd holds the startup steps shared by the web and tui commands:
// environment loading, flag parsing, and the telemetry lifetime of a run.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/louisbranch/tabletop/internal/platform/config"
	"github.com/louisbranch/tabletop/internal/platform/logging"
	"github.com/louisbranch/tabletop/internal/platform/otel"
	"github.com/louisbranch/tabletop/internal/platform/timeouts"
)

// Front-end process names, used for telemetry resources and log attributes.
const (
	ServiceWeb = "web"
	ServiceTUI = "tui"
)

// EnvFileVar overrides the dotenv file read before environment parsing.
const EnvFileVar = "TABLETOP_ENV_FILE"

const defaultEnvFile = ".env"

// FlagParser is the part of *flag.FlagSet and *pflag.FlagSet the commands
// rely on.
type FlagParser interface {
	Parse(arguments []string) error
	Args() []string
}

// EnvFile returns the dotenv path for this process.
func EnvFile() string {
	if path := strings.TrimSpace(os.Getenv(EnvFileVar)); path != "" {
		return path
	}
	return defaultEnvFile
}

// ParseConfig fills cfg from the dotenv file and then the environment. Values
// already present in the environment win over the file.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := config.LoadDotEnv(EnvFile()); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs applies command-line flags on top of the environment and rejects
// positional arguments; neither command takes any.
func ParseArgs(fs FlagParser, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return nil
}

// RunWithTelemetry installs tracing for service, runs run, and flushes spans
// once it returns. A flush failure is logged, never returned.
func RunWithTelemetry(ctx context.Context, service string, logger *slog.Logger, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	switch {
	case service == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logging.OrDiscard(logger)

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.WarnContext(flushCtx, "telemetry shutdown", "service", service, "error", err)
		}
	}()
	return run(ctx)
}
