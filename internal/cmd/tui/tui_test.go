package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("tui", pflag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("expected default api base url, got %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("expected default api timeout, got %s", cfg.APITimeout)
	}
	if cfg.LogOutput != "" {
		t.Fatalf("expected no log output, got %q", cfg.LogOutput)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("TABLETOP_API_BASE_URL", "http://env-api")

	fs := pflag.NewFlagSet("tui", pflag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"--api-timeout", "2s", "--log-output", "tui.log"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.APIBaseURL != "http://env-api" {
		t.Fatalf("expected env api base url, got %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 2*time.Second || cfg.LogOutput != "tui.log" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigRejectsPositionalArgs(t *testing.T) {
	fs := pflag.NewFlagSet("tui", pflag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"extra"}); err == nil {
		t.Fatal("expected unexpected argument error")
	}
}

func TestOpenLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")
	logger, closeLog, err := openLogger(Config{LogOutput: path, LogLevel: "debug"})
	if err != nil {
		t.Fatalf("openLogger() error = %v", err)
	}
	logger.Info("hello")
	closeLog()

	if _, _, err := openLogger(Config{LogOutput: path, LogLevel: "loud"}); err == nil {
		t.Fatal("expected bad level error")
	}
}
