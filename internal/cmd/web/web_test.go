package web

import (
	"context"
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("expected default api base url, got %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("expected default api timeout, got %s", cfg.APITimeout)
	}
	if cfg.ArtPathPrefix != "/api/" {
		t.Fatalf("expected default art prefix, got %q", cfg.ArtPathPrefix)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("TABLETOP_WEB_HTTP_ADDR", "env-web")
	t.Setenv("TABLETOP_API_BASE_URL", "http://env-api")
	t.Setenv("TABLETOP_LOG_FORMAT", "json")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	args := []string{
		"-http-addr", "flag-web",
		"-api-timeout", "3s",
	}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-web" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != "http://env-api" {
		t.Fatalf("expected env api base url, got %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Fatalf("expected flag api timeout, got %s", cfg.APITimeout)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected env log format, got %q", cfg.LogFormat)
	}
}

func TestParseConfigRejectsNonPositiveTimeout(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-api-timeout", "0s"}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestRunRejectsBadLogFormat(t *testing.T) {
	err := Run(context.Background(), Config{HTTPAddr: "127.0.0.1:0", LogFormat: "xml"})
	if err == nil {
		t.Fatal("expected log format error")
	}
}
