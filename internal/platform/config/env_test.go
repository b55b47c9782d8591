package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"TABLETOP_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TABLETOP_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), ""); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "TABLETOP_TEST_DOTENV_NEW=from-file\nTABLETOP_TEST_DOTENV_SET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("TABLETOP_TEST_DOTENV_SET", "from-env")
	t.Setenv("TABLETOP_TEST_DOTENV_NEW", "")
	os.Unsetenv("TABLETOP_TEST_DOTENV_NEW")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("TABLETOP_TEST_DOTENV_NEW"); got != "from-file" {
		t.Fatalf("new key = %q, want from-file", got)
	}
	if got := os.Getenv("TABLETOP_TEST_DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing key = %q, want from-env", got)
	}
}
