package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/tabletop/internal/platform/otel"
)

func TestSetupModes(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{name: "no endpoint", endpoint: "", enabled: ""},
		{name: "explicitly disabled", endpoint: "http://localhost:4318", enabled: "false"},
		// Non-routable address so nothing is exported.
		{name: "exporter configured", endpoint: "http://192.0.2.1:4318", enabled: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TABLETOP_OTEL_ENDPOINT", tc.endpoint)
			t.Setenv("TABLETOP_OTEL_ENABLED", tc.enabled)

			shutdown, err := otel.Setup(context.Background(), "tabletop-test")
			if err != nil {
				t.Fatalf("Setup() error = %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error = %v", err)
			}
		})
	}
}

func TestSetupRejectsInvalidSampleRatio(t *testing.T) {
	t.Setenv("TABLETOP_OTEL_SAMPLE_RATIO", "most")
	if _, err := otel.Setup(context.Background(), "tabletop-test"); err == nil {
		t.Fatal("expected sample ratio parse error")
	}
}
