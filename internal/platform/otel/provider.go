// Package otel wires OpenTelemetry tracing for front-end processes.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/louisbranch/tabletop/internal/platform/config"
)

// Config selects where spans are exported and how many are kept.
type Config struct {
	// Endpoint is the OTLP/HTTP collector URL. Empty disables export.
	Endpoint string `env:"TABLETOP_OTEL_ENDPOINT"`
	// Enabled set to "false" disables export even with an endpoint.
	Enabled string `env:"TABLETOP_OTEL_ENABLED"`
	// SampleRatio is the share of root traces recorded, clamped to [0, 1].
	SampleRatio float64 `env:"TABLETOP_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

func (c Config) exporting() bool {
	if strings.EqualFold(strings.TrimSpace(c.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(c.Endpoint) != ""
}

// sampler honors the caller's sampling decision and applies SampleRatio to
// root spans only, so a REST call never breaks an inbound trace.
func (c Config) sampler() sdktrace.Sampler {
	root := sdktrace.TraceIDRatioBased(c.SampleRatio)
	switch {
	case c.SampleRatio >= 1:
		root = sdktrace.AlwaysSample()
	case c.SampleRatio <= 0:
		root = sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(root)
}

// Setup reads Config from the environment and installs tracing for
// serviceName. See SetupWith.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return noop, err
	}
	return SetupWith(ctx, serviceName, cfg)
}

// SetupWith installs the trace-context propagator and, when cfg exports, a
// batching OTLP/HTTP tracer provider. The returned function flushes pending
// spans; it is a no-op when nothing was installed.
func SetupWith(ctx context.Context, serviceName string, cfg Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	if !cfg.exporting() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(cfg.Endpoint)))
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(cfg.sampler()),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func noop(context.Context) error { return nil }
