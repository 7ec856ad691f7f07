// Package observability wires logging and tracing for the data layer. A host
// process calls Init once at startup and Shutdown once at exit; everything
// else receives the logger and tracer by injection.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Config controls the tracing setup.
type Config struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string  // empty disables export; a no-op tracer is returned
	SampleRate   float64 // 0 defaults to always-on
}

// Provider bundles the initialized observability handles.
type Provider struct {
	Logger *slog.Logger
	Tracer trace.Tracer

	tp *sdktrace.TracerProvider
}

// NewLogger returns a JSON slog logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init sets up tracing per cfg and returns a Provider. When no OTLP endpoint
// is configured the tracer is a no-op and Shutdown does nothing.
func Init(ctx context.Context, cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.OTLPEndpoint == "" {
		return &Provider{
			Logger: logger,
			Tracer: tracenoop.NewTracerProvider().Tracer(cfg.ServiceName),
		}, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", cfg.Environment),
	)

	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRate > 0 && cfg.SampleRate < 1 {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)
	otel.SetTracerProvider(tp)

	return &Provider{
		Logger: logger,
		Tracer: tp.Tracer(cfg.ServiceName),
		tp:     tp,
	}, nil
}

// Shutdown flushes and stops the tracer provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.tp.Shutdown(ctx)
}
