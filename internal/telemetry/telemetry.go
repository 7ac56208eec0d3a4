// Package telemetry configures OpenTelemetry tracing for the OTLP/HTTP
// exporter (Honeycomb in practice) and hands out named tracers.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "tilewave"
	serviceVersion = "0.1.0"
)

// Setup installs a global tracer provider backed by an OTLP HTTP exporter.
// The exporter reads the standard OTEL_EXPORTER_OTLP_ENDPOINT and
// OTEL_EXPORTER_OTLP_HEADERS environment variables. The returned shutdown
// function flushes pending spans and should be deferred by the caller.
//
// Library code never calls Setup; when nothing registers a provider, the
// spans created through Tracer are no-ops, so the solver stays usable as a
// plain library (and in tests) with zero telemetry configuration.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Build the resource directly instead of merging with resource.Default()
	// to avoid schema URL conflicts between SDK versions.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for one component of the application.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("tilewave/" + name)
}

// NoopTracer returns a tracer that discards all spans.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("tilewave/noop")
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
