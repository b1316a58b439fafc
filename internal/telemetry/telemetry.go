// Package telemetry provides OpenTelemetry tracing for the command line tools.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName = "tilegrid"

	// EnvEndpoint enables export when set.
	EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Enabled reports whether an OTLP endpoint is configured.
func Enabled() bool {
	return os.Getenv(EnvEndpoint) != ""
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("tilegrid/noop")
}

// Start returns a tracer for name exporting over OTLP HTTP when an endpoint
// is configured, tagging every span with the tool that produced it. The
// exporter reads the standard OTEL_* environment variables. The shutdown
// function flushes pending spans and must run before the process exits.
//
// Without an endpoint, or if setup fails, Start returns a noop tracer and a
// shutdown function that does nothing, along with the setup error.
func Start(ctx context.Context, tool, name string) (trace.Tracer, func(context.Context) error, error) {
	nop := func(context.Context) error { return nil }
	if !Enabled() {
		return NoopTracer(), nop, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return NoopTracer(), nop, err
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("tilegrid.tool", tool),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tp.Tracer("tilegrid/" + name), tp.Shutdown, nil
}
