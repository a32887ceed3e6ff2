// Package telemetry wires OpenTelemetry tracing for the HTTP server.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted by Setup.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Options configures Setup.
type Options struct {
	ServiceName string
	Exporter    string
	Endpoint    string    // OTLP gRPC collector, host:port
	Writer      io.Writer // stdout exporter target
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider for the chosen exporter. With
// ExporterNone nothing is installed and the returned shutdown is a no-op.
func Setup(ctx context.Context, opts Options) (ShutdownFunc, error) {
	var exporter sdktrace.SpanExporter
	var err error

	switch opts.Exporter {
	case "", ExporterNone:
		return func(context.Context) error { return nil }, nil
	case ExporterStdout:
		stdoutOpts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
		if opts.Writer != nil {
			stdoutOpts = append(stdoutOpts, stdouttrace.WithWriter(opts.Writer))
		}
		exporter, err = stdouttrace.New(stdoutOpts...)
	case ExporterOTLP:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(opts.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", opts.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s exporter: %w", opts.Exporter, err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", opts.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Printf("📡 Tracing enabled (%s)", opts.Exporter)
	return tp.Shutdown, nil
}

// Handler wraps next with server spans named "HTTP <method> <path>".
// Requests for excludedPaths are not traced.
func Handler(next http.Handler, serviceName string, excludedPaths ...string) http.Handler {
	skip := make(map[string]bool, len(excludedPaths))
	for _, p := range excludedPaths {
		skip[p] = true
	}
	return otelhttp.NewHandler(next, serviceName,
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !skip[r.URL.Path]
		}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}),
	)
}
