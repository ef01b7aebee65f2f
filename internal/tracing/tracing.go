// Package tracing configures OpenTelemetry for the linkrank CLI. Spans are
// exported with the stdout exporter when tracing is enabled; otherwise a
// no-op provider is installed.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope of linkrank spans.
const TracerName = "github.com/papapumpkin/linkrank"

// Init installs a global tracer provider. When w is nil tracing is disabled
// and the returned shutdown function does nothing.
func Init(ctx context.Context, w io.Writer, serviceVersion string) (func(context.Context) error, error) {
	if w == nil {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("tracing: create stdout exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", "linkrank"),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracing: create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns the linkrank tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
