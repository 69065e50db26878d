package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amityadav/studybuddy/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const ServiceName = "studybuddy"

// Shutdown flushes and stops the tracer provider
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTracing installs the global tracer provider. mode "stdout" exports
// spans as JSON to stdout; anything else keeps the no-op provider.
func InitTracing(mode string, log *logger.Logger) (Shutdown, error) {
	return initTracing(mode, os.Stdout, log)
}

func initTracing(mode string, w io.Writer, log *logger.Logger) (Shutdown, error) {
	if strings.ToLower(strings.TrimSpace(mode)) != "stdout" {
		log.Debug("[Observability.InitTracing] Tracing disabled")
		return noopShutdown, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("[Observability.InitTracing] Tracing to stdout")
	return tp.Shutdown, nil
}
