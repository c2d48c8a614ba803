// Package telemetry wires the OpenTelemetry tracer used to instrument
// backend calls. Spans are exported to a rotated local file so a run can be
// inspected after the fact without any collector infrastructure.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	serviceName = "aicompare"

	// Rotation limits for the trace file.
	traceFileMaxSizeMB  = 10
	traceFileMaxBackups = 3
	traceFileMaxAgeDays = 28

	shutdownTimeout = 5 * time.Second
)

// Init installs a global tracer provider exporting spans to traceFile. When
// traceFile is empty, tracing stays on the default no-op provider and the
// returned cleanup does nothing.
func Init(ctx context.Context, traceFile string) (func(), error) {
	if traceFile == "" {
		return func() {}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry resource: %w", err)
	}

	spanFile := &lumberjack.Logger{
		Filename:   traceFile,
		MaxSize:    traceFileMaxSizeMB,
		MaxBackups: traceFileMaxBackups,
		MaxAge:     traceFileMaxAgeDays,
		Compress:   true,
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(spanFile),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		_ = spanFile.Close()
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = tp.Shutdown(ctx)
		_ = spanFile.Close()
	}
	return cleanup, nil
}
