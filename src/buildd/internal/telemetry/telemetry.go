// Package telemetry sets up OpenTelemetry tracing for the daemon.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyEndpoint = "telemetry.otlpEndpoint"

	// ServiceName is reported as the tracing resource's service name.
	ServiceName = "buildd"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Params define values to be used by the tracer provider.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New returns the daemon's TracerProvider. Tracing is opt-in: without an OTLP endpoint the
// provider records nothing and no global provider is registered.
func New(p Params) (trace.TracerProvider, error) {
	var endpoint string
	if err := p.Config.Get(_configKeyEndpoint).Populate(&endpoint); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyEndpoint, err)
	}
	if endpoint == "" {
		return noop.NewTracerProvider(), nil
	}

	ctx := context.Background()
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("creating tracing resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	p.Lifecycle.Append(fx.Hook{
		OnStop: tp.Shutdown,
	})
	p.Logger.Infow("tracing enabled", "endpoint", endpoint)
	return tp, nil
}
