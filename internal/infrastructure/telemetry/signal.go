// Package telemetry wires OpenTelemetry traces, metrics and logs, plus
// Pyroscope profiling, for the storefront.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// shutdownTimeout bounds the flush of each provider
const shutdownTimeout = 10 * time.Second

// Signal describes where one OpenTelemetry signal (traces, metrics or logs)
// is exported. All three go to the same OTLP/gRPC collector.
type Signal struct {
	Enabled     bool
	Endpoint    string // collector host:port, e.g. "localhost:4317"
	Insecure    bool
	ServiceName string
	Version     string // build version; "dev" when empty
	Environment string
}

func (s Signal) validate(name string) error {
	if !s.Enabled {
		return nil
	}
	if s.Endpoint == "" {
		return fmt.Errorf("telemetry: %s endpoint is required", name)
	}
	if s.ServiceName == "" {
		return fmt.Errorf("telemetry: %s service name is required", name)
	}
	return nil
}

// resource describes the exporting process. Every signal of one process
// shares the same attributes.
func (s Signal) resource(ctx context.Context) (*resource.Resource, error) {
	version := s.Version
	if version == "" {
		version = "dev"
	}
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithProcessRuntimeName(),
		resource.WithProcessRuntimeVersion(),
		resource.WithAttributes(
			semconv.ServiceName(s.ServiceName),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironmentName(s.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}
	return res, nil
}

// flush runs a provider shutdown under shutdownTimeout
func flush(ctx context.Context, name string, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown %s provider: %w", name, err)
	}
	return nil
}
