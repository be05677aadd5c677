package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ExporterType selects the span exporter.
type ExporterType string

const (
	ExporterNoop   ExporterType = "noop"
	ExporterStdout ExporterType = "stdout"
	ExporterOTLP   ExporterType = "otlp"
)

// TracingConfig configures the tracing provider.
type TracingConfig struct {
	// ServiceName identifies the service in exported spans.
	ServiceName string

	// ServiceVersion is attached to the service resource.
	ServiceVersion string

	// Environment names the deployment environment.
	Environment string

	// Exporter selects the span exporter.
	Exporter ExporterType

	// Endpoint is the OTLP collector endpoint (host:port).
	Endpoint string

	// Insecure disables transport security for OTLP.
	Insecure bool

	// SampleRate is the trace sampling ratio in [0, 1].
	SampleRate float64

	// BatchTimeout is the span batch export timeout.
	BatchTimeout time.Duration
}

// DefaultTracingConfig returns a default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:    "goap-agent",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Exporter:       ExporterNoop,
		SampleRate:     1.0,
		BatchTimeout:   5 * time.Second,
	}
}

// TracingProvider manages the tracing infrastructure.
type TracingProvider struct {
	tracer        trace.Tracer
	shutdownFuncs []func(context.Context) error
}

// NewTracingProvider creates a tracing provider for the given configuration.
func NewTracingProvider(cfg TracingConfig) (*TracingProvider, error) {
	p := &TracingProvider{}

	if cfg.Exporter == ExporterNoop || cfg.Exporter == "" {
		p.tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
		return p, nil
	}

	// We don't merge with Default() to avoid schema URL conflicts
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	var exporter sdktrace.SpanExporter

	switch cfg.Exporter {
	case ExporterOTLP:
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
		}
		if cfg.Insecure {
			opts = append(opts,
				otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
				otlptracegrpc.WithInsecure(),
			)
		}
		exp, err := otlptracegrpc.New(context.Background(), opts...)
		if err != nil {
			return nil, err
		}
		exporter = exp

	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, err
		}
		exporter = exp

	default:
		return nil, errors.New("unknown trace exporter type")
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(cfg.BatchTimeout),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	p.tracer = tp.Tracer(cfg.ServiceName)
	p.shutdownFuncs = append(p.shutdownFuncs, tp.Shutdown)

	return p, nil
}

// NewNoopTracingProvider creates a provider that records nothing.
func NewNoopTracingProvider() *TracingProvider {
	return &TracingProvider{
		tracer: noop.NewTracerProvider().Tracer("goap-agent"),
	}
}

// Tracer returns the tracer.
func (p *TracingProvider) Tracer() trace.Tracer {
	return p.tracer
}

// Shutdown flushes pending spans and releases exporter resources.
func (p *TracingProvider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range p.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
