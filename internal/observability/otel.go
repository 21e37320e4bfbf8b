// Package observability wires OpenTelemetry tracing for the ledger process
// and names the span attributes recorded by the ledger cache and its storage.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials"

	"github.com/tbourn/giveaway-ledger/internal/config"
)

const instrumentationPrefix = "github.com/tbourn/giveaway-ledger/"

// Span attributes.
const (
	Generation   = attribute.Key("ledger.generation")
	Mutation     = attribute.Key("ledger.mutation")
	Backend      = attribute.Key("storage.backend")
	PayloadBytes = attribute.Key("storage.bytes")
	BackendCount = attribute.Key("storage.backends")

	// Resource attributes.
	ConfiguredBackends = attribute.Key("ledger.storage.configured")
	DataFile           = attribute.Key("ledger.data_file")
)

// Shutdown flushes buffered spans and stops the exporter.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Replaced in tests.
var (
	dialExporter = func(ctx context.Context, opts ...otlptracegrpc.Option) (sdktrace.SpanExporter, error) {
		return otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	}
	newResource = func(ctx context.Context, attrs ...attribute.KeyValue) (*resource.Resource, error) {
		return resource.New(ctx, resource.WithAttributes(attrs...))
	}
)

// Tracer returns a tracer for the named component from the global provider.
// Before SetupOTel runs (or when tracing is disabled) spans are no-ops.
func Tracer(component string) trace.Tracer {
	return otel.Tracer(instrumentationPrefix + component)
}

// SetupOTel installs the global tracer provider and W3C propagators. The
// exported resource names the service and the storage backends the process
// is configured to try. Globals are left untouched on error.
func SetupOTel(ctx context.Context, cfg config.OTELConfig, st config.StorageConfig, version string) (Shutdown, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	exp, err := dialExporter(ctx, exporterOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := newResource(ctx, resourceAttributes(cfg.ServiceName, version, st)...)
	if err != nil {
		_ = exp.Shutdown(ctx)
		return nil, fmt.Errorf("trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

func exporterOptions(cfg config.OTELConfig) []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		return append(opts, otlptracegrpc.WithInsecure())
	}
	return append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
}

// resourceAttributes lists the backends in the order Storage tries them;
// the local file is always present.
func resourceAttributes(service, version string, st config.StorageConfig) []attribute.KeyValue {
	backends := make([]string, 0, 3)
	if st.MongoURI != "" {
		backends = append(backends, "mongodb")
	}
	if st.DatabaseURL != "" {
		backends = append(backends, "sql")
	}
	backends = append(backends, "file")

	return []attribute.KeyValue{
		semconv.ServiceName(service),
		semconv.ServiceVersion(version),
		ConfiguredBackends.StringSlice(backends),
		DataFile.String(st.DataFile),
	}
}
