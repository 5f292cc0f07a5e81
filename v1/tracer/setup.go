package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger defines the logging operations the tracer needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer wraps an OpenTelemetry TracerProvider and offers span creation,
// error recording and trace context propagation.
//
// The Tracer is safe to share across goroutines.
type Tracer struct {
	tracer     *trace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     Logger
}

// NewClient creates a Tracer and installs it as the global OpenTelemetry
// tracer provider and propagator.
//
// If export is enabled an OTLP HTTP exporter is attached with a batching span
// processor. Failing to create the exporter is reported through logger.Fatal;
// a logger that does not exit gets a working Tracer that records spans
// without exporting them.
//
// Parameters:
//   - cfg: Service name, environment and OTLP export settings
//   - logger: Logger used to report exporter failures
//
// Returns:
//   - *Tracer: A tracer ready for use, never nil
//
// Example:
//
//	t := tracer.NewClient(tracer.NewConfig(), log)
//	defer t.Shutdown(context.Background())
func NewClient(cfg Config, logger Logger) *Tracer {
	return newClient(cfg, logger, newOTLPExporter)
}

type exporterFactory func(ctx context.Context, cfg Config) (trace.SpanExporter, error)

func newOTLPExporter(ctx context.Context, cfg Config) (trace.SpanExporter, error) {
	var clientOpts []otlptracehttp.Option
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	}
	return otlptrace.New(ctx, otlptracehttp.NewClient(clientOpts...))
}

func newClient(cfg Config, logger Logger, newExporter exporterFactory) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := newExporter(context.Background(), cfg)
		if err != nil {
			logger.Fatal("cannot initiate tracer", err, map[string]interface{}{
				"endpoint": cfg.Endpoint,
			})
		} else {
			options = append(options, trace.WithBatcher(exporter))
		}
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	t := newTracer(trace.NewTracerProvider(options...), logger)

	otel.SetTracerProvider(t.tracer)
	otel.SetTextMapPropagator(t.propagator)

	return t
}

func newTracer(tp *trace.TracerProvider, logger Logger) *Tracer {
	return &Tracer{
		tracer:     tp,
		propagator: propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
		logger:     logger,
	}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
