package inference

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Logger is the logging the client does. *logger.LoggerClient satisfies it.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Tracer is the tracing the client does. *tracer.Tracer satisfies it.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
	GetCarrier(ctx context.Context) map[string]string
}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}

func (nopTracer) RecordErrorOnSpan(trace.Span, error) {}

func (nopTracer) SetAttributes(trace.Span, map[string]interface{}) {}

func (nopTracer) GetCarrier(context.Context) map[string]string { return nil }
