package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Aleph-Alpha/inference-client"

// StartSpan creates a new span with the given name and returns an updated context
// containing the span, along with the span itself. The span is a child of any span
// already present in ctx; without one a new root span is started.
//
// Parameters:
//   - ctx: The parent context, which may carry a parent span
//   - name: The operation name shown in the trace
//
// Returns:
//   - context.Context: A context carrying the new span, to pass to downstream calls
//   - traceSpan.Span: The span, which the caller must end
//
// Example:
//
//	func rankDocuments(ctx context.Context, query string) ([]Hit, error) {
//	    ctx, span := tracer.StartSpan(ctx, "rank-documents")
//	    defer span.End()
//
//	    hits, err := index.Query(ctx, query, 10, nil)
//	    if err != nil {
//	        tracer.RecordErrorOnSpan(span, err)
//	        return nil, err
//	    }
//	    return hits, nil
//	}
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	return t.tracer.Tracer(instrumentationName).Start(ctx, name)
}

// RecordErrorOnSpan records an error on a span and sets its status to error,
// so the failed operation stands out in the trace view.
//
// Parameters:
//   - span: The span the error belongs to
//   - err: The error to record; its message becomes the status description
//
// Example:
//
//	out, err := client.Complete(ctx, model, task, inference.How{})
//	if err != nil {
//	    tracer.RecordErrorOnSpan(span, err)
//	    return err
//	}
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes adds attributes to a span. Strings, ints, int64s, float64s and
// bools keep their type; anything else is stored via fmt.Sprint.
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// GetCarrier returns the W3C trace context (traceparent, tracestate, baggage)
// of ctx as a header map, ready to be set on an outgoing request.
//
// The map is empty when ctx carries no sampled span.
//
// Example:
//
//	for k, v := range tracer.GetCarrier(ctx) {
//	    req.Header.Set(k, v)
//	}
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	t.propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext is the inverse of GetCarrier: it extracts trace context
// from carrier into ctx.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return t.propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
