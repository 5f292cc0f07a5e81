package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Aleph-Alpha/inference-client/v1/logger"
)

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return newTracer(tp, logger.NewNop()), recorder
}

func TestStartSpanRecordsErrorAndAttributes(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "inference.complete")
	tr.SetAttributes(span, map[string]interface{}{
		"inference.model":      "luminous-base",
		"http.status_code":     503,
		"inference.nice":       true,
		"inference.similarity": 0.5,
		"inference.other":      []string{"x"},
	})
	tr.RecordErrorOnSpan(span, errors.New("busy"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "inference.complete", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "busy", ended[0].Status().Description)
	assert.Contains(t, ended[0].Attributes(), attribute.String("inference.model", "luminous-base"))
	assert.Contains(t, ended[0].Attributes(), attribute.Int("http.status_code", 503))
	assert.Contains(t, ended[0].Attributes(), attribute.Bool("inference.nice", true))
	assert.Contains(t, ended[0].Attributes(), attribute.String("inference.other", "[x]"))
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordingTracer()

	ctx, span := tr.StartSpan(context.Background(), "parent")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	extracted := tr.SetCarrierOnContext(context.Background(), carrier)
	_, child := tr.StartSpan(extracted, "child")
	defer child.End()

	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
}

func TestCarrierEmptyWithoutSpan(t *testing.T) {
	tr, _ := newRecordingTracer()
	assert.Empty(t, tr.GetCarrier(context.Background()))
}

func TestNewClientWithoutExport(t *testing.T) {
	tr := NewClient(Config{ServiceName: "search-api", AppEnv: "test"}, logger.NewNop())
	require.NotNil(t, tr)
	assert.NoError(t, tr.Shutdown(context.Background()))
}

type fatalRecorder struct {
	fatals []string
}

func (r *fatalRecorder) Info(string, error, ...map[string]interface{}) {}
func (r *fatalRecorder) Warn(string, error, ...map[string]interface{}) {}
func (r *fatalRecorder) Fatal(msg string, _ error, _ ...map[string]interface{}) {
	r.fatals = append(r.fatals, msg)
}

func TestNewClientExporterFailureStillReturnsTracer(t *testing.T) {
	log := &fatalRecorder{}
	failing := func(context.Context, Config) (sdktrace.SpanExporter, error) {
		return nil, errors.New("no collector")
	}

	tr := newClient(Config{ServiceName: "search-api", EnableExport: true}, log, failing)
	require.NotNil(t, tr)
	assert.Equal(t, []string{"cannot initiate tracer"}, log.fatals)

	ctx, span := tr.StartSpan(context.Background(), "after-failure")
	span.End()
	assert.Contains(t, tr.GetCarrier(ctx), "traceparent")
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNewClientWithExporter(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	factory := func(context.Context, Config) (sdktrace.SpanExporter, error) {
		return exporter, nil
	}

	tr := newClient(Config{ServiceName: "search-api", EnableExport: true}, logger.NewNop(), factory)
	_, span := tr.StartSpan(context.Background(), "exported")
	span.End()
	require.NoError(t, tr.Shutdown(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "exported", spans[0].Name)
}
