package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &LoggerClient{Zap: zap.New(core), tracingEnabled: tracing}, logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(Warning))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestLoggerFieldsAndError(t *testing.T) {
	l, logs := newObservedLogger(false)

	l.Warn("model busy", errors.New("queue full"),
		map[string]interface{}{"model": "luminous-base", "attempt": 1},
		map[string]interface{}{"attempt": 2},
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "model busy", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "luminous-base", fields["model"])
	assert.EqualValues(t, 2, fields["attempt"])
	assert.Equal(t, "queue full", fields["error"])
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	l, logs := newObservedLogger(true)
	l.InfoWithContext(ctx, "traced", nil)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestWithContextTracingDisabled(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	l, logs := newObservedLogger(false)
	l.DebugWithContext(ctx, "untraced", nil)

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "trace_id")
	assert.NotContains(t, fields, "span_id")
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("ZAP_LOGGER_LEVEL", Debug)
	t.Setenv("LOGGER_ENABLE_TRACING", "true")
	t.Setenv("LOGGER_SERVICE_NAME", "search-api")

	cfg := NewConfig()
	assert.Equal(t, Debug, cfg.Level)
	assert.True(t, cfg.EnableTracing)
	assert.Equal(t, "search-api", cfg.ServiceName)
}
