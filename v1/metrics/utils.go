package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/inference-client/v1/observability"
)

// ObserveOperation records an operation reported by an instrumented component.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	status := ctx.Status()
	m.IncrementOperations(ctx.Component, ctx.Operation, status)
	m.RecordOperationDuration(ctx.Component, ctx.Operation, ctx.Duration)

	if ctx.Error == nil {
		return
	}
	kind := "unknown"
	if v, ok := ctx.Metadata["error_kind"]; ok {
		kind = fmt.Sprint(v)
	}
	m.operationErrors.WithLabelValues(ctx.Component, ctx.Operation, kind).Inc()
}

// IncrementOperations increments the operation counter.
// Example: metrics.IncrementOperations("inference", "complete", "success")
func (m *Metrics) IncrementOperations(component, operation, status string) {
	m.operationsTotal.WithLabelValues(component, operation, status).Inc()
}

// RecordOperationDuration records the duration (in seconds) of an operation.
func (m *Metrics) RecordOperationDuration(component, operation string, d time.Duration) {
	m.operationDuration.WithLabelValues(component, operation).Observe(d.Seconds())
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

func createGaugeVec(namespace, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
