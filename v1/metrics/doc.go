// Package metrics provides Prometheus-based metrics for the inference client.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: the contract for metrics operations
//   - Metrics struct: the concrete implementation
//   - NewMetrics constructor: returns *Metrics
//   - FX module: provides *Metrics and MetricsCollector and runs the /metrics server
//
// *Metrics also implements observability.Observer, so it can be handed straight
// to the inference client:
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "search-api",
//	})
//	go m.Server.ListenAndServe()
//
//	client, err := inference.NewClient(token, inference.WithObserver(m))
//
// Each observed operation updates:
//   - operations_total{component,operation,status}
//   - operation_duration_seconds{component,operation}
//   - operation_errors_total{component,operation,kind} (failures only; kind is
//     taken from the "error_kind" metadata entry, "unknown" when absent)
//
// All metrics carry a constant service="<ServiceName>" label and are prefixed
// with Namespace when one is configured.
//
// # Configuration
//
//	METRICS_ADDRESS=":9090"
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_NAMESPACE="pharia"
//	METRICS_SERVICE_NAME="search-api"
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(logger.NewConfig, metrics.NewConfig),
//	)
package metrics
