// Package observability defines the contract components use to report the
// operations they perform.
//
// A component that talks to an external system (the inference client, for
// example) accepts an optional Observer and calls ObserveOperation once per
// operation with an OperationContext describing what happened. Observers turn
// that into metrics, audit records or anything else; the component itself does
// not know or care.
//
// The metrics package provides a Prometheus-backed Observer:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "search"})
//	client, err := inference.NewClient(token, inference.WithObserver(m))
//
// Observers are called synchronously on the caller's goroutine and must be
// safe for concurrent use.
package observability
