package metrics

import (
	"os"
	"strconv"
)

// Default port for metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Default: ":9090"
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace sets a global prefix for all metrics registered by this package.
	//
	// Example:
	//   Namespace: "pharia"
	//   → Metric name becomes "pharia_operations_total"
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// ServiceName is added as a constant service label to every metric.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// NewConfig reads the metrics configuration from environment variables.
func NewConfig() Config {
	collectors := true
	if v := os.Getenv("METRICS_ENABLE_DEFAULT_COLLECTORS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			collectors = b
		}
	}

	addr := os.Getenv("METRICS_ADDRESS")
	if addr == "" {
		addr = DefaultMetricsAddress
	}

	return Config{
		Address:                 addr,
		EnableDefaultCollectors: collectors,
		Namespace:               os.Getenv("METRICS_NAMESPACE"),
		ServiceName:             os.Getenv("METRICS_SERVICE_NAME"),
	}
}
