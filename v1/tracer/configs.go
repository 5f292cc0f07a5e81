package tracer

import (
	"os"
	"strconv"
)

// Config configures the tracer provider.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. Without it spans are
	// created and propagated but never shipped.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the OTLP collector URL, e.g. "http://otel-collector:4318".
	// Empty means the OTEL_EXPORTER_OTLP_* environment variables decide.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`
}

// NewConfig reads the tracer configuration from environment variables.
func NewConfig() Config {
	export, _ := strconv.ParseBool(os.Getenv("TRACER_ENABLE_EXPORT"))
	return Config{
		ServiceName:  os.Getenv("TRACER_SERVICE_NAME"),
		AppEnv:       os.Getenv("APP_ENV"),
		EnableExport: export,
		Endpoint:     os.Getenv("TRACER_ENDPOINT"),
	}
}
