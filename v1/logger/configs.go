package logger

import (
	"os"
	"strconv"
)

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level is one of Debug, Info, Warning or Error. Anything else means Info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// EnableTracing adds trace_id and span_id to entries written through the
	// *WithContext methods.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`
}

// NewConfig reads the logger configuration from environment variables.
func NewConfig() Config {
	tracing, _ := strconv.ParseBool(os.Getenv("LOGGER_ENABLE_TRACING"))
	return Config{
		Level:         os.Getenv("ZAP_LOGGER_LEVEL"),
		EnableTracing: tracing,
		ServiceName:   os.Getenv("LOGGER_SERVICE_NAME"),
	}
}
