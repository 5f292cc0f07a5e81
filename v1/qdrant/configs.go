package qdrant

import (
	"os"
	"strconv"
	"time"
)

// Config holds connection settings for the Qdrant client.
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" envconfig:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" envconfig:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" envconfig:"QDRANT_API_KEY"`

	// UseTLS connects over TLS.
	UseTLS bool `yaml:"use_tls" envconfig:"QDRANT_USE_TLS"`

	// Timeout bounds the startup health check.
	Timeout time.Duration `yaml:"timeout" envconfig:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" envconfig:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides defaults for a local Qdrant.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

// NewConfig reads the configuration from environment variables on top of
// DefaultConfig.
func NewConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("QDRANT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v, err := strconv.Atoi(os.Getenv("QDRANT_PORT")); err == nil && v > 0 {
		cfg.Port = v
	}
	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
	if v, err := strconv.ParseBool(os.Getenv("QDRANT_USE_TLS")); err == nil {
		cfg.UseTLS = v
	}
	if v, err := time.ParseDuration(os.Getenv("QDRANT_TIMEOUT")); err == nil && v > 0 {
		cfg.Timeout = v
	}
	if v, err := strconv.ParseBool(os.Getenv("QDRANT_CHECK_COMPATIBILITY")); err == nil {
		cfg.CheckCompatibility = v
	}
	return cfg
}
