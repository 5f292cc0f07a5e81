package inference

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file/environment configuration of a Client.
//
// INFERENCE_ENDPOINT is the root of the inference API (no /complete appended);
// the client appends endpoint paths itself.
type Config struct {
	// Endpoint is the base URL of the inference API. Defaults to DefaultBaseURL.
	Endpoint string `yaml:"endpoint" envconfig:"INFERENCE_ENDPOINT"`

	// Token is sent as a bearer token.
	Token string `yaml:"token" envconfig:"INFERENCE_API_TOKEN"`

	// HTTPTimeoutS bounds the whole HTTP round trip of the default sender.
	// 0 (the default) means no limit; callers bound latency via context.
	HTTPTimeoutS int `yaml:"http_timeout_seconds" envconfig:"INFERENCE_HTTP_TIMEOUT_SECONDS"`
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	cfg := &Config{Endpoint: DefaultBaseURL}
	cfg.applyEnv()
	return cfg
}

// LoadConfigFile reads a YAML config file; environment variables that are set
// override the file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inference: read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("inference: parse config %s: %w", path, err)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultBaseURL
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("INFERENCE_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("INFERENCE_API_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("INFERENCE_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.HTTPTimeoutS = n
		}
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("inference: missing INFERENCE_ENDPOINT")
	}
	if c.Token == "" {
		return fmt.Errorf("inference: missing INFERENCE_API_TOKEN")
	}
	if c.HTTPTimeoutS < 0 {
		return fmt.Errorf("inference: negative INFERENCE_HTTP_TIMEOUT_SECONDS")
	}
	return nil
}

// NewClientFromConfig validates cfg and builds a Client with an *http.Client
// sender honouring HTTPTimeoutS. Options are applied after the sender is set,
// so WithHTTPSender still wins.
func NewClientFromConfig(cfg *Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("inference: invalid config: %w", err)
	}

	sender := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second}
	return NewClientWithBaseURL(cfg.Endpoint, cfg.Token, append([]ClientOption{WithHTTPSender(sender)}, opts...)...)
}
