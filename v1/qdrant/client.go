package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/inference-client/v1/logger"
)

// QdrantClient wraps the official Qdrant Go client and checks connectivity
// on construction.
type QdrantClient struct {
	api    *qdrant.Client
	cfg    *Config
	logger logger.Logger
}

// NewQdrantClient connects to Qdrant and fails fast if the health check does
// not pass within cfg.Timeout.
func NewQdrantClient(cfg *Config, log logger.Logger) (*QdrantClient, error) {
	if log == nil {
		log = logger.NewNop()
	}

	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	qc := &QdrantClient{api: api, cfg: cfg, logger: log}
	if err := qc.healthCheck(); err != nil {
		_ = api.Close()
		return nil, err
	}
	return qc, nil
}

func (c *QdrantClient) healthCheck() error {
	ctx := context.Background()
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: health check failed: %w", err)
	}

	c.logger.Info("qdrant health check passed", nil, map[string]interface{}{
		"endpoint": c.cfg.Endpoint,
		"version":  resp.GetVersion(),
	})
	return nil
}

// Client returns the underlying Qdrant SDK client.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Close closes the gRPC connection.
func (c *QdrantClient) Close() error {
	if c == nil || c.api == nil {
		return nil
	}
	return c.api.Close()
}
