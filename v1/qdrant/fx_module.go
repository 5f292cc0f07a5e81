package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/inference-client/v1/logger"
	"github.com/Aleph-Alpha/inference-client/v1/vectordb"
)

// FXModule wires a Qdrant-backed vectordb.Service into Fx.
//
// It provides:
//   - *Config           (NewConfig, replace with fx.Replace to override)
//   - *QdrantClient     (connects and health-checks on construction)
//   - vectordb.Service  (*Adapter)
//
// The gRPC connection is closed on application stop.
var FXModule = fx.Module(
	"qdrant",

	fx.Provide(
		NewConfig,
		NewClientFromParams,
		fx.Annotate(NewAdapter, fx.As(new(vectordb.Service))),
	),

	fx.Invoke(RegisterLifecycle),
)

// ClientParams are the dependencies of NewClientFromParams.
type ClientParams struct {
	fx.In

	Config *Config
	Logger *logger.LoggerClient `optional:"true"`
}

// NewClientFromParams builds a QdrantClient from the Fx container.
func NewClientFromParams(p ClientParams) (*QdrantClient, error) {
	if p.Logger == nil {
		return NewQdrantClient(p.Config, nil)
	}
	return NewQdrantClient(p.Config, p.Logger)
}

// RegisterLifecycle closes the client on shutdown.
func RegisterLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.logger.Info("closing qdrant client", nil, nil)
			return client.Close()
		},
	})
}
