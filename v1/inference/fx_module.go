package inference

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/inference-client/v1/logger"
	"github.com/Aleph-Alpha/inference-client/v1/observability"
	"github.com/Aleph-Alpha/inference-client/v1/tracer"
)

// FXModule wires the inference client into Fx.
//
// It provides:
//   - *Config                (NewConfig, replace with fx.Replace to override)
//   - *Client                (NewClientFromParams)
//   - Lifecycle hook         (RegisterInferenceLifecycle)
//
// A *logger.LoggerClient, an observability.Observer (metrics.FXModule provides
// one) and a *tracer.Tracer are picked up when present.
var FXModule = fx.Module(
	"inference",

	fx.Provide(
		NewConfig,           // -> *Config
		NewClientFromParams, // -> *Client
	),

	fx.Invoke(RegisterInferenceLifecycle),
)

// ClientParams are the dependencies of NewClientFromParams.
type ClientParams struct {
	fx.In

	Config   *Config
	Logger   *logger.LoggerClient   `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

// NewClientFromParams builds a Client from the Fx container.
func NewClientFromParams(p ClientParams) (*Client, error) {
	var opts []ClientOption
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.Tracer != nil {
		opts = append(opts, WithTracer(p.Tracer))
	}
	return NewClientFromConfig(p.Config, opts...)
}

// RegisterInferenceLifecycle closes the client's idle connections on shutdown.
func RegisterInferenceLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
