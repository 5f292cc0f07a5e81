package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/inference-client/v1/logger"
)

// FXModule provides *Tracer and flushes it on application stop.
//
// A tracer.Config and a *logger.LoggerClient must be available in the container.
var FXModule = fx.Module("tracer",
	fx.Provide(
		func(cfg Config, log *logger.LoggerClient) *Tracer { return NewClient(cfg, log) },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle shuts the tracer provider down on stop so pending
// spans reach the exporter.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer == nil || tracer.tracer == nil {
				return nil
			}
			tracer.logger.Info("shutting down tracer", nil, nil)
			return tracer.Shutdown(ctx)
		},
	})
}
