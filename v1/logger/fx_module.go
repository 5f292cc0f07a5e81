package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *LoggerClient (and the Logger interface) to an Fx
// application and flushes buffered entries on shutdown.
//
// A logger.Config must be available in the container, e.g. fx.Provide(logger.NewConfig).
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		func(l *LoggerClient) Logger { return l },
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle handles cleanup (sync) of the Zap logger.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr returns EINVAL/ENOTTY on sync in most containers.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
