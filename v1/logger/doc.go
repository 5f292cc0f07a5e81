// Package logger provides structured logging for the inference client and the
// applications embedding it.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: the contract other packages depend on
//   - LoggerClient struct: the zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FX module: provides *LoggerClient and registers a flush hook
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		EnableTracing: true,
//		ServiceName:   "search-api",
//	})
//
//	log.Info("completion finished", nil, map[string]interface{}{
//		"model": "luminous-base",
//	})
//
//	// Adds trace_id and span_id when ctx carries an OpenTelemetry span
//	log.ErrorWithContext(ctx, "completion failed", err, nil)
//
// Every method takes a message, an optional error and any number of field maps.
// Later maps override earlier ones on duplicate keys.
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error (default info)
//	LOGGER_ENABLE_TRACING=true      # add trace_id/span_id in *WithContext methods
//	LOGGER_SERVICE_NAME=search-api  # value of the "service" field
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(logger.NewConfig),
//	)
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package logger
