// Package tracer provides distributed tracing for the inference client using
// OpenTelemetry.
//
// The inference client opens one span per Execute call ("inference.complete",
// "inference.semantic_embed"), records classified failures on it, and injects
// the W3C trace context into the outbound request headers so the inference
// service can continue the trace.
//
//	tr := tracer.NewClient(tracer.Config{
//		ServiceName:  "search-api",
//		AppEnv:       "production",
//		EnableExport: true,
//	}, log)
//
//	client, err := inference.NewClient(token, inference.WithTracer(tr))
//
// With EnableExport the spans are shipped through the OTLP HTTP exporter, which
// is configured through the standard OTEL_EXPORTER_OTLP_* variables or
// Config.Endpoint.
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		fx.Provide(logger.NewConfig, tracer.NewConfig),
//	)
//
// The tracer provider is flushed and shut down on application stop.
package tracer
