// Package inference is a client for the Aleph Alpha inference API.
//
// # Overview
//
// Callers describe what they want as a Task, send it with Client.Execute, and
// get back either a typed Response or a classified *Error:
//
//	client, err := inference.NewClient(os.Getenv("INFERENCE_API_TOKEN"))
//
//	task := inference.NewCompletionFromText("An apple a day", 64).
//		WithStopSequences("\n")
//	out, err := client.Complete(ctx, "luminous-base", task, inference.How{})
//
// Two task kinds exist:
//
//   - TaskCompletion      POST /complete
//   - TaskSemanticEmbedding POST /semantic_embed
//
// Execute returns *CompletionOutput or *EmbeddingOutput respectively; Complete
// and SemanticEmbed are typed shortcuts.
//
// # Nice mode
//
// How{BeNice: true} appends nice=true to the request, asking the service to
// serve latency-sensitive traffic first. It does not change the response.
//
// # Errors
//
// Every failure of a sent request is an *Error with one of five kinds:
//
//   - KindTooManyRequests  HTTP 429; slow down the request rate
//   - KindBusy             HTTP 503 with code QUEUE_FULL; retry later or use another model
//   - KindHTTP             any other non-success status
//   - KindTransport        no status obtained (refused, reset, cancelled)
//   - KindInvalidResponse  HTTP 200 with a body of the wrong shape
//
// Match with errors.Is and the Err* sentinels, the Is*Error helpers or KindOf:
//
//	switch {
//	case inference.IsTooManyRequestsError(err):
//		// reduce rate
//	case inference.IsBusyError(err):
//		// back off, maybe switch model
//	}
//
// The client never retries. The retry package offers an opt-in policy for
// callers that want one.
//
// # Semantic search
//
// Embed documents with RepresentationDocument, the question with
// RepresentationQuery, and rank with CosineSimilarity:
//
//	doc, _ := client.SemanticEmbed(ctx, model, inference.NewSemanticEmbeddingFromText(text, inference.RepresentationDocument), inference.How{})
//	q, _ := client.SemanticEmbed(ctx, model, inference.NewSemanticEmbeddingFromText(question, inference.RepresentationQuery), inference.How{})
//	score := inference.CosineSimilarity(q.Embedding, doc.Embedding)
//
// # Configuration
//
// NewConfig reads:
//
//   - INFERENCE_ENDPOINT              base URL (default https://api.aleph-alpha.com)
//   - INFERENCE_API_TOKEN             bearer token (required)
//   - INFERENCE_HTTP_TIMEOUT_SECONDS  sender timeout, 0 = none (default)
//
// LoadConfigFile reads the same fields from YAML.
//
// # Dependency Injection (Fx)
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    inference.FXModule,
//	    fx.Provide(logger.NewConfig, metrics.NewConfig),
//	    fx.Invoke(func(c *inference.Client) {
//	        // use the client
//	    }),
//	)
//
// Logger, observer and tracer are picked up from the container when provided.
package inference
