/*
Package qdrant implements vectordb.Service on top of the Qdrant vector
database using the official gRPC client.

Collections are created with cosine distance, so scores are directly
comparable with inference.CosineSimilarity and with vectordb.MemoryStore.

Basic usage:

	client, err := qdrant.NewQdrantClient(qdrant.NewConfig(), log)
	if err != nil {
		return err
	}
	defer client.Close()

	var store vectordb.Service = qdrant.NewAdapter(client)
	index := vectordb.NewIndex(store, inferenceClient, vectordb.IndexConfig{
		Model:      "luminous-base",
		Collection: "docs",
	})

With Fx:

	app := fx.New(
		logger.FXModule,
		inference.FXModule,
		qdrant.FXModule, // provides vectordb.Service
	)

Point IDs must be unsigned integers or UUIDs. Payload values are stored as
Qdrant values; integers come back as int64 and floats as float64.

Filters from vectordb translate as follows:

	MatchCondition         string, bool and integer keyword match; floats use a closed range
	MatchAnyCondition      keyword or integer set
	MatchExceptCondition   negated keyword or integer set
	NumericRangeCondition  range
	TimeRangeCondition     datetime range

Configuration is read from QDRANT_ENDPOINT, QDRANT_PORT, QDRANT_API_KEY,
QDRANT_USE_TLS, QDRANT_TIMEOUT and QDRANT_CHECK_COMPATIBILITY.
*/
package qdrant
