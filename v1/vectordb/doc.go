// Package vectordb provides similarity search over embeddings returned by the
// inference client.
//
// # Overview
//
// [Service] is the storage contract: collections of points, each a vector with
// an ID and an optional payload, searched by cosine similarity.
// [MemoryStore] is the in-process implementation; it keeps every point in
// memory and ranks with inference.CosineSimilarity.
//
// The qdrant package provides a Service backed by a Qdrant server.
//
// [Index] sits on top of a Service and an [Embedder] (an *inference.Client) and
// turns text into points. Documents are embedded with the Document
// representation, queries with the Query representation, so scores are always
// computed between comparable embeddings.
//
// # Usage
//
//	client, _ := inference.NewClient(token)
//	idx := vectordb.NewIndex(vectordb.NewMemoryStore(), client, vectordb.IndexConfig{
//	    Model:      "luminous-base",
//	    Collection: "recipes",
//	})
//
//	err := idx.AddDocuments(ctx,
//	    vectordb.Document{ID: "pizza", Text: "Pizza is a dish of Italian origin", Payload: map[string]any{"lang": "en"}},
//	    vectordb.Document{ID: "garden", Text: "Gardening is the practice of growing plants"},
//	)
//
//	results, err := idx.Query(ctx, "What is Pizza?", 1, nil)
//	// results[0].ID == "pizza"
//
// # Filters
//
// Search requests take an optional [FilterSet] evaluated against point
// payloads:
//
//	| Type                  | Matches when                          |
//	|-----------------------|---------------------------------------|
//	| MatchCondition        | payload[field] == value               |
//	| MatchAnyCondition     | payload[field] is one of values       |
//	| MatchExceptCondition  | payload[field] is none of values      |
//	| NumericRangeCondition | payload[field] is a number in range   |
//	| TimeRangeCondition    | payload[field] is a time in range     |
//
// Must clauses are ANDed, Should clauses need at least one match, MustNot
// clauses exclude. Numbers compare by value, so int 3 matches float64 3.
//
//	vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("lang", "en")),
//	    vectordb.MustNot(vectordb.NewMatchAny("status", "draft", "deleted")),
//	)
//
// # Thread Safety
//
// MemoryStore and Index are safe for concurrent use.
package vectordb
