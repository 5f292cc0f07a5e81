package vectordb

// DistanceCosine is the only metric MemoryStore supports.
const DistanceCosine = "Cosine"

// SearchRequest represents a single similarity search query.
type SearchRequest struct {
	// CollectionName is the target collection to search in
	CollectionName string `json:"collectionName"`

	// Vector is the query embedding to find similar vectors for
	Vector []float64 `json:"vector"`

	// TopK is the maximum number of results to return. 0 returns all matches.
	TopK int `json:"maxResults"`

	// Filters is optional payload filtering (AND/OR/NOT logic)
	Filters *FilterSet `json:"filters,omitempty"`
}

// SearchResult is a single match, ordered by descending Score.
type SearchResult struct {
	ID string `json:"id"`

	// Score is the cosine similarity in [-1, 1]
	Score float64 `json:"score"`

	Payload map[string]any `json:"payload"`

	CollectionName string `json:"collectionName,omitempty"`
}

// EmbeddingInput is a point to insert. Inserting an existing ID replaces it.
type EmbeddingInput struct {
	ID      string         `json:"id"`
	Vector  []float64      `json:"vector"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	Name       string `json:"name"`
	VectorSize int    `json:"vectorSize"`
	Distance   string `json:"distance"`
	PointCount uint64 `json:"pointCount"`
}
