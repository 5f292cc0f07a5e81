package vectordb

import "context"

// Service is the storage contract for embeddings.
//
// Example usage:
//
//	func NewSearchService(db vectordb.Service) *SearchService {
//	    return &SearchService{db: db}
//	}
type Service interface {
	// Search runs one or more requests. The result has one slice per request,
	// in request order; failed requests leave a nil slice and their errors are
	// joined into err.
	Search(ctx context.Context, requests ...SearchRequest) ([][]SearchResult, error)

	// Insert adds or replaces points. Every vector must match the collection's
	// vector size and every ID must be valid for the backend; nothing is
	// inserted if one input is rejected. MemoryStore accepts any non-empty ID,
	// the Qdrant adapter only unsigned integers and UUIDs.
	Insert(ctx context.Context, collectionName string, inputs []EmbeddingInput) error

	// Delete removes points by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, collectionName string, ids []string) error

	// EnsureCollection creates a collection if it doesn't exist. Calling it
	// again with the same size is a no-op; a different size is an error.
	EnsureCollection(ctx context.Context, name string, vectorSize int) error

	// GetCollection retrieves metadata about a collection.
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// ListCollections returns the sorted names of all collections.
	ListCollections(ctx context.Context) ([]string, error)
}
