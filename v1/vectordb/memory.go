package vectordb

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/Aleph-Alpha/inference-client/v1/inference"
)

type point struct {
	vector  []float64
	payload map[string]any
}

type collection struct {
	vectorSize int
	points     map[string]point
}

// MemoryStore is an in-memory Service ranking points by cosine similarity.
// Search is a linear scan; it suits corpora that fit in memory.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

var _ Service = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*collection)}
}

// EnsureCollection creates name with the given vector size if it is missing.
func (s *MemoryStore) EnsureCollection(_ context.Context, name string, vectorSize int) error {
	if name == "" || vectorSize <= 0 {
		return fmt.Errorf("%w: collection %q with vector size %d", ErrInvalidArgument, name, vectorSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		if c.vectorSize != vectorSize {
			return fmt.Errorf("%w: collection %q has size %d, requested %d", ErrDimensionMismatch, name, c.vectorSize, vectorSize)
		}
		return nil
	}
	s.collections[name] = &collection{vectorSize: vectorSize, points: make(map[string]point)}
	return nil
}

// GetCollection returns metadata about name.
func (s *MemoryStore) GetCollection(_ context.Context, name string) (*Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, name)
	}
	return &Collection{
		Name:       name,
		VectorSize: c.vectorSize,
		Distance:   DistanceCosine,
		PointCount: uint64(len(c.points)),
	}, nil
}

// ListCollections returns the sorted collection names.
func (s *MemoryStore) ListCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.collections)), nil
}

// Insert adds or replaces points. Vectors and payloads are copied.
func (s *MemoryStore) Insert(_ context.Context, collectionName string, inputs []EmbeddingInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCollectionNotFound, collectionName)
	}

	for _, in := range inputs {
		if in.ID == "" {
			return fmt.Errorf("%w: empty point id", ErrInvalidArgument)
		}
		if len(in.Vector) != c.vectorSize {
			return fmt.Errorf("%w: point %q has %d dimensions, collection %q expects %d",
				ErrDimensionMismatch, in.ID, len(in.Vector), collectionName, c.vectorSize)
		}
	}

	for _, in := range inputs {
		c.points[in.ID] = point{
			vector:  slices.Clone(in.Vector),
			payload: maps.Clone(in.Payload),
		}
	}
	return nil
}

// Delete removes points by ID.
func (s *MemoryStore) Delete(_ context.Context, collectionName string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCollectionNotFound, collectionName)
	}
	for _, id := range ids {
		delete(c.points, id)
	}
	return nil
}

// Search ranks the points of each requested collection against the request
// vector. Ties are broken by ID so results are deterministic.
func (s *MemoryStore) Search(ctx context.Context, requests ...SearchRequest) ([][]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([][]SearchResult, len(requests))
	var errs []error

	for i, req := range requests {
		if err := ctx.Err(); err != nil {
			return results, errors.Join(append(errs, err)...)
		}

		res, err := s.search(req)
		if err != nil {
			errs = append(errs, fmt.Errorf("request %d: %w", i, err))
			continue
		}
		results[i] = res
	}
	return results, errors.Join(errs...)
}

func (s *MemoryStore) search(req SearchRequest) ([]SearchResult, error) {
	c, ok := s.collections[req.CollectionName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, req.CollectionName)
	}
	if len(req.Vector) != c.vectorSize {
		return nil, fmt.Errorf("%w: query has %d dimensions, collection %q expects %d",
			ErrDimensionMismatch, len(req.Vector), req.CollectionName, c.vectorSize)
	}

	res := make([]SearchResult, 0, len(c.points))
	for id, p := range c.points {
		if !req.Filters.Matches(p.payload) {
			continue
		}
		res = append(res, SearchResult{
			ID:             id,
			Score:          inference.CosineSimilarity(req.Vector, p.vector),
			Payload:        maps.Clone(p.payload),
			CollectionName: req.CollectionName,
		})
	}

	slices.SortFunc(res, func(a, b SearchResult) int {
		if byScore := cmp.Compare(b.Score, a.Score); byScore != 0 {
			return byScore
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if req.TopK > 0 && len(res) > req.TopK {
		res = res[:req.TopK]
	}
	return res, nil
}
