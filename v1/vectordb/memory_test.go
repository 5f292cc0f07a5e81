package vectordb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()

	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.EnsureCollection(ctx, "docs", 2))
	require.NoError(t, s.Insert(ctx, "docs", []EmbeddingInput{
		{ID: "east", Vector: []float64{1, 0}, Payload: map[string]any{"lang": "en"}},
		{ID: "north", Vector: []float64{0, 1}, Payload: map[string]any{"lang": "de"}},
		{ID: "north-east", Vector: []float64{1, 1}, Payload: map[string]any{"lang": "en"}},
		{ID: "west", Vector: []float64{-1, 0}},
	}))
	return s
}

func ids(results []SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestMemoryStoreSearchRanksByCosine(t *testing.T) {
	s := seededStore(t)

	results, err := s.Search(context.Background(), SearchRequest{CollectionName: "docs", Vector: []float64{2, 0}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []string{"east", "north-east", "north", "west"}, ids(results[0]))
	assert.InDelta(t, 1.0, results[0][0].Score, 1e-12)
	assert.InDelta(t, -1.0, results[0][3].Score, 1e-12)
	assert.Equal(t, "docs", results[0][0].CollectionName)
}

func TestMemoryStoreSearchTopKAndFilters(t *testing.T) {
	s := seededStore(t)

	results, err := s.Search(context.Background(),
		SearchRequest{CollectionName: "docs", Vector: []float64{0, 1}, TopK: 2},
		SearchRequest{CollectionName: "docs", Vector: []float64{0, 1}, Filters: NewFilterSet(Must(NewMatch("lang", "en")))},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"north", "north-east"}, ids(results[0]))
	assert.Equal(t, []string{"north-east", "east"}, ids(results[1]))
}

func TestMemoryStoreSearchTiesOrderByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.EnsureCollection(ctx, "docs", 1))
	require.NoError(t, s.Insert(ctx, "docs", []EmbeddingInput{
		{ID: "b", Vector: []float64{1}},
		{ID: "a", Vector: []float64{2}},
		{ID: "c", Vector: []float64{3}},
	}))

	results, err := s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: []float64{1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(results[0]))
}

func TestMemoryStoreSearchPartialFailure(t *testing.T) {
	s := seededStore(t)

	results, err := s.Search(context.Background(),
		SearchRequest{CollectionName: "docs", Vector: []float64{1, 0}, TopK: 1},
		SearchRequest{CollectionName: "missing", Vector: []float64{1, 0}},
		SearchRequest{CollectionName: "docs", Vector: []float64{1, 0, 0}},
	)

	require.Error(t, err)
	assert.True(t, IsCollectionNotFoundError(err))
	assert.True(t, IsDimensionMismatchError(err))
	require.Len(t, results, 3)
	assert.Equal(t, []string{"east"}, ids(results[0]))
	assert.Nil(t, results[1])
	assert.Nil(t, results[2])
}

func TestMemoryStoreSearchCancelled(t *testing.T) {
	s := seededStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: []float64{1, 0}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreInsertValidates(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	err := s.Insert(ctx, "docs", []EmbeddingInput{
		{ID: "ok", Vector: []float64{1, 2}},
		{ID: "bad", Vector: []float64{1}},
	})
	assert.True(t, IsDimensionMismatchError(err))

	err = s.Insert(ctx, "docs", []EmbeddingInput{{Vector: []float64{1, 2}}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = s.Insert(ctx, "missing", []EmbeddingInput{{ID: "x", Vector: []float64{1, 2}}})
	assert.True(t, IsCollectionNotFoundError(err))

	col, err := s.GetCollection(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), col.PointCount)
}

func TestMemoryStoreInsertCopiesInput(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.EnsureCollection(ctx, "docs", 2))

	vector := []float64{1, 0}
	payload := map[string]any{"lang": "en"}
	require.NoError(t, s.Insert(ctx, "docs", []EmbeddingInput{{ID: "a", Vector: vector, Payload: payload}}))

	vector[0] = -1
	payload["lang"] = "de"

	results, err := s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: []float64{1, 0}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, results[0][0].Score, 1e-12)
	assert.Equal(t, "en", results[0][0].Payload["lang"])
}

func TestMemoryStoreCollections(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.EnsureCollection(ctx, "b", 4))
	require.NoError(t, s.EnsureCollection(ctx, "a", 8))
	require.NoError(t, s.EnsureCollection(ctx, "a", 8))
	assert.True(t, IsDimensionMismatchError(s.EnsureCollection(ctx, "a", 16)))
	assert.ErrorIs(t, s.EnsureCollection(ctx, "", 4), ErrInvalidArgument)
	assert.ErrorIs(t, s.EnsureCollection(ctx, "c", 0), ErrInvalidArgument)

	names, err := s.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	col, err := s.GetCollection(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, &Collection{Name: "a", VectorSize: 8, Distance: DistanceCosine}, col)

	_, err = s.GetCollection(ctx, "missing")
	assert.True(t, IsCollectionNotFoundError(err))
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	require.NoError(t, s.Delete(ctx, "docs", []string{"east", "unknown"}))

	results, err := s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: []float64{1, 0}})
	require.NoError(t, err)
	assert.NotContains(t, ids(results[0]), "east")
	assert.Len(t, results[0], 3)

	assert.True(t, IsCollectionNotFoundError(s.Delete(ctx, "missing", []string{"x"})))
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.EnsureCollection(ctx, "docs", 2))

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			if err := s.Insert(ctx, "docs", []EmbeddingInput{{ID: fmt.Sprintf("p%d", i), Vector: []float64{float64(i), 1}}}); err != nil {
				return err
			}
			_, err := s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: []float64{1, 1}, TopK: 3})
			return err
		})
	}
	require.NoError(t, g.Wait())

	col, err := s.GetCollection(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, uint64(50), col.PointCount)
}
