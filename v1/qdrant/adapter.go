package qdrant

import (
	"context"
	"errors"
	"fmt"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/inference-client/v1/vectordb"
)

const defaultBatchSize = 200

// Adapter implements vectordb.Service on top of Qdrant.
type Adapter struct {
	client *QdrantClient
}

var _ vectordb.Service = (*Adapter)(nil)

// NewAdapter creates a vectordb.Service backed by an established Qdrant
// connection.
func NewAdapter(client *QdrantClient) *Adapter {
	return &Adapter{client: client}
}

// EnsureCollection creates a cosine collection if it does not exist and
// checks the vector size of an existing one.
func (a *Adapter) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	if name == "" || vectorSize <= 0 {
		return fmt.Errorf("%w: collection %q with vector size %d", vectordb.ErrInvalidArgument, name, vectorSize)
	}

	existing, err := a.GetCollection(ctx, name)
	switch {
	case err == nil:
		if existing.VectorSize != vectorSize {
			return fmt.Errorf("%w: collection %q has size %d, requested %d",
				vectordb.ErrDimensionMismatch, name, existing.VectorSize, vectorSize)
		}
		return nil
	case !vectordb.IsCollectionNotFoundError(err):
		return err
	}

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	}
	if err := a.client.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("qdrant: create collection %q: %w", name, err)
	}

	a.client.logger.Info("qdrant collection created", nil, map[string]interface{}{
		"collection":  name,
		"vector_size": vectorSize,
	})
	return nil
}

// GetCollection retrieves collection metadata.
func (a *Adapter) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	info, err := a.client.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, mapError(name, err)
	}

	size, distance := extractVectorDetails(info)
	if distance == qdrant.Distance_Cosine.String() {
		distance = vectordb.DistanceCosine
	}
	return &vectordb.Collection{
		Name:       name,
		VectorSize: size,
		Distance:   distance,
		PointCount: info.GetPointsCount(),
	}, nil
}

// ListCollections returns the sorted names of all collections.
func (a *Adapter) ListCollections(ctx context.Context) ([]string, error) {
	names, err := a.client.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("qdrant: list collections: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Insert upserts points in batches of defaultBatchSize and waits for each
// batch to be persisted. IDs, vectors and payloads are all validated before
// the first batch is sent.
func (a *Adapter) Insert(ctx context.Context, collectionName string, inputs []vectordb.EmbeddingInput) error {
	if len(inputs) == 0 {
		return nil
	}

	coll, err := a.GetCollection(ctx, collectionName)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if in.ID == "" {
			return fmt.Errorf("%w: empty point id", vectordb.ErrInvalidArgument)
		}
		if err := validatePointID(in.ID); err != nil {
			return err
		}
		if len(in.Vector) != coll.VectorSize {
			return fmt.Errorf("%w: point %q has %d dimensions, collection %q expects %d",
				vectordb.ErrDimensionMismatch, in.ID, len(in.Vector), collectionName, coll.VectorSize)
		}
	}

	points := make([]*qdrant.PointStruct, len(inputs))
	for i, in := range inputs {
		if points[i], err = toPoint(in); err != nil {
			return err
		}
	}

	wait := true
	for batch := range slices.Chunk(points, defaultBatchSize) {
		_, err := a.client.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: collectionName,
			Points:         batch,
			Wait:           &wait,
		})
		if err != nil {
			return fmt.Errorf("qdrant: upsert into %q: %w", collectionName, mapError(collectionName, err))
		}
	}

	a.client.logger.Debug("qdrant points upserted", nil, map[string]interface{}{
		"collection": collectionName,
		"count":      len(inputs),
	})
	return nil
}

// Delete removes points by ID. Unknown IDs are ignored.
func (a *Adapter) Delete(ctx context.Context, collectionName string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	// IDs Qdrant cannot store cannot exist in the collection.
	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		if validatePointID(id) == nil {
			pointIDs = append(pointIDs, pointID(id))
		}
	}
	if len(pointIDs) == 0 {
		return nil
	}

	wait := true
	_, err := a.client.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: pointIDs},
			},
		},
		Wait: &wait,
	})
	if err != nil {
		return fmt.Errorf("qdrant: delete from %q: %w", collectionName, mapError(collectionName, err))
	}
	return nil
}

// Search runs each request as a Qdrant query. A TopK of zero returns every
// point of the collection.
func (a *Adapter) Search(ctx context.Context, requests ...vectordb.SearchRequest) ([][]vectordb.SearchResult, error) {
	results := make([][]vectordb.SearchResult, len(requests))
	var errs []error

	for i, req := range requests {
		res, err := a.search(ctx, req)
		if err != nil {
			errs = append(errs, fmt.Errorf("request %d: %w", i, err))
			continue
		}
		results[i] = res
	}
	return results, errors.Join(errs...)
}

func (a *Adapter) search(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	filter, err := convertFilterSet(req.Filters)
	if err != nil {
		return nil, err
	}

	limit := uint64(req.TopK)
	if limit == 0 {
		coll, err := a.GetCollection(ctx, req.CollectionName)
		if err != nil {
			return nil, err
		}
		if coll.PointCount == 0 {
			return []vectordb.SearchResult{}, nil
		}
		limit = coll.PointCount
	}

	resp, err := a.client.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: req.CollectionName,
		Query:          qdrant.NewQuery(toFloat32(req.Vector)...),
		Limit:          &limit,
		Filter:         filter,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, mapError(req.CollectionName, err)
	}
	return parseSearchResults(req.CollectionName, resp)
}

// mapError translates gRPC status codes into vectordb sentinel errors.
func mapError(collection string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %q: %s", vectordb.ErrCollectionNotFound, collection, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", vectordb.ErrInvalidArgument, st.Message())
	default:
		return err
	}
}
