package vectordb

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/Aleph-Alpha/inference-client/v1/inference"
)

// PayloadTextKey is the payload field Index stores the document text under.
const PayloadTextKey = "text"

// Embedder produces semantic embeddings. *inference.Client satisfies it.
type Embedder interface {
	SemanticEmbed(ctx context.Context, model string, task inference.TaskSemanticEmbedding, how inference.How) (*inference.EmbeddingOutput, error)
}

// IndexConfig configures an Index.
type IndexConfig struct {
	// Model is the embedding model used for documents and queries alike.
	Model string

	// Collection is created on the first AddDocuments call, sized after the
	// first embedding.
	Collection string

	// CompressToSize requests compressed embeddings when non-zero.
	CompressToSize uint32

	// Nice sends embedding requests in nice mode.
	Nice bool
}

// Document is a text to index.
type Document struct {
	ID      string
	Text    string
	Payload map[string]any
}

// Index embeds text through an Embedder and stores it in a Service.
type Index struct {
	store    Service
	embedder Embedder
	cfg      IndexConfig
}

// NewIndex creates an index over store.
func NewIndex(store Service, embedder Embedder, cfg IndexConfig) *Index {
	return &Index{store: store, embedder: embedder, cfg: cfg}
}

func (idx *Index) embed(ctx context.Context, text string, representation inference.SemanticRepresentation) ([]float64, error) {
	task := inference.NewSemanticEmbeddingFromText(text, representation)
	if idx.cfg.CompressToSize > 0 {
		task = task.WithCompressToSize(idx.cfg.CompressToSize)
	}

	out, err := idx.embedder.SemanticEmbed(ctx, idx.cfg.Model, task, inference.How{BeNice: idx.cfg.Nice})
	if err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, errors.New("vectordb: empty embedding")
	}
	return out.Embedding, nil
}

// AddDocuments embeds docs with the Document representation and inserts them.
// Embedding stops at the first failure; nothing is inserted in that case.
func (idx *Index) AddDocuments(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}

	inputs := make([]EmbeddingInput, 0, len(docs))
	for _, doc := range docs {
		vector, err := idx.embed(ctx, doc.Text, inference.RepresentationDocument)
		if err != nil {
			return fmt.Errorf("vectordb: embed document %q: %w", doc.ID, err)
		}

		payload := maps.Clone(doc.Payload)
		if payload == nil {
			payload = make(map[string]any, 1)
		}
		payload[PayloadTextKey] = doc.Text

		inputs = append(inputs, EmbeddingInput{ID: doc.ID, Vector: vector, Payload: payload})
	}

	if err := idx.store.EnsureCollection(ctx, idx.cfg.Collection, len(inputs[0].Vector)); err != nil {
		return err
	}
	return idx.store.Insert(ctx, idx.cfg.Collection, inputs)
}

// Query embeds text with the Query representation and returns the topK most
// similar documents passing filters.
func (idx *Index) Query(ctx context.Context, text string, topK int, filters *FilterSet) ([]SearchResult, error) {
	vector, err := idx.embed(ctx, text, inference.RepresentationQuery)
	if err != nil {
		return nil, fmt.Errorf("vectordb: embed query: %w", err)
	}

	results, err := idx.store.Search(ctx, SearchRequest{
		CollectionName: idx.cfg.Collection,
		Vector:         vector,
		TopK:           topK,
		Filters:        filters,
	})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Remove deletes documents by ID.
func (idx *Index) Remove(ctx context.Context, ids ...string) error {
	return idx.store.Delete(ctx, idx.cfg.Collection, ids)
}
