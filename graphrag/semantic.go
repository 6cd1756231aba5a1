package graphrag

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"github.com/aisemanticexpert/finkg/kg"
)

// SemanticResolver resolves question text to graph nodes by vector
// similarity over node names. It backs up lexical mention resolution:
// when no node name occurs verbatim in a question, nearest-neighbor
// lookup can still seed retrieval.
type SemanticResolver struct {
	db         *chromem.DB
	collection *chromem.Collection
	embed      chromem.EmbeddingFunc
}

// NewSemanticResolver creates an in-memory resolver. The embedding function
// is caller-supplied (e.g. chromem.NewEmbeddingFuncOpenAI or a local model).
func NewSemanticResolver(collectionName string, embed chromem.EmbeddingFunc) (*SemanticResolver, error) {
	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("creating chromem collection: %w", err)
	}
	return &SemanticResolver{db: db, collection: collection, embed: embed}, nil
}

// Index embeds and stores the names of all graph nodes. Re-indexing an
// unchanged node is a no-op since documents are keyed by node ID.
func (r *SemanticResolver) Index(ctx context.Context, graph kg.Graph) error {
	if len(graph.Nodes) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		name := node.Name()
		if name == "" {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:      node.ID,
			Content: name,
			Metadata: map[string]string{
				"entity_type": node.EntityType(),
			},
		})
	}
	if len(docs) == 0 {
		return nil
	}

	if err := r.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("indexing graph nodes: %w", err)
	}
	return nil
}

// Resolve returns the IDs of up to k nodes most similar to the question.
func (r *SemanticResolver) Resolve(ctx context.Context, question string, k int) ([]string, error) {
	count := r.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := r.collection.Query(ctx, question, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying chromem collection: %w", err)
	}

	ids := make([]string, len(results))
	for i, res := range results {
		ids[i] = res.ID
	}
	return ids, nil
}
