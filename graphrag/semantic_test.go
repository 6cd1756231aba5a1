package graphrag

import (
	"context"
	"hash/fnv"
	"math"
	"testing"

	"github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisemanticexpert/finkg/kg"
)

// testEmbedding is a deterministic stand-in for a real embedding model.
// Identical texts map to identical unit vectors, so querying with a node
// name ranks that node first.
func testEmbedding() chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		const dims = 16
		vec := make([]float32, dims)
		h := fnv.New32a()
		for i := 0; i < dims; i++ {
			h.Reset()
			h.Write([]byte{byte(i)})
			h.Write([]byte(text))
			vec[i] = float32(h.Sum32()%1000)/500 - 1
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
		return vec, nil
	}
}

func newIndexedResolver(t *testing.T) (*SemanticResolver, kg.Graph) {
	t.Helper()

	graph := newTestGraph(t).ToGraph()
	resolver, err := NewSemanticResolver("test-nodes", testEmbedding())
	require.NoError(t, err)
	require.NoError(t, resolver.Index(context.Background(), graph))
	return resolver, graph
}

func TestSemanticResolverResolve(t *testing.T) {
	resolver, graph := newIndexedResolver(t)

	ids, err := resolver.Resolve(context.Background(), "Apple Inc.", 3)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, kg.NodeID("Company", "Apple Inc."), ids[0],
		"exact name match should rank first")

	known := make(map[string]bool)
	for _, node := range graph.Nodes {
		known[node.ID] = true
	}
	for _, id := range ids {
		assert.True(t, known[id], "resolved IDs must be graph node IDs")
	}
}

func TestSemanticResolverClampsK(t *testing.T) {
	resolver, graph := newIndexedResolver(t)

	ids, err := resolver.Resolve(context.Background(), "anything", 100)
	require.NoError(t, err)
	assert.Len(t, ids, len(graph.Nodes))
}

func TestSemanticResolverEmptyIndex(t *testing.T) {
	resolver, err := NewSemanticResolver("empty", testEmbedding())
	require.NoError(t, err)

	ids, err := resolver.Resolve(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSemanticResolverReindexIdempotent(t *testing.T) {
	resolver, graph := newIndexedResolver(t)

	require.NoError(t, resolver.Index(context.Background(), graph))

	ids, err := resolver.Resolve(context.Background(), "anything", 100)
	require.NoError(t, err)
	assert.Len(t, ids, len(graph.Nodes))
}

func TestEngineSemanticFallback(t *testing.T) {
	builder := newTestGraph(t)
	resolver, err := NewSemanticResolver("fallback-nodes", testEmbedding())
	require.NoError(t, err)
	require.NoError(t, resolver.Index(context.Background(), builder.ToGraph()))

	engine := NewEngine(builder, WithSemanticResolver(resolver))

	// No node name appears verbatim, so resolution goes through the
	// semantic index instead of the lexical scan.
	result := engine.Query(context.Background(), "How is the fruit company doing?")

	assert.Len(t, result.EntitiesFound, semanticResolveLimit)
	assert.NotEmpty(t, result.RetrievedNodes)
	assert.Greater(t, result.Confidence, 0.0)
}
