package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisemanticexpert/finkg/llm"
	"github.com/aisemanticexpert/finkg/registry"
)

const appleFilingText = `Apple Inc. reported revenue of $394 billion for fiscal 2023. ` +
	`CEO Tim Cook emphasized continued growth across all product categories. ` +
	`Apple faces significant risks related to supply chain disruptions in Asia. ` +
	`Apple competes with Microsoft in several key markets.`

func newTestPipeline(t *testing.T, opts ...PipelineOption) *Pipeline {
	t.Helper()

	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func TestProcessDocument(t *testing.T) {
	p := newTestPipeline(t)

	doc := NewDocument(appleFilingText)
	result := p.Process(doc)

	assert.Equal(t, doc.ID, result.DocumentID)
	assert.GreaterOrEqual(t, result.EntityCount, 4)
	assert.GreaterOrEqual(t, result.RelationCount, 2)

	stats := p.Graph().Statistics()
	assert.GreaterOrEqual(t, stats.TotalNodes, 4)
	assert.GreaterOrEqual(t, stats.TotalEdges, 2)

	companies := p.Graph().FindByType("Company")
	var names []string
	for _, node := range companies {
		names = append(names, node.Name())
	}
	assert.Contains(t, names, "Apple Inc.")
}

func TestProcessIdempotent(t *testing.T) {
	p := newTestPipeline(t)
	doc := NewDocument(appleFilingText)

	p.Process(doc)
	before := p.Graph().Statistics()

	p.Process(doc)
	after := p.Graph().Statistics()

	assert.Equal(t, before.TotalNodes, after.TotalNodes)
	assert.Equal(t, before.TotalEdges, after.TotalEdges)
}

func TestProcessGeneratesID(t *testing.T) {
	p := newTestPipeline(t)

	result := p.Process(Document{Text: appleFilingText})
	assert.NotEmpty(t, result.DocumentID)
}

func TestProcessSectionedDocument(t *testing.T) {
	p := newTestPipeline(t)

	doc := Document{
		ID:       "10k-1",
		TypeHint: "10-K",
		Text:     appleFilingText,
		Sections: map[string]string{
			"item_1a": "Apple Inc. faces supply chain disruptions and cybersecurity threats.",
		},
	}
	result := p.Process(doc)

	assert.Equal(t, DocTypeForm10K, result.Classification.Type)
	assert.Greater(t, result.EntityCount, 0)

	// Section-scoped extraction tags spans with their source section.
	risks := p.Graph().FindByType("Risk")
	require.NotEmpty(t, risks)
	for _, node := range risks {
		assert.Equal(t, "item_1a", node.Properties["source_section"])
	}
}

func TestRunBatch(t *testing.T) {
	p := newTestPipeline(t)

	docs := []Document{
		{ID: "doc-1", Text: appleFilingText},
		{ID: "doc-2", Text: "Alphabet Inc. reported revenue of $307 billion. Google faces regulatory risk in Europe."},
		{ID: "doc-3", Text: ""},
	}
	stats := p.Run(docs)

	assert.Equal(t, 3, stats.DocumentsProcessed)
	assert.Equal(t, 0, stats.DocumentsFailed)
	assert.Greater(t, stats.TotalEntities, 0)
	assert.Greater(t, stats.TotalNodes, 0)
	assert.Len(t, p.Results(), 3)

	// Alias normalization collapses Google and Alphabet Inc. to one node.
	matches := p.Graph().FindByName("Alphabet Inc.", false)
	assert.Len(t, matches, 1)
}

func TestPipelineQuery(t *testing.T) {
	p := newTestPipeline(t, WithModel(llm.NewMockLLM("Apple faces supply chain risk in Asia.")))
	p.Process(Document{ID: "doc-1", Text: appleFilingText})

	result := p.Query(context.Background(), "What risks does Apple face?")

	assert.Equal(t, "risk", result.Category)
	assert.Greater(t, result.Confidence, 0.0)
	assert.Equal(t, "Apple faces supply chain risk in Asia.", result.Answer)
}

func TestPipelineRegistryAliases(t *testing.T) {
	p := newTestPipeline(t, WithAliases(registry.NewRegistry().Aliases()))
	p.Process(Document{ID: "doc-1", Text: "Chevron reported revenue of $200 billion for the fiscal year."})

	matches := p.Graph().FindByName("Chevron Corporation", false)
	assert.Len(t, matches, 1)
}

func TestExportGraph(t *testing.T) {
	p := newTestPipeline(t)
	p.Process(Document{ID: "doc-1", Text: appleFilingText})

	dir := t.TempDir()
	paths, err := p.ExportGraph(dir)
	require.NoError(t, err)

	jsonPath, ok := paths["json"]
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "knowledge_graph.json"), jsonPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "nodes")
	assert.Contains(t, decoded, "edges")

	cypherPath, ok := paths["cypher"]
	require.True(t, ok)
	script, err := os.ReadFile(cypherPath)
	require.NoError(t, err)
	assert.Contains(t, string(script), "MERGE")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults for missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("overrides merge with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "extraction:\n  entityConfidenceThreshold: 0.5\nneo4j:\n  uri: bolt://localhost:7687\n  user: neo4j\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 0.5, cfg.Extraction.EntityConfidenceThreshold)
		assert.Equal(t, 0.7, cfg.Extraction.RelationConfidenceThreshold)
		require.NotNil(t, cfg.Neo4j)
		assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
		assert.Equal(t, "gpt-3.5-turbo", cfg.GraphRAG.Model)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
