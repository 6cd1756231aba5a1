package graphrag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisemanticexpert/finkg/extract"
	"github.com/aisemanticexpert/finkg/kg"
	"github.com/aisemanticexpert/finkg/llm"
)

func span(text, entityType string) extract.EntitySpan {
	return extract.EntitySpan{
		Text:           text,
		NormalizedText: text,
		Type:           entityType,
		Confidence:     0.9,
		Origin:         extract.OriginPattern,
	}
}

func newTestGraph(t *testing.T) *kg.Builder {
	t.Helper()

	builder := kg.NewBuilder()
	apple := span("Apple Inc.", "Company")
	microsoft := span("Microsoft Corporation", "Company")
	supplyRisk := span("supply chain disruptions", "SupplyChainRisk")
	revenue := span("$394 billion", "Revenue")
	value := 394e9
	revenue.Properties.Value = &value
	revenue.Properties.Currency = "USD"
	iphone := span("iPhone", "Product")

	builder.AddRelation(extract.Triple{
		Subject:    apple,
		Predicate:  "FACES_RISK",
		Object:     supplyRisk,
		Confidence: 0.85,
		Evidence:   "Apple Inc. faces risks related to supply chain disruptions.",
	}, "doc-1")
	builder.AddRelation(extract.Triple{
		Subject:    apple,
		Predicate:  "COMPETES_WITH",
		Object:     microsoft,
		Confidence: 0.85,
		Evidence:   "Apple Inc. competes with Microsoft Corporation.",
	}, "doc-1")
	builder.AddRelation(extract.Triple{
		Subject:    apple,
		Predicate:  "REPORTED",
		Object:     revenue,
		Confidence: 0.9,
		Evidence:   "Apple Inc. reported revenue of $394 billion.",
	}, "doc-1")
	builder.AddRelation(extract.Triple{
		Subject:    apple,
		Predicate:  "MANUFACTURES",
		Object:     iphone,
		Confidence: 0.85,
		Evidence:   "Apple Inc. manufactures the iPhone.",
	}, "doc-1")
	return builder
}

func TestClassify(t *testing.T) {
	cases := []struct {
		question string
		want     string
	}{
		{"What are the key risks facing Apple?", CategoryRisk},
		{"Describe the risk factors in the filing", CategoryRisk},
		{"What is the revenue of Apple?", CategoryFinancial},
		{"How was the financial performance last quarter?", CategoryFinancial},
		{"Who are the competitors of Apple?", CategoryCompetitor},
		{"Which company competes with Microsoft?", CategoryCompetitor},
		{"What products does Apple make?", CategoryProduct},
		{"Tell me about Apple", CategoryGeneral},
		{"Is the sky blue?", CategoryGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.question, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.question))
		})
	}
}

func TestQueryRiskQuestion(t *testing.T) {
	engine := NewEngine(newTestGraph(t))

	result := engine.Query(context.Background(), "What are the key risks facing Apple?")

	assert.Equal(t, CategoryRisk, result.Category)
	assert.Equal(t, 0.7, result.Confidence)
	assert.Equal(t, AnswerSourceTemplate, result.AnswerSource)

	require.NotEmpty(t, result.EntitiesFound)
	assert.Contains(t, result.EntitiesFound, kg.NodeID("Company", "Apple Inc."))

	var hasRisk bool
	for _, node := range result.RetrievedNodes {
		if node.HasLabel("Risk") {
			hasRisk = true
		}
	}
	assert.True(t, hasRisk, "one-hop retrieval should include the risk node")

	assert.Contains(t, result.Context, "=== KNOWLEDGE GRAPH CONTEXT ===")
	assert.Contains(t, result.Context, "Apple Inc. (Company)")
	assert.Contains(t, result.Context, "FACES_RISK")
	assert.Contains(t, result.Answer, "Apple Inc.")
	assert.Contains(t, result.CypherQuery, "FACES_RISK")
	assert.Contains(t, result.CypherQuery, kg.NodeID("Company", "Apple Inc."))
}

func TestQueryMentionResolution(t *testing.T) {
	engine := NewEngine(newTestGraph(t))

	// "Apple" is a prefix of the canonical name, not an exact match.
	result := engine.Query(context.Background(), "Who are the competitors of Apple?")

	assert.Contains(t, result.EntitiesFound, kg.NodeID("Company", "Apple Inc."))

	var names []string
	for _, node := range result.RetrievedNodes {
		names = append(names, node.Name())
	}
	assert.Contains(t, names, "Microsoft Corporation")
}

func TestQueryFinancialContextIncludesValue(t *testing.T) {
	engine := NewEngine(newTestGraph(t))

	result := engine.Query(context.Background(), "What is the revenue of Apple?")

	assert.Equal(t, CategoryFinancial, result.Category)
	assert.Contains(t, result.Context, "value: 394000000000")
}

func TestQueryFallbackWithoutMentions(t *testing.T) {
	engine := NewEngine(newTestGraph(t))

	result := engine.Query(context.Background(), "What are the key risks?")

	assert.Equal(t, CategoryRisk, result.Category)
	assert.Empty(t, result.EntitiesFound)
	require.NotEmpty(t, result.RetrievedNodes)
	for _, node := range result.RetrievedNodes {
		assert.True(t, node.HasLabel("Risk"), "fallback nodes should match the category type")
	}
	assert.Equal(t, 0.3, result.Confidence)
}

func TestQueryEmptyGraph(t *testing.T) {
	engine := NewEngine(kg.NewBuilder())

	result := engine.Query(context.Background(), "What are the key risks facing Apple?")

	assert.Equal(t, "No relevant information found.", result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Empty(t, result.RetrievedNodes)
	assert.Empty(t, result.RetrievedEdges)
}

func TestQueryWithModel(t *testing.T) {
	t.Run("model answer is used", func(t *testing.T) {
		mock := llm.NewMockLLM("Apple faces significant supply chain risk.")
		engine := NewEngine(newTestGraph(t), WithModel(mock))

		result := engine.Query(context.Background(), "What are the key risks facing Apple?")

		assert.Equal(t, AnswerSourceLLM, result.AnswerSource)
		assert.Equal(t, "Apple faces significant supply chain risk.", result.Answer)
		assert.Equal(t, 0.7, result.Confidence)
	})

	t.Run("model failure degrades to template", func(t *testing.T) {
		mock := llm.NewMockLLMWithError(errors.New("rate limited"))
		engine := NewEngine(newTestGraph(t), WithModel(mock))

		result := engine.Query(context.Background(), "What are the key risks facing Apple?")

		assert.Equal(t, AnswerSourceTemplate, result.AnswerSource)
		assert.Contains(t, result.Answer, "Based on the knowledge graph analysis")
		assert.Equal(t, 0.7, result.Confidence)
	})
}

func TestQueryDeterminism(t *testing.T) {
	engine := NewEngine(newTestGraph(t))

	first := engine.Query(context.Background(), "Tell me about Apple")
	for i := 0; i < 3; i++ {
		next := engine.Query(context.Background(), "Tell me about Apple")
		assert.Equal(t, first, next)
	}
}

func TestCypherTemplate(t *testing.T) {
	t.Run("category queries", func(t *testing.T) {
		assert.Contains(t, cypherTemplate(CategoryRisk, nil), "FACES_RISK")
		assert.Contains(t, cypherTemplate(CategoryFinancial, nil), "REPORTED")
		assert.Contains(t, cypherTemplate(CategoryCompetitor, nil), "COMPETES_WITH")
		assert.Contains(t, cypherTemplate(CategoryProduct, nil), "MANUFACTURES|SELLS")
		assert.Contains(t, cypherTemplate(CategoryGeneral, nil), "MATCH (n)-[r]-(m)")
	})

	t.Run("entity filter", func(t *testing.T) {
		query := cypherTemplate(CategoryRisk, []string{"a", "b"})
		assert.Contains(t, query, "WHERE n.id IN ['a', 'b']")
	})

	t.Run("no filter without entities", func(t *testing.T) {
		assert.False(t, strings.Contains(cypherTemplate(CategoryRisk, nil), "WHERE"))
	})
}

func TestContextLimits(t *testing.T) {
	builder := kg.NewBuilder()
	company := span("Acme Corp", "Company")
	for i := 0; i < 30; i++ {
		risk := span("risk condition "+strings.Repeat("x", i+1), "RegulatoryRisk")
		builder.AddRelation(extract.Triple{
			Subject:    company,
			Predicate:  "FACES_RISK",
			Object:     risk,
			Confidence: 0.8,
			Evidence:   "Acme Corp faces ongoing regulatory risk.",
		}, "doc-1")
	}
	engine := NewEngine(builder)

	result := engine.Query(context.Background(), "What are the key risks facing Acme Corp?")

	entityLines := strings.Count(result.Context, "\n  - ")
	assert.LessOrEqual(t, entityLines, contextNodeLimit+contextEdgeLimit)
	assert.Greater(t, len(result.RetrievedNodes), contextNodeLimit,
		"retrieval is unbounded even though the rendered context is capped")
}
