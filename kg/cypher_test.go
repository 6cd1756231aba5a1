package kg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisemanticexpert/finkg/extract"
)

func TestToCypher(t *testing.T) {
	b := NewBuilder()
	apple := companySpan("Apple", "Apple Inc.")
	risk := riskSpan("supply chain risk")
	b.AddRelation(triple(apple, risk, "FACES_RISK", 0.85), "doc-1")

	script := b.ToGraph().ToCypher()

	t.Run("index statements", func(t *testing.T) {
		assert.Contains(t, script, "CREATE INDEX entity_id IF NOT EXISTS FOR (n:Entity) ON (n.id);")
		assert.Contains(t, script, "CREATE INDEX company_name IF NOT EXISTS FOR (n:Company) ON (n.name);")
	})

	t.Run("node merge with full label set", func(t *testing.T) {
		assert.Contains(t, script, "MERGE (n:Entity:Company {id: '")
		assert.Contains(t, script, "MERGE (n:Entity:SupplyChainRisk:Risk:OperationalRisk {id: '")
	})

	t.Run("relationship merge", func(t *testing.T) {
		assert.Contains(t, script, "MERGE (a)-[r:FACES_RISK]->(b)")
		assert.Contains(t, script, "confidence: 0.85")
	})

	t.Run("source documents rendered as list", func(t *testing.T) {
		assert.Contains(t, script, "source_documents: ['doc-1']")
	})

	t.Run("deterministic output", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.Equal(t, script, b.ToGraph().ToCypher())
		}
	})
}

func TestCypherEscaping(t *testing.T) {
	b := NewBuilder()
	span := extract.EntitySpan{
		Text:           "O'Reilly Media",
		NormalizedText: "O'Reilly Media",
		Type:           "Company",
		Confidence:     0.9,
	}
	other := companySpan("Apple", "Apple Inc.")
	tr := triple(span, other, "PARTNERS_WITH", 0.85)
	tr.Evidence = "line one\nline two with \\ backslash"
	b.AddRelation(tr, "doc-1")

	script := b.ToGraph().ToCypher()

	assert.Contains(t, script, `O\'Reilly Media`)
	assert.Contains(t, script, `line one line two with \\ backslash`)
	assert.NotContains(t, script, "line one\nline two")
}

func TestPropsToCypher(t *testing.T) {
	t.Run("sorted keys and typed values", func(t *testing.T) {
		got := propsToCypher(map[string]any{
			"zeta":  true,
			"alpha": "text",
			"mid":   1.5,
			"count": 3,
		})
		assert.Equal(t, "{alpha: 'text', count: 3, mid: 1.5, zeta: true}", got)
	})

	t.Run("float rendering avoids exponent form", func(t *testing.T) {
		got := propsToCypher(map[string]any{"value": 394e9})
		assert.Equal(t, "{value: 394000000000}", got)
	})

	t.Run("unsupported values skipped", func(t *testing.T) {
		got := propsToCypher(map[string]any{
			"ok":  "yes",
			"bad": struct{}{},
		})
		assert.Equal(t, "{ok: 'yes'}", got)
	})

	t.Run("empty map", func(t *testing.T) {
		assert.Equal(t, "{}", propsToCypher(nil))
	})
}

func TestSanitizeIdentifier(t *testing.T) {
	assert.Equal(t, "FACES_RISK", sanitizeIdentifier("FACES_RISK"))
	assert.Equal(t, "DROPTABLE", sanitizeIdentifier("DROP TABLE;--"))
}

func TestCypherSectionOrder(t *testing.T) {
	b := NewBuilder()
	b.AddRelation(triple(companySpan("Apple", "Apple Inc."), companySpan("Microsoft", "Microsoft Corporation"), "COMPETES_WITH", 0.85), "")

	script := b.ToGraph().ToCypher()
	nodesAt := strings.Index(script, "// Create Nodes")
	relsAt := strings.Index(script, "// Create Relationships")
	require.Greater(t, nodesAt, 0)
	require.Greater(t, relsAt, nodesAt)
}
