package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelationExtractor(t *testing.T, opts ...RelationExtractorOption) *RelationExtractor {
	t.Helper()
	re, err := NewRelationExtractor(newTestSchema(t), opts...)
	require.NoError(t, err)
	return re
}

func tripleByPredicate(triples []Triple, predicate string) (Triple, bool) {
	for _, tr := range triples {
		if tr.Predicate == predicate {
			return tr, true
		}
	}
	return Triple{}, false
}

func TestRelationExtractorPatterns(t *testing.T) {
	schema := newTestSchema(t)
	entityExtractor := NewEntityExtractor(schema)
	relationExtractor := newTestRelationExtractor(t)

	t.Run("competes with", func(t *testing.T) {
		text := "Apple competes with Microsoft in the consumer device market segment."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		triple, ok := tripleByPredicate(triples, "COMPETES_WITH")
		require.True(t, ok)
		assert.Equal(t, "Apple", triple.Subject.Text)
		assert.Equal(t, "Microsoft", triple.Object.Text)
		assert.Equal(t, 0.85, triple.Confidence)
		assert.Contains(t, triple.Evidence, "competes with")
	})

	t.Run("faces risk via pattern", func(t *testing.T) {
		text := "Apple faces significant supply chain risk across its manufacturing base."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		triple, ok := tripleByPredicate(triples, "FACES_RISK")
		require.True(t, ok)
		assert.Equal(t, "Apple", triple.Subject.Text)
		assert.Equal(t, "SupplyChainRisk", triple.Object.Type)
		// Pattern rule (0.85) outranks the co-occurrence duplicate (0.70)
		// because pattern triples are seen first.
		assert.Equal(t, 0.85, triple.Confidence)
	})

	t.Run("reported metric", func(t *testing.T) {
		text := "Apple reported revenue of $394 billion for the period."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		triple, ok := tripleByPredicate(triples, "REPORTED")
		require.True(t, ok)
		assert.Equal(t, "Apple", triple.Subject.Text)
		require.NotNil(t, triple.Object.Properties.Value)
		assert.InDelta(t, 394e9, *triple.Object.Properties.Value, 1)
	})

	t.Run("ceo of", func(t *testing.T) {
		text := "Tim Cook, the CEO of Apple, discussed the quarterly outlook."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		triple, ok := tripleByPredicate(triples, "CEO_OF")
		require.True(t, ok)
		assert.Equal(t, "Person", triple.Subject.Type)
		assert.Equal(t, "Company", triple.Object.Type)
	})

	t.Run("domain violation dropped", func(t *testing.T) {
		// "Tim Cook competes with Microsoft" matches the pattern, but a
		// Person cannot be the subject of COMPETES_WITH.
		text := "Tim Cook competes with Microsoft according to recent commentary."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		for _, tr := range triples {
			assert.NotEqual(t, "COMPETES_WITH", tr.Predicate)
		}
	})
}

func TestRelationExtractorCooccurrence(t *testing.T) {
	schema := newTestSchema(t)
	entityExtractor := NewEntityExtractor(schema)

	t.Run("company near risk emits faces risk", func(t *testing.T) {
		relationExtractor := newTestRelationExtractor(t)
		text := "Apple noted that currency risk remained elevated during the quarter."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		triple, ok := tripleByPredicate(triples, "FACES_RISK")
		require.True(t, ok)
		assert.Equal(t, "CurrencyRisk", triple.Object.Type)
		assert.Equal(t, 0.70, triple.Confidence)
	})

	t.Run("metric cooccurrence below default threshold", func(t *testing.T) {
		relationExtractor := newTestRelationExtractor(t)
		// "posted" matches no REPORTED pattern, so only the 0.65
		// co-occurrence rule applies and the default 0.7 threshold drops it.
		text := "Microsoft posted $62 billion during the same fiscal quarter window."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		_, ok := tripleByPredicate(triples, "REPORTED")
		assert.False(t, ok)
	})

	t.Run("lowered threshold surfaces metric cooccurrence", func(t *testing.T) {
		relationExtractor := newTestRelationExtractor(t, WithRelationThreshold(0.65))
		text := "Microsoft posted $62 billion during the same fiscal quarter window."
		entities := entityExtractor.Extract(text)
		triples := relationExtractor.Extract(text, entities)

		triple, ok := tripleByPredicate(triples, "REPORTED")
		require.True(t, ok)
		assert.Equal(t, 0.65, triple.Confidence)
	})
}

func TestRelationExtractorDedup(t *testing.T) {
	relationExtractor := newTestRelationExtractor(t)
	entityExtractor := NewEntityExtractor(newTestSchema(t))

	text := "Apple competes with Microsoft in devices. Apple competes with Microsoft in services."
	entities := entityExtractor.Extract(text)
	triples := relationExtractor.Extract(text, entities)

	count := 0
	var kept Triple
	for _, tr := range triples {
		if tr.Predicate == "COMPETES_WITH" {
			count++
			kept = tr
		}
	}
	require.Equal(t, 1, count, "identical triples collapse first-seen-wins")
	assert.Contains(t, kept.Evidence, "devices")
}

func TestRelationExtractorSentenceBounds(t *testing.T) {
	relationExtractor := newTestRelationExtractor(t)
	entityExtractor := NewEntityExtractor(newTestSchema(t))

	t.Run("short sentences skipped", func(t *testing.T) {
		text := "Apple wins. Microsoft too."
		entities := entityExtractor.Extract(text)
		assert.Empty(t, relationExtractor.Extract(text, entities))
	})

	t.Run("no entities yields no triples", func(t *testing.T) {
		text := "The weather was unremarkable throughout the entire reporting period."
		assert.Empty(t, relationExtractor.Extract(text, nil))
	})

	t.Run("single entity yields no triples", func(t *testing.T) {
		text := "Apple continued to execute well throughout the reporting period."
		entities := entityExtractor.Extract(text)
		assert.Empty(t, relationExtractor.Extract(text, entities))
	})
}

func TestRelationStats(t *testing.T) {
	relationExtractor := newTestRelationExtractor(t)
	entityExtractor := NewEntityExtractor(newTestSchema(t))

	text := "Apple competes with Microsoft in devices. Apple faces supply chain risk today."
	entities := entityExtractor.Extract(text)
	triples := relationExtractor.Extract(text, entities)
	require.NotEmpty(t, triples)

	stats := RelationStats(triples)
	assert.Equal(t, len(triples), stats.Total)
	assert.Equal(t, 1, stats.ByPredicate["COMPETES_WITH"])
	assert.GreaterOrEqual(t, stats.AvgConfidence, 0.7)
	assert.GreaterOrEqual(t, stats.UniqueSubjects, 1)
}
