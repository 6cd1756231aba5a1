package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisemanticexpert/finkg/ontology"
)

const sampleForm10K = `
UNITED STATES SECURITIES AND EXCHANGE COMMISSION
FORM 10-K
ANNUAL REPORT PURSUANT TO SECTION 13 OR 15(d) OF THE SECURITIES EXCHANGE ACT OF 1934
For the fiscal year ended September 30, 2023

ITEM 1. BUSINESS
Apple Inc. designs, manufactures and markets smartphones and personal computers.

ITEM 1A. RISK FACTORS
The Company faces risks related to supply chain disruptions in Asia.

ITEM 7. MANAGEMENT'S DISCUSSION AND ANALYSIS
Revenue increased compared to the prior year.

ITEM 8. FINANCIAL STATEMENTS
Consolidated statements of operations follow.
`

func TestClassifyForm10K(t *testing.T) {
	c := NewClassifier()

	result := c.Classify(sampleForm10K, "")

	assert.Equal(t, DocTypeForm10K, result.Type)
	assert.Equal(t, ontology.NSDocument+"Form10K", result.OntologyClass)
	assert.Greater(t, result.Confidence, 0.9)
	assert.NotEmpty(t, result.MatchedPatterns)
	assert.Subset(t, result.SectionsDetected, []string{"item_1", "item_1a", "item_7", "item_8"})
}

func TestClassifyTypeHint(t *testing.T) {
	c := NewClassifier()

	t.Run("recognized hint wins", func(t *testing.T) {
		result := c.Classify("unremarkable text", "10-Q")
		assert.Equal(t, DocTypeForm10Q, result.Type)
		assert.Equal(t, 1.0, result.Confidence)
		assert.Equal(t, []string{"type_hint"}, result.MatchedPatterns)
	})

	t.Run("unrecognized hint falls through to patterns", func(t *testing.T) {
		result := c.Classify(sampleForm10K, "letter_to_shareholders")
		assert.Equal(t, DocTypeForm10K, result.Type)
	})
}

func TestClassifyOtherTypes(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		name string
		text string
		want DocumentType
	}{
		{
			"press release",
			"FOR IMMEDIATE RELEASE\nAcme Corp REPORTS QUARTERLY RESULTS\nCONTACT: Investor Relations",
			DocTypePressRelease,
		},
		{
			"earnings call",
			"Acme Corp Q3 FISCAL 2023 EARNINGS CALL\nOPERATOR: Thank you for standing by. Welcome.\nQUESTION-AND-ANSWER SESSION",
			DocTypeEarningsCall,
		},
		{
			"equity research",
			"BUY RATING maintained. PRICE TARGET raised to $210. INVESTMENT THESIS: durable growth. DCF VALUATION supports upside.",
			DocTypeEquityResearch,
		},
		{
			"economic data",
			"FRED ECONOMIC SERIES: GDP DATA published by the FEDERAL RESERVE.",
			DocTypeEconomicData,
		},
		{
			"proxy statement",
			"SCHEDULE 14A PROXY STATEMENT\nNOTICE OF ANNUAL MEETING OF SHAREHOLDERS",
			DocTypeProxyStatement,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Classify(tc.text, "")
			assert.Equal(t, tc.want, result.Type)
			assert.Greater(t, result.Confidence, 0.0)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("The quick brown fox jumps over the lazy dog.", "")

	assert.Equal(t, DocTypeUnknown, result.Type)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Empty(t, result.MatchedPatterns)
}

func TestClassifyDeterminism(t *testing.T) {
	c := NewClassifier()

	first := c.Classify(sampleForm10K, "")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(sampleForm10K, ""))
	}
}

func TestDetectSections(t *testing.T) {
	sections := DetectSections(sampleForm10K)
	assert.Equal(t, []string{"item_1", "item_1a", "item_7", "item_8"}, sections)

	assert.Empty(t, DetectSections("no headings here"))
}

func TestSplitSections(t *testing.T) {
	sections := SplitSections(sampleForm10K)

	require.Contains(t, sections, "item_1a")
	assert.Contains(t, sections["item_1a"], "supply chain disruptions")
	assert.NotContains(t, sections["item_1a"], "MANAGEMENT'S DISCUSSION")

	require.Contains(t, sections, "item_1")
	assert.Contains(t, sections["item_1"], "designs, manufactures")

	// The last section runs to the end of the text.
	require.Contains(t, sections, "item_8")
	assert.Contains(t, sections["item_8"], "Consolidated statements")

	assert.Empty(t, SplitSections("no headings here"))
}

func TestSplitSectionsCapsTrailingSection(t *testing.T) {
	text := "ITEM 8. FINANCIAL STATEMENTS\n" + strings.Repeat("x", maxSectionLength+1000)
	sections := SplitSections(text)

	require.Contains(t, sections, "item_8")
	assert.LessOrEqual(t, len(sections["item_8"]), maxSectionLength)
}

func TestExtractDocumentDate(t *testing.T) {
	assert.Equal(t, "September 30, 2023", ExtractDocumentDate(sampleForm10K))
	assert.Equal(t, "March 1, 2024", ExtractDocumentDate("Date of Report: March 1, 2024"))
	assert.Equal(t, "", ExtractDocumentDate("no dates of interest"))
}
