package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aisemanticexpert/finkg/ontology"
)

// DocumentType is the closed set of recognized financial document types.
type DocumentType string

const (
	DocTypeForm10K        DocumentType = "10-K"
	DocTypeForm10Q        DocumentType = "10-Q"
	DocTypeForm8K         DocumentType = "8-K"
	DocTypeProxyStatement DocumentType = "DEF14A"
	DocTypeEquityResearch DocumentType = "equity_research"
	DocTypeEarningsCall   DocumentType = "earnings_call"
	DocTypePressRelease   DocumentType = "press_release"
	DocTypeEconomicData   DocumentType = "economic_data"
	DocTypeUnknown        DocumentType = "unknown"
)

// classificationScanLimit bounds how much of a document the type patterns
// scan; type markers appear near the top of real filings.
const classificationScanLimit = 50000

// sectionScanLimit bounds the text scanned for item headings.
const sectionScanLimit = 100000

// sectionBoostWeight scales the confidence boost for detecting the item
// headings a filing type requires.
const sectionBoostWeight = 0.3

// Classification is the outcome of classifying one document.
type Classification struct {
	Type             DocumentType `json:"documentType"`
	OntologyClass    string       `json:"ontologyClass,omitempty"`
	Confidence       float64      `json:"confidence"`
	MatchedPatterns  []string     `json:"matchedPatterns,omitempty"`
	SectionsDetected []string     `json:"sectionsDetected,omitempty"`
}

type classificationRule struct {
	patterns         []*regexp.Regexp
	weight           float64
	requiredSections []string
	ontologyClass    string
}

func classPatterns(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

var classificationRules = map[DocumentType]classificationRule{
	DocTypeForm10K: {
		patterns: classPatterns(
			`FORM\s+10-K`,
			`ANNUAL\s+REPORT\s+PURSUANT\s+TO\s+SECTION\s+13`,
			`For\s+the\s+fiscal\s+year\s+ended`,
			`UNITED\s+STATES\s+SECURITIES\s+AND\s+EXCHANGE\s+COMMISSION.*10-K`,
		),
		weight:           1.0,
		requiredSections: []string{"item_1", "item_1a", "item_7", "item_8"},
		ontologyClass:    ontology.NSDocument + "Form10K",
	},
	DocTypeForm10Q: {
		patterns: classPatterns(
			`FORM\s+10-Q`,
			`QUARTERLY\s+REPORT\s+PURSUANT\s+TO\s+SECTION\s+13`,
			`For\s+the\s+quarterly\s+period\s+ended`,
			`UNITED\s+STATES\s+SECURITIES\s+AND\s+EXCHANGE\s+COMMISSION.*10-Q`,
		),
		weight:           1.0,
		requiredSections: []string{"item_1", "item_2"},
		ontologyClass:    ontology.NSDocument + "Form10Q",
	},
	DocTypeForm8K: {
		patterns: classPatterns(
			`FORM\s+8-K`,
			`CURRENT\s+REPORT\s+PURSUANT\s+TO\s+SECTION\s+13`,
			`Date\s+of\s+Report.*Date\s+of\s+earliest\s+event\s+reported`,
		),
		weight:        1.0,
		ontologyClass: ontology.NSDocument + "Form8K",
	},
	DocTypeProxyStatement: {
		patterns: classPatterns(
			`PROXY\s+STATEMENT`,
			`DEF\s*14A`,
			`SCHEDULE\s+14A`,
			`NOTICE\s+OF\s+ANNUAL\s+MEETING`,
		),
		weight:        1.0,
		ontologyClass: ontology.NSDocument + "ProxyStatement",
	},
	DocTypeEquityResearch: {
		patterns: classPatterns(
			`(?:BUY|SELL|HOLD|NEUTRAL|OUTPERFORM|UNDERPERFORM)\s+(?:RATING|RECOMMENDATION)`,
			`PRICE\s+TARGET`,
			`INVESTMENT\s+THESIS`,
			`DCF\s+(?:ANALYSIS|VALUATION)`,
			`(?:COMPARABLE|COMPS)\s+ANALYSIS`,
			`(?:TARGET|FAIR)\s+VALUE`,
		),
		weight:        0.8,
		ontologyClass: ontology.NSDocument + "EquityResearchReport",
	},
	DocTypeEarningsCall: {
		patterns: classPatterns(
			`EARNINGS\s+(?:CALL|CONFERENCE)`,
			`(?:Q[1-4]|FOURTH|FIRST|SECOND|THIRD)\s+(?:QUARTER|FISCAL)\s+\d{4}\s+(?:EARNINGS|RESULTS)`,
			`OPERATOR:.*(?:WELCOME|THANK\s+YOU\s+FOR\s+STANDING\s+BY)`,
			`QUESTION-?AND-?ANSWER\s+SESSION`,
			`(?:PREPARED\s+REMARKS|OPENING\s+REMARKS)`,
		),
		weight:        0.8,
		ontologyClass: ontology.NSDocument + "EarningsCallTranscript",
	},
	DocTypePressRelease: {
		patterns: classPatterns(
			`PRESS\s+RELEASE`,
			`FOR\s+IMMEDIATE\s+RELEASE`,
			`(?:REPORTS|ANNOUNCES)\s+(?:Q[1-4]|QUARTERLY|ANNUAL)\s+(?:RESULTS|EARNINGS)`,
			`CONTACT:.*(?:INVESTOR\s+RELATIONS|MEDIA\s+RELATIONS)`,
		),
		weight:        0.7,
		ontologyClass: ontology.NSDocument + "PressRelease",
	},
	DocTypeEconomicData: {
		patterns: classPatterns(
			`FRED\s+(?:ECONOMIC|DATA)\s+SERIES`,
			`(?:GDP|UNEMPLOYMENT|INFLATION|CPI|INTEREST\s+RATE)\s+(?:DATA|SERIES)`,
			`FEDERAL\s+RESERVE`,
			`MACROECONOMIC\s+(?:DATA|INDICATOR)`,
		),
		weight:        0.9,
		ontologyClass: ontology.NSDocument + "Document",
	},
}

// sectionHeadings detect filing item headings for structural analysis,
// beyond the four markers used for section splitting.
var sectionHeadings = map[string][]*regexp.Regexp{
	"item_1":  classPatterns(`ITEM\s*1[\.\s]*[-]?\s*BUSINESS`, `PART\s*I.*ITEM\s*1\b`),
	"item_1a": classPatterns(`ITEM\s*1A[\.\s]*[-]?\s*RISK\s*FACTORS`),
	"item_1b": classPatterns(`ITEM\s*1B[\.\s]*[-]?\s*UNRESOLVED\s*STAFF\s*COMMENTS`),
	"item_2":  classPatterns(`ITEM\s*2[\.\s]*[-]?\s*(?:PROPERTIES|MANAGEMENT(?:'|’)?S\s*DISCUSSION)`),
	"item_3":  classPatterns(`ITEM\s*3[\.\s]*[-]?\s*LEGAL\s*PROCEEDINGS`),
	"item_4":  classPatterns(`ITEM\s*4[\.\s]*[-]?\s*MINE\s*SAFETY`),
	"item_5":  classPatterns(`ITEM\s*5[\.\s]*[-]?\s*MARKET\s*FOR`),
	"item_6":  classPatterns(`ITEM\s*6[\.\s]*[-]?\s*(?:RESERVED|SELECTED\s*FINANCIAL)`),
	"item_7":  classPatterns(`ITEM\s*7[\.\s]*[-]?\s*MANAGEMENT(?:'|’)?S\s*DISCUSSION`),
	"item_7a": classPatterns(`ITEM\s*7A[\.\s]*[-]?\s*QUANTITATIVE\s*AND\s*QUALITATIVE`),
	"item_8":  classPatterns(`ITEM\s*8[\.\s]*[-]?\s*FINANCIAL\s*STATEMENTS`),
	"item_9":  classPatterns(`ITEM\s*9[\.\s]*[-]?\s*CHANGES\s*IN\s*AND\s*DISAGREEMENTS`),
}

var knownTypeHints = map[string]DocumentType{
	"10-K":          DocTypeForm10K,
	"10-Q":          DocTypeForm10Q,
	"8-K":           DocTypeForm8K,
	"DEF14A":        DocTypeProxyStatement,
	"economic_data": DocTypeEconomicData,
}

// Classifier assigns a document type and ontology class to raw text. Rules
// are score-based: each type's matched pattern fraction times its weight,
// with a section-presence boost for the periodic SEC filing types.
type Classifier struct{}

// NewClassifier creates a document classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify determines the document type. A recognized non-empty typeHint
// wins outright with full confidence; otherwise the pattern rules score
// the text and the best type is returned, DocTypeUnknown when nothing
// matches.
func (c *Classifier) Classify(text, typeHint string) Classification {
	sections := DetectSections(text)

	if typeHint != "" {
		if known, ok := knownTypeHints[typeHint]; ok {
			return Classification{
				Type:             known,
				OntologyClass:    classificationRules[known].ontologyClass,
				Confidence:       1.0,
				MatchedPatterns:  []string{"type_hint"},
				SectionsDetected: sections,
			}
		}
	}

	sample := text
	if len(sample) > classificationScanLimit {
		sample = sample[:classificationScanLimit]
	}

	best := Classification{Type: DocTypeUnknown}
	for _, docType := range orderedTypes() {
		rule := classificationRules[docType]
		var matched []string
		for _, re := range rule.patterns {
			if re.MatchString(sample) {
				matched = append(matched, re.String())
			}
		}
		if len(matched) == 0 {
			continue
		}

		score := float64(len(matched)) / float64(len(rule.patterns)) * rule.weight
		if len(rule.requiredSections) > 0 {
			score += sectionOverlap(rule.requiredSections, sections) * sectionBoostWeight
		}
		if score > 1.0 {
			score = 1.0
		}
		if score > best.Confidence {
			best = Classification{
				Type:            docType,
				OntologyClass:   rule.ontologyClass,
				Confidence:      score,
				MatchedPatterns: matched,
			}
		}
	}
	best.SectionsDetected = sections
	return best
}

// DetectSections returns the names of filing item headings present in the
// text, sorted.
func DetectSections(text string) []string {
	sample := text
	if len(sample) > sectionScanLimit {
		sample = sample[:sectionScanLimit]
	}

	var sections []string
	for name, patterns := range sectionHeadings {
		for _, re := range patterns {
			if re.MatchString(sample) {
				sections = append(sections, name)
				break
			}
		}
	}
	sort.Strings(sections)
	return sections
}

func sectionOverlap(required, detected []string) float64 {
	if len(required) == 0 {
		return 0
	}
	present := make(map[string]bool, len(detected))
	for _, s := range detected {
		present[s] = true
	}
	var overlap int
	for _, s := range required {
		if present[s] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(required))
}

// orderedTypes returns the rule table keys in deterministic order, so
// equal scores resolve the same way on every run.
func orderedTypes() []DocumentType {
	types := make([]DocumentType, 0, len(classificationRules))
	for docType := range classificationRules {
		types = append(types, docType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

var documentDatePatterns = classPatterns(
	`(?:For\s+the\s+(?:fiscal\s+)?year\s+ended|Period\s+ended)\s+(\w+\s+\d{1,2},?\s+\d{4})`,
	`(?:Filed|Filing\s+Date)[:\s]+(\w+\s+\d{1,2},?\s+\d{4})`,
	`(?:Date\s+of\s+Report)[:\s]+(\w+\s+\d{1,2},?\s+\d{4})`,
)

// ExtractDocumentDate pulls the filing or period date from the head of a
// document, or returns the empty string when none is present.
func ExtractDocumentDate(text string) string {
	sample := text
	if len(sample) > 5000 {
		sample = sample[:5000]
	}
	for _, re := range documentDatePatterns {
		if m := re.FindStringSubmatch(sample); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
