package extract

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/aisemanticexpert/finkg/ontology"
)

// valueTypes are the entity types whose spans carry a parsed numeric value
// scaled by a trailing unit token.
var valueTypes = map[string]bool{
	"Revenue":        true,
	"NetIncome":      true,
	"TotalAssets":    true,
	"CashFlow":       true,
	"MonetaryAmount": true,
}

// unitMultipliers scales a parsed number by the unit token that followed it.
var unitMultipliers = map[string]float64{
	"trillion": 1e12,
	"t":        1e12,
	"billion":  1e9,
	"b":        1e9,
	"million":  1e6,
	"m":        1e6,
	"thousand": 1e3,
	"k":        1e3,
}

// EntityExtractor extracts typed entity spans from text using the pattern
// table, optionally augmented by a secondary Recognizer.
type EntityExtractor struct {
	schema      *ontology.Schema
	recognizers []Recognizer
	rules       map[string][]entityRule
	aliases     map[string]string
	threshold   float64
	logger      *slog.Logger
}

// EntityExtractorOption configures an EntityExtractor.
type EntityExtractorOption func(*EntityExtractor)

// WithConfidenceThreshold sets the minimum confidence a span must carry to be
// returned. The default is 0.7.
func WithConfidenceThreshold(threshold float64) EntityExtractorOption {
	return func(e *EntityExtractor) {
		e.threshold = threshold
	}
}

// WithRecognizer adds a secondary recognizer whose spans are merged with the
// pattern spans under the standard deduplication rules.
func WithRecognizer(r Recognizer) EntityExtractorOption {
	return func(e *EntityExtractor) {
		e.recognizers = append(e.recognizers, r)
	}
}

// WithCompanyAlias adds or overrides a company alias normalization entry.
func WithCompanyAlias(alias, canonical string) EntityExtractorOption {
	return func(e *EntityExtractor) {
		e.aliases[strings.ToLower(alias)] = canonical
	}
}

// WithEntityLogger sets the logger used for extraction diagnostics.
func WithEntityLogger(logger *slog.Logger) EntityExtractorOption {
	return func(e *EntityExtractor) {
		e.logger = logger
	}
}

// NewEntityExtractor creates an entity extractor backed by the given
// ontology schema.
func NewEntityExtractor(schema *ontology.Schema, opts ...EntityExtractorOption) *EntityExtractor {
	e := &EntityExtractor{
		schema:    schema,
		rules:     entityRules,
		aliases:   make(map[string]string, len(companyAliases)),
		threshold: 0.7,
		logger:    slog.Default(),
	}
	for alias, canonical := range companyAliases {
		e.aliases[alias] = canonical
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the entity spans found in text, deduplicated, filtered by
// the confidence threshold, and ordered by start offset. When types is
// non-empty, only those entity types are extracted; unknown type names are
// ignored silently.
func (e *EntityExtractor) Extract(text string, types ...string) []EntitySpan {
	var spans []EntitySpan

	spans = append(spans, e.extractWithPatterns(text, types)...)
	for _, r := range e.recognizers {
		spans = append(spans, e.extractWithRecognizer(r, text, types)...)
	}

	spans = dedupeSpans(spans)

	filtered := spans[:0]
	for _, s := range spans {
		if s.Confidence >= e.threshold {
			filtered = append(filtered, s)
		}
	}
	sortSpans(filtered)

	e.logger.Debug("entity extraction complete",
		"spans", len(filtered),
		"textLen", len(text))

	return filtered
}

// ExtractFromSection extracts spans from a document section, restricting the
// active type set to the section's declared subset and tagging every span
// with the section label. Unknown section labels get the full type set.
func (e *EntityExtractor) ExtractFromSection(text, section string) []EntitySpan {
	types := sectionEntityTypes[section]
	spans := e.Extract(text, types...)
	for i := range spans {
		spans[i].Properties.SourceSection = section
	}
	return spans
}

func (e *EntityExtractor) extractWithPatterns(text string, types []string) []EntitySpan {
	active := types
	if len(active) == 0 {
		active = make([]string, 0, len(e.rules))
		for t := range e.rules {
			active = append(active, t)
		}
	}

	var spans []EntitySpan
	for _, entityType := range active {
		rules, ok := e.rules[entityType]
		if !ok {
			continue
		}
		for _, r := range rules {
			for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
				span, ok := e.buildSpan(text, entityType, r.confidence, loc)
				if ok {
					spans = append(spans, span)
				}
			}
		}
	}
	return spans
}

// buildSpan turns one match (as submatch index pairs) into a span. The span
// text is the first capturing group when it participated in the match,
// otherwise the full match.
func (e *EntityExtractor) buildSpan(text, entityType string, confidence float64, loc []int) (EntitySpan, bool) {
	start, end := loc[0], loc[1]
	spanText := text[start:end]
	if len(loc) >= 4 && loc[2] >= 0 {
		spanText = text[loc[2]:loc[3]]
	}
	spanText = strings.TrimSpace(spanText)
	if len(spanText) < 2 {
		return EntitySpan{}, false
	}

	span := EntitySpan{
		Text:           spanText,
		NormalizedText: e.normalize(entityType, spanText),
		Type:           entityType,
		Start:          start,
		End:            end,
		Confidence:     confidence,
		OntologyClass:  e.schema.MapEntityType(entityType),
		Origin:         OriginPattern,
	}
	span.Properties = e.spanProperties(text, entityType, spanText, loc)
	return span, true
}

// spanProperties derives the numeric value for monetary and percentage types.
// Malformed numeric text omits the value but keeps the span.
func (e *EntityExtractor) spanProperties(text, entityType, spanText string, loc []int) Properties {
	var props Properties

	switch {
	case valueTypes[entityType]:
		unit := ""
		if len(loc) >= 6 && loc[4] >= 0 {
			unit = text[loc[4]:loc[5]]
		}
		if v := parseScaledValue(spanText, unit); v != nil {
			props.Value = v
			props.Currency = "USD"
		}
	case entityType == "EarningsPerShare":
		if v := parseScaledValue(spanText, ""); v != nil {
			props.Value = v
			props.Currency = "USD"
		}
	case entityType == "Percentage":
		props.Value = parseScaledValue(spanText, "")
	}
	return props
}

func (e *EntityExtractor) extractWithRecognizer(r Recognizer, text string, types []string) []EntitySpan {
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var spans []EntitySpan
	for _, rec := range r.Recognize(text) {
		entityType, ok := recognizerLabelTypes[rec.Label]
		if !ok {
			continue
		}
		if len(types) > 0 && !wanted[entityType] {
			continue
		}
		spanText := strings.TrimSpace(rec.Text)
		if len(spanText) < 2 {
			continue
		}
		spans = append(spans, EntitySpan{
			Text:           spanText,
			NormalizedText: e.normalize(entityType, spanText),
			Type:           entityType,
			Start:          rec.Start,
			End:            rec.End,
			Confidence:     recognizerConfidence,
			OntologyClass:  e.schema.MapEntityType(entityType),
			Origin:         OriginRecognizer,
		})
	}
	return spans
}

func (e *EntityExtractor) normalize(entityType, text string) string {
	trimmed := strings.TrimSpace(text)
	if entityType == "Company" {
		if canonical, ok := e.aliases[strings.ToLower(trimmed)]; ok {
			return canonical
		}
	}
	return trimmed
}

// dedupeSpans merges spans sharing the same identity, keeping the higher
// confidence; ties prefer pattern origin over recognizer origin.
func dedupeSpans(spans []EntitySpan) []EntitySpan {
	unique := make(map[string]EntitySpan, len(spans))
	order := make([]string, 0, len(spans))

	for _, span := range spans {
		key := span.Key()
		existing, ok := unique[key]
		if !ok {
			unique[key] = span
			order = append(order, key)
			continue
		}
		if span.Confidence > existing.Confidence {
			unique[key] = span
		} else if span.Confidence == existing.Confidence &&
			span.Origin == OriginPattern && existing.Origin != OriginPattern {
			unique[key] = span
		}
	}

	out := make([]EntitySpan, 0, len(unique))
	for _, key := range order {
		out = append(out, unique[key])
	}
	return out
}

// parseScaledValue parses the leading decimal number in text, stripping
// thousands separators and currency symbols, and scales it by the unit token.
// It returns nil when no number can be parsed.
func parseScaledValue(text, unit string) *float64 {
	cleaned := strings.NewReplacer(",", "", "$", "", "%", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)

	end := 0
	seenDot := false
	for end < len(cleaned) {
		c := cleaned[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return nil
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(cleaned[:end], "."), 64)
	if err != nil {
		return nil
	}
	if mult, ok := unitMultipliers[strings.ToLower(strings.TrimSpace(unit))]; ok {
		v *= mult
	}
	return &v
}
