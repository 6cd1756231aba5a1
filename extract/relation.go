package extract

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/aisemanticexpert/finkg/ontology"
)

const (
	defaultRelationThreshold = 0.7
	minSentenceLength        = 20
	maxSentenceLength        = 500

	// Co-occurrence character-distance limits and base confidences.
	riskCooccurrenceDistance   = 150
	metricCooccurrenceDistance = 100
	riskCooccurrenceConfidence = 0.70
	metricCooccurrenceConf     = 0.65
)

// RelationExtractor extracts subject-predicate-object triples from text,
// combining a pattern strategy with sentence-level co-occurrence rules and
// validating candidates against the ontology schema.
type RelationExtractor struct {
	schema    *ontology.Schema
	tokenizer *sentences.DefaultSentenceTokenizer
	rules     map[string][]relationRule
	threshold float64
	maxLen    int
	logger    *slog.Logger
}

// RelationExtractorOption configures a RelationExtractor.
type RelationExtractorOption func(*RelationExtractor)

// WithRelationThreshold sets the minimum confidence a triple must carry to
// be returned. The default is 0.7; lowering it below 0.65 surfaces the
// co-occurrence metric triples.
func WithRelationThreshold(threshold float64) RelationExtractorOption {
	return func(r *RelationExtractor) {
		r.threshold = threshold
	}
}

// WithMaxSentenceLength caps the sentence length considered for extraction.
func WithMaxSentenceLength(n int) RelationExtractorOption {
	return func(r *RelationExtractor) {
		r.maxLen = n
	}
}

// WithRelationLogger sets the logger used for extraction diagnostics.
func WithRelationLogger(logger *slog.Logger) RelationExtractorOption {
	return func(r *RelationExtractor) {
		r.logger = logger
	}
}

// NewRelationExtractor creates a relation extractor backed by the given
// ontology schema. It returns an error if the sentence tokenizer's training
// data cannot be loaded.
func NewRelationExtractor(schema *ontology.Schema, opts ...RelationExtractorOption) (*RelationExtractor, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading sentence tokenizer: %w", err)
	}

	r := &RelationExtractor{
		schema:    schema,
		tokenizer: tokenizer,
		rules:     relationRules,
		threshold: defaultRelationThreshold,
		maxLen:    maxSentenceLength,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Extract returns the triples found in text between the supplied entity
// spans, deduplicated first-seen-wins and filtered by the confidence
// threshold.
func (r *RelationExtractor) Extract(text string, entities []EntitySpan) []Triple {
	var triples []Triple

	for _, sentence := range r.splitSentences(text) {
		inSentence := entitiesInSentence(sentence, entities)
		if len(inSentence) < 2 {
			continue
		}
		triples = append(triples, r.patternTriples(sentence, inSentence)...)
		triples = append(triples, r.cooccurrenceTriples(sentence, inSentence)...)
	}

	triples = dedupeTriples(triples)

	filtered := triples[:0]
	for _, t := range triples {
		if t.Confidence >= r.threshold {
			filtered = append(filtered, t)
		}
	}

	r.logger.Debug("relation extraction complete",
		"triples", len(filtered),
		"entities", len(entities))

	return filtered
}

// splitSentences segments text and keeps sentences within the length bounds;
// overly short fragments carry no relations and overly long ones make
// pattern cost pathological.
func (r *RelationExtractor) splitSentences(text string) []string {
	var out []string
	for _, s := range r.tokenizer.Tokenize(text) {
		sent := strings.TrimSpace(s.Text)
		if len(sent) > minSentenceLength && len(sent) < r.maxLen {
			out = append(out, sent)
		}
	}
	return out
}

func entitiesInSentence(sentence string, entities []EntitySpan) []EntitySpan {
	lower := strings.ToLower(sentence)
	var found []EntitySpan
	for _, e := range entities {
		if strings.Contains(lower, strings.ToLower(e.Text)) {
			found = append(found, e)
		} else if e.NormalizedText != "" && strings.Contains(lower, strings.ToLower(e.NormalizedText)) {
			found = append(found, e)
		}
	}
	return found
}

func (r *RelationExtractor) patternTriples(sentence string, entities []EntitySpan) []Triple {
	// Deterministic rule order.
	relationTypes := make([]string, 0, len(r.rules))
	for rt := range r.rules {
		relationTypes = append(relationTypes, rt)
	}
	sort.Strings(relationTypes)

	var triples []Triple
	for _, relationType := range relationTypes {
		for _, rule := range r.rules[relationType] {
			for _, m := range rule.re.FindAllStringSubmatch(sentence, -1) {
				if len(m) < 3 {
					continue
				}
				subject, ok := resolveEntity(strings.TrimSpace(m[1]), entities)
				if !ok {
					continue
				}
				object, ok := resolveEntity(strings.TrimSpace(m[2]), entities)
				if !ok {
					continue
				}
				if !r.typeSatisfies(subject.Type, rule.subjectType) || !r.typeSatisfies(object.Type, rule.objectType) {
					continue
				}
				if !r.schema.ValidateRelation(subject.Type, relationType, object.Type) {
					continue
				}
				triples = append(triples, Triple{
					Subject:          subject,
					Predicate:        relationType,
					Object:           object,
					Confidence:       rule.confidence,
					OntologyProperty: r.schema.MapRelationType(relationType),
					Evidence:         sentence,
				})
			}
		}
	}
	return triples
}

// cooccurrenceTriples emits the fixed default relation for declared
// entity-type pairs whose members occur near each other in the sentence.
func (r *RelationExtractor) cooccurrenceTriples(sentence string, entities []EntitySpan) []Triple {
	byType := make(map[string][]EntitySpan)
	for _, e := range entities {
		byType[e.Type] = append(byType[e.Type], e)
	}

	var triples []Triple
	for _, company := range byType["Company"] {
		for _, riskType := range riskEntityTypes {
			for _, risk := range byType[riskType] {
				if nearInSentence(sentence, company.Text, risk.Text, riskCooccurrenceDistance) {
					triples = append(triples, Triple{
						Subject:          company,
						Predicate:        "FACES_RISK",
						Object:           risk,
						Confidence:       riskCooccurrenceConfidence,
						OntologyProperty: r.schema.MapRelationType("FACES_RISK"),
						Evidence:         sentence,
					})
				}
			}
		}
		for _, metricType := range metricEntityTypes {
			for _, metric := range byType[metricType] {
				if nearInSentence(sentence, company.Text, metric.Text, metricCooccurrenceDistance) {
					triples = append(triples, Triple{
						Subject:          company,
						Predicate:        "REPORTED",
						Object:           metric,
						Confidence:       metricCooccurrenceConf,
						OntologyProperty: r.schema.MapRelationType("REPORTED"),
						Evidence:         sentence,
					})
				}
			}
		}
	}
	return triples
}

// typeSatisfies reports whether an entity type matches a rule's expected
// type, either exactly or as an ontology subclass of it (so "Risk" accepts
// every risk subtype and "FinancialMetric" accepts every metric).
func (r *RelationExtractor) typeSatisfies(entityType, expectedType string) bool {
	if entityType == expectedType {
		return true
	}
	entityURI := r.schema.MapEntityType(entityType)
	expectedURI := r.schema.MapEntityType(expectedType)
	if entityURI == "" || expectedURI == "" {
		return true
	}
	return r.schema.IsSubclassOf(entityURI, expectedURI)
}

// resolveEntity matches raw pattern-group text to a known entity, exactly
// first, then by substring containment in either direction.
func resolveEntity(text string, entities []EntitySpan) (EntitySpan, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return EntitySpan{}, false
	}

	for _, e := range entities {
		if strings.ToLower(e.Text) == lower || strings.ToLower(e.NormalizedText) == lower {
			return e, true
		}
	}
	for _, e := range entities {
		entityLower := strings.ToLower(e.Text)
		if strings.Contains(entityLower, lower) || strings.Contains(lower, entityLower) {
			return e, true
		}
	}
	return EntitySpan{}, false
}

func nearInSentence(sentence, text1, text2 string, maxDistance int) bool {
	lower := strings.ToLower(sentence)
	pos1 := strings.Index(lower, strings.ToLower(text1))
	pos2 := strings.Index(lower, strings.ToLower(text2))
	if pos1 < 0 || pos2 < 0 {
		return false
	}
	distance := pos1 - pos2
	if distance < 0 {
		distance = -distance
	}
	return distance < maxDistance
}

func dedupeTriples(triples []Triple) []Triple {
	seen := make(map[string]struct{}, len(triples))
	out := make([]Triple, 0, len(triples))
	for _, t := range triples {
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
