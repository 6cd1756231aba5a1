// Package extract implements ontology-guided entity and relation extraction
// from financial documents. Extraction is table-driven: each entity and
// relation type owns an ordered list of regular-expression rules with fixed
// base confidences, and an optional secondary recognizer can contribute
// additional spans that are merged under the same deduplication rules.
package extract

import (
	"fmt"
	"sort"
	"strings"
)

// Span origins.
const (
	OriginPattern    = "pattern"
	OriginRecognizer = "recognizer"
)

// Properties carries typed attributes attached to an extracted span.
// Value is nil when no numeric value could be parsed from the span text.
type Properties struct {
	Value         *float64          `json:"value,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	SourceSection string            `json:"sourceSection,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// EntitySpan is a typed, confidence-scored occurrence of an entity in text.
//
// Identity for deduplication is (lowercased NormalizedText, Type): two spans
// with the same identity in one extraction pass merge into the span with the
// higher confidence, ties preferring pattern origin over recognizer origin.
type EntitySpan struct {
	Text           string     `json:"text"`
	NormalizedText string     `json:"normalizedText"`
	Type           string     `json:"type"`
	Start          int        `json:"start"`
	End            int        `json:"end"`
	Confidence     float64    `json:"confidence"`
	OntologyClass  string     `json:"ontologyClass,omitempty"`
	Properties     Properties `json:"properties"`
	Origin         string     `json:"origin"`
}

// Key returns the deduplication identity of the span.
func (e EntitySpan) Key() string {
	return strings.ToLower(e.NormalizedText) + "|" + e.Type
}

// Triple is a subject-predicate-object relation between two entity spans.
//
// Identity for deduplication is (lowercased subject text, predicate,
// lowercased object text); the first-seen triple wins a collision.
type Triple struct {
	Subject          EntitySpan        `json:"subject"`
	Predicate        string            `json:"predicate"`
	Object           EntitySpan        `json:"object"`
	Confidence       float64           `json:"confidence"`
	OntologyProperty string            `json:"ontologyProperty,omitempty"`
	Evidence         string            `json:"evidence,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
}

// Key returns the deduplication identity of the triple.
func (t Triple) Key() string {
	return strings.ToLower(t.Subject.Text) + "|" + t.Predicate + "|" + strings.ToLower(t.Object.Text)
}

// String renders the triple in arrow notation, mainly for logs and debugging.
func (t Triple) String() string {
	return fmt.Sprintf("(%s) --[%s]--> (%s)", t.Subject.Text, t.Predicate, t.Object.Text)
}

// EntityStatistics summarizes one extraction pass.
type EntityStatistics struct {
	Total         int            `json:"total"`
	ByType        map[string]int `json:"byType"`
	ByOrigin      map[string]int `json:"byOrigin"`
	UniqueTexts   int            `json:"uniqueTexts"`
	AvgConfidence float64        `json:"avgConfidence"`
}

// EntityStats computes summary statistics over a set of spans.
func EntityStats(spans []EntitySpan) EntityStatistics {
	stats := EntityStatistics{
		Total:    len(spans),
		ByType:   make(map[string]int),
		ByOrigin: make(map[string]int),
	}
	texts := make(map[string]struct{})
	var sum float64
	for _, s := range spans {
		stats.ByType[s.Type]++
		stats.ByOrigin[s.Origin]++
		texts[strings.ToLower(s.Text)] = struct{}{}
		sum += s.Confidence
	}
	stats.UniqueTexts = len(texts)
	if len(spans) > 0 {
		stats.AvgConfidence = sum / float64(len(spans))
	}
	return stats
}

// RelationStatistics summarizes one relation-extraction pass.
type RelationStatistics struct {
	Total          int            `json:"total"`
	ByPredicate    map[string]int `json:"byPredicate"`
	UniqueSubjects int            `json:"uniqueSubjects"`
	UniqueObjects  int            `json:"uniqueObjects"`
	AvgConfidence  float64        `json:"avgConfidence"`
}

// RelationStats computes summary statistics over a set of triples.
func RelationStats(triples []Triple) RelationStatistics {
	stats := RelationStatistics{
		Total:       len(triples),
		ByPredicate: make(map[string]int),
	}
	subjects := make(map[string]struct{})
	objects := make(map[string]struct{})
	var sum float64
	for _, t := range triples {
		stats.ByPredicate[t.Predicate]++
		subjects[strings.ToLower(t.Subject.Text)] = struct{}{}
		objects[strings.ToLower(t.Object.Text)] = struct{}{}
		sum += t.Confidence
	}
	stats.UniqueSubjects = len(subjects)
	stats.UniqueObjects = len(objects)
	if len(triples) > 0 {
		stats.AvgConfidence = sum / float64(len(triples))
	}
	return stats
}

func sortSpans(spans []EntitySpan) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		if spans[i].End != spans[j].End {
			return spans[i].End < spans[j].End
		}
		return spans[i].Type < spans[j].Type
	})
}
