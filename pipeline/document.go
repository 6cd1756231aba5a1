// Package pipeline orchestrates the document processing workflow: classify
// each document, extract entities and relations, and merge them into the
// shared knowledge graph, with export and query entry points over the
// result.
package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// maxSectionLength caps a trailing section when no later section marker
// bounds it.
const maxSectionLength = 50000

// Document is one unit of input text, optionally pre-split into named
// filing sections.
type Document struct {
	ID       string            `json:"id"`
	Source   string            `json:"source,omitempty"`
	Text     string            `json:"text"`
	Sections map[string]string `json:"sections,omitempty"`
	// TypeHint is a caller-supplied document type (e.g. "10-K") that
	// short-circuits classification when set.
	TypeHint string `json:"typeHint,omitempty"`
}

// NewDocument creates a document with a generated ID.
func NewDocument(text string) Document {
	return Document{ID: uuid.NewString(), Text: text}
}

// sectionMarkers locate the standard 10-K item headings used to split a
// filing into sections.
var sectionMarkers = map[string]*regexp.Regexp{
	"item_1":  regexp.MustCompile(`(?i)(?:ITEM\s*1\.?\s*[-]?\s*BUSINESS|PART\s*I.*?ITEM\s*1)`),
	"item_1a": regexp.MustCompile(`(?i)ITEM\s*1A\.?\s*[-]?\s*RISK\s*FACTORS`),
	"item_7":  regexp.MustCompile(`(?i)ITEM\s*7\.?\s*[-]?\s*MANAGEMENT(?:'|’)?S\s*DISCUSSION`),
	"item_8":  regexp.MustCompile(`(?i)ITEM\s*8\.?\s*[-]?\s*FINANCIAL\s*STATEMENTS`),
}

type sectionPosition struct {
	start        int
	contentStart int
	name         string
}

// SplitSections finds the item headings in a filing and returns the text
// between consecutive headings, keyed by section name. A section with no
// following heading is capped at maxSectionLength. Text without any
// heading yields an empty map.
func SplitSections(text string) map[string]string {
	var positions []sectionPosition
	for name, re := range sectionMarkers {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			positions = append(positions, sectionPosition{start: loc[0], contentStart: loc[1], name: name})
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].start != positions[j].start {
			return positions[i].start < positions[j].start
		}
		return positions[i].name < positions[j].name
	})

	sections := make(map[string]string)
	for i, pos := range positions {
		end := len(text)
		if i+1 < len(positions) {
			end = positions[i+1].start
		} else if pos.start+maxSectionLength < end {
			end = pos.start + maxSectionLength
		}
		if content := strings.TrimSpace(text[pos.contentStart:end]); content != "" {
			sections[pos.name] = content
		}
	}
	return sections
}
