// Package kg assembles extracted entities and relations into a deduplicated
// in-memory property graph, and exports it as JSON, Cypher statements, or
// directly into a Neo4j instance.
package kg

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Node is a property-graph node. Labels carry the entity type and its
// declared ancestor tags in deterministic order; SourceDocs accumulates the
// IDs of every document the entity was observed in.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	SourceDocs []string       `json:"sourceDocuments,omitempty"`
}

// Name returns the node's canonical display name.
func (n *Node) Name() string {
	name, _ := n.Properties["name"].(string)
	return name
}

// OriginalText returns the raw text the entity was extracted from.
func (n *Node) OriginalText() string {
	text, _ := n.Properties["original_text"].(string)
	return text
}

// EntityType returns the node's primary entity type.
func (n *Node) EntityType() string {
	t, _ := n.Properties["entity_type"].(string)
	return t
}

// HasLabel reports whether the node carries the given label.
func (n *Node) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Edge is a typed, directed property-graph edge. At most one edge exists per
// (SourceID, TargetID, Type) combination.
type Edge struct {
	SourceID   string         `json:"source"`
	TargetID   string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Graph is an immutable snapshot of the assembled graph, suitable for
// serialization and loading.
type Graph struct {
	Nodes      []Node     `json:"nodes"`
	Edges      []Edge     `json:"edges"`
	Statistics Statistics `json:"statistics"`
}

// Statistics summarizes graph composition.
type Statistics struct {
	TotalNodes  int            `json:"totalNodes"`
	TotalEdges  int            `json:"totalEdges"`
	NodesByType map[string]int `json:"nodesByType"`
	EdgesByType map[string]int `json:"edgesByType"`
}

// Neighbor is one hop from a node: the connecting edge type and the node at
// the other end.
type Neighbor struct {
	EdgeType string
	Node     Node
}

// ancestorLabels tags each entity type with its generalized categories, so
// graph queries can match on "Risk" or "FinancialMetric" without enumerating
// subtypes.
var ancestorLabels = map[string][]string{
	"Revenue":           {"FinancialMetric"},
	"NetIncome":         {"FinancialMetric"},
	"EarningsPerShare":  {"FinancialMetric"},
	"TotalAssets":       {"FinancialMetric"},
	"CashFlow":          {"FinancialMetric"},
	"MonetaryAmount":    {"FinancialMetric"},
	"SupplyChainRisk":   {"Risk", "OperationalRisk"},
	"CurrencyRisk":      {"Risk", "MarketRisk"},
	"RegulatoryRisk":    {"Risk"},
	"GeopoliticalRisk":  {"Risk"},
	"CompetitiveRisk":   {"Risk"},
	"CybersecurityRisk": {"Risk", "OperationalRisk"},
	"TechnologyRisk":    {"Risk"},
}

// NodeID derives the deterministic graph identity of an entity from its type
// and normalized text. Textual variants that normalize identically map to
// the same node.
func NodeID(entityType, normalizedText string) string {
	sanitized := strings.ToLower(normalizedText)
	sanitized = strings.ReplaceAll(sanitized, " ", "_")
	sanitized = strings.ReplaceAll(sanitized, ".", "")

	sum := md5.Sum([]byte(entityType + "_" + sanitized))
	return entityType + "_" + sanitized + "_" + hex.EncodeToString(sum[:])[:8]
}

func nodeLabels(entityType string) []string {
	labels := []string{"Entity", entityType}
	labels = append(labels, ancestorLabels[entityType]...)
	return labels
}

func edgeKey(sourceID, targetID, edgeType string) string {
	return sourceID + "|" + edgeType + "|" + targetID
}
