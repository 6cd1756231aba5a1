package kg

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aisemanticexpert/finkg/extract"
)

// evidenceLimit caps the evidence text stored on an edge.
const evidenceLimit = 500

// Builder assembles entity spans and triples into a deduplicated property
// graph. It is safe for concurrent use: reads take a shared lock and writes
// an exclusive one.
//
// Deduplication policy: a node's scalar properties are written once, by the
// first observation of its identity; later observations only accumulate
// source-document IDs. An edge is written once per (source, target, type).
type Builder struct {
	mu        sync.RWMutex
	nodes     map[string]*Node
	nodeOrder []string
	edges     []*Edge
	edgeSeen  map[string]struct{}
	logger    *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for assembly diagnostics.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates an empty graph builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		nodes:    make(map[string]*Node),
		edgeSeen: make(map[string]struct{}),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddEntity inserts the span as a node, or merges it into the existing node
// with the same identity, and returns the node ID. docID may be empty.
func (b *Builder) AddEntity(span extract.EntitySpan, docID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addEntityLocked(span, docID)
}

// AddEntities inserts a batch of spans and returns their node IDs in order.
func (b *Builder) AddEntities(spans []extract.EntitySpan, docID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]string, len(spans))
	for i, span := range spans {
		ids[i] = b.addEntityLocked(span, docID)
	}
	return ids
}

// AddRelation inserts the triple as an edge, creating or merging both
// endpoint nodes first. A duplicate (source, target, type) edge is dropped.
func (b *Builder) AddRelation(triple extract.Triple, docID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addRelationLocked(triple, docID)
}

// AddRelations inserts a batch of triples.
func (b *Builder) AddRelations(triples []extract.Triple, docID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, triple := range triples {
		b.addRelationLocked(triple, docID)
	}
}

func (b *Builder) addEntityLocked(span extract.EntitySpan, docID string) string {
	name := span.NormalizedText
	if name == "" {
		name = span.Text
	}
	id := NodeID(span.Type, name)

	node, exists := b.nodes[id]
	if !exists {
		props := map[string]any{
			"id":            id,
			"name":          name,
			"original_text": span.Text,
			"entity_type":   span.Type,
			"confidence":    span.Confidence,
		}
		if span.OntologyClass != "" {
			props["ontology_class"] = span.OntologyClass
		}
		if span.Properties.Value != nil {
			props["value"] = *span.Properties.Value
		}
		if span.Properties.Currency != "" {
			props["currency"] = span.Properties.Currency
		}
		if span.Properties.SourceSection != "" {
			props["source_section"] = span.Properties.SourceSection
		}
		for k, v := range span.Properties.Extra {
			props[k] = v
		}

		node = &Node{ID: id, Labels: nodeLabels(span.Type), Properties: props}
		b.nodes[id] = node
		b.nodeOrder = append(b.nodeOrder, id)
	}

	if docID != "" && !containsString(node.SourceDocs, docID) {
		node.SourceDocs = append(node.SourceDocs, docID)
	}
	return id
}

func (b *Builder) addRelationLocked(triple extract.Triple, docID string) {
	sourceID := b.addEntityLocked(triple.Subject, docID)
	targetID := b.addEntityLocked(triple.Object, docID)

	key := edgeKey(sourceID, targetID, triple.Predicate)
	if _, exists := b.edgeSeen[key]; exists {
		return
	}

	props := map[string]any{
		"confidence": triple.Confidence,
	}
	if triple.OntologyProperty != "" {
		props["ontology_property"] = triple.OntologyProperty
	}
	if triple.Evidence != "" {
		props["evidence"] = truncate(triple.Evidence, evidenceLimit)
	}
	if docID != "" {
		props["source_document"] = docID
	}
	for k, v := range triple.Properties {
		props[k] = v
	}

	b.edges = append(b.edges, &Edge{
		SourceID:   sourceID,
		TargetID:   targetID,
		Type:       triple.Predicate,
		Properties: props,
	})
	b.edgeSeen[key] = struct{}{}
}

// Node returns a copy of the node with the given ID.
func (b *Builder) Node(id string) (Node, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	node, ok := b.nodes[id]
	if !ok {
		return Node{}, false
	}
	return copyNode(node), true
}

// Neighbors returns the nodes one hop from the given node, in either edge
// direction, with the connecting edge type.
func (b *Builder) Neighbors(id string) []Neighbor {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var neighbors []Neighbor
	for _, edge := range b.edges {
		switch id {
		case edge.SourceID:
			if n, ok := b.nodes[edge.TargetID]; ok {
				neighbors = append(neighbors, Neighbor{EdgeType: edge.Type, Node: copyNode(n)})
			}
		case edge.TargetID:
			if n, ok := b.nodes[edge.SourceID]; ok {
				neighbors = append(neighbors, Neighbor{EdgeType: edge.Type, Node: copyNode(n)})
			}
		}
	}
	return neighbors
}

// FindByType returns all nodes carrying the given type label, including
// generalized labels such as "Risk", in insertion order.
func (b *Builder) FindByType(entityType string) []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Node
	for _, id := range b.nodeOrder {
		if node := b.nodes[id]; node.HasLabel(entityType) {
			out = append(out, copyNode(node))
		}
	}
	return out
}

// FindByName returns the nodes whose name matches. With fuzzy set, substring
// containment in either direction counts as a match.
func (b *Builder) FindByName(name string, fuzzy bool) []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()

	nameLower := strings.ToLower(name)
	var out []Node
	for _, id := range b.nodeOrder {
		node := b.nodes[id]
		nodeName := strings.ToLower(node.Name())
		if fuzzy {
			if strings.Contains(nodeName, nameLower) || strings.Contains(nameLower, nodeName) {
				out = append(out, copyNode(node))
			}
		} else if nodeName == nameLower {
			out = append(out, copyNode(node))
		}
	}
	return out
}

// Statistics returns node and edge counts by type.
func (b *Builder) Statistics() Statistics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.statisticsLocked()
}

func (b *Builder) statisticsLocked() Statistics {
	stats := Statistics{
		TotalNodes:  len(b.nodes),
		TotalEdges:  len(b.edges),
		NodesByType: make(map[string]int),
		EdgesByType: make(map[string]int),
	}
	for _, node := range b.nodes {
		stats.NodesByType[node.EntityType()]++
	}
	for _, edge := range b.edges {
		stats.EdgesByType[edge.Type]++
	}
	return stats
}

// ToGraph returns a detached snapshot of the graph. Nodes are ordered by ID
// and edges by insertion, so serialization is deterministic.
func (b *Builder) ToGraph() Graph {
	b.mu.RLock()
	defer b.mu.RUnlock()

	graph := Graph{
		Nodes:      make([]Node, 0, len(b.nodes)),
		Edges:      make([]Edge, 0, len(b.edges)),
		Statistics: b.statisticsLocked(),
	}
	ids := make([]string, len(b.nodeOrder))
	copy(ids, b.nodeOrder)
	sort.Strings(ids)
	for _, id := range ids {
		graph.Nodes = append(graph.Nodes, copyNode(b.nodes[id]))
	}
	for _, edge := range b.edges {
		graph.Edges = append(graph.Edges, copyEdge(edge))
	}
	return graph
}

// ToJSON serializes the graph snapshot as indented JSON.
func (b *Builder) ToJSON() ([]byte, error) {
	return json.MarshalIndent(b.ToGraph(), "", "  ")
}

// Clear removes all nodes and edges.
func (b *Builder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nodes = make(map[string]*Node)
	b.nodeOrder = nil
	b.edges = nil
	b.edgeSeen = make(map[string]struct{})
}

func copyNode(n *Node) Node {
	out := Node{
		ID:         n.ID,
		Labels:     append([]string(nil), n.Labels...),
		Properties: make(map[string]any, len(n.Properties)),
	}
	for k, v := range n.Properties {
		out.Properties[k] = v
	}
	if len(n.SourceDocs) > 0 {
		out.SourceDocs = append([]string(nil), n.SourceDocs...)
	}
	return out
}

func copyEdge(e *Edge) Edge {
	out := Edge{
		SourceID:   e.SourceID,
		TargetID:   e.TargetID,
		Type:       e.Type,
		Properties: make(map[string]any, len(e.Properties)),
	}
	for k, v := range e.Properties {
		out.Properties[k] = v
	}
	return out
}

func containsString(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
