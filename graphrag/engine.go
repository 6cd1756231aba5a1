// Package graphrag answers natural-language questions over the assembled
// knowledge graph: classify the question, resolve mentioned entities, pull
// the one-hop subgraph around them, and synthesize an answer either with an
// optional language model or a deterministic template.
package graphrag

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/aisemanticexpert/finkg/kg"
	"github.com/aisemanticexpert/finkg/llm"
)

// Question categories, in classification order.
const (
	CategoryRisk       = "risk"
	CategoryFinancial  = "financial"
	CategoryCompetitor = "competitor"
	CategoryProduct    = "product"
	CategoryGeneral    = "general"
)

const (
	contextNodeLimit     = 15
	contextEdgeLimit     = 15
	answerLineLimit      = 5
	fallbackNodeLimit    = 10
	semanticResolveLimit = 3
	evidencePreviewLen   = 100
)

// Answer sources.
const (
	AnswerSourceLLM      = "llm"
	AnswerSourceTemplate = "template"
)

type categoryRule struct {
	category string
	patterns []*regexp.Regexp
}

// categoryRules is evaluated in order; the first match wins and unmatched
// questions fall through to general.
var categoryRules = []categoryRule{
	{CategoryRisk, compileAll(
		`(?:what|which)\s+(?:are\s+)?(?:the\s+)?(?:key\s+)?risks?`,
		`risk\s+factors?`,
	)},
	{CategoryFinancial, compileAll(
		`(?:what\s+is|how\s+much)\s+(?:the\s+)?(?:revenue|sales|income)`,
		`financial\s+(?:performance|results)`,
	)},
	{CategoryCompetitor, compileAll(
		`(?:who\s+are|what\s+are)\s+(?:the\s+)?competitors?`,
		`competes?\s+(?:with|against)`,
	)},
	{CategoryProduct, compileAll(
		`(?:what|which)\s+(?:are\s+)?(?:the\s+)?products?`,
	)},
	{CategoryGeneral, compileAll(
		`(?:tell\s+me|what\s+do\s+you\s+know)\s+about`,
	)},
}

// fallbackTypes picks which node label seeds retrieval when no mentioned
// entity resolves.
var fallbackTypes = map[string]string{
	CategoryRisk:       "Risk",
	CategoryFinancial:  "FinancialMetric",
	CategoryCompetitor: "Company",
	CategoryProduct:    "Product",
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Result is the outcome of one retrieval-augmented query.
type Result struct {
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	CypherQuery    string    `json:"cypherQuery"`
	RetrievedNodes []kg.Node `json:"retrievedNodes"`
	RetrievedEdges []kg.Edge `json:"retrievedEdges"`
	Context        string    `json:"context"`
	Confidence     float64   `json:"confidence"`
	Category       string    `json:"category"`
	EntitiesFound  []string  `json:"entitiesFound"`
	AnswerSource   string    `json:"answerSource"`
}

// NodeCount returns the number of retrieved nodes.
func (r Result) NodeCount() int { return len(r.RetrievedNodes) }

// EdgeCount returns the number of retrieved edges.
func (r Result) EdgeCount() int { return len(r.RetrievedEdges) }

// Engine answers questions over a graph builder. The language model,
// semantic resolver, and tokenizer are all optional; without them the
// engine still produces deterministic templated answers.
type Engine struct {
	graph            *kg.Builder
	model            llm.LLM
	resolver         *SemanticResolver
	tokenizer        Tokenizer
	maxContextTokens int
	logger           *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithModel sets the language model used for answer synthesis. A model
// failure degrades to the templated answer, never to a query error.
func WithModel(model llm.LLM) EngineOption {
	return func(e *Engine) {
		e.model = model
	}
}

// WithSemanticResolver sets the vector-similarity fallback for entity
// resolution.
func WithSemanticResolver(resolver *SemanticResolver) EngineOption {
	return func(e *Engine) {
		e.resolver = resolver
	}
}

// WithTokenizer caps retrieval context at maxTokens using the tokenizer.
func WithTokenizer(tokenizer Tokenizer, maxTokens int) EngineOption {
	return func(e *Engine) {
		e.tokenizer = tokenizer
		e.maxContextTokens = maxTokens
	}
}

// WithEngineLogger sets the logger used for query diagnostics.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a query engine over the given graph.
func NewEngine(graph *kg.Builder, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:  graph,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query answers a natural-language question. It always returns a valid
// result: an empty graph or unresolvable question yields a low-confidence
// "no information" answer rather than an error.
func (e *Engine) Query(ctx context.Context, question string) Result {
	snapshot := e.graph.ToGraph()

	category := classify(question)
	entityIDs := e.resolveEntities(ctx, snapshot, question)
	nodes, edges := retrieveSubgraph(snapshot, category, entityIDs)
	contextText := e.formatContext(nodes, edges)
	answer, confidence, source := e.synthesize(ctx, question, contextText, nodes, edges)

	e.logger.Info("graphrag query answered",
		"category", category,
		"entities", len(entityIDs),
		"nodes", len(nodes),
		"edges", len(edges),
		"confidence", confidence,
		"source", source)

	return Result{
		Question:       question,
		Answer:         answer,
		CypherQuery:    cypherTemplate(category, entityIDs),
		RetrievedNodes: nodes,
		RetrievedEdges: edges,
		Context:        contextText,
		Confidence:     confidence,
		Category:       category,
		EntitiesFound:  entityIDs,
		AnswerSource:   source,
	}
}

func classify(question string) string {
	lower := strings.ToLower(question)
	for _, rule := range categoryRules {
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// corporateSuffixes are stripped from company names when matching
// question mentions, so "Apple" still resolves the "Apple Inc." node.
var corporateSuffixes = []string{
	" incorporated", " corporation", " company", " limited",
	" inc.", " corp.", " ltd.", " co.", " inc", " corp", " ltd", " llc", " plc",
}

// resolveEntities finds graph nodes mentioned in the question. A node
// matches when its canonical name, its original extracted text, or its
// name minus a trailing corporate suffix occurs as a substring of the
// question. When nothing matches lexically and a semantic resolver is
// configured, its nearest neighbors seed retrieval instead.
func (e *Engine) resolveEntities(ctx context.Context, snapshot kg.Graph, question string) []string {
	lower := strings.ToLower(question)

	var ids []string
	for i := range snapshot.Nodes {
		node := &snapshot.Nodes[i]
		for _, candidate := range mentionCandidates(node) {
			if mentions(lower, candidate) {
				ids = append(ids, node.ID)
				break
			}
		}
	}
	if len(ids) > 0 || e.resolver == nil {
		return ids
	}

	resolved, err := e.resolver.Resolve(ctx, question, semanticResolveLimit)
	if err != nil {
		e.logger.Warn("semantic resolution failed", "error", err)
		return nil
	}
	known := make(map[string]bool, len(snapshot.Nodes))
	for _, node := range snapshot.Nodes {
		known[node.ID] = true
	}
	for _, id := range resolved {
		if known[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func mentionCandidates(node *kg.Node) []string {
	name := node.Name()
	candidates := []string{name}
	if orig := node.OriginalText(); orig != "" && orig != name {
		candidates = append(candidates, orig)
	}
	lower := strings.ToLower(name)
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(lower, suffix) {
			candidates = append(candidates, name[:len(name)-len(suffix)])
			break
		}
	}
	return candidates
}

func mentions(questionLower, text string) bool {
	if len(text) <= 2 {
		return false
	}
	return strings.Contains(questionLower, strings.ToLower(text))
}

// retrieveSubgraph collects the resolved nodes, their one-hop neighbors,
// and every edge whose endpoints are both in that set. Without resolved
// entities it falls back to nodes of the category's characteristic type.
func retrieveSubgraph(snapshot kg.Graph, category string, entityIDs []string) ([]kg.Node, []kg.Edge) {
	byID := make(map[string]*kg.Node, len(snapshot.Nodes))
	for i := range snapshot.Nodes {
		byID[snapshot.Nodes[i].ID] = &snapshot.Nodes[i]
	}

	var nodes []kg.Node
	seen := make(map[string]bool)
	add := func(id string) {
		if node, ok := byID[id]; ok && !seen[id] {
			nodes = append(nodes, *node)
			seen[id] = true
		}
	}

	for _, id := range entityIDs {
		add(id)
	}
	for _, id := range entityIDs {
		for _, edge := range snapshot.Edges {
			switch id {
			case edge.SourceID:
				add(edge.TargetID)
			case edge.TargetID:
				add(edge.SourceID)
			}
		}
	}

	var edges []kg.Edge
	for _, edge := range snapshot.Edges {
		if seen[edge.SourceID] && seen[edge.TargetID] {
			edges = append(edges, edge)
		}
	}

	if len(entityIDs) == 0 {
		fallbackType := fallbackTypes[category]
		if fallbackType == "" {
			fallbackType = "Entity"
		}
		for i := range snapshot.Nodes {
			if len(nodes) >= fallbackNodeLimit {
				break
			}
			if snapshot.Nodes[i].HasLabel(fallbackType) {
				add(snapshot.Nodes[i].ID)
			}
		}
	}

	return nodes, edges
}

// formatContext renders the subgraph into the prompt context block,
// bounded by the node and edge limits and, when a tokenizer is configured,
// by the token budget.
func (e *Engine) formatContext(nodes []kg.Node, edges []kg.Edge) string {
	names := make(map[string]string, len(nodes))
	for _, node := range nodes {
		names[node.ID] = node.Name()
	}

	var sb strings.Builder
	sb.WriteString("=== KNOWLEDGE GRAPH CONTEXT ===\n\nENTITIES:\n")
	for i, node := range nodes {
		if i >= contextNodeLimit {
			break
		}
		fmt.Fprintf(&sb, "  - %s (%s)\n", node.Name(), node.EntityType())
		if value, ok := node.Properties["value"].(float64); ok {
			fmt.Fprintf(&sb, "      value: %s\n", strconv.FormatFloat(value, 'f', -1, 64))
		}
	}

	sb.WriteString("\nRELATIONSHIPS:\n")
	for i, edge := range edges {
		if i >= contextEdgeLimit {
			break
		}
		fmt.Fprintf(&sb, "  - %s --[%s]--> %s\n", names[edge.SourceID], edge.Type, names[edge.TargetID])
		if evidence, ok := edge.Properties["evidence"].(string); ok && evidence != "" {
			fmt.Fprintf(&sb, "      Evidence: %q\n", preview(evidence, evidencePreviewLen))
		}
	}

	contextText := sb.String()
	if e.tokenizer != nil && e.maxContextTokens > 0 {
		contextText = e.tokenizer.Truncate(contextText, e.maxContextTokens)
	}
	return contextText
}

// synthesize produces the answer and its heuristic confidence: high when
// both entities and relationships were retrieved, low with only one of
// them, zero with nothing. An available language model supplies the answer
// text; any model failure degrades to the template.
func (e *Engine) synthesize(ctx context.Context, question, contextText string, nodes []kg.Node, edges []kg.Edge) (string, float64, string) {
	var confidence float64
	switch {
	case len(nodes) > 0 && len(edges) > 0:
		confidence = 0.7
	case len(nodes) > 0 || len(edges) > 0:
		confidence = 0.3
	default:
		return "No relevant information found.", 0.0, AnswerSourceTemplate
	}

	if e.model != nil {
		answer, err := e.model.Chat(ctx, []llm.ChatMessage{
			{Role: llm.MessageRoleSystem, Content: systemPrompt},
			{Role: llm.MessageRoleUser, Content: contextAnswerPrompt(contextText, question)},
		})
		if err == nil && strings.TrimSpace(answer) != "" {
			return answer, confidence, AnswerSourceLLM
		}
		if err != nil {
			e.logger.Warn("model synthesis failed, using template answer", "error", err)
		}
	}

	return templateAnswer(nodes, edges), confidence, AnswerSourceTemplate
}

func templateAnswer(nodes []kg.Node, edges []kg.Edge) string {
	names := make(map[string]string, len(nodes))
	for _, node := range nodes {
		names[node.ID] = node.Name()
	}

	var sb strings.Builder
	sb.WriteString("Based on the knowledge graph analysis:\n\n")

	if len(nodes) > 0 {
		sb.WriteString("Entities identified:\n")
		for i, node := range nodes {
			if i >= answerLineLimit {
				break
			}
			fmt.Fprintf(&sb, "• %s (%s)\n", node.Name(), node.EntityType())
		}
		sb.WriteString("\n")
	}
	if len(edges) > 0 {
		sb.WriteString("Relationships found:\n")
		for i, edge := range edges {
			if i >= answerLineLimit {
				break
			}
			fmt.Fprintf(&sb, "• %s --[%s]--> %s\n", names[edge.SourceID], edge.Type, names[edge.TargetID])
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
