package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aisemanticexpert/finkg/extract"
	"github.com/aisemanticexpert/finkg/graphrag"
	"github.com/aisemanticexpert/finkg/kg"
	"github.com/aisemanticexpert/finkg/llm"
	"github.com/aisemanticexpert/finkg/ontology"
)

// Result summarizes processing one document.
type Result struct {
	DocumentID     string         `json:"documentId"`
	Classification Classification `json:"classification"`
	EntityCount    int            `json:"entityCount"`
	RelationCount  int            `json:"relationCount"`
	Elapsed        time.Duration  `json:"elapsed"`
	Err            error          `json:"-"`
}

// Stats aggregates a pipeline run.
type Stats struct {
	DocumentsProcessed int           `json:"documentsProcessed"`
	DocumentsFailed    int           `json:"documentsFailed"`
	TotalEntities      int           `json:"totalEntities"`
	TotalRelations     int           `json:"totalRelations"`
	TotalNodes         int           `json:"totalNodes"`
	TotalEdges         int           `json:"totalEdges"`
	Elapsed            time.Duration `json:"elapsed"`
}

// Pipeline wires the classifier, extractors, and graph builder into a
// per-document processing loop, and exposes query and export entry points
// over the accumulated graph.
type Pipeline struct {
	config     Config
	schema     *ontology.Schema
	classifier *Classifier
	entities   *extract.EntityExtractor
	relations  *extract.RelationExtractor
	builder    *kg.Builder
	model      llm.LLM
	recognizer extract.Recognizer
	aliases    map[string]string
	logger     *slog.Logger
	results    []Result
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) PipelineOption {
	return func(p *Pipeline) {
		p.config = cfg
	}
}

// WithModel supplies the optional language model for query answering.
func WithModel(model llm.LLM) PipelineOption {
	return func(p *Pipeline) {
		p.model = model
	}
}

// WithRecognizer supplies the optional secondary entity recognizer.
func WithRecognizer(r extract.Recognizer) PipelineOption {
	return func(p *Pipeline) {
		p.recognizer = r
	}
}

// WithAliases adds company alias normalization entries, e.g. from
// registry.Registry.Aliases.
func WithAliases(aliases map[string]string) PipelineOption {
	return func(p *Pipeline) {
		for alias, canonical := range aliases {
			p.aliases[alias] = canonical
		}
	}
}

// WithPipelineLogger sets the logger.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline over a fresh knowledge graph.
func New(opts ...PipelineOption) (*Pipeline, error) {
	p := &Pipeline{
		config:  DefaultConfig(),
		aliases: make(map[string]string),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	schema, err := ontology.NewSchema()
	if err != nil {
		return nil, fmt.Errorf("building ontology schema: %w", err)
	}
	p.schema = schema
	p.classifier = NewClassifier()
	p.builder = kg.NewBuilder(kg.WithLogger(p.logger))

	entityOpts := []extract.EntityExtractorOption{
		extract.WithConfidenceThreshold(p.config.Extraction.EntityConfidenceThreshold),
		extract.WithEntityLogger(p.logger),
	}
	if p.recognizer != nil {
		entityOpts = append(entityOpts, extract.WithRecognizer(p.recognizer))
	}
	for alias, canonical := range p.aliases {
		entityOpts = append(entityOpts, extract.WithCompanyAlias(alias, canonical))
	}
	p.entities = extract.NewEntityExtractor(schema, entityOpts...)

	relationOpts := []extract.RelationExtractorOption{
		extract.WithRelationThreshold(p.config.Extraction.RelationConfidenceThreshold),
		extract.WithRelationLogger(p.logger),
	}
	if p.config.Extraction.MaxSentenceLength > 0 {
		relationOpts = append(relationOpts, extract.WithMaxSentenceLength(p.config.Extraction.MaxSentenceLength))
	}
	p.relations, err = extract.NewRelationExtractor(schema, relationOpts...)
	if err != nil {
		return nil, fmt.Errorf("building relation extractor: %w", err)
	}

	return p, nil
}

// Graph exposes the underlying builder, e.g. for direct queries or a
// Neo4j load.
func (p *Pipeline) Graph() *kg.Builder {
	return p.builder
}

// Schema exposes the ontology schema shared by the extractors.
func (p *Pipeline) Schema() *ontology.Schema {
	return p.schema
}

// Results returns per-document outcomes of the current run.
func (p *Pipeline) Results() []Result {
	out := make([]Result, len(p.results))
	copy(out, p.results)
	return out
}

// Process runs one document through classification, extraction, and graph
// assembly. Documents without pre-split sections whose classification
// detects filing headings are split before extraction, so section-scoped
// type restrictions apply.
func (p *Pipeline) Process(doc Document) Result {
	start := time.Now()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	classification := p.classifier.Classify(doc.Text, doc.TypeHint)

	sections := doc.Sections
	if len(sections) == 0 && len(classification.SectionsDetected) > 0 {
		sections = SplitSections(doc.Text)
	}

	var spans []extract.EntitySpan
	if len(sections) > 0 {
		for _, name := range sortedKeys(sections) {
			spans = append(spans, p.entities.ExtractFromSection(sections[name], name)...)
		}
	} else {
		spans = p.entities.Extract(doc.Text)
	}

	triples := p.relations.Extract(doc.Text, spans)

	p.builder.AddEntities(spans, doc.ID)
	p.builder.AddRelations(triples, doc.ID)

	result := Result{
		DocumentID:     doc.ID,
		Classification: classification,
		EntityCount:    len(spans),
		RelationCount:  len(triples),
		Elapsed:        time.Since(start),
	}
	p.results = append(p.results, result)

	p.logger.Info("processed document",
		"doc", doc.ID,
		"type", classification.Type,
		"entities", len(spans),
		"relations", len(triples))
	return result
}

// Run processes a batch of documents and reports aggregate statistics.
func (p *Pipeline) Run(docs []Document) Stats {
	start := time.Now()
	p.results = nil

	stats := Stats{}
	for _, doc := range docs {
		result := p.Process(doc)
		if result.Err != nil {
			stats.DocumentsFailed++
			continue
		}
		stats.DocumentsProcessed++
		stats.TotalEntities += result.EntityCount
		stats.TotalRelations += result.RelationCount
	}

	graphStats := p.builder.Statistics()
	stats.TotalNodes = graphStats.TotalNodes
	stats.TotalEdges = graphStats.TotalEdges
	stats.Elapsed = time.Since(start)

	p.logger.Info("pipeline run complete",
		"documents", stats.DocumentsProcessed,
		"nodes", stats.TotalNodes,
		"edges", stats.TotalEdges,
		"elapsed", stats.Elapsed)
	return stats
}

// QueryEngine builds a retrieval engine over the accumulated graph,
// wiring in the pipeline's language model when one is configured.
func (p *Pipeline) QueryEngine(opts ...graphrag.EngineOption) *graphrag.Engine {
	if p.model != nil {
		opts = append([]graphrag.EngineOption{graphrag.WithModel(p.model)}, opts...)
	}
	opts = append(opts, graphrag.WithEngineLogger(p.logger))
	return graphrag.NewEngine(p.builder, opts...)
}

// Query answers a question against the accumulated graph.
func (p *Pipeline) Query(ctx context.Context, question string) graphrag.Result {
	return p.QueryEngine().Query(ctx, question)
}

// ExportGraph writes the graph to the output directory in the configured
// formats ("json", "cypher") and returns the written paths by format.
func (p *Pipeline) ExportGraph(dir string) (map[string]string, error) {
	if dir == "" {
		dir = p.config.Output.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	formats := p.config.Output.Formats
	if len(formats) == 0 {
		formats = []string{"json", "cypher"}
	}

	paths := make(map[string]string)
	for _, format := range formats {
		switch format {
		case "json":
			data, err := p.builder.ToJSON()
			if err != nil {
				return paths, fmt.Errorf("serializing graph: %w", err)
			}
			path := filepath.Join(dir, "knowledge_graph.json")
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return paths, fmt.Errorf("writing %s: %w", path, err)
			}
			paths["json"] = path
		case "cypher":
			path := filepath.Join(dir, "knowledge_graph.cypher")
			script := p.builder.ToGraph().ToCypher()
			if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
				return paths, fmt.Errorf("writing %s: %w", path, err)
			}
			paths["cypher"] = path
		default:
			return paths, fmt.Errorf("unsupported export format %q", format)
		}
	}

	p.logger.Info("exported graph", "dir", dir, "formats", formats)
	return paths, nil
}

// LoadNeo4j pushes the graph into the configured Neo4j instance.
func (p *Pipeline) LoadNeo4j(ctx context.Context) error {
	if p.config.Neo4j == nil {
		return fmt.Errorf("no neo4j configuration")
	}
	loader, err := kg.NewNeo4jLoader(ctx, *p.config.Neo4j, kg.WithNeo4jLogger(p.logger))
	if err != nil {
		return err
	}
	defer loader.Close(ctx)

	return loader.Load(ctx, p.builder.ToGraph())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
