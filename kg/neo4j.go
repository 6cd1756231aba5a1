package kg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jConfig holds connection settings for a Neo4j instance.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Neo4jLoader writes graph snapshots into a Neo4j instance using
// parameterized MERGE statements, so repeated loads stay idempotent.
type Neo4jLoader struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// Neo4jOption configures a Neo4jLoader.
type Neo4jOption func(*Neo4jLoader)

// WithNeo4jLogger sets the logger used for load diagnostics.
func WithNeo4jLogger(logger *slog.Logger) Neo4jOption {
	return func(l *Neo4jLoader) {
		l.logger = logger
	}
}

// NewNeo4jLoader connects to Neo4j and verifies connectivity before
// returning. The caller owns the loader and must Close it.
func NewNeo4jLoader(ctx context.Context, cfg Neo4jConfig, opts ...Neo4jOption) (*Neo4jLoader, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verifying neo4j connectivity: %w", err)
	}

	l := &Neo4jLoader{
		driver:   driver,
		database: cfg.Database,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load writes every node and edge of the snapshot into Neo4j.
func (l *Neo4jLoader) Load(ctx context.Context, graph Graph) error {
	for _, node := range graph.Nodes {
		if err := l.loadNode(ctx, node); err != nil {
			return fmt.Errorf("loading node %s: %w", node.ID, err)
		}
	}
	for _, edge := range graph.Edges {
		if err := l.loadEdge(ctx, edge); err != nil {
			return fmt.Errorf("loading edge %s-[%s]->%s: %w", edge.SourceID, edge.Type, edge.TargetID, err)
		}
	}

	l.logger.Info("graph loaded into neo4j",
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges))
	return nil
}

func (l *Neo4jLoader) loadNode(ctx context.Context, node Node) error {
	query := fmt.Sprintf("MERGE (n:%s {id: $id}) SET n += $props",
		strings.Join(sanitizeIdentifiers(node.Labels), ":"))

	props := make(map[string]any, len(node.Properties)+1)
	for k, v := range node.Properties {
		props[k] = v
	}
	if len(node.SourceDocs) > 0 {
		props["source_documents"] = node.SourceDocs
	}

	_, err := neo4j.ExecuteQuery(ctx, l.driver, query,
		map[string]any{"id": node.ID, "props": props},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(l.database))
	return err
}

func (l *Neo4jLoader) loadEdge(ctx context.Context, edge Edge) error {
	query := fmt.Sprintf(
		"MATCH (a:Entity {id: $source}) MATCH (b:Entity {id: $target}) MERGE (a)-[r:%s]->(b) SET r += $props",
		sanitizeIdentifier(edge.Type))

	_, err := neo4j.ExecuteQuery(ctx, l.driver, query,
		map[string]any{"source": edge.SourceID, "target": edge.TargetID, "props": edge.Properties},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(l.database))
	return err
}

// Close releases the underlying driver.
func (l *Neo4jLoader) Close(ctx context.Context) error {
	return l.driver.Close(ctx)
}

// sanitizeIdentifier strips characters that are not legal in an unquoted
// Cypher label or relationship type. Labels come from the internal type
// vocabulary, so this is a guard, not an escape mechanism.
func sanitizeIdentifier(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func sanitizeIdentifiers(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = sanitizeIdentifier(s)
	}
	return out
}
