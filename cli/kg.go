package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aqua777/krait"

	"github.com/aisemanticexpert/finkg/graphrag"
	"github.com/aisemanticexpert/finkg/llm"
	"github.com/aisemanticexpert/finkg/pipeline"
	"github.com/aisemanticexpert/finkg/reader"
	"github.com/aisemanticexpert/finkg/registry"
)

// KGCommand holds the knowledge graph pipeline components.
type KGCommand struct {
	verbose  bool
	pipeline *pipeline.Pipeline
}

// NewKGCommand creates a new knowledge graph command from krait config.
func NewKGCommand() (*KGCommand, error) {
	verbose := krait.GetBool(KeyVerbose)

	opts := []pipeline.PipelineOption{
		pipeline.WithAliases(registry.NewRegistry().Aliases()),
	}

	// The language model is optional; without a key the engine produces
	// templated answers from the retrieved subgraph.
	if apiKey := krait.GetString(KeyOpenAIKey); apiKey != "" {
		model := llm.NewOpenAILLM(krait.GetString(KeyOpenAIURL), krait.GetString(KeyModel), apiKey)
		opts = append(opts, pipeline.WithModel(model))
	}

	p, err := pipeline.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	return &KGCommand{verbose: verbose, pipeline: p}, nil
}

// Ingest processes files or directories into the knowledge graph.
func (c *KGCommand) Ingest(paths []string) error {
	var docs []pipeline.Document

	for _, pattern := range paths {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "Warning: no files match %s\n", pattern)
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", match, err)
			}

			if info.IsDir() {
				dirDocs, err := reader.LoadDir(match, true)
				if err != nil {
					return err
				}
				docs = append(docs, dirDocs...)
				continue
			}

			doc, err := reader.Load(match)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", match, err)
				continue
			}
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		fmt.Println("No documents found to process.")
		return nil
	}

	if c.verbose {
		for _, doc := range docs {
			fmt.Printf("Processing: %s\n", doc.Source)
		}
	}

	stats := c.pipeline.Run(docs)
	fmt.Printf("Processed %d document(s): %d entities, %d relations, %d nodes, %d edges\n",
		stats.DocumentsProcessed, stats.TotalEntities, stats.TotalRelations,
		stats.TotalNodes, stats.TotalEdges)
	return nil
}

// PrintStats prints graph composition statistics.
func (c *KGCommand) PrintStats() {
	stats := c.pipeline.Graph().Statistics()
	fmt.Printf("Nodes: %d  Edges: %d\n", stats.TotalNodes, stats.TotalEdges)

	if len(stats.NodesByType) > 0 {
		fmt.Println("Nodes by type:")
		for _, entityType := range sortedStatKeys(stats.NodesByType) {
			fmt.Printf("  %-24s %d\n", entityType, stats.NodesByType[entityType])
		}
	}
	if len(stats.EdgesByType) > 0 {
		fmt.Println("Edges by type:")
		for _, edgeType := range sortedStatKeys(stats.EdgesByType) {
			fmt.Printf("  %-24s %d\n", edgeType, stats.EdgesByType[edgeType])
		}
	}
}

// Export writes the graph to a directory as JSON and Cypher.
func (c *KGCommand) Export(dir string) error {
	if dir == "" {
		dir = krait.GetString(KeyOutputDir)
	}
	paths, err := c.pipeline.ExportGraph(dir)
	if err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}
	formats := make([]string, 0, len(paths))
	for format := range paths {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	for _, format := range formats {
		fmt.Printf("Exported %s: %s\n", format, paths[format])
	}
	return nil
}

// Query answers a one-shot question against the graph.
func (c *KGCommand) Query(ctx context.Context, question string) error {
	result := c.pipeline.Query(ctx, question)
	printResult(result, c.verbose)
	return nil
}

// Chat starts an interactive question REPL over the graph.
func (c *KGCommand) Chat(ctx context.Context) error {
	fmt.Println("Interactive mode. Type 'exit' or 'quit' to end.")
	fmt.Println("---")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nQuestion: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return nil
		}

		result := c.pipeline.Query(ctx, input)
		fmt.Println()
		printResult(result, c.verbose)
	}
	return nil
}

func printResult(result graphrag.Result, verbose bool) {
	fmt.Println(result.Answer)
	if verbose {
		fmt.Printf("\n[category=%s confidence=%.2f nodes=%d edges=%d source=%s]\n",
			result.Category, result.Confidence,
			len(result.RetrievedNodes), len(result.RetrievedEdges), result.AnswerSource)
	}
}

func sortedStatKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
