package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aqua777/krait"
)

func main() {
	// Graph building and querying subcommand
	kgCmd := krait.New("kg", "Knowledge graph tool", "Build a financial knowledge graph from filings and query it").
		WithStringSliceP("files", "Files or directories to process", "files", "f", "FINKG_FILES", nil).
		WithStringP("question", "Question to ask the graph", "question", "q", "FINKG_QUESTION", "").
		WithBoolP("chat", "Start interactive question mode", "chat", "c", "FINKG_CHAT", false).
		WithStringP("export", "Directory to export the graph to", "export", "o", "FINKG_EXPORT", "").
		WithBool("stats", "Print graph statistics", "stats", "FINKG_STATS", false).
		WithRun(runKG)

	app := krait.App("finkg", "Financial knowledge graph CLI", "Extract entities and relations from financial documents into a queryable knowledge graph").
		WithConfig("", "config", "", "FINKG_CONFIG").
		// Global options
		WithStringP(KeyModel, "OpenAI model for answer synthesis", "model", "m", "OPENAI_MODEL", DefaultModel).
		WithStringP(KeyOpenAIURL, "OpenAI-compatible API base URL", "openai-url", "", "OPENAI_URL", "").
		WithStringP(KeyOpenAIKey, "OpenAI API key (empty disables the model)", "openai-key", "", "OPENAI_API_KEY", "").
		WithStringP(KeyOutputDir, "Default export directory", "output-dir", "", "FINKG_OUTPUT_DIR", DefaultOutputDir).
		WithBoolP(KeyVerbose, "Enable verbose output", "verbose", "v", "FINKG_VERBOSE", false).
		WithCommand(kgCmd).
		WithRun(func(args []string) error {
			fmt.Println("finkg - Use 'finkg kg --help' for knowledge graph commands")
			return nil
		})

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runKG(args []string) error {
	ctx := context.Background()

	cmd, err := NewKGCommand()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	files := krait.GetStringSlice("files")
	if len(files) > 0 {
		if err := cmd.Ingest(files); err != nil {
			return err
		}
	}

	if krait.GetBool("stats") {
		cmd.PrintStats()
	}

	if dir := krait.GetString("export"); dir != "" {
		if err := cmd.Export(dir); err != nil {
			return err
		}
	}

	if question := krait.GetString("question"); question != "" {
		return cmd.Query(ctx, question)
	}

	if krait.GetBool("chat") {
		return cmd.Chat(ctx)
	}

	if len(files) > 0 {
		return nil
	}

	fmt.Println("Usage: finkg kg [--files <paths>] [--question <text>] [--chat] [--export <dir>] [--stats]")
	fmt.Println("\nExamples:")
	fmt.Println("  finkg kg -f ./filings -q 'What risks does Apple face?'")
	fmt.Println("  finkg kg -f 'reports/*.txt' --export ./graph")
	fmt.Println("  finkg kg -f ./filings -c")
	return nil
}
