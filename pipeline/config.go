package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aisemanticexpert/finkg/kg"
)

// ExtractionConfig tunes the entity and relation extractors.
type ExtractionConfig struct {
	EntityConfidenceThreshold   float64 `yaml:"entityConfidenceThreshold"`
	RelationConfidenceThreshold float64 `yaml:"relationConfidenceThreshold"`
	MaxSentenceLength           int     `yaml:"maxSentenceLength"`
}

// GraphRAGConfig tunes the retrieval engine.
type GraphRAGConfig struct {
	Model            string `yaml:"model"`
	MaxContextTokens int    `yaml:"maxContextTokens"`
}

// OutputConfig controls graph export.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// Config is the pipeline configuration, typically loaded from YAML.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction"`
	Neo4j      *kg.Neo4jConfig  `yaml:"neo4j,omitempty"`
	GraphRAG   GraphRAGConfig   `yaml:"graphrag"`
	Output     OutputConfig     `yaml:"output"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Extraction: ExtractionConfig{
			EntityConfidenceThreshold:   0.7,
			RelationConfidenceThreshold: 0.7,
			MaxSentenceLength:           500,
		},
		GraphRAG: GraphRAGConfig{
			Model:            "gpt-3.5-turbo",
			MaxContextTokens: 3000,
		},
		Output: OutputConfig{
			Dir:     "output",
			Formats: []string{"json", "cypher"},
		},
	}
}

// LoadConfig reads a YAML configuration file, applying defaults for
// omitted fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
