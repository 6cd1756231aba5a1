package main

// Default configuration values
const (
	DefaultModel     = "gpt-3.5-turbo"
	DefaultOutputDir = "output"
)

// Config keys for krait
const (
	KeyModel     = "openai.model"
	KeyOpenAIURL = "openai.url"
	KeyOpenAIKey = "openai.api-key"
	KeyOutputDir = "output.dir"
	KeyVerbose   = "verbose"
)
