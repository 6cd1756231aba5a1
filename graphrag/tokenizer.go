package graphrag

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer measures and trims text by model token count, so retrieval
// context stays within a completion budget.
type Tokenizer interface {
	CountTokens(text string) int
	Truncate(text string, maxTokens int) string
}

// TiktokenTokenizer implements Tokenizer on a tiktoken encoding.
type TiktokenTokenizer struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenTokenizer creates a tokenizer for the given encoding name;
// empty selects cl100k_base.
func NewTiktokenTokenizer(encodingName string) (*TiktokenTokenizer, error) {
	if encodingName == "" {
		encodingName = "cl100k_base"
	}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("getting encoding %s: %w", encodingName, err)
	}
	return &TiktokenTokenizer{encoding: enc}, nil
}

// CountTokens returns the number of tokens in the text.
func (t *TiktokenTokenizer) CountTokens(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// Truncate returns the longest prefix of text that fits in maxTokens.
func (t *TiktokenTokenizer) Truncate(text string, maxTokens int) string {
	ids := t.encoding.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	if maxTokens <= 0 {
		return ""
	}
	return t.encoding.Decode(ids[:maxTokens])
}

var _ Tokenizer = (*TiktokenTokenizer)(nil)
