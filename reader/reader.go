// Package reader loads filing documents from disk. Plain-text formats are
// read directly and PDFs go through text extraction, producing pipeline
// documents ready for processing.
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/aisemanticexpert/finkg/pipeline"
)

var textExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
}

// ReadFile extracts the text content of a single file, dispatching on
// extension (.pdf via PDF text extraction, .txt/.text/.md read directly).
func ReadFile(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".pdf":
		return readPDF(path)
	case textExtensions[ext]:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// Load reads a file into a pipeline document, with the source path
// recorded and a document type hint inferred from the file name.
func Load(path string) (pipeline.Document, error) {
	text, err := ReadFile(path)
	if err != nil {
		return pipeline.Document{}, err
	}
	return pipeline.Document{
		ID:       uuid.NewString(),
		Source:   path,
		Text:     text,
		TypeHint: TypeHintFromName(path),
	}, nil
}

// LoadDir loads every supported file in a directory, optionally walking
// subdirectories. Unsupported file types are skipped, not errors.
func LoadDir(dir string, recursive bool) ([]pipeline.Document, error) {
	var docs []pipeline.Document
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".pdf" && !textExtensions[ext] {
			return nil
		}
		doc, err := Load(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return docs, nil
}

// typeHintMarkers maps file-name fragments to document type hints.
var typeHintMarkers = []struct {
	marker string
	hint   string
}{
	{"10-k", "10-K"},
	{"10k", "10-K"},
	{"10-q", "10-Q"},
	{"10q", "10-Q"},
	{"8-k", "8-K"},
	{"8k", "8-K"},
	{"def14a", "DEF14A"},
	{"proxy", "DEF14A"},
}

// TypeHintFromName infers a document type hint from a file name, e.g.
// "aapl-10-k-2023.txt" yields "10-K". Returns "" when nothing matches.
func TypeHintFromName(path string) string {
	name := strings.ToLower(filepath.Base(path))
	for _, m := range typeHintMarkers {
		if strings.Contains(name, m.marker) {
			return m.hint
		}
	}
	return ""
}

// readPDF extracts plain text from every page, skipping pages that fail
// extraction, and joins them with blank lines.
func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF %s has no pages", path)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in PDF %s", path)
	}
	return sb.String(), nil
}
