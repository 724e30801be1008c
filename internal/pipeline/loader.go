package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Case is one clinical document to code.
type Case struct {
	ID     string `json:"id,omitempty"`     // caller-supplied identifier; derived from the text when empty
	Name   string `json:"name,omitempty"`   // document name, used for adapter selection and reports
	Source string `json:"source,omitempty"` // originating system; batch rate limits apply per source
	Text   string `json:"text"`
}

// Loader reads case documents from files or standard input
type Loader struct {
	stdin    io.Reader
	maxBytes int64
}

// NewLoader creates a loader that reads at most maxBytes+1 bytes per document
// so the extractor can tell a bounded input from an exact fit.
func NewLoader(stdin io.Reader, maxBytes int64) *Loader {
	return &Loader{stdin: stdin, maxBytes: maxBytes}
}

// Load reads one document. The path "-" reads standard input.
func (l *Loader) Load(path string) (Case, error) {
	if path == "-" {
		text, err := l.read(l.stdin)
		if err != nil {
			return Case{}, fmt.Errorf("read stdin: %w", err)
		}
		return Case{Name: "stdin", Text: text}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Case{}, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	text, err := l.read(f)
	if err != nil {
		return Case{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Case{ID: caseName(path), Name: filepath.Base(path), Text: text}, nil
}

func (l *Loader) read(r io.Reader) (string, error) {
	if l.maxBytes > 0 {
		r = io.LimitReader(r, l.maxBytes+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// caseName derives a readable case id from a file path
func caseName(path string) string {
	base := filepath.Base(path)

	// Remove file extensions
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}

	// De-slugify: replace underscores with hyphens
	return strings.ReplaceAll(base, "_", "-")
}
