package extract

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/extract/adapters"
	"github.com/ppiankov/dxcoder/internal/model"
)

// Extractor builds a clinical context from one document. It holds only
// read-only configuration and is safe for concurrent use.
type Extractor struct {
	cfg      model.CodingConfig
	adapters *adapters.Registry
	logger   zerolog.Logger
}

// NewExtractor creates a new context extractor
func NewExtractor(cfg model.CodingConfig, logger zerolog.Logger) *Extractor {
	return &Extractor{
		cfg:      cfg,
		adapters: adapters.NewRegistry(),
		logger:   logger,
	}
}

// Extract builds the context for a plain-text or HTML document. It never
// fails: unreadable lines are dropped with a parse warning.
func (e *Extractor) Extract(raw string) (model.Context, []model.Warning) {
	return e.ExtractSource("", raw)
}

// ExtractSource is Extract with a source name (a file name, say) that helps
// pick the input adapter.
func (e *Extractor) ExtractSource(name, raw string) (model.Context, []model.Warning) {
	a := e.Analyze(name, raw)
	return a.Context, a.Warnings
}

// Analysis is one extraction together with the normalized lower-case text,
// which the validation passes re-scan.
type Analysis struct {
	Context   model.Context
	Text      string
	Narrative string // the parts of Text read as prose
	Warnings  []model.Warning
}

// Analyze extracts the context and keeps the normalized text.
func (e *Extractor) Analyze(name, raw string) Analysis {
	s := &scan{match: NegationMatcher()}

	// 1. Reduce the input format to plain text
	adapter := e.adapters.FindAdapter(name, raw)
	text, err := adapter.Text(raw)
	if err != nil {
		s.warn(model.WarningInput, 0, fmt.Sprintf("%s input unreadable, treated as plain text: %v", adapter.Name(), err))
		text = raw
	}

	// 2. Normalize and bound
	lines, warnings := normalize(text, e.cfg)
	s.warnings = append(s.warnings, warnings...)

	// 3. Fields and narrative, line by line
	lower := make([]string, 0, len(lines))
	for _, line := range lines {
		lower = append(lower, line.Lower)
		if prose, key, val, ok := splitField(line.Lower); ok {
			if prose != "" {
				s.narrative(prose, line.Number)
			}
			s.field(line, key, val)
			continue
		}
		s.narrative(line.Lower, line.Number)
	}

	// 4. Cross-field synchronization
	ctx := synchronize(s.ctx)

	e.logger.Debug().
		Str("adapter", adapter.Name()).
		Int("lines", len(lines)).
		Int("facts", len(ctx.Facts)).
		Int("denied", len(ctx.Denied)).
		Int("warnings", len(s.warnings)).
		Msg("context extracted")

	return Analysis{
		Context:   ctx,
		Text:      strings.Join(lower, "\n"),
		Narrative: strings.Join(s.narrated, "\n"),
		Warnings:  dedupeWarnings(s.warnings),
	}
}

// dedupeWarnings drops repeated warnings, keeping first occurrences in order.
func dedupeWarnings(warnings []model.Warning) []model.Warning {
	seen := make(map[model.Warning]bool)
	var unique []model.Warning

	for _, w := range warnings {
		if !seen[w] {
			seen[w] = true
			unique = append(unique, w)
		}
	}

	return unique
}
