package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
)

// Renderer writes coding results as JSON, Markdown, or a terminal summary
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// JSON writes the result as indented JSON.
func (r *Renderer) JSON(w io.Writer, result model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// Markdown writes a readable report with the explanation trail.
func (r *Renderer) Markdown(w io.Writer, result model.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Coding result: %s\n\n", result.CaseID)
	fmt.Fprintf(&b, "**Status:** %s  \n", result.Status)
	fmt.Fprintf(&b, "**Confidence:** %s (%d/100)\n\n", result.Score.Confidence, result.Score.Index)

	if len(result.Codes) > 0 {
		b.WriteString("## Codes\n\n")
		b.WriteString("| # | Code | Description | Rule | Guideline |\n")
		b.WriteString("|---|------|-------------|------|-----------|\n")
		for i, c := range result.Codes {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, c.ID, escapeCell(c.Label), c.Rule, c.Guideline)
		}
		b.WriteString("\n## Rationale\n\n")
		for _, c := range result.Codes {
			fmt.Fprintf(&b, "- **%s**: %s", c.ID, c.Rationale)
			if c.Trigger != "" {
				fmt.Fprintf(&b, " (from %s)", c.Trigger)
			}
			if c.Confidence == model.ConfidenceLow {
				b.WriteString(" _low confidence_")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	audit := result.Audit
	if len(audit.Removed)+len(audit.Added)+len(audit.Moved) > 0 {
		b.WriteString("## Corrections\n\n")
		for _, c := range audit.Removed {
			fmt.Fprintf(&b, "- removed %s (%s): %s\n", c.Code.ID, c.Pass, c.Reason)
		}
		for _, c := range audit.Added {
			if c.Replaces != "" {
				fmt.Fprintf(&b, "- added %s replacing %s (%s): %s\n", c.Code.ID, c.Replaces, c.Pass, c.Reason)
				continue
			}
			fmt.Fprintf(&b, "- added %s (%s): %s\n", c.Code.ID, c.Pass, c.Reason)
		}
		for _, m := range audit.Moved {
			fmt.Fprintf(&b, "- moved %s from %d to %d (%s): %s\n", m.Code, m.From+1, m.To+1, m.Pass, m.Reason)
		}
		b.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- [%s] %s", w.Kind, w.Message)
			if w.Line > 0 {
				fmt.Fprintf(&b, " (line %d)", w.Line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Signals\n\n")
	for _, s := range result.Score.Signals {
		fmt.Fprintf(&b, "- %s [%s]: %s\n", s.Type, s.Severity, s.Description)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary prints a short terminal summary.
func (r *Renderer) Summary(w io.Writer, result model.Result) {
	if result.Principal == nil {
		fmt.Fprintf(w, "%s: no codes (%s)\n", result.CaseID, result.Status)
	} else {
		fmt.Fprintf(w, "%s: %s", result.CaseID, result.Principal.ID)
		for _, c := range result.Secondary {
			fmt.Fprintf(w, ", %s", c.ID)
		}
		fmt.Fprintf(w, "  [%s %d/100]\n", result.Score.Confidence, result.Score.Index)
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "  ! %s\n", warn.Message)
	}
}

// WriteFile renders to a file with the given render function.
func (r *Renderer) WriteFile(path string, result model.Result, render func(io.Writer, model.Result) error) error {
	var buf bytes.Buffer
	if err := render(&buf, result); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
