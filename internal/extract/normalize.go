package extract

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/dxcoder/internal/model"
)

// sourceLine is one bounded, normalized input line. Text keeps the
// document's casing for provenance; Lower is what rules match against.
type sourceLine struct {
	Number int
	Text   string
	Lower  string
}

// normalize bounds the input, applies NFKC, folds line endings and strips
// control characters, then splits into numbered lines. Blank lines are
// dropped but keep their number so warnings point at the right line.
func normalize(raw string, cfg model.CodingConfig) ([]sourceLine, []model.Warning) {
	var warnings []model.Warning

	if cfg.MaxInputBytes > 0 && len(raw) > cfg.MaxInputBytes {
		raw = truncateUTF8(raw, cfg.MaxInputBytes)
		warnings = append(warnings, model.Warning{
			Kind:    model.WarningInput,
			Message: fmt.Sprintf("input truncated to %d bytes", cfg.MaxInputBytes),
		})
	}

	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, " ")
		warnings = append(warnings, model.Warning{
			Kind:    model.WarningInput,
			Message: "invalid UTF-8 sequences replaced",
		})
	}

	text := norm.NFKC.String(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, text)

	lower := cases.Lower(language.Und)

	var lines []sourceLine
	for i, line := range strings.Split(text, "\n") {
		number := i + 1
		if cfg.MaxLines > 0 && number > cfg.MaxLines {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarningInput,
				Message: fmt.Sprintf("input truncated after %d lines", cfg.MaxLines),
				Line:    number,
			})
			break
		}

		if cfg.MaxLineLength > 0 && len(line) > cfg.MaxLineLength {
			line = truncateUTF8(line, cfg.MaxLineLength)
			warnings = append(warnings, model.Warning{
				Kind:    model.WarningInput,
				Message: fmt.Sprintf("line truncated to %d bytes", cfg.MaxLineLength),
				Line:    number,
			})
		}

		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		lines = append(lines, sourceLine{Number: number, Text: line, Lower: lower.String(line)})
	}

	return lines, warnings
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
