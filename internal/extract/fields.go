package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// fieldLine matches "Key: value" with an optional bullet or list number. The
// key starts with a letter and carries no digits, commas or sentence
// punctuation, so "BP 120/80:" and "Assessment, day 2:" stay narrative. Prose
// ending in a sentence break may come before the key ("Ruled out cardiac
// etiology. Hypertension: yes").
var fieldLine = regexp.MustCompile(`^(?:(.*[.!?;])\s+)?(?:[-*•]\s*|\d{1,2}[.)]\s+)?([\p{L}][\p{L} /_()#&'-]*?)\s*:\s*(.*)$`)

// splitField returns the prose before a field, the normalized key and the
// value of a field line.
func splitField(lower string) (prose, key, val string, ok bool) {
	m := fieldLine.FindStringSubmatch(lower)
	if m == nil {
		return "", "", "", false
	}
	raw := strings.TrimSpace(m[2])
	if len(raw) > vocab.MaxFieldKeyLen || len(strings.Fields(raw)) > vocab.MaxFieldKeyWords {
		return "", "", "", false
	}
	return strings.TrimSpace(m[1]), vocab.NormalizeKey(raw), strings.TrimSpace(m[3]), true
}

// field dispatches one field line. A section key sends its value to the
// narrative scanner. A value key routes the value to the attribute handler.
// Unknown keys and values the handler cannot read become parse warnings; a
// line under an unknown key is still read as narrative.
func (s *scan) field(line sourceLine, key, val string) {
	if vocab.IsOtherPerson(key) {
		return
	}
	if vocab.IsSection(key) {
		if val != "" {
			s.narrative(val, line.Number)
		}
		return
	}

	attr, ok := vocab.Field(key)
	if !ok && vocab.IsWoundDetail(key) {
		if attr, ok = vocab.WoundDetail(key, s.wound); !ok {
			if val != "" {
				s.warn(model.WarningParse, line.Number, fmt.Sprintf("field %q names no ulcer documented above it", key))
			}
			return
		}
	}
	if !ok {
		if val != "" {
			s.warn(model.WarningParse, line.Number, fmt.Sprintf("unrecognized field %q read as narrative", key))
			s.narrative(key+": "+val, line.Number)
		}
		return
	}

	val = strings.TrimRight(val, " .;")
	switch {
	case vocab.UnknownValues[val]:
		return
	case negativeValue(val):
		s.deny(attr)
		return
	case vocab.AffirmativeValues[val]:
		val = "yes"
	}

	v := value{Text: val, Line: line.Number, Match: s.match, Field: true}
	if !s.assign(attr, v, model.SourceField, line.Text) {
		s.warn(model.WarningParse, line.Number, fmt.Sprintf("unrecognized value %q for field %q", val, key))
	}
}

// negativeValue reports a field value that denies the field: a bare negative
// word or a value opened by a pre-negation cue ("denies", "no evidence of").
func negativeValue(val string) bool {
	if vocab.NegativeValues[val] {
		return true
	}
	for _, cue := range vocab.PreNegationCues {
		if strings.HasPrefix(val, cue+" ") && !strings.ContainsAny(val, vocab.ClauseBreakPunct) {
			return true
		}
	}
	return false
}
