package extract

import (
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// scan is the working state of one extraction: the context accumulator and
// the warnings raised so far.
type scan struct {
	ctx      model.Context
	warnings []model.Warning
	match    vocab.Matcher
	wound    model.Family // ulcer family documented most recently
	narrated []string     // texts read as narrative, in order
}

func (s *scan) warn(kind model.WarningKind, line int, msg string) {
	s.warnings = append(s.warnings, model.Warning{Kind: kind, Message: msg, Line: line})
}

// deny records a negated mention of attr.
func (s *scan) deny(attr model.Attr) {
	if family, ok := vocab.Denial(attr); ok {
		s.ctx = s.ctx.Deny(family)
	}
}

// assign routes a value through the attribute's handler and records the
// fact when the handler accepted it.
func (s *scan) assign(attr model.Attr, v value, source model.FactSource, evidence string) bool {
	if msg, ok := advisories[attr]; ok {
		s.warn(model.WarningParse, v.Line, msg)
		return true
	}
	h, ok := handlers[attr]
	if !ok {
		return false
	}
	next, ok := h(s.ctx, v)
	if !ok {
		return false
	}
	s.ctx = next.AddFact(model.Fact{
		Attr:   attr,
		Value:  clip(v.Text, 80),
		Line:   v.Line,
		Source: source,
		Text:   clip(evidence, 160),
	})
	if family, _ := vocab.FamilyOf(attr); family == model.FamilyFootUlcer || family == model.FamilyPressureUlcer {
		s.wound = family
	}
	return true
}

// narrative runs every rule of the narrative table over one lower-cased
// text. Each match is checked against its rule's exclusions, then against
// the negation scope; a negated match only records a denial.
func (s *scan) narrative(text string, line int) {
	s.narrated = append(s.narrated, text)
	seg := segment(text)

	for _, rule := range vocab.CompiledRules() {
		for _, loc := range rule.Re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]

			if excluded(text, start, end, rule.Exclude) {
				continue
			}

			clause := seg.clause(start, end)
			if len(rule.Unless) > 0 && containsAny(clause, rule.Unless) {
				continue
			}

			if rule.Negatable && seg.negated(start, end) {
				s.deny(rule.Attr)
				continue
			}

			v := value{Line: line, Match: s.match}
			switch rule.Capture {
			case vocab.CaptureFixed:
				v.Text = rule.Value
			case vocab.CaptureMatch:
				v.Text = text[start:end]
			case vocab.CaptureClause:
				v.Text = clause
			}
			s.assign(rule.Attr, v, model.SourceNarrative, text[start:end])
		}
	}
}

// excluded reports whether a longer phrase covering the match voids it.
func excluded(text string, start, end int, phrases []string) bool {
	for _, p := range phrases {
		for _, at := range vocab.IndexPhrases(text, p) {
			if at <= start && at+len(p) >= end {
				return true
			}
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if vocab.ContainsPhrase(text, p) {
			return true
		}
	}
	return false
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return truncateUTF8(s, n) + "..."
}
