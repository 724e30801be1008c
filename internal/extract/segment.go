package extract

import (
	"sort"
	"strings"

	"github.com/ppiankov/dxcoder/internal/vocab"
)

// token is a word-like span of a lower-cased line and the clause it sits in.
type token struct {
	start, end int
	clause     int
}

// segments is the token and clause layout of one lower-cased text.
type segments struct {
	text    string
	tokens  []token
	clauses [][2]int // byte span of each clause
}

// segment splits text into tokens and clauses. A clause ends at . ; : ! ?
// and before a break word ("but", "however", ...). Commas do not end a
// clause. A period stays inside its token for internal periods ("y.o",
// "3.5"), listed abbreviations ("dr.") and genus initials ("e. coli").
func segment(text string) *segments {
	s := &segments{text: text}
	clause := 0
	clauseStart := 0

	closeClause := func(end, next int) {
		s.clauses = append(s.clauses, [2]int{clauseStart, end})
		clause = len(s.clauses)
		clauseStart = next
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case isTokenByte(c):
			j := i
			for j < len(text) {
				b := text[j]
				if isTokenByte(b) || b == '/' || b == '-' || b == '\'' || b == '+' {
					j++
					continue
				}
				if b == '.' && j+1 < len(text) && isTokenByte(text[j+1]) {
					j++
					continue
				}
				break
			}

			word := text[i:j]
			end := j
			if j < len(text) && text[j] == '.' && keepsPeriod(word, text[j+1:]) {
				end = j + 1
			}

			if vocab.ClauseBreakWords[word] && len(s.tokens) > 0 {
				closeClause(i, i)
			}
			s.tokens = append(s.tokens, token{start: i, end: end, clause: clause})
			i = end

		case strings.IndexByte(vocab.ClauseBreakPunct, c) >= 0:
			closeClause(i, i+1)
			i++

		default:
			i++
		}
	}
	closeClause(len(text), len(text))

	return s
}

func isTokenByte(b byte) bool {
	return b >= 0x80 || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// keepsPeriod reports whether the period after word belongs to the word.
func keepsPeriod(word, rest string) bool {
	if vocab.Abbreviations[word+"."] {
		return true
	}
	if len(word) != 1 || word[0] < 'a' || word[0] > 'z' {
		return false
	}
	rest = strings.TrimLeft(rest, " ")
	for _, next := range vocab.InitialContinuations {
		if strings.HasPrefix(rest, next) {
			return true
		}
	}
	return false
}

// tokenAt returns the first token ending after off, or -1.
func (s *segments) tokenAt(off int) int {
	i := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].end > off })
	if i == len(s.tokens) {
		return -1
	}
	return i
}

// tokenBefore returns the last token starting before off, or -1.
func (s *segments) tokenBefore(off int) int {
	i := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].start >= off })
	return i - 1
}

// clauseSpan returns the span of the clause holding the match, widened to
// cover the match itself when it runs past a clause break.
func (s *segments) clauseSpan(start, end int) (int, int) {
	first := s.tokenAt(start)
	if first < 0 {
		return start, end
	}
	span := s.clauses[s.tokens[first].clause]
	cs, ce := span[0], span[1]
	if start < cs {
		cs = start
	}
	if end > ce {
		ce = end
	}
	return cs, ce
}

// clause returns the clause text around a match.
func (s *segments) clause(start, end int) string {
	cs, ce := s.clauseSpan(start, end)
	return strings.TrimSpace(s.text[cs:ce])
}

// negated applies the negation scope to the mention at [start, end). A
// pre-negation cue must end in the same clause with at most PreCueWindow
// tokens between it and the mention, counted from the last list separator.
// A post-negation cue must start in the same clause with at most
// PostCueWindow tokens between.
func (s *segments) negated(start, end int) bool {
	first := s.tokenAt(start)
	last := s.tokenBefore(end)
	if first < 0 || last < 0 {
		return false
	}

	for _, cue := range vocab.PreNegationCues {
		for _, off := range vocab.IndexPhrases(s.text, cue) {
			cueEnd := off + len(cue)
			if cueEnd > start {
				break
			}
			ci := s.tokenBefore(cueEnd)
			if ci < 0 || s.tokens[ci].clause != s.tokens[first].clause {
				continue
			}
			if s.listScoped(ci, first) {
				return true
			}
		}
	}

	for _, cue := range vocab.PostNegationCues {
		for _, off := range vocab.IndexPhrases(s.text, cue) {
			if off < end {
				continue
			}
			ci := s.tokenAt(off)
			if ci < 0 || s.tokens[ci].clause != s.tokens[last].clause {
				continue
			}
			if ci-last-1 <= vocab.PostCueWindow {
				return true
			}
		}
	}

	return false
}

// listScoped reports whether the tokens between a pre-cue at ci and a
// mention at first form a list of items no longer than PreCueWindow each.
// A comma or a coordinator ("or", "and", "nor") restarts the count, so one
// cue covers "denies fever, chills, cough, nausea, vomiting or diabetes".
func (s *segments) listScoped(ci, first int) bool {
	run := 0
	for i := ci + 1; i < first; i++ {
		tok := s.tokens[i]
		if strings.IndexByte(s.text[s.tokens[i-1].end:tok.start], ',') >= 0 {
			run = 0
		}
		if vocab.ListCoordinators[s.text[tok.start:tok.end]] {
			run = 0
			continue
		}
		run++
		if run > vocab.PreCueWindow {
			return false
		}
	}
	return true
}

// NegationMatcher returns a matcher that accepts a phrase only where some
// occurrence of it is not negated. The last segmented text is reused since
// setters check one text with many phrases in a row.
func NegationMatcher() vocab.Matcher {
	var (
		lastText string
		last     *segments
	)
	return func(text, phrase string) bool {
		if last == nil || text != lastText {
			last, lastText = segment(text), text
		}
		for _, off := range vocab.IndexPhrases(text, phrase) {
			if !last.negated(off, off+len(phrase)) {
				return true
			}
		}
		return false
	}
}
