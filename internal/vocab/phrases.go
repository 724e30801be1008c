package vocab

import (
	"strings"
	"unicode"
)

// Matcher reports whether phrase occurs positively in text. The extractor
// supplies a negation-aware matcher; ContainsPhrase is the plain default.
type Matcher func(text, phrase string) bool

// IndexPhrases returns the byte offsets of every word-bounded occurrence of
// phrase in text. Both are expected lower-cased.
func IndexPhrases(text, phrase string) []int {
	if phrase == "" {
		return nil
	}
	var out []int
	from := 0
	for from <= len(text)-len(phrase) {
		i := strings.Index(text[from:], phrase)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(phrase)
		if bounded(text, start, end) {
			out = append(out, start)
		}
		from = start + 1
	}
	return out
}

// ContainsPhrase reports a word-bounded occurrence of phrase in text.
func ContainsPhrase(text, phrase string) bool {
	return len(IndexPhrases(text, phrase)) > 0
}

func bounded(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) && isWordByte(text[start]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) && isWordByte(text[end-1]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	r := rune(b)
	return r >= 0x80 || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Term binds a value to the phrases that name it.
type Term[T comparable] struct {
	Value   T
	Phrases []string
}

// Lookup is an ordered term table. Earlier terms win, so more specific
// phrases ("mrsa") are listed ahead of broader ones ("staph aureus").
type Lookup[T comparable] []Term[T]

// First returns the first term with a phrase present in text.
func (l Lookup[T]) First(text string, match Matcher) (T, bool) {
	if match == nil {
		match = ContainsPhrase
	}
	for _, t := range l {
		for _, p := range t.Phrases {
			if match(text, p) {
				return t.Value, true
			}
		}
	}
	var zero T
	return zero, false
}

// All returns every distinct term present in text, in table order.
func (l Lookup[T]) All(text string, match Matcher) []T {
	if match == nil {
		match = ContainsPhrase
	}
	var out []T
	for _, t := range l {
		for _, p := range t.Phrases {
			if match(text, p) {
				out = append(out, t.Value)
				break
			}
		}
	}
	return out
}

// Ladder is a term table ordered from least to most specific. When several
// rungs are named the most specific one wins.
type Ladder[T comparable] []Term[T]

// Resolve returns the highest rung named in text.
func (l Ladder[T]) Resolve(text string, match Matcher) (T, bool) {
	if match == nil {
		match = ContainsPhrase
	}
	var best T
	found := false
	for _, t := range l {
		for _, p := range t.Phrases {
			if match(text, p) {
				best, found = t.Value, true
				break
			}
		}
	}
	return best, found
}

// Rank returns a value's position on the ladder, or -1.
func (l Ladder[T]) Rank(v T) int {
	for i, t := range l {
		if t.Value == v {
			return i
		}
	}
	return -1
}

// Max returns whichever of a and b sits higher on the ladder.
func (l Ladder[T]) Max(a, b T) T {
	if l.Rank(b) > l.Rank(a) {
		return b
	}
	return a
}
