package validate

import (
	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// Input is what the passes may consult besides the code list.
type Input struct {
	Context   model.Context
	Text      string        // normalized lower-case document text
	Narrative string        // the parts of Text read as prose, without field lines
	Match     vocab.Matcher // negation-aware matcher for Text; nil means plain
}

func (in Input) match() vocab.Matcher {
	if in.Match == nil {
		return vocab.ContainsPhrase
	}
	return in.Match
}

// Pass is one validation step. A pass returns the new list and the record of
// what it changed; it never mutates its input slice.
type Pass interface {
	Name() string
	Apply(codes []model.Code, in Input) ([]model.Code, model.Record)
}

// DefaultPasses returns the passes in their fixed order.
func DefaultPasses() []Pass {
	return []Pass{
		Structural{},
		Exclusion{},
		Companion{},
		Specificity{},
		Fallback{},
		Sequence{},
	}
}

// Validator runs the correction passes over candidate codes
type Validator struct {
	passes []Pass
	logger zerolog.Logger
}

// NewValidator creates a validator with the given passes, or the default
// passes when none are given.
func NewValidator(logger zerolog.Logger, passes ...Pass) *Validator {
	if len(passes) == 0 {
		passes = DefaultPasses()
	}
	return &Validator{passes: passes, logger: logger}
}

// Validate runs every pass in order and returns the final list with the
// merged record.
func (v *Validator) Validate(codes []model.Code, in Input) ([]model.Code, model.Record) {
	current := append([]model.Code(nil), codes...)
	var record model.Record

	for _, p := range v.passes {
		next, r := p.Apply(current, in)
		current = next

		if !r.Empty() {
			v.logger.Debug().
				Str("pass", p.Name()).
				Int("removed", len(r.Removed)).
				Int("added", len(r.Added)).
				Int("moved", len(r.Moved)).
				Int("warnings", len(r.Warnings)).
				Strs("codes", model.IDs(current)).
				Msg("pass applied")
		}
		record = record.Merge(r)
	}

	return current, record
}

// without returns codes minus the entries at the given indexes.
func without(codes []model.Code, drop map[int]bool) []model.Code {
	out := make([]model.Code, 0, len(codes))
	for i, c := range codes {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}

// insertAt returns codes with c inserted at position i.
func insertAt(codes []model.Code, i int, c model.Code) []model.Code {
	out := make([]model.Code, 0, len(codes)+1)
	out = append(out, codes[:i]...)
	out = append(out, c)
	return append(out, codes[i:]...)
}

// moveTo returns codes with the entry at from moved to position to.
func moveTo(codes []model.Code, from, to int) []model.Code {
	c := codes[from]
	rest := make([]model.Code, 0, len(codes))
	rest = append(rest, codes[:from]...)
	rest = append(rest, codes[from+1:]...)
	return insertAt(rest, to, c)
}

func firstWithPrefix(codes []model.Code, prefixes ...string) (model.Code, bool) {
	for _, c := range codes {
		if c.HasPrefix(prefixes...) {
			return c, true
		}
	}
	return model.Code{}, false
}
