package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// Fallback runs only on an empty list. When exactly one common condition is
// positively named in the narrative it is coded with low confidence. Field
// lines are not read: their values were already judged by the extractor. A
// disabled fallback still reports the empty result.
type Fallback struct {
	Disabled bool
}

func (Fallback) Name() string { return "fallback" }

func (p Fallback) Apply(codes []model.Code, in Input) ([]model.Code, model.Record) {
	var r model.Record
	if len(codes) > 0 {
		return codes, r
	}

	var matched []vocab.FallbackCondition
	if !p.Disabled {
		matched = p.candidates(in)
	}
	switch len(matched) {
	case 0:
		r.Warnings = append(r.Warnings, model.Warning{
			Kind:    model.WarningFallback,
			Message: "insufficient documentation to code",
		})
		return codes, r
	case 1:
	default:
		names := make([]string, len(matched))
		for i, m := range matched {
			names[i] = m.Name
		}
		r.Warnings = append(r.Warnings, model.Warning{
			Kind:    model.WarningFallback,
			Message: fmt.Sprintf("several conditions named (%s) but none coded by rule; no fallback code chosen", strings.Join(names, ", ")),
		})
		return codes, r
	}

	cond := matched[0]
	c := vocab.NewCode(cond.Code, p.Name(),
		fmt.Sprintf("%s is the only condition named in the text; no rule produced a code", cond.Name), "", "")
	if c.Label == "" {
		c.Label = cond.Name
	}
	c.Confidence = model.ConfidenceLow
	r.Added = append(r.Added, model.Change{Code: c, Reason: "fallback on a single named condition", Pass: p.Name()})
	return []model.Code{c}, r
}

// candidates returns the fallback conditions named positively in the
// narrative and not denied in the context.
func (p Fallback) candidates(in Input) []vocab.FallbackCondition {
	var out []vocab.FallbackCondition
	for _, cond := range vocab.FallbackConditions {
		if cond.Family != "" && in.Context.IsDenied(cond.Family) {
			continue
		}
		for _, phrase := range cond.Phrases {
			if in.match()(in.Narrative, phrase) {
				out = append(out, cond)
				break
			}
		}
	}
	return out
}
