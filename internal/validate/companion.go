package validate

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/rules"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// requirement is a "code also" relation: any code with one of the anchor
// prefixes needs a code with the companion prefix. build returns the
// companion from the context, or false when it cannot be built.
type requirement struct {
	anchors   []string
	companion string
	describe  string
	build     func(ctx model.Context) (model.Code, bool)
}

var requirements = []requirement{
	{
		anchors:   []string{"I12", "I13", "E10.22", "E11.22"},
		companion: "N18",
		describe:  "a CKD stage code",
		build:     fromModule(rules.Renal, "N18"),
	},
	{
		anchors:   []string{"I11.0", "I13.0", "I13.2"},
		companion: "I50",
		describe:  "a heart failure code",
		build:     fromModule(rules.HeartFailure, "I50"),
	},
	{
		anchors:   []string{"N18.6"},
		companion: "Z99.2",
		describe:  "dialysis status",
		build: func(ctx model.Context) (model.Code, bool) {
			if !ctx.Usable(model.FamilyDialysis) {
				return model.Code{}, false
			}
			return fromModule(rules.Renal, "Z99.2")(ctx)
		},
	},
	{
		anchors:   []string{"E10.621", "E11.621"},
		companion: "L97",
		describe:  "an L97 code for ulcer site and depth",
		build:     fromModule(rules.Wounds, "L97"),
	},
	{
		anchors:   []string{"O1", "O24"},
		companion: "Z3A",
		describe:  "a weeks of gestation code",
		build:     fromModule(rules.Obstetric, "Z3A"),
	},
}

// fromModule rebuilds a companion by running the owning module alone.
func fromModule(module, prefix string) func(model.Context) (model.Code, bool) {
	return func(ctx model.Context) (model.Code, bool) {
		return firstWithPrefix(rules.Derive(module, ctx), prefix)
	}
}

// Companion adds required companion codes: severe sepsis and shock after a
// sepsis code, and the "code also" partners of combination codes.
type Companion struct{}

func (Companion) Name() string { return "companion" }

func (p Companion) Apply(codes []model.Code, in Input) ([]model.Code, model.Record) {
	ctx := in.Context
	var r model.Record
	out := codes

	add := func(at int, c model.Code, reason string) {
		c.Rule = p.Name()
		out = insertAt(out, at, c)
		r.Added = append(r.Added, model.Change{Code: c, Reason: reason, Pass: p.Name()})
	}

	if c, at, ok := severity(out, ctx); ok {
		add(at, c, fmt.Sprintf("sepsis requires %s when %s is documented", c.ID, c.Label))
	}

	for _, req := range requirements {
		anchor, ok := firstWithPrefix(out, req.anchors...)
		if !ok || hasPrefix(out, req.companion) {
			continue
		}
		c, ok := req.build(ctx)
		if !ok {
			r.Warnings = append(r.Warnings, model.Warning{
				Kind:    model.WarningCompanion,
				Message: fmt.Sprintf("%s requires %s, which the documentation does not support", anchor.ID, req.describe),
				Code:    anchor.ID,
			})
			continue
		}
		add(afterGroup(out, model.IndexOf(out, anchor.ID)), c, fmt.Sprintf("%s requires %s", anchor.ID, req.describe))
	}

	if c, at, ok := causalOrganism(out, ctx); ok {
		add(at, c, fmt.Sprintf("%s infection with a known organism requires %s", out[at-1].ID, c.ID))
	}

	if anchor, ok := firstWithPrefix(out, "D63.0"); ok && !hasPrefix(out, "C") {
		r.Warnings = append(r.Warnings, model.Warning{
			Kind:    model.WarningCompanion,
			Message: "anemia in neoplastic disease requires an active malignancy code",
			Code:    anchor.ID,
		})
	}

	return out, r
}

// severity builds R65.21 for septic shock or R65.20 for severe sepsis and
// returns the position after the sepsis code and its source codes.
func severity(codes []model.Code, ctx model.Context) (model.Code, int, bool) {
	if !ctx.Usable(model.FamilySepsis) || hasPrefix(codes, "R65.2") {
		return model.Code{}, 0, false
	}
	i := indexWithPrefix(codes, "A40", "A41")
	if i < 0 {
		return model.Code{}, 0, false
	}

	var c model.Code
	switch {
	case ctx.Usable(model.FamilySepticShock):
		c = vocab.NewCode("R65.21", "", "septic shock documented with sepsis", "I.C.1.d.1.a",
			ctx.Trigger(vocab.AttrSepticShock))
	case ctx.Infection.Severe:
		c = vocab.NewCode("R65.20", "", "severe sepsis with organ dysfunction, no shock", "I.C.1.d.1.a",
			ctx.Trigger(vocab.AttrSevereSepsis))
	default:
		return model.Code{}, 0, false
	}
	return c, afterGroup(codes, i), true
}

// causalOrganism adds the B95/B96 code after a localized infection without
// sepsis when the organism is known.
func causalOrganism(codes []model.Code, ctx model.Context) (model.Code, int, bool) {
	if !ctx.Usable(model.FamilyInfection) || ctx.Infection.Sepsis || hasPrefix(codes, "A40", "A41", "B95", "B96") {
		return model.Code{}, 0, false
	}
	id, ok := vocab.CausalOrganismCodes[ctx.Infection.Organism]
	if !ok {
		return model.Code{}, 0, false
	}
	source, ok := vocab.SourceCodes[ctx.Infection.Site]
	if !ok {
		return model.Code{}, 0, false
	}
	i := model.IndexOf(codes, source)
	if i < 0 {
		return model.Code{}, 0, false
	}
	c := vocab.NewCode(id, "", fmt.Sprintf("%s identified as the causal organism", ctx.Infection.Organism),
		"I.C.1.b", ctx.Trigger(vocab.AttrOrganism))
	return c, i + 1, true
}

// afterGroup returns the position after codes[i] and the codes that follow it
// from the same rule module.
func afterGroup(codes []model.Code, i int) int {
	j := i + 1
	for j < len(codes) && codes[j].Rule == codes[i].Rule {
		j++
	}
	return j
}

func indexWithPrefix(codes []model.Code, prefixes ...string) int {
	for i, c := range codes {
		if c.HasPrefix(prefixes...) {
			return i
		}
	}
	return -1
}
