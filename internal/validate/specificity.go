package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

type organismFamily struct {
	codes       map[model.Organism]string
	unspecified string
}

var organismFamilies = []organismFamily{
	{vocab.SepsisCodes, vocab.SepsisUnspecified},
	{vocab.PneumoniaCodes, vocab.PneumoniaUnspecified},
}

// Specificity re-reads the raw text for organisms. An unspecified sepsis or
// pneumonia code is made specific when exactly one organism is named, and an
// organism-specific code the text does not support is corrected or loosened.
type Specificity struct{}

func (Specificity) Name() string { return "specificity" }

func (p Specificity) Apply(codes []model.Code, in Input) ([]model.Code, model.Record) {
	var r model.Record
	if in.Text == "" {
		return codes, r
	}
	named := namedOrganisms(in)
	out := append([]model.Code(nil), codes...)

	swap := func(i int, id, reason string) {
		old := out[i]
		if model.Contains(out, id) {
			return
		}
		c := vocab.NewCode(id, p.Name(), reason, old.Guideline, old.Trigger)
		out[i] = c
		r.Removed = append(r.Removed, model.Change{Code: old, Reason: reason, Pass: p.Name()})
		r.Added = append(r.Added, model.Change{Code: c, Reason: reason, Pass: p.Name(), Replaces: old.ID})
	}
	warn := func(c model.Code, msg string) {
		r.Warnings = append(r.Warnings, model.Warning{Kind: model.WarningSpecificity, Message: msg, Code: c.ID})
	}

	for i, c := range codes {
		fam, ok := familyOf(c.ID)
		if !ok {
			continue
		}

		if c.ID == fam.unspecified {
			switch len(named) {
			case 0:
			case 1:
				if id, ok := fam.codes[named[0]]; ok {
					swap(i, id, fmt.Sprintf("organism %s is named in the documentation", named[0]))
				}
			default:
				warn(c, fmt.Sprintf("several organisms named (%s); %s kept", joinOrganisms(named), c.ID))
			}
			continue
		}

		supported := fam.organismsFor(c.ID)
		if overlaps(supported, named) {
			continue
		}
		switch len(named) {
		case 0:
			swap(i, fam.unspecified, fmt.Sprintf("organism %s is not positively named in the documentation", joinOrganisms(supported)))
		case 1:
			if id, ok := fam.codes[named[0]]; ok {
				swap(i, id, fmt.Sprintf("documentation names %s, not %s", named[0], joinOrganisms(supported)))
			}
		default:
			warn(c, fmt.Sprintf("%s does not match the organisms named (%s)", c.ID, joinOrganisms(named)))
		}
	}

	return out, r
}

func familyOf(id string) (organismFamily, bool) {
	for _, f := range organismFamilies {
		if id == f.unspecified {
			return f, true
		}
		for _, c := range f.codes {
			if c == id {
				return f, true
			}
		}
	}
	return organismFamily{}, false
}

// organismsFor lists the organisms coded by id, in table order.
func (f organismFamily) organismsFor(id string) []model.Organism {
	var out []model.Organism
	for _, t := range vocab.Organisms {
		if f.codes[t.Value] == id {
			out = append(out, t.Value)
		}
	}
	return out
}

// namedOrganisms returns the organisms positively named in the text. The
// resistant strain's name contains the plain species, so MRSA hides MSSA.
func namedOrganisms(in Input) []model.Organism {
	all := vocab.Organisms.All(in.Text, in.match())
	mrsa := false
	for _, o := range all {
		if o == model.OrganismMRSA {
			mrsa = true
		}
	}
	var out []model.Organism
	for _, o := range all {
		if mrsa && o == model.OrganismMSSA {
			continue
		}
		out = append(out, o)
	}
	return out
}

func overlaps(a, b []model.Organism) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func joinOrganisms(os []model.Organism) string {
	parts := make([]string, len(os))
	for i, o := range os {
		parts[i] = string(o)
	}
	return strings.Join(parts, ", ")
}
