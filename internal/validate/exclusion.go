package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// supersession removes codes made redundant by a combination or a more
// specific code. Prefixes match code identifiers.
type supersession struct {
	winner string
	losers []string
	reason string
}

var supersessions = []supersession{
	{"I13.2", []string{"I13.0", "I13.10", "I13.11"}, "combination code for heart failure with stage 5 or end stage CKD"},
	{"I13", []string{"I10", "I11.0", "I11.9", "I12"}, "hypertensive heart and chronic kidney disease combination"},
	{"I12", []string{"I10"}, "hypertensive chronic kidney disease combination"},
	{"I11.0", []string{"I10"}, "hypertensive heart disease combination"},
	{"O10", []string{"I10"}, "pre-existing hypertension in pregnancy is coded from chapter 15"},
	{"O11", []string{"I10", "O10", "O13", "O14"}, "pre-existing hypertension with superimposed pre-eclampsia"},
	{"O14", []string{"O13"}, "pre-eclampsia supersedes gestational hypertension"},
	{"O", []string{"Z33.1"}, "a complicated pregnancy is not incidental"},
	{"N18.6", []string{"N18.5"}, "end stage renal disease supersedes stage 5"},
	{"R65.21", []string{"R65.20"}, "septic shock supersedes severe sepsis without shock"},
	{"C50", []string{"Z85.3"}, "active malignancy supersedes personal history"},
	{"C34", []string{"Z85.118"}, "active malignancy supersedes personal history"},
	{"C18", []string{"Z85.038"}, "active malignancy supersedes personal history"},
	{"C61", []string{"Z85.46"}, "active malignancy supersedes personal history"},
	{"C25", []string{"Z85.07"}, "active malignancy supersedes personal history"},
}

// siblingGroups are categories within which a specific code makes the
// unspecified code redundant. A group whose first entry is a full code
// names its only removable member; diabetes complications are never
// redundant with each other.
var siblingGroups = [][]string{
	{"I50"},
	{"A40", "A41"},
	{"J13", "J15", "J18"},
	{"N18"},
	{"E10.9", "E10"},
	{"E11.9", "E11"},
	{"J44"},
	{"J45"},
	{"J96"},
	{"I48"},
	{"I21"},
	{"I16"},
	{"L89"},
	{"L97"},
	{"C50"},
	{"C34"},
	{"O10"},
	{"O11"},
	{"O13"},
	{"O14"},
	{"O24"},
}

// Exclusion removes mutually exclusive and redundant codes.
type Exclusion struct{}

func (Exclusion) Name() string { return "exclusion" }

func (e Exclusion) Apply(codes []model.Code, _ Input) ([]model.Code, model.Record) {
	var r model.Record
	drop := make(map[int]bool)

	for i, c := range codes {
		if reason, ok := e.excludedBy(c, codes); ok {
			drop[i] = true
			r.Removed = append(r.Removed, model.Change{Code: c, Reason: reason, Pass: e.Name()})
		}
	}

	if len(drop) == 0 {
		return codes, r
	}
	return without(codes, drop), r
}

func (e Exclusion) excludedBy(c model.Code, codes []model.Code) (string, bool) {
	for _, s := range supersessions {
		if !c.HasPrefix(s.losers...) || c.HasPrefix(s.winner) {
			continue
		}
		if w, ok := firstWithPrefix(codes, s.winner); ok {
			return fmt.Sprintf("superseded by %s: %s", w.ID, s.reason), true
		}
	}

	if !vocab.IsUnspecified(c.ID) {
		return "", false
	}
	for _, group := range siblingGroups {
		if only := group[0]; strings.Contains(only, ".") {
			if c.ID != only {
				continue
			}
			group = group[1:]
		}
		if !c.HasPrefix(group...) {
			continue
		}
		for _, w := range codes {
			if w.ID != c.ID && w.HasPrefix(group...) && !vocab.IsUnspecified(w.ID) {
				return fmt.Sprintf("unspecified code redundant with the more specific %s", w.ID), true
			}
		}
	}
	return "", false
}
