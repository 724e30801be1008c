package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// Sequence picks the principal code. An administrative encounter code wins
// by priority (dialysis, chemotherapy, radiation, follow-up); otherwise the
// first stated clinical reason with a matching code is moved first. Without a
// stated reason the module order stands.
type Sequence struct{}

func (Sequence) Name() string { return "sequence" }

func (p Sequence) Apply(codes []model.Code, in Input) ([]model.Code, model.Record) {
	var r model.Record
	if len(codes) == 0 {
		return codes, r
	}
	warn := func(code, format string, args ...interface{}) {
		r.Warnings = append(r.Warnings, model.Warning{
			Kind:    model.WarningSequencing,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		})
	}

	clinical := clinicalReasons(in.Context)

	if best, admin := administrativeCodes(codes); best >= 0 {
		if len(admin) > 1 {
			warn(codes[best].ID, "several administrative reasons for encounter (%s); %s sequenced first",
				strings.Join(admin, ", "), codes[best].ID)
		}
		for _, reason := range clinical {
			warn(codes[best].ID, "clinical reason %q stated; administrative reason %s takes precedence",
				reason.Text, codes[best].ID)
		}
		return p.move(codes, best, "administrative reason for encounter is sequenced first", &r), r
	}

	principal := -1
	var chosen model.Reason
	for _, reason := range clinical {
		i := firstExpressing(codes, reason.Family)
		if i < 0 {
			continue
		}
		if principal < 0 {
			principal, chosen = i, reason
			continue
		}
		if i != principal {
			warn(codes[principal].ID, "conflicting reasons for encounter (%q and %q); the first stated wins",
				chosen.Text, reason.Text)
		}
	}
	if principal < 0 {
		return codes, r
	}
	return p.move(codes, principal, fmt.Sprintf("stated reason for encounter: %s", chosen.Family), &r), r
}

func (p Sequence) move(codes []model.Code, i int, reason string, r *model.Record) []model.Code {
	if i == 0 {
		return codes
	}
	r.Moved = append(r.Moved, model.Move{Code: codes[i].ID, From: i, To: 0, Reason: reason, Pass: p.Name()})
	return moveTo(codes, i, 0)
}

// administrativeCodes returns the index of the highest-priority
// administrative code, or -1, and the ids of all administrative codes.
func administrativeCodes(codes []model.Code) (int, []string) {
	best := -1
	var ids []string
	for i, c := range codes {
		rank := vocab.AdministrativeRank(c.ID)
		if rank < 0 {
			continue
		}
		ids = append(ids, c.ID)
		if best < 0 || rank < vocab.AdministrativeRank(codes[best].ID) {
			best = i
		}
	}
	return best, ids
}

func clinicalReasons(ctx model.Context) []model.Reason {
	if ctx.Encounter == nil {
		return nil
	}
	var out []model.Reason
	for _, reason := range ctx.Encounter.Reasons {
		if reason.Kind == model.ReasonClinical && reason.Family != "" && !ctx.IsDenied(reason.Family) {
			out = append(out, reason)
		}
	}
	return out
}

// secondaryOnly codes never lead the list.
var secondaryOnly = []string{"R65.2", "B95", "B96", "Z3A", "Z79", "Z99", "W19"}

func firstExpressing(codes []model.Code, f model.Family) int {
	if f == model.FamilySepticShock {
		f = model.FamilySepsis
	}
	for i, c := range codes {
		if !c.HasPrefix(secondaryOnly...) && vocab.Expresses(c.ID, f) {
			return i
		}
	}
	return -1
}
