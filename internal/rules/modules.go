package rules

import (
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// Module names.
const (
	Obstetric    = "obstetric"
	Infection    = "infection"
	Hypertension = "hypertension"
	HeartFailure = "heart_failure"
	Cardiac      = "cardiac"
	Respiratory  = "respiratory"
	Renal        = "renal"
	Diabetes     = "diabetes"
	Wounds       = "wounds"
	Trauma       = "trauma"
	Oncology     = "oncology"
	Encounter    = "encounter"
)

// DefaultModules returns the built-in domain modules. Obstetric codes lead
// per the chapter 15 sequencing convention; administrative encounter codes
// come last and are moved by the sequence pass when a reason was stated.
func DefaultModules() []Module {
	return []Module{
		{Name: Obstetric, Rank: 10, Derive: deriveObstetric},
		{Name: Infection, Rank: 20, Derive: deriveInfection},
		{Name: Hypertension, Rank: 30, After: []string{Renal, HeartFailure}, Derive: deriveHypertension},
		{Name: HeartFailure, Rank: 40, Derive: deriveHeartFailure},
		{Name: Cardiac, Rank: 45, Derive: deriveCardiac},
		{Name: Respiratory, Rank: 50, Derive: deriveRespiratory},
		{Name: Renal, Rank: 60, Derive: deriveRenal},
		{Name: Diabetes, Rank: 70, Derive: deriveDiabetes},
		{Name: Wounds, Rank: 80, Derive: deriveWounds},
		{Name: Trauma, Rank: 90, Derive: deriveTrauma},
		{Name: Oncology, Rank: 100, Derive: deriveOncology},
		{Name: Encounter, Rank: 110, Derive: deriveEncounter},
	}
}

// Derive runs one built-in module on its own, without prior codes. The
// companion pass uses it to rebuild a missing code from the context.
func Derive(name string, ctx model.Context) []model.Code {
	for _, m := range DefaultModules() {
		if m.Name == name {
			codes := m.Derive(ctx, nil)
			for i := range codes {
				if codes[i].Rule == "" {
					codes[i].Rule = m.Name
				}
			}
			return codes
		}
	}
	return nil
}

// emit is the common code constructor for the modules.
func emit(ctx model.Context, id, rule, rationale, guideline string, attrs ...model.Attr) model.Code {
	return vocab.NewCode(id, rule, rationale, guideline, ctx.Trigger(attrs...))
}

// sideDigit encodes laterality as the classification's 1/2 with the given
// digit for an undocumented side.
func sideDigit(l model.Laterality, unspecified byte) byte {
	switch l {
	case model.LateralityRight:
		return '1'
	case model.LateralityLeft:
		return '2'
	}
	return unspecified
}

// firstWithPrefix returns the first prior code with the prefix.
func firstWithPrefix(prior []model.Code, prefix string) (model.Code, bool) {
	for _, c := range prior {
		if c.HasPrefix(prefix) {
			return c, true
		}
	}
	return model.Code{}, false
}
