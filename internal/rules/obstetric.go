package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

var trimesterDigit = map[model.Trimester]byte{
	model.TrimesterFirst:       '1',
	model.TrimesterSecond:      '2',
	model.TrimesterThird:       '3',
	model.TrimesterUnspecified: '9',
}

// pre-eclampsia has no first trimester codes; first falls back to the
// unspecified trimester and the structural pass says so
var preeclampsiaDigit = map[model.Trimester]byte{
	model.TrimesterFirst:       '0',
	model.TrimesterSecond:      '2',
	model.TrimesterThird:       '3',
	model.TrimesterUnspecified: '0',
}

var gdmDigit = map[model.GDMControl]byte{
	model.GDMDiet:        '0',
	model.GDMInsulin:     '4',
	model.GDMOral:        '5',
	model.GDMUnspecified: '9',
}

// deriveObstetric codes hypertensive disorders and gestational diabetes of
// pregnancy with the weeks-of-gestation code. A pregnancy with nothing else
// documented is the incidental pregnant state.
func deriveObstetric(ctx model.Context, _ []model.Code) []model.Code {
	if !ctx.Usable(model.FamilyPregnancy) {
		return nil
	}
	p := ctx.Pregnancy
	t := trimesterDigit[p.Trimester]
	trimester := string(p.Trimester)
	if trimester == "" {
		trimester = "unspecified"
	}
	var codes []model.Code

	preexisting := ctx.Usable(model.FamilyHypertension)
	switch {
	case p.Preeclampsia && preexisting:
		codes = append(codes, emit(ctx, fmt.Sprintf("O11.%c", t), Obstetric,
			"pre-existing hypertension with superimposed pre-eclampsia, "+trimester+" trimester",
			"I.C.15.d.1", vocab.AttrPreeclampsia, vocab.AttrHypertension, vocab.AttrTrimester))
	case p.Preeclampsia:
		category, severity := "O14.9", "pre-eclampsia"
		if p.Severe {
			category, severity = "O14.1", "severe pre-eclampsia"
		}
		codes = append(codes, emit(ctx, fmt.Sprintf("%s%c", category, preeclampsiaDigit[p.Trimester]), Obstetric,
			severity+", "+trimester+" trimester",
			"I.C.15.d", vocab.AttrPreeclampsia, vocab.AttrTrimester))
	case preexisting && !ctx.Usable(model.FamilyCKD) && !ctx.Usable(model.FamilyHeartFailure):
		codes = append(codes, emit(ctx, fmt.Sprintf("O10.01%c", t), Obstetric,
			"pre-existing essential hypertension complicating pregnancy, "+trimester+" trimester",
			"I.C.15.d.1", vocab.AttrHypertension, vocab.AttrTrimester))
	case p.GestationalHTN:
		codes = append(codes, emit(ctx, fmt.Sprintf("O13.%c", t), Obstetric,
			"gestational hypertension, "+trimester+" trimester",
			"I.C.15.d", vocab.AttrGestationalHTN, vocab.AttrTrimester))
	}

	if d, ok := gdmDigit[p.GDM]; ok {
		codes = append(codes, emit(ctx, fmt.Sprintf("O24.41%c", d), Obstetric,
			fmt.Sprintf("gestational diabetes, %s control", p.GDM),
			"I.C.15.g", vocab.AttrGDM))
	}

	if len(codes) == 0 {
		if othersDocumented(ctx) {
			// pregnancy with unrelated conditions is left to the other modules
			return nil
		}
		return []model.Code{emit(ctx, "Z33.1", Obstetric,
			"pregnancy documented with no complicating condition", "I.C.15.b.1", vocab.AttrPregnancy)}
	}

	if id, ok := weeksCode(p.Weeks); ok {
		codes = append(codes, emit(ctx, id, Obstetric,
			fmt.Sprintf("%d completed weeks of gestation", p.Weeks),
			"I.C.15.a", vocab.AttrGestationWeeks))
	}
	return codes
}

func weeksCode(weeks int) (string, bool) {
	switch {
	case weeks <= 0:
		return "", false
	case weeks < 8:
		return "Z3A.01", true
	case weeks > 42:
		return "Z3A.49", true
	}
	return fmt.Sprintf("Z3A.%02d", weeks), true
}

func othersDocumented(ctx model.Context) bool {
	for _, f := range model.AllFamilies {
		switch f {
		case model.FamilyPregnancy, model.FamilyPatient, model.FamilyEncounter:
			continue
		}
		if ctx.Usable(f) {
			return true
		}
	}
	return false
}
