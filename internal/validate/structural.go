package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
)

// Structural reports required attributes that were not documented. It only
// warns; the modules have already withheld what they could not build.
type Structural struct{}

func (Structural) Name() string { return "structural" }

func (s Structural) Apply(codes []model.Code, in Input) ([]model.Code, model.Record) {
	ctx := in.Context
	var r model.Record
	warn := func(code, format string, args ...interface{}) {
		r.Warnings = append(r.Warnings, model.Warning{
			Kind:    model.WarningStructural,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		})
	}

	for _, f := range model.AllFamilies {
		if ctx.Conflicted(f) {
			warn("", "%s is both documented and negated; not coded", f)
		}
	}

	if ctx.Usable(model.FamilyFootUlcer) && !ctx.FootUlcer.Complete() {
		var missing []string
		if ctx.FootUlcer.Site == model.UlcerSiteUnspecified {
			missing = append(missing, "site")
		}
		if ctx.FootUlcer.Depth == model.DepthUnspecified {
			missing = append(missing, "depth")
		}
		// the diabetic case is reported by the companion pass
		if !hasPrefix(codes, "E10.621", "E11.621") {
			warn("", "foot ulcer %s not documented; L97 code withheld", strings.Join(missing, " and "))
		}
	}

	if ctx.Usable(model.FamilyPressureUlcer) && ctx.PressureUlcer.Stage == model.PressureStageUnspecified {
		code, _ := firstWithPrefix(codes, "L89")
		warn(code.ID, "pressure ulcer stage not documented; unspecified stage used")
	}

	if model.Contains(codes, "N18.9") {
		warn("N18.9", "CKD stage not documented; stage is never inferred from lab values")
	}

	if model.Contains(codes, "N18.6") && !ctx.Usable(model.FamilyDialysis) && !ctx.Usable(model.FamilyTransplant) {
		warn("N18.6", "end stage renal disease without documented dialysis or transplant status")
	}

	if ctx.Usable(model.FamilyFracture) {
		if ctx.Fracture.Site == model.FractureSiteUnspecified {
			warn("", "fracture site not documented; fracture code withheld")
		} else if ctx.Fracture.Encounter == model.EncounterUnspecified {
			warn("", "fracture encounter type (initial, subsequent, sequela) not documented; fracture code withheld")
		}
	}

	if ctx.Usable(model.FamilyNeoplasm) {
		n := ctx.Neoplasm
		switch {
		case n.Site == model.NeoplasmSiteUnspecified && n.History:
			warn("", "history of malignancy without a documented site; history code withheld")
		case n.Site == model.NeoplasmSiteUnspecified && len(n.Metastases) == 0:
			warn("", "malignancy without a documented primary site")
		case n.Site == model.NeoplasmBreast && !n.History && (ctx.Patient == nil || ctx.Patient.Sex == model.SexUnspecified):
			warn("", "breast malignancy without documented sex; C50 code withheld")
		}
	}

	if ctx.Usable(model.FamilyPregnancy) {
		p := ctx.Pregnancy
		if p.Preeclampsia && p.Trimester == model.TrimesterFirst {
			code, _ := firstWithPrefix(codes, "O14")
			warn(code.ID, "pre-eclampsia has no first trimester code; unspecified trimester used")
		}
		if p.Trimester == model.TrimesterUnspecified && hasPrefix(codes, "O1", "O24") {
			warn("", "trimester not documented; unspecified trimester used")
		}
	}

	return codes, r
}

func hasPrefix(codes []model.Code, prefixes ...string) bool {
	_, ok := firstWithPrefix(codes, prefixes...)
	return ok
}
