package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// deriveHypertension walks the hypertension x CKD x heart failure ladder. The
// CKD stage comes from the renal module's resolved code so the two never
// disagree about late-stage disease.
func deriveHypertension(ctx model.Context, prior []model.Code) []model.Code {
	if !ctx.Usable(model.FamilyHypertension) {
		return nil
	}

	hf := ctx.Usable(model.FamilyHeartFailure)
	ckd := ctx.Usable(model.FamilyCKD)
	late := false
	if stage, ok := firstWithPrefix(prior, "N18."); ok {
		late = stage.ID == "N18.5" || stage.ID == "N18.6"
	}

	var code model.Code
	switch {
	case hf && ckd && late:
		code = emit(ctx, "I13.2", Hypertension,
			"hypertension with heart failure and stage 5 or end stage CKD: combination code presumes the causal link",
			"I.C.9.a.3", vocab.AttrHypertension, vocab.AttrHeartFailure, vocab.AttrCKDStage, vocab.AttrESRD)
	case hf && ckd:
		code = emit(ctx, "I13.0", Hypertension,
			"hypertension with heart failure and stage 1-4 or unspecified CKD: combination code presumes the causal link",
			"I.C.9.a.3", vocab.AttrHypertension, vocab.AttrHeartFailure, vocab.AttrCKDStage)
	case ckd && late:
		code = emit(ctx, "I12.0", Hypertension,
			"hypertension with stage 5 or end stage CKD",
			"I.C.9.a.2", vocab.AttrHypertension, vocab.AttrCKDStage, vocab.AttrESRD)
	case ckd:
		code = emit(ctx, "I12.9", Hypertension,
			"hypertension with stage 1-4 or unspecified CKD",
			"I.C.9.a.2", vocab.AttrHypertension, vocab.AttrCKDStage, vocab.AttrCKD)
	case hf:
		code = emit(ctx, "I11.0", Hypertension,
			"hypertension with heart failure: causal link presumed",
			"I.C.9.a.1", vocab.AttrHypertension, vocab.AttrHeartFailure)
	default:
		code = emit(ctx, "I10", Hypertension,
			"essential hypertension without heart or kidney involvement",
			"I.C.9.a", vocab.AttrHypertension)
	}
	codes := []model.Code{code}

	if ctx.Usable(model.FamilyHypertensiveCrisis) {
		id := "I16.9"
		switch ctx.Hypertension.Crisis {
		case model.CrisisUrgency:
			id = "I16.0"
		case model.CrisisEmergency:
			id = "I16.1"
		}
		codes = append(codes, emit(ctx, id, Hypertension,
			fmt.Sprintf("hypertensive crisis (%s) documented in addition to the underlying hypertensive disease", ctx.Hypertension.Crisis),
			"I.C.9.a.6", vocab.AttrHTNCrisis))
	}

	return codes
}

var hfCategory = map[model.HFType]string{
	model.HFSystolic:  "I50.2",
	model.HFDiastolic: "I50.3",
	model.HFCombined:  "I50.4",
}

var acuityDigit = map[model.Acuity]string{
	model.AcuityUnspecified:    "0",
	model.AcuityAcute:          "1",
	model.AcuityChronic:        "2",
	model.AcuityAcuteOnChronic: "3",
}

// deriveHeartFailure resolves the type x acuity lookup. An unknown type is
// I50.9 whatever the acuity.
func deriveHeartFailure(ctx model.Context, _ []model.Code) []model.Code {
	if !ctx.Usable(model.FamilyHeartFailure) {
		return nil
	}

	hf := ctx.HeartFailure
	category, ok := hfCategory[hf.Type]
	if !ok {
		return []model.Code{emit(ctx, "I50.9", HeartFailure,
			"heart failure without documented type",
			"I.C.9.a.1", vocab.AttrHeartFailure)}
	}

	acuity := string(hf.Acuity)
	if acuity == "" {
		acuity = "unspecified acuity"
	}
	return []model.Code{emit(ctx, category+acuityDigit[hf.Acuity], HeartFailure,
		fmt.Sprintf("%s heart failure, %s", hf.Type, acuity),
		"I.C.9.a.1", vocab.AttrHeartFailure, vocab.AttrHFType, vocab.AttrHFAcuity)}
}

// deriveCardiac covers atrial fibrillation, coronary disease and infarction.
func deriveCardiac(ctx model.Context, _ []model.Code) []model.Code {
	var codes []model.Code

	if ctx.Usable(model.FamilyInfarction) {
		id := "I21.9"
		switch ctx.Infarction.Kind {
		case model.InfarctionSTEMI:
			id = "I21.3"
		case model.InfarctionNSTEMI:
			id = "I21.4"
		}
		codes = append(codes, emit(ctx, id, Cardiac, "acute myocardial infarction", "I.C.9.e", vocab.AttrInfarction))
	}

	if ctx.Usable(model.FamilyAtrialFib) {
		id := "I48.91"
		switch ctx.AtrialFib.Kind {
		case model.AFibParoxysmal:
			id = "I48.0"
		case model.AFibPersistent:
			id = "I48.19"
		case model.AFibPermanent:
			id = "I48.21"
		case model.AFibChronic:
			id = "I48.20"
		}
		codes = append(codes, emit(ctx, id, Cardiac, "atrial fibrillation", "", vocab.AttrAtrialFib))
	}

	if ctx.Usable(model.FamilyCoronary) {
		codes = append(codes, emit(ctx, "I25.10", Cardiac,
			"coronary artery disease without documented angina", "I.C.9.b", vocab.AttrCoronary))
	}

	return codes
}
