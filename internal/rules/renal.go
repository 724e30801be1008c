package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

var stageCodes = map[model.CKDStage]string{
	model.CKDStageUnspecified: "N18.9",
	model.CKDStage1:           "N18.1",
	model.CKDStage2:           "N18.2",
	model.CKDStage3:           "N18.30",
	model.CKDStage3a:          "N18.31",
	model.CKDStage3b:          "N18.32",
	model.CKDStage4:           "N18.4",
	model.CKDStage5:           "N18.5",
	model.CKDStageESRD:        "N18.6",
}

// deriveRenal codes CKD by stage, dialysis and transplant status and AKI.
// Stage 5 with ESRD is N18.6 alone since the ladder keeps only ESRD.
func deriveRenal(ctx model.Context, _ []model.Code) []model.Code {
	var codes []model.Code

	if ctx.Usable(model.FamilyCKD) {
		stage := ctx.CKD.Stage
		rationale := fmt.Sprintf("chronic kidney disease, provider-documented stage %s", stage)
		if stage == model.CKDStageUnspecified {
			rationale = "chronic kidney disease without a documented stage"
		}
		codes = append(codes, emit(ctx, stageCodes[stage], Renal, rationale,
			"I.C.14.a", vocab.AttrCKDStage, vocab.AttrESRD, vocab.AttrCKD))
	}

	if ctx.Usable(model.FamilyAKI) {
		codes = append(codes, emit(ctx, "N17.9", Renal, "acute kidney injury", "", vocab.AttrAKI))
	}

	if ctx.Usable(model.FamilyDialysis) {
		codes = append(codes, emit(ctx, "Z99.2", Renal,
			fmt.Sprintf("dependence on renal dialysis (%s)", ctx.RenalStatus.Dialysis),
			"I.C.14.a.2", vocab.AttrDialysis, vocab.AttrESRD))
	}

	if ctx.Usable(model.FamilyTransplant) {
		codes = append(codes, emit(ctx, "Z94.0", Renal, "kidney transplant status", "I.C.14.a.2", vocab.AttrTransplant))
	}

	return codes
}
