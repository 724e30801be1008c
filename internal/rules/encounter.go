package rules

import (
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// deriveEncounter turns stated administrative reasons into their Z codes.
// Clinical reasons produce nothing here; the sequence pass reads them.
func deriveEncounter(ctx model.Context, _ []model.Code) []model.Code {
	if ctx.Encounter == nil {
		return nil
	}

	var codes []model.Code
	for _, r := range ctx.Encounter.Reasons {
		switch r.Kind {
		case model.ReasonDialysis:
			id, rationale := "Z49.31", "encounter for routine hemodialysis"
			if ctx.RenalStatus != nil && ctx.RenalStatus.Dialysis == model.DialysisPeritoneal {
				id, rationale = "Z49.32", "encounter for routine peritoneal dialysis"
			}
			codes = append(codes, emit(ctx, id, Encounter, rationale, "I.C.21.c.7", vocab.AttrAdmissionReason, vocab.AttrDialysis))
		case model.ReasonChemotherapy:
			codes = append(codes, emit(ctx, "Z51.11", Encounter,
				"encounter solely for antineoplastic chemotherapy", "I.C.2.e.2", vocab.AttrAdmissionReason))
		case model.ReasonRadiation:
			codes = append(codes, emit(ctx, "Z51.0", Encounter,
				"encounter solely for radiation therapy", "I.C.2.e.2", vocab.AttrAdmissionReason))
		case model.ReasonFollowUp:
			if ctx.Usable(model.FamilyNeoplasm) && ctx.Neoplasm.History {
				codes = append(codes, emit(ctx, "Z08", Encounter,
					"follow-up after completed treatment of a malignancy", "I.C.21.c.8", vocab.AttrAdmissionReason, vocab.AttrCancerHistory))
			} else {
				codes = append(codes, emit(ctx, "Z09", Encounter,
					"follow-up after completed treatment", "I.C.21.c.8", vocab.AttrAdmissionReason))
			}
		}
	}
	return model.Dedupe(codes)
}
