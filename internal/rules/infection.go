package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// deriveInfection codes sepsis by organism followed by its localized source.
// A localized infection without sepsis gets its site code and, when the
// organism is known, the B95/B96 causal organism code. The lung source is
// left to the respiratory module. Severe sepsis and shock codes are added by
// the companion pass.
func deriveInfection(ctx model.Context, _ []model.Code) []model.Code {
	if !ctx.Usable(model.FamilyInfection) && !ctx.Usable(model.FamilySepsis) {
		return nil
	}
	inf := ctx.Infection
	var codes []model.Code

	if ctx.Usable(model.FamilySepsis) {
		if id, ok := vocab.SepsisCodes[inf.Organism]; ok {
			codes = append(codes, emit(ctx, id, Infection,
				fmt.Sprintf("sepsis due to documented organism %s", inf.Organism),
				"I.C.1.d.1", vocab.AttrSepsis, vocab.AttrOrganism))
		} else {
			codes = append(codes, emit(ctx, vocab.SepsisUnspecified, Infection,
				"sepsis without a documented causal organism",
				"I.C.1.d.1", vocab.AttrSepsis))
		}

		if id, ok := vocab.SourceCodes[inf.Site]; ok && !ctx.IsDenied(model.FamilyInfection) {
			codes = append(codes, emit(ctx, id, Infection,
				fmt.Sprintf("localized %s infection as the source of sepsis", inf.Site),
				"I.C.1.d.4", vocab.AttrInfectionSite))
		}
		return codes
	}

	id, ok := vocab.SourceCodes[inf.Site]
	if !ok {
		return nil
	}
	codes = append(codes, emit(ctx, id, Infection,
		fmt.Sprintf("localized %s infection without sepsis", inf.Site),
		"", vocab.AttrInfectionSite, vocab.AttrUTI, vocab.AttrCellulitis, vocab.AttrBacteremia, vocab.AttrPeritonitis))

	if organism, ok := vocab.CausalOrganismCodes[inf.Organism]; ok {
		codes = append(codes, emit(ctx, organism, Infection,
			fmt.Sprintf("%s identified as the causal organism of the %s infection", inf.Organism, inf.Site),
			"I.C.1.b", vocab.AttrOrganism))
	}
	return codes
}
