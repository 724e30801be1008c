package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

var episodeChar = map[model.EncounterType]string{
	model.EncounterInitial:    "A",
	model.EncounterSubsequent: "D",
	model.EncounterSequela:    "S",
}

// deriveTrauma codes a fracture with its 7th character and, for a
// documented fall, W19 with the same 7th character. Without a documented
// encounter type the fracture is withheld rather than assumed initial.
func deriveTrauma(ctx model.Context, _ []model.Code) []model.Code {
	if !ctx.Usable(model.FamilyFracture) {
		return nil
	}
	f := ctx.Fracture
	seventh, ok := episodeChar[f.Encounter]
	if !ok {
		return nil
	}

	var id string
	switch f.Site {
	case model.FractureSiteFemoralNeck:
		id = fmt.Sprintf("S72.00%c%s", sideDigit(f.Laterality, '9'), seventh)
	case model.FractureSiteDistalRadius:
		id = fmt.Sprintf("S52.50%c%s", sideDigit(f.Laterality, '9'), seventh)
	case model.FractureSiteRib:
		id = fmt.Sprintf("S22.3%cX%s", sideDigit(f.Laterality, '9'), seventh)
	default:
		return nil
	}

	codes := []model.Code{emit(ctx, id, Trauma,
		fmt.Sprintf("%s fracture, %s encounter", f.Site, f.Encounter),
		"I.C.19.a", vocab.AttrFracture, vocab.AttrFractureSite, vocab.AttrFractureEpisode)}

	if ctx.Usable(model.FamilyFall) {
		codes = append(codes, emit(ctx, "W19.XXX"+seventh, Trauma,
			"fall as the external cause of the injury, same episode of care",
			"I.C.20", vocab.AttrFall))
	}
	return codes
}
