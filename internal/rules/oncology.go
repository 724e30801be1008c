package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

var primaryCodes = map[model.NeoplasmSite]string{
	model.NeoplasmColon:    "C18.9",
	model.NeoplasmProstate: "C61",
	model.NeoplasmPancreas: "C25.9",
}

var historyCodes = map[model.NeoplasmSite]string{
	model.NeoplasmBreast:   "Z85.3",
	model.NeoplasmLung:     "Z85.118",
	model.NeoplasmColon:    "Z85.038",
	model.NeoplasmProstate: "Z85.46",
	model.NeoplasmPancreas: "Z85.07",
}

var secondaryCodes = []struct {
	site model.NeoplasmSite
	code string
}{
	{model.NeoplasmBone, "C79.51"},
	{model.NeoplasmLiver, "C78.7"},
	{model.NeoplasmBrain, "C79.31"},
	{model.NeoplasmLung, "C78.00"},
}

// deriveOncology codes an active primary malignancy, or the personal history
// code once treatment is complete, followed by metastases and anemia in
// neoplastic disease. Breast cancer is withheld without a documented sex.
func deriveOncology(ctx model.Context, _ []model.Code) []model.Code {
	if !ctx.Usable(model.FamilyNeoplasm) {
		return nil
	}
	n := ctx.Neoplasm
	var codes []model.Code

	if n.History && len(n.Metastases) == 0 {
		if id, ok := historyCodes[n.Site]; ok {
			codes = append(codes, emit(ctx, id, Oncology,
				fmt.Sprintf("personal history of %s malignancy, no current treatment documented", n.Site),
				"I.C.2.d", vocab.AttrCancerHistory, vocab.AttrNeoplasm))
		}
		return codes
	}

	if id, ok := primaryCode(ctx); ok {
		codes = append(codes, emit(ctx, id, Oncology,
			fmt.Sprintf("active %s malignancy", n.Site),
			"I.C.2", vocab.AttrNeoplasm, vocab.AttrNeoplasmSite, vocab.AttrSex))
	}

	for _, s := range secondaryCodes {
		for _, m := range n.Metastases {
			if m == s.site {
				codes = append(codes, emit(ctx, s.code, Oncology,
					fmt.Sprintf("metastasis to %s", m),
					"I.C.2.b", vocab.AttrMetastasis))
				break
			}
		}
	}

	if n.Anemia {
		codes = append(codes, emit(ctx, "D63.0", Oncology,
			"anemia due to the malignancy; the neoplasm is sequenced first",
			"I.C.2.c.1", vocab.AttrNeoplasmAnemia))
	}

	return codes
}

func primaryCode(ctx model.Context) (string, bool) {
	n := ctx.Neoplasm
	switch n.Site {
	case model.NeoplasmBreast:
		if ctx.Patient == nil {
			return "", false
		}
		switch ctx.Patient.Sex {
		case model.SexFemale:
			return fmt.Sprintf("C50.91%c", sideDigit(n.Laterality, '9')), true
		case model.SexMale:
			return fmt.Sprintf("C50.92%c", sideDigit(n.Laterality, '9')), true
		}
		return "", false
	case model.NeoplasmLung:
		return fmt.Sprintf("C34.9%c", sideDigit(n.Laterality, '0')), true
	}
	id, ok := primaryCodes[n.Site]
	return id, ok
}
