package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

var ulcerSiteDigit = map[model.UlcerSite]byte{
	model.UlcerSiteCalf:  '2',
	model.UlcerSiteAnkle: '3',
	model.UlcerSiteHeel:  '4',
	model.UlcerSiteFoot:  '5',
}

var ulcerDepthDigit = map[model.Depth]byte{
	model.DepthSkin:   '1',
	model.DepthFat:    '2',
	model.DepthMuscle: '3',
	model.DepthBone:   '4',
}

// pressure ulcer subcategories by site; sacral has no laterality
var pressureSiteCode = map[model.PressureSite]string{
	model.PressureSiteHip:     "L89.2",
	model.PressureSiteButtock: "L89.3",
	model.PressureSiteHeel:    "L89.6",
}

var pressureStageDigit = map[model.PressureStage]byte{
	model.PressureStageUnstageable: '0',
	model.PressureStage1:           '1',
	model.PressureStage2:           '2',
	model.PressureStage3:           '3',
	model.PressureStage4:           '4',
	model.PressureStageUnspecified: '9',
}

// the unspecified-site subcategory numbers its stages differently
var unspecifiedSiteStageDigit = map[model.PressureStage]byte{
	model.PressureStageUnspecified: '0',
	model.PressureStage1:           '1',
	model.PressureStage2:           '2',
	model.PressureStage3:           '3',
	model.PressureStage4:           '4',
	model.PressureStageUnstageable: '5',
}

// deriveWounds codes a non-pressure foot ulcer only when both site and depth
// were documented; nothing is guessed. Pressure ulcers code by site and
// stage with the unspecified subcategories where detail is missing.
func deriveWounds(ctx model.Context, _ []model.Code) []model.Code {
	var codes []model.Code

	if ctx.Usable(model.FamilyFootUlcer) && ctx.FootUlcer.Complete() {
		u := ctx.FootUlcer
		site, siteOK := ulcerSiteDigit[u.Site]
		depth, depthOK := ulcerDepthDigit[u.Depth]
		if siteOK && depthOK {
			id := fmt.Sprintf("L97.%c%c%c", site, sideDigit(u.Laterality, '0'), depth)
			codes = append(codes, emit(ctx, id, Wounds,
				fmt.Sprintf("non-pressure chronic ulcer at documented site %s and depth %s", u.Site, u.Depth),
				"I.C.12.b", vocab.AttrUlcerSite, vocab.AttrUlcerDepth, vocab.AttrUlcerLaterality))
		}
	}

	if ctx.Usable(model.FamilyPressureUlcer) {
		p := ctx.PressureUlcer
		var id string
		switch {
		case p.Site == model.PressureSiteSacral:
			id = fmt.Sprintf("L89.15%c", pressureStageDigit[p.Stage])
		case pressureSiteCode[p.Site] != "":
			id = fmt.Sprintf("%s%c%c", pressureSiteCode[p.Site], sideDigit(p.Laterality, '0'), pressureStageDigit[p.Stage])
		default:
			id = fmt.Sprintf("L89.9%c", unspecifiedSiteStageDigit[p.Stage])
		}
		stage := string(p.Stage)
		if stage == "" {
			stage = "unspecified"
		}
		codes = append(codes, emit(ctx, id, Wounds,
			fmt.Sprintf("pressure ulcer, site %q, stage %s", p.Site, stage),
			"I.C.12.a", vocab.AttrPressureUlcer, vocab.AttrPressureSite, vocab.AttrPressureStage))
	}

	return codes
}
