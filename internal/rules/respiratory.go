package rules

import (
	"fmt"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

var asthmaCategory = map[model.AsthmaSeverity]string{
	model.AsthmaIntermittent: "J45.2",
	model.AsthmaMild:         "J45.3",
	model.AsthmaModerate:     "J45.4",
	model.AsthmaSevere:       "J45.5",
}

var respFailureCategory = map[model.Acuity]string{
	model.AcuityUnspecified:    "J96.9",
	model.AcuityAcute:          "J96.0",
	model.AcuityChronic:        "J96.1",
	model.AcuityAcuteOnChronic: "J96.2",
}

var gasDigit = map[model.GasExchange]string{
	model.GasUnspecified: "0",
	model.GasHypoxia:     "1",
	model.GasHypercapnia: "2",
}

func deriveRespiratory(ctx model.Context, _ []model.Code) []model.Code {
	var codes []model.Code

	if ctx.Usable(model.FamilyPneumonia) {
		p := ctx.Pneumonia
		if p.Aspiration {
			codes = append(codes, emit(ctx, "J69.0", Respiratory,
				"aspiration pneumonia", "", vocab.AttrAspiration, vocab.AttrPneumonia))
		}
		if id, ok := vocab.PneumoniaCodes[p.Organism]; ok {
			codes = append(codes, emit(ctx, id, Respiratory,
				fmt.Sprintf("pneumonia due to documented organism %s", p.Organism),
				"I.C.10.d", vocab.AttrPneumoniaOrg, vocab.AttrOrganism, vocab.AttrPneumonia))
		} else if !p.Aspiration {
			codes = append(codes, emit(ctx, vocab.PneumoniaUnspecified, Respiratory,
				"pneumonia without a documented organism", "", vocab.AttrPneumonia))
		}
	}

	if ctx.Usable(model.FamilyCOPD) {
		c := ctx.COPD
		if c.LowerRespInfection {
			codes = append(codes, emit(ctx, "J44.0", Respiratory,
				"COPD with acute lower respiratory infection; the infection is coded as well",
				"I.C.10.a.1", vocab.AttrCOPD, vocab.AttrPneumonia))
		}
		if c.Exacerbation {
			codes = append(codes, emit(ctx, "J44.1", Respiratory,
				"COPD with acute exacerbation", "I.C.10.a.1", vocab.AttrCOPDExacerbate))
		}
		if !c.LowerRespInfection && !c.Exacerbation {
			codes = append(codes, emit(ctx, "J44.9", Respiratory, "COPD", "", vocab.AttrCOPD))
		}
	}

	if ctx.Usable(model.FamilyAsthma) {
		a := ctx.Asthma
		digit, complication := "0", "uncomplicated"
		switch {
		case a.StatusAsthmaticus:
			digit, complication = "2", "with status asthmaticus"
		case a.Exacerbation:
			digit, complication = "1", "with acute exacerbation"
		}

		var id string
		if category, ok := asthmaCategory[a.Severity]; ok {
			id = category + digit
		} else {
			id = map[string]string{"0": "J45.909", "1": "J45.901", "2": "J45.902"}[digit]
		}
		severity := string(a.Severity)
		if severity == "" {
			severity = "unspecified severity"
		}
		codes = append(codes, emit(ctx, id, Respiratory,
			fmt.Sprintf("asthma, %s, %s", severity, complication),
			"I.C.10", vocab.AttrAsthma, vocab.AttrAsthmaSeverity, vocab.AttrAsthmaExacerb, vocab.AttrStatusAsthma))
	}

	if ctx.Usable(model.FamilyRespFailure) {
		r := ctx.RespFailure
		codes = append(codes, emit(ctx, respFailureCategory[r.Acuity]+gasDigit[r.Gas], Respiratory,
			fmt.Sprintf("respiratory failure (acuity %q, gas exchange %q)", r.Acuity, r.Gas),
			"I.C.10.b", vocab.AttrRespFailure))
	}

	return codes
}
