package extract

import (
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// synchronize copies a fact into every other slot that denotes the same
// real-world fact. It only fills unset slots and never overwrites a value
// the document stated explicitly. This is the only place such
// cross-population happens.
func synchronize(ctx model.Context) model.Context {
	fill := func(c model.Context, attr model.Attr, val string) model.Context {
		return c.AddFact(model.Fact{Attr: attr, Value: val, Source: model.SourceSync})
	}

	// infection organism -> pneumonia organism
	if ctx.Infection != nil && ctx.Infection.Organism != model.OrganismUnspecified &&
		ctx.Pneumonia != nil && ctx.Pneumonia.Organism == model.OrganismUnspecified {
		p := ctx.Pneumonia.Copy()
		p.Organism = ctx.Infection.Organism
		ctx.Pneumonia = &p
		ctx = fill(ctx, vocab.AttrPneumoniaOrg, string(p.Organism))
	}

	// pneumonia organism -> sepsis organism when the lung is the source
	if ctx.Pneumonia != nil && ctx.Pneumonia.Organism != model.OrganismUnspecified &&
		ctx.Infection != nil && ctx.Infection.Sepsis && ctx.Infection.Organism == model.OrganismUnspecified &&
		(ctx.Infection.Site == model.SiteUnspecified || ctx.Infection.Site == model.SiteLung) {
		inf := ctx.Infection.Copy()
		inf.Organism = ctx.Pneumonia.Organism
		ctx.Infection = &inf
		ctx = fill(ctx, vocab.AttrOrganism, string(inf.Organism))
	}

	// sepsis with pneumonia -> lung source
	if ctx.Infection != nil && ctx.Infection.Sepsis && ctx.Infection.Site == model.SiteUnspecified && ctx.Pneumonia != nil {
		inf := ctx.Infection.Copy()
		inf.Site = model.SiteLung
		ctx.Infection = &inf
		ctx = fill(ctx, vocab.AttrInfectionSite, string(inf.Site))
	}

	// diabetes with CKD -> diabetic CKD
	if ctx.Diabetes != nil && ctx.CKD != nil && !ctx.Diabetes.Has(model.DMCompCKD) {
		d := addComplications(ctx.Diabetes.Copy(), model.DMCompCKD)
		ctx.Diabetes = &d
		ctx = fill(ctx, vocab.AttrDMComplication, string(model.DMCompCKD))
	}

	// diabetes with foot ulcer <-> diabetic foot ulcer
	if ctx.Diabetes != nil && ctx.FootUlcer != nil && !ctx.Diabetes.Has(model.DMCompFootUlcer) {
		d := addComplications(ctx.Diabetes.Copy(), model.DMCompFootUlcer)
		ctx.Diabetes = &d
		ctx = fill(ctx, vocab.AttrDMComplication, string(model.DMCompFootUlcer))
	}
	if ctx.Diabetes.Has(model.DMCompFootUlcer) && ctx.FootUlcer == nil {
		ctx.FootUlcer = &model.FootUlcer{}
		ctx = fill(ctx, vocab.AttrFootUlcer, "yes")
	}

	// COPD with pneumonia -> lower respiratory infection
	if ctx.COPD != nil && ctx.Pneumonia != nil && !ctx.COPD.LowerRespInfection {
		c := ctx.COPD.Copy()
		c.LowerRespInfection = true
		ctx.COPD = &c
		ctx = fill(ctx, "copd.lower_respiratory_infection", "yes")
	}

	if ctx.Pregnancy != nil {
		p := ctx.Pregnancy.Copy()
		changed := false

		// weeks of gestation -> trimester
		if p.Weeks > 0 && p.Trimester == model.TrimesterUnspecified {
			p.Trimester = vocab.TrimesterForWeeks(p.Weeks)
			ctx = fill(ctx, vocab.AttrTrimester, string(p.Trimester))
			changed = true
		}

		// unspecified gestational diabetes -> control by medication
		if p.GDM == model.GDMUnspecified && ctx.Medications != nil {
			switch {
			case ctx.Medications.Insulin:
				p.GDM = model.GDMInsulin
			case ctx.Medications.OralAgent:
				p.GDM = model.GDMOral
			}
			if p.GDM != model.GDMUnspecified {
				ctx = fill(ctx, vocab.AttrGDM, string(p.GDM))
				changed = true
			}
		}

		if changed {
			ctx.Pregnancy = &p
		}
	}

	return ctx
}
