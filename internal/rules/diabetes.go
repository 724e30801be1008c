package rules

import (
	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// complicationCodes are listed in output order.
var complicationCodes = []struct {
	comp   model.DMComplication
	suffix string
	text   string
}{
	{model.DMCompCKD, ".22", "diabetic chronic kidney disease"},
	{model.DMCompNeuropathy, ".40", "diabetic neuropathy"},
	{model.DMCompPolyneuropathy, ".42", "diabetic polyneuropathy"},
	{model.DMCompGastroparesis, ".43", "diabetic autonomic neuropathy (gastroparesis)"},
	{model.DMCompRetinopathy, ".319", "diabetic retinopathy"},
	{model.DMCompAngiopathy, ".51", "diabetic peripheral angiopathy"},
	{model.DMCompFootUlcer, ".621", "diabetic foot ulcer"},
	{model.DMCompHyperglycemia, ".65", "hyperglycemia"},
	{model.DMCompHypoglycemia, ".649", "hypoglycemia"},
}

// deriveDiabetes codes one E10/E11 code per documented complication, or the
// uncomplicated code. An undocumented type defaults to type 2.
func deriveDiabetes(ctx model.Context, _ []model.Code) []model.Code {
	if !ctx.Usable(model.FamilyDiabetes) {
		return nil
	}

	d := ctx.Diabetes
	category, typeText := "E11", "type 2"
	if d.Type == model.DMType1 {
		category, typeText = "E10", "type 1"
	}
	defaulted := ""
	if d.Type == model.DMUnspecified {
		defaulted = " (type not documented, defaults to type 2)"
	}

	var codes []model.Code
	for _, c := range complicationCodes {
		if !d.Has(c.comp) {
			continue
		}
		codes = append(codes, emit(ctx, category+c.suffix, Diabetes,
			typeText+" diabetes with "+c.text+defaulted,
			"I.C.4.a", vocab.AttrDMComplication, vocab.AttrDiabetes))
	}
	if len(codes) == 0 {
		codes = append(codes, emit(ctx, category+".9", Diabetes,
			typeText+" diabetes without documented complications"+defaulted,
			"I.C.4.a", vocab.AttrDiabetes, vocab.AttrDiabetesType))
	}

	// insulin is inherent to type 1
	if m := ctx.Medications; m != nil && d.Type != model.DMType1 {
		if m.Insulin {
			codes = append(codes, emit(ctx, "Z79.4", Diabetes,
				"long-term insulin use in "+typeText+" diabetes",
				"I.C.4.a.3", vocab.AttrInsulin))
		}
		if m.OralAgent {
			codes = append(codes, emit(ctx, "Z79.84", Diabetes,
				"long-term oral hypoglycemic use",
				"I.C.4.a.3", vocab.AttrOralAgent))
		}
	}

	return codes
}
