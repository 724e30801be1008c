package extract

import (
	"testing"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

func plain(text string) value {
	return value{Text: text, Match: vocab.ContainsPhrase}
}

func fieldValue(text string) value {
	return value{Text: text, Match: vocab.ContainsPhrase, Field: true}
}

func TestHandlers_DoNotMutateInput(t *testing.T) {
	before := model.Context{Diabetes: &model.Diabetes{Complications: []model.DMComplication{model.DMCompNeuropathy}}}

	after, ok := setDMComplication(before, plain("diabetic polyneuropathy"))
	if !ok {
		t.Fatal("Expected complication to be accepted")
	}

	if len(before.Diabetes.Complications) != 1 || before.Diabetes.Complications[0] != model.DMCompNeuropathy {
		t.Errorf("Expected input context untouched, got %v", before.Diabetes.Complications)
	}
	if after.Diabetes.Has(model.DMCompNeuropathy) || !after.Diabetes.Has(model.DMCompPolyneuropathy) {
		t.Errorf("Expected polyneuropathy to replace neuropathy, got %v", after.Diabetes.Complications)
	}
}

func TestHandlers_Idempotent(t *testing.T) {
	tests := []struct {
		desc string
		attr model.Attr
		text string
	}{
		{"heart failure", vocab.AttrHeartFailure, "acute on chronic combined"},
		{"ckd stage", vocab.AttrCKDStage, "3a"},
		{"organism", vocab.AttrOrganism, "mrsa"},
		{"pressure ulcer", vocab.AttrPressureUlcer, "sacral pressure ulcer stage 4"},
		{"reason", vocab.AttrAdmissionReason, "dialysis"},
		{"metastasis", vocab.AttrMetastasis, "bone and liver"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			h := handlers[tt.attr]
			once, ok := h(model.Context{}, plain(tt.text))
			if !ok {
				t.Fatalf("Expected %q to be accepted", tt.text)
			}
			twice, _ := h(once, plain(tt.text))

			a, b := once, twice
			a.Facts, b.Facts = nil, nil
			if !contextEqual(a, b) {
				t.Errorf("Expected applying %q twice to be a no-op", tt.text)
			}
		})
	}
}

func TestHandlers_Merges(t *testing.T) {
	ctx, _ := setHFType(model.Context{}, plain("systolic heart failure"))
	ctx, _ = setHFType(ctx, plain("diastolic"))
	if ctx.HeartFailure.Type != model.HFCombined {
		t.Errorf("Expected combined, got %s", ctx.HeartFailure.Type)
	}

	ctx, _ = setHFAcuity(ctx, plain("acute"))
	ctx, _ = setHFAcuity(ctx, plain("chronic"))
	if ctx.HeartFailure.Acuity != model.AcuityAcuteOnChronic {
		t.Errorf("Expected acute on chronic, got %s", ctx.HeartFailure.Acuity)
	}

	ctx, _ = setPressureStage(ctx, plain("unstageable"))
	ctx, _ = setPressureStage(ctx, plain("stage 3"))
	ctx, _ = setPressureStage(ctx, plain("unstageable"))
	if ctx.PressureUlcer.Stage != model.PressureStage3 {
		t.Errorf("Expected a numeric stage to replace unstageable, got %s", ctx.PressureUlcer.Stage)
	}
}

func TestHandlers_RejectUnreadableDetail(t *testing.T) {
	tests := []struct {
		attr model.Attr
		v    value
	}{
		{vocab.AttrCKDStage, plain("moderate")},
		{vocab.AttrOrganism, plain("gram positive cocci")},
		{vocab.AttrUlcerDepth, plain("deep")},
		{vocab.AttrFractureEpisode, plain("tuesday")},
		{vocab.AttrGestationWeeks, plain("60 weeks")},
		{vocab.AttrFall, plain("motor vehicle collision")},
		{vocab.AttrSepsis, fieldValue("unlikely")},
		{vocab.AttrHypertension, fieldValue("0")},
		{vocab.AttrHypertension, fieldValue("see below")},
		{vocab.AttrCKD, fieldValue("unlikely")},
		{vocab.AttrCoronary, fieldValue("per cardiology")},
		{vocab.AttrDiabetes, fieldValue("follow up")},
		{vocab.AttrUTI, fieldValue("see culture")},
		{vocab.AttrPregnancy, fieldValue("g2p1")},
		{vocab.AttrInsulin, fieldValue("as directed")},
	}

	for _, tt := range tests {
		ctx, ok := handlers[tt.attr](model.Context{}, tt.v)
		if ok {
			t.Errorf("Expected %q to be rejected for %s", tt.v.Text, tt.attr)
		}
		if !ctx.Empty() {
			t.Errorf("Expected nothing materialized for %s from %q", tt.attr, tt.v.Text)
		}
	}
}

func TestHandlers_FieldValueAssertsFamily(t *testing.T) {
	tests := []struct {
		desc  string
		attr  model.Attr
		text  string
		check func(model.Context) bool
	}{
		{"affirmative", vocab.AttrHypertension, "yes", func(c model.Context) bool { return c.Hypertension != nil }},
		{"ckd stage as value", vocab.AttrCKD, "4", func(c model.Context) bool { return c.CKD != nil && c.CKD.Stage == model.CKDStage4 }},
		{"sepsis organism as value", vocab.AttrSepsis, "e. coli", func(c model.Context) bool {
			return c.Infection != nil && c.Infection.Sepsis && c.Infection.Organism == model.OrganismEColi
		}},
		{"diabetes type as value", vocab.AttrDiabetes, "type 2", func(c model.Context) bool { return c.Diabetes != nil && c.Diabetes.Type == model.DMType2 }},
		{"insulin dose as value", vocab.AttrInsulin, "20 units nightly", func(c model.Context) bool { return c.Medications != nil && c.Medications.Insulin }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ctx, ok := handlers[tt.attr](model.Context{}, fieldValue(tt.text))
			if !ok {
				t.Fatalf("Expected %q to be accepted for %s", tt.text, tt.attr)
			}
			if !tt.check(ctx) {
				t.Errorf("Expected %s materialized from %q", tt.attr, tt.text)
			}
		})
	}
}

func TestSetNeoplasm_EarliestPrimarySite(t *testing.T) {
	ctx, _ := setNeoplasm(model.Context{}, plain("colon cancer with lung metastases"))
	if ctx.Neoplasm.Site != model.NeoplasmColon {
		t.Errorf("Expected colon, got %s", ctx.Neoplasm.Site)
	}

	ctx, _ = setNeoplasm(model.Context{}, plain("history of left breast cancer"))
	if !ctx.Neoplasm.History || ctx.Neoplasm.Laterality != model.LateralityLeft {
		t.Errorf("Expected left breast history, got %+v", ctx.Neoplasm)
	}

	ctx, _ = setNeoplasm(ctx, plain("breast cancer on chemotherapy"))
	if ctx.Neoplasm.History {
		t.Error("Expected an active mention to clear history")
	}
}

func TestSynchronize(t *testing.T) {
	t.Run("fills unset slots", func(t *testing.T) {
		ctx := model.Context{
			Infection:   &model.Infection{Sepsis: true},
			Pneumonia:   &model.Pneumonia{Organism: model.OrganismKlebsiella},
			COPD:        &model.COPD{},
			Pregnancy:   &model.Pregnancy{Weeks: 30, GDM: model.GDMUnspecified},
			Medications: &model.Medications{Insulin: true},
		}
		got := synchronize(ctx)

		if got.Infection.Organism != model.OrganismKlebsiella {
			t.Errorf("Expected klebsiella sepsis, got %s", got.Infection.Organism)
		}
		if got.Infection.Site != model.SiteLung {
			t.Errorf("Expected lung source, got %s", got.Infection.Site)
		}
		if !got.COPD.LowerRespInfection {
			t.Error("Expected COPD with lower respiratory infection")
		}
		if got.Pregnancy.Trimester != model.TrimesterThird {
			t.Errorf("Expected third trimester, got %s", got.Pregnancy.Trimester)
		}
		if got.Pregnancy.GDM != model.GDMInsulin {
			t.Errorf("Expected insulin-controlled GDM, got %s", got.Pregnancy.GDM)
		}
		if ctx.Infection.Organism != model.OrganismUnspecified {
			t.Error("Expected the input context untouched")
		}
	})

	t.Run("never overwrites", func(t *testing.T) {
		ctx := model.Context{
			Infection: &model.Infection{Sepsis: true, Organism: model.OrganismEColi, Site: model.SiteUrinary},
			Pneumonia: &model.Pneumonia{Organism: model.OrganismKlebsiella},
			Pregnancy: &model.Pregnancy{Weeks: 30, Trimester: model.TrimesterSecond},
		}
		got := synchronize(ctx)

		if got.Pneumonia.Organism != model.OrganismKlebsiella {
			t.Errorf("Expected pneumonia organism kept, got %s", got.Pneumonia.Organism)
		}
		if got.Infection.Organism != model.OrganismEColi || got.Infection.Site != model.SiteUrinary {
			t.Errorf("Expected sepsis detail kept, got %+v", got.Infection)
		}
		if got.Pregnancy.Trimester != model.TrimesterSecond {
			t.Errorf("Expected stated trimester kept, got %s", got.Pregnancy.Trimester)
		}
	})

	t.Run("diabetic foot ulcer materializes the ulcer", func(t *testing.T) {
		ctx := model.Context{Diabetes: &model.Diabetes{Complications: []model.DMComplication{model.DMCompFootUlcer}}}
		got := synchronize(ctx)
		if got.FootUlcer == nil {
			t.Fatal("Expected a foot ulcer")
		}
		if got.FootUlcer.Complete() {
			t.Error("Expected no invented site or depth")
		}
	})
}

// contextEqual compares the leaves the handlers above touch.
func contextEqual(a, b model.Context) bool {
	switch {
	case (a.HeartFailure == nil) != (b.HeartFailure == nil),
		(a.CKD == nil) != (b.CKD == nil),
		(a.Infection == nil) != (b.Infection == nil),
		(a.PressureUlcer == nil) != (b.PressureUlcer == nil),
		(a.Encounter == nil) != (b.Encounter == nil),
		(a.Neoplasm == nil) != (b.Neoplasm == nil):
		return false
	}
	if a.HeartFailure != nil && *a.HeartFailure != *b.HeartFailure {
		return false
	}
	if a.CKD != nil && *a.CKD != *b.CKD {
		return false
	}
	if a.Infection != nil && *a.Infection != *b.Infection {
		return false
	}
	if a.PressureUlcer != nil && *a.PressureUlcer != *b.PressureUlcer {
		return false
	}
	if a.Encounter != nil && len(a.Encounter.Reasons) != len(b.Encounter.Reasons) {
		return false
	}
	if a.Neoplasm != nil && len(a.Neoplasm.Metastases) != len(b.Neoplasm.Metastases) {
		return false
	}
	return true
}
