package extract

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/model"
)

func newTestExtractor() *Extractor {
	return NewExtractor(model.DefaultConfig().Coding, zerolog.Nop())
}

func TestExtract_StructuredFields(t *testing.T) {
	ctx, warnings := newTestExtractor().Extract("Hypertension: Yes\nHeart Failure: Systolic/Acute\nCKD Stage: 4")

	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if ctx.Hypertension == nil {
		t.Fatal("Expected hypertension")
	}
	if ctx.HeartFailure == nil {
		t.Fatal("Expected heart failure")
	}
	if ctx.HeartFailure.Type != model.HFSystolic {
		t.Errorf("Expected systolic, got %q", ctx.HeartFailure.Type)
	}
	if ctx.HeartFailure.Acuity != model.AcuityAcute {
		t.Errorf("Expected acute, got %q", ctx.HeartFailure.Acuity)
	}
	if ctx.CKD == nil || ctx.CKD.Stage != model.CKDStage4 {
		t.Errorf("Expected CKD stage 4, got %+v", ctx.CKD)
	}
	if len(ctx.Facts) != 3 {
		t.Errorf("Expected 3 facts, got %d", len(ctx.Facts))
	}
}

func TestExtract_SepsisFields(t *testing.T) {
	ctx, _ := newTestExtractor().Extract("Sepsis: Yes\nSeptic Shock: Yes\nOrganism: E. coli\nInfection Site: Urinary tract")

	inf := ctx.Infection
	if inf == nil {
		t.Fatal("Expected infection")
	}
	if !inf.Sepsis || !inf.Shock {
		t.Errorf("Expected sepsis with shock, got %+v", inf)
	}
	if inf.Organism != model.OrganismEColi {
		t.Errorf("Expected e. coli, got %q", inf.Organism)
	}
	if inf.Site != model.SiteUrinary {
		t.Errorf("Expected urinary source, got %q", inf.Site)
	}
}

func TestExtract_Narrative(t *testing.T) {
	text := "72 yo female with type 2 diabetes mellitus with diabetic polyneuropathy, on insulin. No hypertension. CKD stage 3b."
	ctx, _ := newTestExtractor().Extract(text)

	if ctx.Diabetes == nil {
		t.Fatal("Expected diabetes")
	}
	if ctx.Diabetes.Type != model.DMType2 {
		t.Errorf("Expected type 2, got %q", ctx.Diabetes.Type)
	}
	if !ctx.Diabetes.Has(model.DMCompPolyneuropathy) {
		t.Errorf("Expected polyneuropathy, got %v", ctx.Diabetes.Complications)
	}
	if ctx.Diabetes.Has(model.DMCompNeuropathy) {
		t.Error("Expected polyneuropathy to absorb plain neuropathy")
	}
	if !ctx.Diabetes.Has(model.DMCompCKD) {
		t.Error("Expected diabetes with CKD to sync the CKD complication")
	}
	if ctx.Medications == nil || !ctx.Medications.Insulin {
		t.Error("Expected insulin use")
	}
	if ctx.Hypertension != nil {
		t.Error("Expected negated hypertension to stay undocumented")
	}
	if !ctx.IsDenied(model.FamilyHypertension) {
		t.Error("Expected hypertension denial")
	}
	if ctx.CKD == nil || ctx.CKD.Stage != model.CKDStage3b {
		t.Errorf("Expected CKD stage 3b, got %+v", ctx.CKD)
	}
	if ctx.Patient == nil || ctx.Patient.Sex != model.SexFemale {
		t.Errorf("Expected female patient, got %+v", ctx.Patient)
	}
}

func TestExtract_FieldAndNarrativeAgree(t *testing.T) {
	ctx, _ := newTestExtractor().Extract("Hypertension: Yes\nAssessment: hypertension, stable")

	if ctx.Hypertension == nil {
		t.Fatal("Expected hypertension")
	}
	if ctx.IsDenied(model.FamilyHypertension) {
		t.Error("Expected no denial")
	}
}

func TestExtract_Conflict(t *testing.T) {
	ctx, _ := newTestExtractor().Extract("Hypertension: Yes\nPatient denies hypertension.")

	if !ctx.Conflicted(model.FamilyHypertension) {
		t.Error("Expected hypertension to be both asserted and denied")
	}
}

func TestExtract_NegativeFieldValue(t *testing.T) {
	ctx, warnings := newTestExtractor().Extract("Hypertension: No\nDiabetes: denies")

	if ctx.Hypertension != nil || ctx.Diabetes != nil {
		t.Error("Expected negative values to materialize nothing")
	}
	if !ctx.IsDenied(model.FamilyHypertension) || !ctx.IsDenied(model.FamilyDiabetes) {
		t.Errorf("Expected both families denied, got %v", ctx.Denied)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestExtract_ExcludedPhrase(t *testing.T) {
	ctx, _ := newTestExtractor().Extract("History of pulmonary hypertension and gestational diabetes in 2019.")

	if ctx.Hypertension != nil {
		t.Error("Expected pulmonary hypertension not to read as hypertension")
	}
	if ctx.Diabetes != nil {
		t.Error("Expected gestational diabetes not to read as diabetes mellitus")
	}
}

func TestExtract_FootUlcerDetail(t *testing.T) {
	tests := []struct {
		desc     string
		text     string
		site     model.UlcerSite
		side     model.Laterality
		depth    model.Depth
		complete bool
	}{
		{
			desc:     "site, side and depth",
			text:     "Foot ulcer of the left heel, muscle involvement but no bone.",
			site:     model.UlcerSiteHeel,
			side:     model.LateralityLeft,
			depth:    model.DepthMuscle,
			complete: true,
		},
		{
			desc: "nothing beyond the ulcer",
			text: "Foot ulcer noted.",
		},
		{
			desc:     "fields",
			text:     "Foot Ulcer: Yes\nUlcer Site: Right heel\nUlcer Depth: Fat layer exposed",
			site:     model.UlcerSiteHeel,
			side:     model.LateralityRight,
			depth:    model.DepthFat,
			complete: true,
		},
		{
			desc:     "bare site and depth keys",
			text:     "Foot ulcer: yes\nSite: left heel\nDepth: bone",
			site:     model.UlcerSiteHeel,
			side:     model.LateralityLeft,
			depth:    model.DepthBone,
			complete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ctx, _ := newTestExtractor().Extract(tt.text)
			u := ctx.FootUlcer
			if u == nil {
				t.Fatal("Expected a foot ulcer")
			}
			if u.Site != tt.site || u.Laterality != tt.side || u.Depth != tt.depth {
				t.Errorf("Expected %s/%s/%s, got %s/%s/%s", tt.site, tt.side, tt.depth, u.Site, u.Laterality, u.Depth)
			}
			if u.Complete() != tt.complete {
				t.Errorf("Expected complete=%v", tt.complete)
			}
		})
	}
}

func TestExtract_BareWoundKeys(t *testing.T) {
	ctx, warnings := newTestExtractor().Extract("Pressure ulcer: yes\nLocation: sacrum\nDepth: stage 3")
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if ctx.FootUlcer != nil {
		t.Errorf("Expected no foot ulcer, got %+v", ctx.FootUlcer)
	}
	p := ctx.PressureUlcer
	if p == nil || p.Site != model.PressureSiteSacral || p.Stage != model.PressureStage3 {
		t.Errorf("Expected a stage 3 sacral pressure ulcer, got %+v", p)
	}

	ctx, warnings = newTestExtractor().Extract("Site: left heel")
	if ctx.FootUlcer != nil || ctx.PressureUlcer != nil {
		t.Error("Expected a bare site with no ulcer above it to materialize nothing")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "no ulcer documented") {
		t.Errorf("Expected a warning about the missing ulcer, got %v", warnings)
	}
}

func TestExtract_ProseBeforeColon(t *testing.T) {
	tests := []struct {
		desc  string
		text  string
		stage model.CKDStage
	}{
		{"sentence before a field", "Ruled out cardiac etiology. Hypertension: Yes\nCKD Stage: 4", model.CKDStage4},
		{"prose key", "Seen in clinic today: hypertension and CKD stage 4.", model.CKDStage4},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ctx, _ := newTestExtractor().Extract(tt.text)
			if ctx.Hypertension == nil {
				t.Error("Expected hypertension")
			}
			if ctx.IsDenied(model.FamilyHypertension) {
				t.Error("Expected no hypertension denial")
			}
			if ctx.CKD == nil || ctx.CKD.Stage != tt.stage {
				t.Errorf("Expected CKD stage %s, got %+v", tt.stage, ctx.CKD)
			}
		})
	}
}

func TestExtract_UnknownKeyReadAsNarrative(t *testing.T) {
	ctx, warnings := newTestExtractor().Extract("Seen in clinic today: hypertension and CKD stage 4.")
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "unrecognized field") {
		t.Errorf("Expected one unrecognized field warning, got %v", warnings)
	}
	if len(ctx.Facts) == 0 || ctx.Facts[0].Source != model.SourceNarrative {
		t.Errorf("Expected narrative facts, got %+v", ctx.Facts)
	}
}

func TestExtract_FamilyHistoryNotCoded(t *testing.T) {
	ctx, warnings := newTestExtractor().Extract("Family history: diabetes, hypertension")
	if ctx.Diabetes != nil || ctx.Hypertension != nil {
		t.Error("Expected family history to materialize nothing")
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestExtract_NegatedList(t *testing.T) {
	tests := []struct {
		desc   string
		text   string
		family model.Family
	}{
		{"list ending in or", "Patient denies chest pain, shortness of breath, or hypertension.", model.FamilyHypertension},
		{"six item list", "Denies fever, chills, cough, nausea, vomiting or diabetes.", model.FamilyDiabetes},
		{"ros list", "ROS negative for fever, chills, headache, cough, dysuria, or sepsis.", model.FamilySepsis},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ctx, _ := newTestExtractor().Extract(tt.text)
			if ctx.Asserted(tt.family) {
				t.Errorf("Expected %s not asserted", tt.family)
			}
			if !ctx.IsDenied(tt.family) {
				t.Errorf("Expected %s denied, got %v", tt.family, ctx.Denied)
			}
		})
	}
}

func TestExtract_HedgedFieldValues(t *testing.T) {
	ctx, warnings := newTestExtractor().Extract("Sepsis: unlikely\nCKD: unlikely\nPneumonia: possible")

	if ctx.Infection != nil || ctx.CKD != nil || ctx.Pneumonia != nil {
		t.Error("Expected hedged values to materialize nothing")
	}
	if len(ctx.Denied) != 0 {
		t.Errorf("Expected hedged values not to deny, got %v", ctx.Denied)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestExtract_LadderKeepsMostSpecific(t *testing.T) {
	ctx, _ := newTestExtractor().Extract("CKD Stage: 3b\nDiagnoses: CKD stage 3, hypertension")

	if ctx.CKD == nil || ctx.CKD.Stage != model.CKDStage3b {
		t.Errorf("Expected stage 3b to survive a later stage 3 mention, got %+v", ctx.CKD)
	}
}

func TestExtract_AdmissionReason(t *testing.T) {
	text := "ESRD on hemodialysis, hypertension and chronic diastolic heart failure. Admitted for routine dialysis."
	ctx, _ := newTestExtractor().Extract(text)

	if ctx.Encounter == nil || !ctx.Encounter.HasReason(model.ReasonDialysis, "") {
		t.Fatalf("Expected a dialysis reason, got %+v", ctx.Encounter)
	}
	if ctx.RenalStatus == nil || ctx.RenalStatus.Dialysis != model.DialysisHemo {
		t.Errorf("Expected hemodialysis, got %+v", ctx.RenalStatus)
	}
	if ctx.CKD == nil || ctx.CKD.Stage != model.CKDStageESRD {
		t.Errorf("Expected ESRD, got %+v", ctx.CKD)
	}
	if ctx.HeartFailure == nil || ctx.HeartFailure.Type != model.HFDiastolic || ctx.HeartFailure.Acuity != model.AcuityChronic {
		t.Errorf("Expected chronic diastolic heart failure, got %+v", ctx.HeartFailure)
	}
}

func TestExtract_Warnings(t *testing.T) {
	tests := []struct {
		desc string
		text string
		want string
	}{
		{"unknown field", "Allergies: NKDA", "unrecognized field"},
		{"unreadable value", "CKD Stage: moderate", "unrecognized value"},
		{"numeric presence value", "Hypertension: 0", "unrecognized value"},
		{"pointer presence value", "Hypertension: see below", "unrecognized value"},
		{"pointer sepsis value", "Sepsis: see below", "unrecognized value"},
		{"egfr is advisory", "eGFR: 25", "eGFR documented"},
		{"urosepsis is advisory", "Urosepsis noted on admission.", "urosepsis has no"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ctx, warnings := newTestExtractor().Extract(tt.text)
			if len(warnings) != 1 {
				t.Fatalf("Expected 1 warning, got %v", warnings)
			}
			if warnings[0].Kind != model.WarningParse {
				t.Errorf("Expected parse warning, got %s", warnings[0].Kind)
			}
			if !strings.Contains(warnings[0].Message, tt.want) {
				t.Errorf("Expected message containing %q, got %q", tt.want, warnings[0].Message)
			}
			if warnings[0].Line != 1 {
				t.Errorf("Expected line 1, got %d", warnings[0].Line)
			}
			if ctx.CKD != nil || ctx.Infection != nil {
				t.Error("Expected nothing materialized")
			}
		})
	}
}

func TestExtract_HTMLInput(t *testing.T) {
	ctx, _ := newTestExtractor().Extract("<html><body><p>Hypertension: Yes</p><p>Diabetes: Type 1</p></body></html>")

	if ctx.Hypertension == nil {
		t.Error("Expected hypertension from HTML field")
	}
	if ctx.Diabetes == nil || ctx.Diabetes.Type != model.DMType1 {
		t.Errorf("Expected type 1 diabetes, got %+v", ctx.Diabetes)
	}
}

func TestExtract_InputBounds(t *testing.T) {
	cfg := model.DefaultConfig().Coding
	cfg.MaxLines = 2
	e := NewExtractor(cfg, zerolog.Nop())

	ctx, warnings := e.Extract("Hypertension: Yes\nAsthma: Yes\nCOPD: Yes")

	if ctx.COPD != nil {
		t.Error("Expected the line past the bound to be ignored")
	}
	if len(warnings) != 1 || warnings[0].Kind != model.WarningInput {
		t.Errorf("Expected one input warning, got %v", warnings)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Sepsis due to E. coli pneumonia. Hx of breast cancer. Right femoral neck fracture after a fall, initial encounter."
	e := newTestExtractor()

	first, _ := e.Extract(text)
	for i := 0; i < 5; i++ {
		again, _ := e.Extract(text)
		if len(again.Facts) != len(first.Facts) {
			t.Fatalf("Expected %d facts, got %d", len(first.Facts), len(again.Facts))
		}
		for j := range first.Facts {
			if again.Facts[j] != first.Facts[j] {
				t.Errorf("Expected fact %d to be %v, got %v", j, first.Facts[j], again.Facts[j])
			}
		}
	}
}
