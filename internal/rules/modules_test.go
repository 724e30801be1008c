package rules

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/model"
)

func run(ctx model.Context) []string {
	return model.IDs(NewDefaultEngine(zerolog.Nop()).Run(ctx))
}

func TestHypertensionLadder(t *testing.T) {
	htn := &model.Hypertension{}
	hf := &model.HeartFailure{Type: model.HFSystolic, Acuity: model.AcuityAcute}

	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{"uncomplicated", model.Context{Hypertension: htn}, []string{"I10"}},
		{"heart failure", model.Context{Hypertension: htn, HeartFailure: hf}, []string{"I11.0", "I50.21"}},
		{"ckd stage 3b", model.Context{Hypertension: htn, CKD: &model.CKD{Stage: model.CKDStage3b}}, []string{"I12.9", "N18.32"}},
		{"ckd stage 5", model.Context{Hypertension: htn, CKD: &model.CKD{Stage: model.CKDStage5}}, []string{"I12.0", "N18.5"}},
		{
			"heart failure and ckd 4",
			model.Context{Hypertension: htn, HeartFailure: hf, CKD: &model.CKD{Stage: model.CKDStage4}},
			[]string{"I13.0", "I50.21", "N18.4"},
		},
		{
			"heart failure and esrd on dialysis",
			model.Context{
				Hypertension: htn,
				HeartFailure: &model.HeartFailure{Type: model.HFDiastolic, Acuity: model.AcuityChronic},
				CKD:          &model.CKD{Stage: model.CKDStageESRD},
				RenalStatus:  &model.RenalStatus{Dialysis: model.DialysisHemo},
			},
			[]string{"I13.2", "I50.32", "N18.6", "Z99.2"},
		},
		{
			"crisis follows",
			model.Context{Hypertension: &model.Hypertension{Crisis: model.CrisisEmergency}},
			[]string{"I10", "I16.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := run(tt.ctx); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConflictedFamilyYieldsNothing(t *testing.T) {
	ctx := model.Context{
		Hypertension: &model.Hypertension{},
		HeartFailure: &model.HeartFailure{Type: model.HFSystolic},
	}.Deny(model.FamilyHypertension)

	got := run(ctx)
	if !reflect.DeepEqual(got, []string{"I50.20"}) {
		t.Errorf("Expected only the heart failure code, got %v", got)
	}
}

func TestHeartFailureLookup(t *testing.T) {
	tests := []struct {
		typ    model.HFType
		acuity model.Acuity
		want   string
	}{
		{model.HFSystolic, model.AcuityAcute, "I50.21"},
		{model.HFSystolic, model.AcuityUnspecified, "I50.20"},
		{model.HFDiastolic, model.AcuityAcuteOnChronic, "I50.33"},
		{model.HFCombined, model.AcuityChronic, "I50.42"},
		{model.HFUnspecified, model.AcuityAcute, "I50.9"},
	}

	for _, tt := range tests {
		codes := deriveHeartFailure(model.Context{HeartFailure: &model.HeartFailure{Type: tt.typ, Acuity: tt.acuity}}, nil)
		if len(codes) != 1 || codes[0].ID != tt.want {
			t.Errorf("Expected %s for %s/%s, got %v", tt.want, tt.typ, tt.acuity, model.IDs(codes))
		}
		if codes[0].Label == "" {
			t.Errorf("Expected a label for %s", tt.want)
		}
	}
}

func TestDiabetes(t *testing.T) {
	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{
			"type defaults to 2",
			model.Context{Diabetes: &model.Diabetes{}},
			[]string{"E11.9"},
		},
		{
			"complications with insulin",
			model.Context{
				Diabetes:    &model.Diabetes{Type: model.DMType2, Complications: []model.DMComplication{model.DMCompPolyneuropathy, model.DMCompCKD}},
				CKD:         &model.CKD{Stage: model.CKDStage3a},
				Medications: &model.Medications{Insulin: true, OralAgent: true},
			},
			[]string{"N18.31", "E11.22", "E11.42", "Z79.4", "Z79.84"},
		},
		{
			"type 1 insulin is implied",
			model.Context{Diabetes: &model.Diabetes{Type: model.DMType1}, Medications: &model.Medications{Insulin: true}},
			[]string{"E10.9"},
		},
		{
			"medication alone asserts nothing",
			model.Context{Medications: &model.Medications{Insulin: true}},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := run(tt.ctx); !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestInfection(t *testing.T) {
	tests := []struct {
		desc string
		inf  model.Infection
		want []string
	}{
		{"organism sepsis with urinary source", model.Infection{Sepsis: true, Shock: true, Organism: model.OrganismEColi, Site: model.SiteUrinary}, []string{"A41.51", "N39.0"}},
		{"unspecified organism", model.Infection{Sepsis: true}, []string{"A41.9"}},
		{"lung source left to pneumonia", model.Infection{Sepsis: true, Site: model.SiteLung}, []string{"A41.9"}},
		{"local infection with organism", model.Infection{Organism: model.OrganismEColi, Site: model.SiteUrinary}, []string{"N39.0", "B96.20"}},
		{"organism alone", model.Infection{Organism: model.OrganismEColi}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			inf := tt.inf
			if got := model.IDs(deriveInfection(model.Context{Infection: &inf}, nil)); !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRespiratory(t *testing.T) {
	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{"pneumonia by organism", model.Context{Pneumonia: &model.Pneumonia{Organism: model.OrganismKlebsiella}}, []string{"J15.0"}},
		{"aspiration", model.Context{Pneumonia: &model.Pneumonia{Aspiration: true}}, []string{"J69.0"}},
		{"copd with infection and exacerbation", model.Context{COPD: &model.COPD{LowerRespInfection: true, Exacerbation: true}}, []string{"J44.0", "J44.1"}},
		{"copd", model.Context{COPD: &model.COPD{}}, []string{"J44.9"}},
		{"moderate asthma exacerbation", model.Context{Asthma: &model.Asthma{Severity: model.AsthmaModerate, Exacerbation: true}}, []string{"J45.41"}},
		{"status asthmaticus outranks exacerbation", model.Context{Asthma: &model.Asthma{Exacerbation: true, StatusAsthmaticus: true}}, []string{"J45.902"}},
		{"acute hypoxic respiratory failure", model.Context{RespFailure: &model.RespiratoryFailure{Acuity: model.AcuityAcute, Gas: model.GasHypoxia}}, []string{"J96.01"}},
		{"respiratory failure unspecified", model.Context{RespFailure: &model.RespiratoryFailure{}}, []string{"J96.90"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := model.IDs(deriveRespiratory(tt.ctx, nil)); !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWounds_NoInventedDetail(t *testing.T) {
	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{
			"site, side and depth",
			model.Context{FootUlcer: &model.FootUlcer{Site: model.UlcerSiteHeel, Laterality: model.LateralityLeft, Depth: model.DepthMuscle}},
			[]string{"L97.423"},
		},
		{
			"no side",
			model.Context{FootUlcer: &model.FootUlcer{Site: model.UlcerSiteAnkle, Depth: model.DepthFat}},
			[]string{"L97.302"},
		},
		{"no depth", model.Context{FootUlcer: &model.FootUlcer{Site: model.UlcerSiteHeel}}, nil},
		{"no site", model.Context{FootUlcer: &model.FootUlcer{Depth: model.DepthBone}}, nil},
		{
			"sacral pressure ulcer",
			model.Context{PressureUlcer: &model.PressureUlcer{Site: model.PressureSiteSacral, Stage: model.PressureStage4}},
			[]string{"L89.154"},
		},
		{
			"right hip unstageable",
			model.Context{PressureUlcer: &model.PressureUlcer{Site: model.PressureSiteHip, Laterality: model.LateralityRight, Stage: model.PressureStageUnstageable}},
			[]string{"L89.210"},
		},
		{"pressure ulcer without detail", model.Context{PressureUlcer: &model.PressureUlcer{}}, []string{"L89.90"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := model.IDs(deriveWounds(tt.ctx, nil))
			if !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTrauma(t *testing.T) {
	fall := &model.Fall{}
	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{
			"femoral neck after a fall",
			model.Context{Fracture: &model.Fracture{Site: model.FractureSiteFemoralNeck, Laterality: model.LateralityRight, Encounter: model.EncounterInitial}, Fall: fall},
			[]string{"S72.001A", "W19.XXXA"},
		},
		{
			"rib, subsequent",
			model.Context{Fracture: &model.Fracture{Site: model.FractureSiteRib, Laterality: model.LateralityLeft, Encounter: model.EncounterSubsequent}},
			[]string{"S22.32XD"},
		},
		{
			"no encounter type",
			model.Context{Fracture: &model.Fracture{Site: model.FractureSiteDistalRadius}, Fall: fall},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := model.IDs(deriveTrauma(tt.ctx, nil)); !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOncology(t *testing.T) {
	female := &model.Patient{Sex: model.SexFemale}
	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{
			"breast with metastases and anemia",
			model.Context{
				Neoplasm: &model.Neoplasm{Site: model.NeoplasmBreast, Laterality: model.LateralityLeft, Metastases: []model.NeoplasmSite{model.NeoplasmLiver, model.NeoplasmBone}, Anemia: true},
				Patient:  female,
			},
			[]string{"C50.912", "C79.51", "C78.7", "D63.0"},
		},
		{"breast without sex", model.Context{Neoplasm: &model.Neoplasm{Site: model.NeoplasmBreast}}, nil},
		{"history", model.Context{Neoplasm: &model.Neoplasm{Site: model.NeoplasmColon, History: true}}, []string{"Z85.038"}},
		{"lung unspecified side", model.Context{Neoplasm: &model.Neoplasm{Site: model.NeoplasmLung}}, []string{"C34.90"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := model.IDs(deriveOncology(tt.ctx, nil)); !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestObstetric(t *testing.T) {
	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{
			"severe pre-eclampsia third trimester",
			model.Context{Pregnancy: &model.Pregnancy{Preeclampsia: true, Severe: true, Trimester: model.TrimesterThird, Weeks: 34}},
			[]string{"O14.13", "Z3A.34"},
		},
		{
			"pre-existing hypertension with pre-eclampsia",
			model.Context{Pregnancy: &model.Pregnancy{Preeclampsia: true, Trimester: model.TrimesterSecond}, Hypertension: &model.Hypertension{}},
			[]string{"O11.2"},
		},
		{
			"gdm on insulin",
			model.Context{Pregnancy: &model.Pregnancy{GDM: model.GDMInsulin, Trimester: model.TrimesterSecond, Weeks: 26}},
			[]string{"O24.414", "Z3A.26"},
		},
		{"incidental", model.Context{Pregnancy: &model.Pregnancy{Weeks: 20}}, []string{"Z33.1"}},
		{
			"pregnant with unrelated condition",
			model.Context{Pregnancy: &model.Pregnancy{}, Asthma: &model.Asthma{}},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := model.IDs(deriveObstetric(tt.ctx, nil)); !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEncounter(t *testing.T) {
	reasons := func(kinds ...model.ReasonKind) *model.Encounter {
		e := &model.Encounter{}
		for _, k := range kinds {
			e.Reasons = append(e.Reasons, model.Reason{Kind: k})
		}
		return e
	}

	tests := []struct {
		desc string
		ctx  model.Context
		want []string
	}{
		{"dialysis, modality unknown", model.Context{Encounter: reasons(model.ReasonDialysis)}, []string{"Z49.31"}},
		{
			"peritoneal dialysis",
			model.Context{Encounter: reasons(model.ReasonDialysis), RenalStatus: &model.RenalStatus{Dialysis: model.DialysisPeritoneal}},
			[]string{"Z49.32"},
		},
		{
			"follow-up after cancer",
			model.Context{Encounter: reasons(model.ReasonFollowUp), Neoplasm: &model.Neoplasm{History: true}},
			[]string{"Z08"},
		},
		{"follow-up", model.Context{Encounter: reasons(model.ReasonFollowUp)}, []string{"Z09"}},
		{"clinical reason", model.Context{Encounter: &model.Encounter{Reasons: []model.Reason{{Kind: model.ReasonClinical, Family: model.FamilyHeartFailure}}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := model.IDs(deriveEncounter(tt.ctx, nil)); !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCodesCarryExplanations(t *testing.T) {
	ctx := model.Context{
		Hypertension: &model.Hypertension{},
		Facts:        []model.Fact{{Attr: "hypertension", Value: "yes", Line: 1, Source: model.SourceField, Text: "hypertension: yes"}},
	}

	codes := NewDefaultEngine(zerolog.Nop()).Run(ctx)
	if len(codes) != 1 {
		t.Fatalf("Expected 1 code, got %d", len(codes))
	}
	c := codes[0]
	if c.Rule != Hypertension || c.Guideline == "" || c.Rationale == "" || c.Label == "" {
		t.Errorf("Expected rule, guideline, rationale and label, got %+v", c)
	}
	if c.Trigger == "" {
		t.Error("Expected the triggering fact")
	}
	if c.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected high confidence, got %q", c.Confidence)
	}
}

// equalIDs treats nil and empty as equal.
func equalIDs(got, want []string) bool {
	if len(got) == 0 && len(want) == 0 {
		return true
	}
	return reflect.DeepEqual(got, want)
}

func TestDerive_SingleModule(t *testing.T) {
	ctx := model.Context{CKD: &model.CKD{Stage: model.CKDStage4}}

	if got := model.IDs(Derive(Renal, ctx)); !equalIDs(got, []string{"N18.4"}) {
		t.Errorf("Expected [N18.4], got %v", got)
	}
	if got := Derive("nope", ctx); got != nil {
		t.Errorf("Expected nil for an unknown module, got %v", model.IDs(got))
	}
}
