package validate

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ppiankov/dxcoder/internal/extract"
	"github.com/ppiankov/dxcoder/internal/model"
)

// coded builds candidate codes owned by one rule module.
func coded(rule string, ids ...string) []model.Code {
	codes := make([]model.Code, len(ids))
	for i, id := range ids {
		codes[i] = model.Code{ID: id, Rule: rule, Confidence: model.ConfidenceHigh}
	}
	return codes
}

func join(lists ...[]model.Code) []model.Code {
	var out []model.Code
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func hasWarning(r model.Record, kind model.WarningKind, fragment string) bool {
	for _, w := range r.Warnings {
		if w.Kind == kind && strings.Contains(w.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidator_ScenarioSepticShock(t *testing.T) {
	ctx := model.Context{
		Infection: &model.Infection{Sepsis: true, Shock: true, Organism: model.OrganismEColi, Site: model.SiteUrinary},
	}
	in := Input{
		Context: ctx,
		Text:    "sepsis: yes\nseptic shock: yes\norganism: e. coli\ninfection site: urinary tract",
		Match:   extract.NegationMatcher(),
	}

	got, record := NewValidator(zerolog.Nop()).Validate(coded("infection", "A41.51", "N39.0"), in)

	if ids := model.IDs(got); !equalIDs(ids, []string{"A41.51", "N39.0", "R65.21"}) {
		t.Errorf("Expected [A41.51 N39.0 R65.21], got %v", ids)
	}
	if len(record.Added) != 1 || record.Added[0].Pass != "companion" {
		t.Errorf("Expected one companion addition, got %+v", record.Added)
	}
	if got[2].Rule != "companion" {
		t.Errorf("Expected the shock code to be owned by the companion pass, got %q", got[2].Rule)
	}
}

func TestValidator_DoesNotMutateInput(t *testing.T) {
	codes := join(coded("hypertension", "I10", "I13.0"), coded("heart_failure", "I50.21"))
	before := model.IDs(codes)

	NewValidator(zerolog.Nop()).Validate(codes, Input{})

	if !equalIDs(model.IDs(codes), before) {
		t.Errorf("Expected input list %v to be unchanged, got %v", before, model.IDs(codes))
	}
}

func TestValidator_CustomPasses(t *testing.T) {
	got, record := NewValidator(zerolog.Nop(), Exclusion{}).Validate(coded("x", "I50.9", "I50.21"), Input{})

	if ids := model.IDs(got); !equalIDs(ids, []string{"I50.21"}) {
		t.Errorf("Expected [I50.21], got %v", ids)
	}
	if len(record.Warnings) != 0 {
		t.Errorf("Expected no warnings from the exclusion pass alone, got %v", record.Warnings)
	}
}

func TestExclusion(t *testing.T) {
	tests := []struct {
		desc  string
		codes []string
		want  []string
	}{
		{"combination removes essential hypertension", []string{"I10", "I13.0", "I50.21", "N18.4"}, []string{"I13.0", "I50.21", "N18.4"}},
		{"hypertensive CKD removes I10", []string{"I12.9", "I10", "N18.4"}, []string{"I12.9", "N18.4"}},
		{"hypertensive heart disease removes I10", []string{"I11.0", "I10", "I50.9"}, []string{"I11.0", "I50.9"}},
		{"I13.2 removes I13.0", []string{"I13.0", "I13.2"}, []string{"I13.2"}},
		{"specific heart failure removes unspecified", []string{"I50.9", "I50.21"}, []string{"I50.21"}},
		{"organism sepsis removes unspecified", []string{"A41.9", "A41.51"}, []string{"A41.51"}},
		{"diabetes complications coexist", []string{"E11.22", "E11.40", "E11.9"}, []string{"E11.22", "E11.40"}},
		{"ESRD removes stage 5", []string{"N18.5", "N18.6"}, []string{"N18.6"}},
		{"shock removes severe sepsis", []string{"A41.9", "R65.20", "R65.21"}, []string{"A41.9", "R65.21"}},
		{"superimposed pre-eclampsia", []string{"O11.3", "I10", "O14.93", "O10.013"}, []string{"O11.3"}},
		{"complicated pregnancy is not incidental", []string{"Z33.1", "O24.410"}, []string{"O24.410"}},
		{"active malignancy removes history", []string{"C50.911", "Z85.3"}, []string{"C50.911"}},
		{"unrelated codes untouched", []string{"I10", "E11.9", "J44.9"}, []string{"I10", "E11.9", "J44.9"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, record := Exclusion{}.Apply(coded("x", tt.codes...), Input{})
			if ids := model.IDs(got); !equalIDs(ids, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, ids)
			}
			if len(record.Removed) != len(tt.codes)-len(tt.want) {
				t.Errorf("Expected %d logged removals, got %d", len(tt.codes)-len(tt.want), len(record.Removed))
			}
			for _, c := range record.Removed {
				if c.Pass != "exclusion" || c.Reason == "" {
					t.Errorf("Expected removal with pass and reason, got %+v", c)
				}
			}
		})
	}
}

func TestCompanion(t *testing.T) {
	tests := []struct {
		desc  string
		codes []model.Code
		ctx   model.Context
		want  []string
		warn  string
	}{
		{
			desc:  "severe sepsis without shock",
			codes: join(coded("infection", "A41.9"), coded("respiratory", "J18.9")),
			ctx:   model.Context{Infection: &model.Infection{Sepsis: true, Severe: true}},
			want:  []string{"A41.9", "R65.20", "J18.9"},
		},
		{
			desc:  "shock denied",
			codes: coded("infection", "A41.9"),
			ctx:   model.Context{Infection: &model.Infection{Sepsis: true, Shock: true}, Denied: []model.Family{model.FamilySepticShock}},
			want:  []string{"A41.9"},
		},
		{
			desc:  "hypertensive CKD rebuilds the stage",
			codes: coded("hypertension", "I12.9"),
			ctx:   model.Context{Hypertension: &model.Hypertension{}, CKD: &model.CKD{Stage: model.CKDStage4}},
			want:  []string{"I12.9", "N18.4"},
		},
		{
			desc:  "combination without documented companions",
			codes: coded("hypertension", "I13.0"),
			want:  []string{"I13.0"},
			warn:  "heart failure code",
		},
		{
			desc:  "ESRD on dialysis",
			codes: coded("renal", "N18.6"),
			ctx:   model.Context{CKD: &model.CKD{Stage: model.CKDStageESRD}, RenalStatus: &model.RenalStatus{Dialysis: model.DialysisHemo}},
			want:  []string{"N18.6", "Z99.2"},
		},
		{
			desc:  "diabetic foot ulcer without site",
			codes: coded("diabetes", "E11.621"),
			ctx: model.Context{
				Diabetes:  &model.Diabetes{Complications: []model.DMComplication{model.DMCompFootUlcer}},
				FootUlcer: &model.FootUlcer{},
			},
			want: []string{"E11.621"},
			warn: "L97",
		},
		{
			desc:  "localized infection organism",
			codes: coded("infection", "N39.0"),
			ctx:   model.Context{Infection: &model.Infection{Organism: model.OrganismEColi, Site: model.SiteUrinary}},
			want:  []string{"N39.0", "B96.20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, record := Companion{}.Apply(tt.codes, Input{Context: tt.ctx})
			if ids := model.IDs(got); !equalIDs(ids, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, ids)
			}
			if len(record.Added) != len(tt.want)-len(tt.codes) {
				t.Errorf("Expected %d logged additions, got %d", len(tt.want)-len(tt.codes), len(record.Added))
			}
			if tt.warn != "" && !hasWarning(record, model.WarningCompanion, tt.warn) {
				t.Errorf("Expected a companion warning mentioning %q, got %v", tt.warn, record.Warnings)
			}
		})
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		desc     string
		codes    []string
		text     string
		want     []string
		replaces string
		warn     bool
	}{
		{"single named organism", []string{"A41.9", "N39.0"}, "sepsis. urine culture grew klebsiella", []string{"A41.59", "N39.0"}, "A41.9", false},
		{"pneumonia organism", []string{"J18.9"}, "pneumonia, sputum positive for pseudomonas", []string{"J15.1"}, "J18.9", false},
		{"negated organism loosened", []string{"A41.51"}, "sepsis. urine negative for e coli", []string{"A41.9"}, "A41.51", false},
		{"different organism named", []string{"A41.51"}, "sepsis due to proteus mirabilis", []string{"A41.59"}, "A41.51", false},
		{"supported organism kept", []string{"A41.02"}, "mrsa sepsis", []string{"A41.02"}, "", false},
		{"several organisms", []string{"A41.9"}, "sepsis with e. coli and pseudomonas", []string{"A41.9"}, "", true},
		{"no text", []string{"A41.9"}, "", []string{"A41.9"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			in := Input{Text: tt.text, Match: extract.NegationMatcher()}
			got, record := Specificity{}.Apply(coded("infection", tt.codes...), in)
			if ids := model.IDs(got); !equalIDs(ids, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, ids)
			}
			if tt.replaces != "" {
				if len(record.Added) != 1 || record.Added[0].Replaces != tt.replaces {
					t.Errorf("Expected a swap replacing %s, got %+v", tt.replaces, record.Added)
				}
			} else if len(record.Added) != 0 {
				t.Errorf("Expected no swap, got %+v", record.Added)
			}
			if tt.warn != hasWarning(record, model.WarningSpecificity, "several organisms") {
				t.Errorf("Expected specificity warning %v, got %v", tt.warn, record.Warnings)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		desc   string
		codes  []model.Code
		text   string
		ctx    model.Context
		want   []string
		warned string
	}{
		{"single condition", nil, "history of hyperlipidemia, on a statin", model.Context{}, []string{"E78.5"}, ""},
		{"negated condition", nil, "no evidence of hypertension", model.Context{}, nil, "insufficient documentation"},
		{"denied family", nil, "hypertension: no", model.Context{Denied: []model.Family{model.FamilyHypertension}}, nil, "insufficient documentation"},
		{"several conditions", nil, "gerd and hypothyroidism", model.Context{}, nil, "several conditions"},
		{"list not empty", coded("x", "I10"), "asthma", model.Context{}, []string{"I10"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			in := Input{Context: tt.ctx, Text: tt.text, Narrative: tt.text, Match: extract.NegationMatcher()}
			got, record := Fallback{}.Apply(tt.codes, in)
			if ids := model.IDs(got); !equalIDs(ids, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, ids)
			}
			if tt.warned != "" && !hasWarning(record, model.WarningFallback, tt.warned) {
				t.Errorf("Expected fallback warning %q, got %v", tt.warned, record.Warnings)
			}
			if len(tt.codes) == 0 && len(got) == 1 {
				if got[0].Confidence != model.ConfidenceLow || got[0].Rule != "fallback" {
					t.Errorf("Expected a low-confidence fallback code, got %+v", got[0])
				}
			}
		})
	}
}

func TestSequence(t *testing.T) {
	reason := func(kind model.ReasonKind, family model.Family, text string) model.Reason {
		return model.Reason{Kind: kind, Family: family, Text: text}
	}

	tests := []struct {
		desc    string
		codes   []string
		reasons []model.Reason
		want    []string
		warn    string
	}{
		{
			desc:    "dialysis encounter leads",
			codes:   []string{"I13.2", "I50.32", "N18.6", "Z99.2", "Z49.31"},
			reasons: []model.Reason{reason(model.ReasonDialysis, "", "hemodialysis")},
			want:    []string{"Z49.31", "I13.2", "I50.32", "N18.6", "Z99.2"},
		},
		{
			desc:    "dialysis outranks chemotherapy",
			codes:   []string{"C18.9", "Z51.11", "Z49.31"},
			reasons: []model.Reason{reason(model.ReasonChemotherapy, "", "chemo"), reason(model.ReasonDialysis, "", "dialysis")},
			want:    []string{"Z49.31", "C18.9", "Z51.11"},
			warn:    "several administrative reasons",
		},
		{
			desc:    "clinical reason moves its code first",
			codes:   []string{"I10", "E11.9", "J44.1"},
			reasons: []model.Reason{reason(model.ReasonClinical, model.FamilyCOPD, "copd exacerbation")},
			want:    []string{"J44.1", "I10", "E11.9"},
		},
		{
			desc:    "septic shock reason leads with the sepsis code",
			codes:   []string{"N39.0", "A41.51", "R65.21"},
			reasons: []model.Reason{reason(model.ReasonClinical, model.FamilySepticShock, "septic shock")},
			want:    []string{"A41.51", "N39.0", "R65.21"},
		},
		{
			desc:  "first stated clinical reason wins",
			codes: []string{"I10", "J18.9", "N39.0"},
			reasons: []model.Reason{
				reason(model.ReasonClinical, model.FamilyInfection, "uti"),
				reason(model.ReasonClinical, model.FamilyPneumonia, "pneumonia"),
			},
			want: []string{"N39.0", "I10", "J18.9"},
			warn: "conflicting reasons",
		},
		{
			desc:  "administrative beats clinical",
			codes: []string{"C50.911", "Z51.0"},
			reasons: []model.Reason{
				reason(model.ReasonClinical, model.FamilyNeoplasm, "breast cancer"),
				reason(model.ReasonRadiation, "", "radiation"),
			},
			want: []string{"Z51.0", "C50.911"},
			warn: "takes precedence",
		},
		{
			desc:  "no stated reason keeps order",
			codes: []string{"I10", "E11.9"},
			want:  []string{"I10", "E11.9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ctx := model.Context{}
			if tt.reasons != nil {
				ctx.Encounter = &model.Encounter{Reasons: tt.reasons}
			}
			got, record := Sequence{}.Apply(coded("x", tt.codes...), Input{Context: ctx})
			if ids := model.IDs(got); !equalIDs(ids, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, ids)
			}
			if tt.warn != "" && !hasWarning(record, model.WarningSequencing, tt.warn) {
				t.Errorf("Expected sequencing warning %q, got %v", tt.warn, record.Warnings)
			}
			if tt.want[0] != tt.codes[0] && (len(record.Moved) != 1 || record.Moved[0].To != 0) {
				t.Errorf("Expected one logged move to principal, got %+v", record.Moved)
			}
		})
	}
}

func TestStructural(t *testing.T) {
	tests := []struct {
		desc  string
		codes []string
		ctx   model.Context
		want  string
	}{
		{"unstaged CKD", []string{"N18.9"}, model.Context{CKD: &model.CKD{}}, "stage not documented"},
		{"ESRD without status", []string{"N18.6"}, model.Context{CKD: &model.CKD{Stage: model.CKDStageESRD}}, "without documented dialysis"},
		{"fracture without encounter", nil, model.Context{Fracture: &model.Fracture{Site: model.FractureSiteRib}}, "encounter type"},
		{"breast without sex", nil, model.Context{Neoplasm: &model.Neoplasm{Site: model.NeoplasmBreast}}, "without documented sex"},
		{"conflicted family", nil, model.Context{Asthma: &model.Asthma{}, Denied: []model.Family{model.FamilyAsthma}}, "both documented and negated"},
		{"first trimester pre-eclampsia", []string{"O14.90"}, model.Context{Pregnancy: &model.Pregnancy{Preeclampsia: true, Trimester: model.TrimesterFirst}}, "no first trimester code"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			codes := coded("x", tt.codes...)
			got, record := Structural{}.Apply(codes, Input{Context: tt.ctx})
			if !equalIDs(model.IDs(got), tt.codes) {
				t.Errorf("Expected the list to be unchanged, got %v", model.IDs(got))
			}
			if !hasWarning(record, model.WarningStructural, tt.want) {
				t.Errorf("Expected a structural warning containing %q, got %v", tt.want, record.Warnings)
			}
		})
	}
}

func TestFallback_IgnoresFieldLines(t *testing.T) {
	in := Input{Text: "hypertension: 0\nsepsis: see below", Match: extract.NegationMatcher()}
	got, record := Fallback{}.Apply(nil, in)

	if len(got) != 0 {
		t.Errorf("Expected no codes from rejected field lines, got %v", model.IDs(got))
	}
	if !hasWarning(record, model.WarningFallback, "insufficient documentation") {
		t.Errorf("Expected an insufficient documentation warning, got %v", record.Warnings)
	}
}

func TestFallback_Disabled(t *testing.T) {
	in := Input{Text: "hyperlipidemia", Narrative: "hyperlipidemia", Match: extract.NegationMatcher()}
	got, record := Fallback{Disabled: true}.Apply(nil, in)

	if len(got) != 0 {
		t.Errorf("Expected no codes, got %v", model.IDs(got))
	}
	if !hasWarning(record, model.WarningFallback, "insufficient documentation") {
		t.Errorf("Expected an insufficient documentation warning, got %v", record.Warnings)
	}
}
