package vocab

import "github.com/ppiankov/dxcoder/internal/model"

// FallbackCondition is a common condition the fallback pass can code with
// low confidence when nothing else produced a code.
type FallbackCondition struct {
	Name    string
	Code    string
	Family  model.Family
	Phrases []string
}

// FallbackConditions are checked in table order.
var FallbackConditions = []FallbackCondition{
	{"hypertension", "I10", model.FamilyHypertension, []string{"hypertension", "htn", "high blood pressure"}},
	{"diabetes", "E11.9", model.FamilyDiabetes, []string{"diabetes", "diabetes mellitus", "dm", "t2dm"}},
	{"heart failure", "I50.9", model.FamilyHeartFailure, []string{"heart failure", "chf"}},
	{"pneumonia", "J18.9", model.FamilyPneumonia, []string{"pneumonia"}},
	{"sepsis", "A41.9", model.FamilySepsis, []string{"sepsis", "septicemia"}},
	{"copd", "J44.9", model.FamilyCOPD, []string{"copd", "chronic obstructive pulmonary disease"}},
	{"asthma", "J45.909", model.FamilyAsthma, []string{"asthma"}},
	{"urinary tract infection", "N39.0", model.FamilyInfection, []string{"urinary tract infection", "uti"}},
	{"atrial fibrillation", "I48.91", model.FamilyAtrialFib, []string{"atrial fibrillation", "afib", "a-fib"}},
	{"anemia", "D64.9", "", []string{"anemia", "anaemia"}},
	{"hypothyroidism", "E03.9", "", []string{"hypothyroidism", "hypothyroid"}},
	{"hyperlipidemia", "E78.5", "", []string{"hyperlipidemia", "dyslipidemia", "high cholesterol"}},
	{"gerd", "K21.9", "", []string{"gerd", "gastroesophageal reflux", "gastro-esophageal reflux", "acid reflux"}},
	{"depression", "F32.A", "", []string{"depression", "depressive disorder"}},
	{"obesity", "E66.9", "", []string{"obesity", "obese"}},
	{"dementia", "F03.90", "", []string{"dementia"}},
	{"migraine", "G43.909", "", []string{"migraine", "migraines"}},
}
