package vocab

import (
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
)

// Field key bounds. A "Key: value" line with a longer key is narrative.
const (
	MaxFieldKeyLen   = 40
	MaxFieldKeyWords = 5
)

// fieldNames maps a normalized field key to the attribute it assigns.
var fieldNames = map[string]model.Attr{
	"hypertension":                AttrHypertension,
	"htn":                         AttrHypertension,
	"high blood pressure":         AttrHypertension,
	"essential hypertension":      AttrHypertension,
	"hypertensive crisis":         AttrHTNCrisis,
	"heart failure":               AttrHeartFailure,
	"hf":                          AttrHeartFailure,
	"chf":                         AttrHeartFailure,
	"congestive heart failure":    AttrHeartFailure,
	"heart failure type":          AttrHFType,
	"hf type":                     AttrHFType,
	"heart failure acuity":        AttrHFAcuity,
	"hf acuity":                   AttrHFAcuity,
	"atrial fibrillation":         AttrAtrialFib,
	"afib":                        AttrAtrialFib,
	"a fib":                       AttrAtrialFib,
	"coronary artery disease":     AttrCoronary,
	"cad":                         AttrCoronary,
	"myocardial infarction":       AttrInfarction,
	"mi":                          AttrInfarction,
	"ckd":                         AttrCKD,
	"chronic kidney disease":      AttrCKD,
	"ckd stage":                   AttrCKDStage,
	"chronic kidney disease stage": AttrCKDStage,
	"kidney disease stage":        AttrCKDStage,
	"esrd":                        AttrESRD,
	"end stage renal disease":     AttrESRD,
	"dialysis":                    AttrDialysis,
	"dialysis status":             AttrDialysis,
	"dialysis type":               AttrDialysis,
	"kidney transplant":           AttrTransplant,
	"renal transplant":            AttrTransplant,
	"transplant status":           AttrTransplant,
	"aki":                         AttrAKI,
	"acute kidney injury":         AttrAKI,
	"acute renal failure":         AttrAKI,
	"egfr":                        AttrEGFR,
	"gfr":                         AttrEGFR,
	"diabetes":                    AttrDiabetes,
	"diabetes mellitus":           AttrDiabetes,
	"dm":                          AttrDiabetes,
	"diabetes type":               AttrDiabetesType,
	"dm type":                     AttrDiabetesType,
	"type of diabetes":            AttrDiabetesType,
	"diabetic complications":      AttrDMComplication,
	"diabetes complications":      AttrDMComplication,
	"complications":               AttrDMComplication,
	"insulin":                     AttrInsulin,
	"insulin use":                 AttrInsulin,
	"on insulin":                  AttrInsulin,
	"oral hypoglycemic":           AttrOralAgent,
	"oral agents":                 AttrOralAgent,
	"oral diabetes medication":    AttrOralAgent,
	"sepsis":                      AttrSepsis,
	"severe sepsis":               AttrSevereSepsis,
	"septic shock":                AttrSepticShock,
	"shock":                       AttrSepticShock,
	"organism":                    AttrOrganism,
	"causative organism":          AttrOrganism,
	"pathogen":                    AttrOrganism,
	"culture":                     AttrOrganism,
	"blood culture":               AttrOrganism,
	"infection site":              AttrInfectionSite,
	"source":                      AttrInfectionSite,
	"source of infection":         AttrInfectionSite,
	"site of infection":           AttrInfectionSite,
	"uti":                         AttrUTI,
	"urinary tract infection":     AttrUTI,
	"cellulitis":                  AttrCellulitis,
	"bacteremia":                  AttrBacteremia,
	"peritonitis":                 AttrPeritonitis,
	"urosepsis":                   AttrUrosepsis,
	"pneumonia":                   AttrPneumonia,
	"pneumonia organism":          AttrPneumoniaOrg,
	"aspiration pneumonia":        AttrAspiration,
	"copd":                        AttrCOPD,
	"chronic obstructive pulmonary disease": AttrCOPD,
	"copd exacerbation":           AttrCOPDExacerbate,
	"asthma":                      AttrAsthma,
	"asthma severity":             AttrAsthmaSeverity,
	"asthma exacerbation":         AttrAsthmaExacerb,
	"status asthmaticus":          AttrStatusAsthma,
	"respiratory failure":         AttrRespFailure,
	"foot ulcer":                  AttrFootUlcer,
	"diabetic foot ulcer":         AttrFootUlcer,
	"ulcer":                       AttrFootUlcer,
	"ulcer site":                  AttrUlcerSite,
	"ulcer location":              AttrUlcerSite,
	"wound location":              AttrUlcerSite,
	"wound site":                  AttrUlcerSite,
	"ulcer depth":                 AttrUlcerDepth,
	"wound depth":                 AttrUlcerDepth,
	"ulcer severity":              AttrUlcerDepth,
	"ulcer laterality":            AttrUlcerLaterality,
	"ulcer side":                  AttrUlcerLaterality,
	"pressure ulcer":              AttrPressureUlcer,
	"pressure injury":             AttrPressureUlcer,
	"decubitus ulcer":             AttrPressureUlcer,
	"pressure ulcer site":         AttrPressureSite,
	"pressure ulcer location":     AttrPressureSite,
	"pressure injury site":        AttrPressureSite,
	"pressure ulcer stage":        AttrPressureStage,
	"pressure injury stage":       AttrPressureStage,
	"fracture":                    AttrFracture,
	"fracture site":               AttrFractureSite,
	"fracture location":           AttrFractureSite,
	"fracture side":               AttrFractureSide,
	"fracture laterality":         AttrFractureSide,
	"encounter type":              AttrFractureEpisode,
	"episode of care":             AttrFractureEpisode,
	"fall":                        AttrFall,
	"mechanism of injury":         AttrFall,
	"cancer":                      AttrNeoplasm,
	"malignancy":                  AttrNeoplasm,
	"neoplasm":                    AttrNeoplasm,
	"oncology diagnosis":          AttrNeoplasm,
	"cancer site":                 AttrNeoplasmSite,
	"primary site":                AttrNeoplasmSite,
	"tumor site":                  AttrNeoplasmSite,
	"history of cancer":           AttrCancerHistory,
	"cancer history":              AttrCancerHistory,
	"personal history of cancer":  AttrCancerHistory,
	"metastasis":                  AttrMetastasis,
	"metastases":                  AttrMetastasis,
	"metastatic sites":            AttrMetastasis,
	"anemia in neoplastic disease": AttrNeoplasmAnemia,
	"cancer related anemia":       AttrNeoplasmAnemia,
	"pregnant":                    AttrPregnancy,
	"pregnancy":                   AttrPregnancy,
	"pregnancy status":            AttrPregnancy,
	"trimester":                   AttrTrimester,
	"gestational age":             AttrGestationWeeks,
	"weeks gestation":             AttrGestationWeeks,
	"gestation":                   AttrGestationWeeks,
	"gestational diabetes":        AttrGDM,
	"gdm":                         AttrGDM,
	"preeclampsia":                AttrPreeclampsia,
	"pre eclampsia":               AttrPreeclampsia,
	"gestational hypertension":    AttrGestationalHTN,
	"pregnancy induced hypertension": AttrGestationalHTN,
	"sex":                         AttrSex,
	"gender":                      AttrSex,
	"reason for admission":        AttrAdmissionReason,
	"admission reason":            AttrAdmissionReason,
	"reason for visit":            AttrAdmissionReason,
	"reason for encounter":        AttrAdmissionReason,
	"admitted for":                AttrAdmissionReason,
	"visit reason":                AttrAdmissionReason,
}

// sectionNames are keys whose value is free text run through the narrative
// interpreter rather than a field handler.
var sectionNames = map[string]bool{
	"assessment":                 true,
	"assessment and plan":        true,
	"plan":                       true,
	"hpi":                        true,
	"history of present illness": true,
	"history":                    true,
	"pmh":                        true,
	"past medical history":       true,
	"medical history":            true,
	"diagnosis":                  true,
	"diagnoses":                  true,
	"discharge diagnosis":        true,
	"discharge diagnoses":        true,
	"impression":                 true,
	"problem list":               true,
	"problems":                   true,
	"narrative":                  true,
	"note":                       true,
	"notes":                      true,
	"clinical notes":             true,
	"comments":                   true,
	"findings":                   true,
	"wound assessment":           true,
	"exam":                       true,
	"physical exam":              true,
	"summary":                    true,
	"hospital course":            true,
	"chief complaint":            true,
	"cultures":                   true,
	"labs":                       true,
}

// woundDetailNames are bare keys ("Site:", "Depth:") that qualify whichever
// ulcer was documented most recently.
var woundDetailNames = map[string]map[model.Family]model.Attr{
	"site":       {model.FamilyFootUlcer: AttrUlcerSite, model.FamilyPressureUlcer: AttrPressureSite},
	"location":   {model.FamilyFootUlcer: AttrUlcerSite, model.FamilyPressureUlcer: AttrPressureSite},
	"depth":      {model.FamilyFootUlcer: AttrUlcerDepth, model.FamilyPressureUlcer: AttrPressureStage},
	"laterality": {model.FamilyFootUlcer: AttrUlcerLaterality},
	"side":       {model.FamilyFootUlcer: AttrUlcerLaterality},
}

// IsWoundDetail reports whether a normalized key is a bare ulcer detail.
func IsWoundDetail(key string) bool {
	_, ok := woundDetailNames[key]
	return ok
}

// WoundDetail resolves a bare ulcer detail key against the ulcer family
// documented most recently. With no ulcer documented, depth still grades a
// foot ulcer since no other family has a depth.
func WoundDetail(key string, recent model.Family) (model.Attr, bool) {
	byFamily, ok := woundDetailNames[key]
	if !ok {
		return "", false
	}
	if recent == "" && key == "depth" {
		recent = model.FamilyFootUlcer
	}
	attr, ok := byFamily[recent]
	return attr, ok
}

// otherPersonNames are keys whose value documents someone other than the
// patient. They are neither coded nor read as narrative.
var otherPersonNames = map[string]bool{
	"family history":         true,
	"family hx":              true,
	"fh":                     true,
	"family medical history": true,
	"mother":                 true,
	"father":                 true,
	"sibling":                true,
	"siblings":               true,
}

// NormalizeKey lower-cases a field key and collapses separators so
// "Heart-Failure_Type" and "heart failure type" compare equal.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '/', '.':
			return ' '
		case '(', ')', '[', ']', '*', '#':
			return -1
		}
		return r
	}, key)
	return strings.Join(strings.Fields(key), " ")
}

// Field looks up a normalized field key.
func Field(key string) (model.Attr, bool) {
	a, ok := fieldNames[key]
	return a, ok
}

// IsOtherPerson reports whether a normalized key documents someone other
// than the patient.
func IsOtherPerson(key string) bool {
	return otherPersonNames[key]
}

// IsSection reports whether a normalized key introduces free text.
func IsSection(key string) bool {
	return sectionNames[key]
}

// NegativeValues are field values that deny the field's family.
var NegativeValues = map[string]bool{
	"no": true, "n": true, "none": true, "negative": true, "absent": true, "denies": true,
	"denied": true, "false": true, "not present": true, "ruled out": true, "n/a": true, "na": true,
}

// AffirmativeValues assert the field's family without further detail.
var AffirmativeValues = map[string]bool{
	"yes": true, "y": true, "present": true, "positive": true, "true": true, "confirmed": true,
	"documented": true, "active": true, "current": true, "x": true,
}

// UnknownValues neither assert nor deny. Hedged values are unknown: an
// uncertain diagnosis is not coded from a field.
var UnknownValues = map[string]bool{
	"": true, "unknown": true, "unk": true, "?": true, "not documented": true, "not assessed": true, "pending": true,
	"unlikely": true, "doubtful": true, "possible": true, "possibly": true, "probable": true, "probably": true,
	"questionable": true, "suspected": true, "query": true, "maybe": true, "unclear": true, "uncertain": true,
	"likely": true, "equivocal": true, "borderline": true, "tbd": true, "to be determined": true,
}
