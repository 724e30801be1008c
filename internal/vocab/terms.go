package vocab

import "github.com/ppiankov/dxcoder/internal/model"

// Organisms in precedence order: resistance-qualified names ahead of the
// plain species so "MRSA" never reads as MSSA.
var Organisms = Lookup[model.Organism]{
	{model.OrganismMRSA, []string{"mrsa", "methicillin resistant staphylococcus aureus", "methicillin-resistant staphylococcus aureus", "methicillin resistant staph aureus", "methicillin-resistant staph aureus"}},
	{model.OrganismMSSA, []string{"mssa", "methicillin susceptible staphylococcus aureus", "methicillin-susceptible staphylococcus aureus", "methicillin sensitive staphylococcus aureus", "methicillin-sensitive staphylococcus aureus", "staphylococcus aureus", "staph aureus", "s. aureus"}},
	{model.OrganismEColi, []string{"e. coli", "e.coli", "e coli", "escherichia coli"}},
	{model.OrganismKlebsiella, []string{"klebsiella pneumoniae", "klebsiella"}},
	{model.OrganismPseudomonas, []string{"pseudomonas aeruginosa", "pseudomonas"}},
	{model.OrganismProteus, []string{"proteus mirabilis", "proteus"}},
	{model.OrganismStrepPneumo, []string{"streptococcus pneumoniae", "strep pneumoniae", "s. pneumoniae", "pneumococcal", "pneumococcus"}},
	{model.OrganismEnterococcus, []string{"enterococcus faecalis", "enterococcus", "enterococcal", "e. faecalis"}},
}

// InfectionSites maps source phrases to a sepsis source.
var InfectionSites = Lookup[model.InfectionSite]{
	{model.SiteUrinary, []string{"urinary tract", "urinary", "urine", "uti"}},
	{model.SiteLung, []string{"pneumonia", "lung", "lungs", "pulmonary", "respiratory"}},
	{model.SiteSkin, []string{"cellulitis", "skin", "soft tissue", "wound"}},
	{model.SiteAbdomen, []string{"peritonitis", "intra-abdominal", "intraabdominal", "abdominal", "abdomen"}},
	{model.SiteBlood, []string{"bacteremia", "bloodstream", "blood"}},
}

// Lateralities. A text naming both sides resolves to unspecified.
var Lateralities = Lookup[model.Laterality]{
	{model.LateralityRight, []string{"right", "rt"}},
	{model.LateralityLeft, []string{"left", "lt"}},
}

// ResolveLaterality returns the one side named in text, or unspecified when
// none or both are named.
func ResolveLaterality(text string, match Matcher) model.Laterality {
	sides := Lateralities.All(text, match)
	if len(sides) != 1 {
		return model.LateralityUnspecified
	}
	return sides[0]
}

// UlcerSites for non-pressure lower-limb ulcers. Generic "foot" is last.
var UlcerSites = Lookup[model.UlcerSite]{
	{model.UlcerSiteHeel, []string{"heel", "midfoot", "mid-foot", "mid foot"}},
	{model.UlcerSiteAnkle, []string{"ankle", "malleolus", "malleolar"}},
	{model.UlcerSiteCalf, []string{"calf"}},
	{model.UlcerSiteFoot, []string{"toe", "toes", "hallux", "forefoot", "metatarsal", "metatarsal head", "plantar", "dorsum of foot", "dorsal foot", "foot"}},
}

// DepthLadder orders ulcer depth from superficial to deep.
var DepthLadder = Ladder[model.Depth]{
	{model.DepthSkin, []string{"limited to breakdown of skin", "breakdown of skin", "skin breakdown", "skin only", "superficial", "partial thickness"}},
	{model.DepthFat, []string{"fat layer exposed", "fat layer", "fat exposed", "subcutaneous", "subcutaneous tissue", "full thickness"}},
	{model.DepthMuscle, []string{"muscle", "necrosis of muscle", "muscle involvement", "muscle exposed"}},
	{model.DepthBone, []string{"bone", "bone exposed", "exposed bone", "necrosis of bone", "osteomyelitis", "probes to bone"}},
}

// PressureSites for pressure ulcers.
var PressureSites = Lookup[model.PressureSite]{
	{model.PressureSiteSacral, []string{"sacral", "sacrum", "coccyx", "coccygeal"}},
	{model.PressureSiteHip, []string{"hip", "trochanter", "trochanteric"}},
	{model.PressureSiteButtock, []string{"buttock", "buttocks", "gluteal", "ischial"}},
	{model.PressureSiteHeel, []string{"heel", "heels"}},
}

// PressureStageLadder orders pressure ulcer stages. Unstageable is resolved
// separately since it is not a rung.
var PressureStageLadder = Ladder[model.PressureStage]{
	{model.PressureStage1, []string{"stage 1", "stage i", "stage one"}},
	{model.PressureStage2, []string{"stage 2", "stage ii", "stage two"}},
	{model.PressureStage3, []string{"stage 3", "stage iii", "stage three"}},
	{model.PressureStage4, []string{"stage 4", "stage iv", "stage four"}},
}

// UnstageablePhrases mark a pressure ulcer whose stage cannot be determined.
var UnstageablePhrases = []string{"unstageable", "unstagable", "not stageable", "eschar covered"}

// CKDStageLadder orders CKD stages. Substage 3a/3b outranks plain stage 3 and
// ESRD outranks stage 5.
var CKDStageLadder = Ladder[model.CKDStage]{
	{model.CKDStage1, []string{"stage 1", "stage i", "stage one"}},
	{model.CKDStage2, []string{"stage 2", "stage ii", "stage two"}},
	{model.CKDStage3, []string{"stage 3", "stage iii", "stage three"}},
	{model.CKDStage3a, []string{"stage 3a", "stage iiia", "stage 3 a"}},
	{model.CKDStage3b, []string{"stage 3b", "stage iiib", "stage 3 b"}},
	{model.CKDStage4, []string{"stage 4", "stage iv", "stage four"}},
	{model.CKDStage5, []string{"stage 5", "stage v", "stage five"}},
	{model.CKDStageESRD, []string{"esrd", "end stage renal disease", "end-stage renal disease", "end stage kidney disease", "end-stage kidney disease"}},
}

// AsthmaSeverityLadder orders asthma severity classes.
var AsthmaSeverityLadder = Ladder[model.AsthmaSeverity]{
	{model.AsthmaIntermittent, []string{"mild intermittent", "intermittent"}},
	{model.AsthmaMild, []string{"mild persistent"}},
	{model.AsthmaModerate, []string{"moderate persistent", "moderate"}},
	{model.AsthmaSevere, []string{"severe persistent", "severe"}},
}

// AcuityTerms resolve heart and respiratory failure acuity. Acute on chronic
// is listed first so its phrase is not split into separate readings.
var AcuityTerms = Lookup[model.Acuity]{
	{model.AcuityAcuteOnChronic, []string{"acute on chronic", "acute-on-chronic", "acute and chronic", "acute/chronic"}},
	{model.AcuityAcute, []string{"acute", "decompensated", "exacerbation", "exacerbated", "new onset", "new-onset"}},
	{model.AcuityChronic, []string{"chronic"}},
}

// MergeAcuity combines two acuity readings: acute plus chronic is acute on
// chronic, and acute on chronic absorbs either.
func MergeAcuity(a, b model.Acuity) model.Acuity {
	switch {
	case a == b:
		return a
	case a == model.AcuityUnspecified:
		return b
	case b == model.AcuityUnspecified:
		return a
	}
	return model.AcuityAcuteOnChronic
}

// HFTypes resolve the heart failure type. Combined is first so "systolic and
// diastolic" is not read as systolic.
var HFTypes = Lookup[model.HFType]{
	{model.HFCombined, []string{"combined", "systolic and diastolic", "diastolic and systolic", "systolic/diastolic", "hfmref", "mid-range ejection fraction"}},
	{model.HFSystolic, []string{"systolic", "hfref", "reduced ejection fraction", "reduced ef", "heart failure with reduced"}},
	{model.HFDiastolic, []string{"diastolic", "hfpef", "preserved ejection fraction", "preserved ef", "heart failure with preserved"}},
}

// MergeHFType combines two type readings: systolic plus diastolic is combined.
func MergeHFType(a, b model.HFType) model.HFType {
	switch {
	case a == b:
		return a
	case a == model.HFUnspecified:
		return b
	case b == model.HFUnspecified:
		return a
	}
	return model.HFCombined
}

// GasTerms qualify respiratory failure.
var GasTerms = Lookup[model.GasExchange]{
	{model.GasHypoxia, []string{"hypoxic", "hypoxemic", "hypoxia", "hypoxemia"}},
	{model.GasHypercapnia, []string{"hypercapnic", "hypercarbic", "hypercapnia", "hypercarbia"}},
}

// AFibKinds qualify atrial fibrillation.
var AFibKinds = Lookup[model.AFibKind]{
	{model.AFibParoxysmal, []string{"paroxysmal"}},
	{model.AFibPermanent, []string{"permanent"}},
	{model.AFibPersistent, []string{"persistent", "longstanding persistent", "long-standing persistent"}},
	{model.AFibChronic, []string{"chronic"}},
}

// InfarctionKinds qualify an MI. NSTEMI is listed first.
var InfarctionKinds = Lookup[model.InfarctionKind]{
	{model.InfarctionNSTEMI, []string{"nstemi", "non-st elevation", "non st elevation", "non-st-elevation", "non-stemi"}},
	{model.InfarctionSTEMI, []string{"stemi", "st elevation", "st-elevation"}},
}

// CrisisKinds qualify a hypertensive crisis.
var CrisisKinds = Lookup[model.CrisisKind]{
	{model.CrisisEmergency, []string{"emergency"}},
	{model.CrisisUrgency, []string{"urgency"}},
	{model.CrisisUnspecified, []string{"crisis"}},
}

// DialysisModalities name the dialysis modality.
var DialysisModalities = Lookup[model.DialysisModality]{
	{model.DialysisPeritoneal, []string{"peritoneal", "pd", "capd", "ccpd"}},
	{model.DialysisHemo, []string{"hemodialysis", "haemodialysis", "hd", "ihd"}},
}

// DMTypes name the diabetes type.
var DMTypes = Lookup[model.DMType]{
	{model.DMType1, []string{"type 1", "type i", "type one", "t1dm", "dm1", "dm 1", "iddm", "juvenile"}},
	{model.DMType2, []string{"type 2", "type ii", "type two", "t2dm", "dm2", "dm 2", "niddm", "adult onset"}},
}

// DMComplications name diabetic complications. Polyneuropathy is ahead of
// neuropathy since the more specific term wins.
var DMComplications = Lookup[model.DMComplication]{
	{model.DMCompCKD, []string{"ckd", "chronic kidney disease", "nephropathy", "kidney disease", "diabetic kidney"}},
	{model.DMCompPolyneuropathy, []string{"polyneuropathy", "peripheral neuropathy"}},
	{model.DMCompGastroparesis, []string{"gastroparesis", "autonomic neuropathy"}},
	{model.DMCompNeuropathy, []string{"neuropathy"}},
	{model.DMCompRetinopathy, []string{"retinopathy"}},
	{model.DMCompAngiopathy, []string{"angiopathy", "peripheral vascular disease", "peripheral arterial disease", "peripheral artery disease", "pvd", "pad"}},
	{model.DMCompFootUlcer, []string{"foot ulcer", "dfu"}},
	{model.DMCompHyperglycemia, []string{"hyperglycemia", "poorly controlled", "out of control", "inadequately controlled"}},
	{model.DMCompHypoglycemia, []string{"hypoglycemia"}},
}

// FractureSites name the fracture sites the trauma module codes.
var FractureSites = Lookup[model.FractureSite]{
	{model.FractureSiteFemoralNeck, []string{"femoral neck", "neck of femur", "neck of the femur", "hip"}},
	{model.FractureSiteDistalRadius, []string{"distal radius", "distal radial", "colles", "wrist"}},
	{model.FractureSiteRib, []string{"rib", "ribs"}},
}

// EncounterTypes name the injury episode of care.
var EncounterTypes = Lookup[model.EncounterType]{
	{model.EncounterSequela, []string{"sequela", "sequelae", "late effect"}},
	{model.EncounterSubsequent, []string{"subsequent encounter", "subsequent", "routine healing", "follow-up visit", "healing"}},
	{model.EncounterInitial, []string{"initial encounter", "initial", "active treatment", "orif", "open reduction", "surgical repair"}},
}

// NeoplasmPrimarySites name primary malignancy sites.
var NeoplasmPrimarySites = Lookup[model.NeoplasmSite]{
	{model.NeoplasmBreast, []string{"breast"}},
	{model.NeoplasmLung, []string{"lung", "bronchus", "bronchogenic", "nsclc", "small cell"}},
	{model.NeoplasmColon, []string{"colon", "colorectal", "sigmoid", "cecum", "cecal"}},
	{model.NeoplasmProstate, []string{"prostate", "prostatic"}},
	{model.NeoplasmPancreas, []string{"pancreas", "pancreatic"}},
}

// NeoplasmSecondarySites name metastatic sites.
var NeoplasmSecondarySites = Lookup[model.NeoplasmSite]{
	{model.NeoplasmBone, []string{"bone", "bones", "osseous", "skeletal"}},
	{model.NeoplasmLiver, []string{"liver", "hepatic"}},
	{model.NeoplasmBrain, []string{"brain", "cerebral", "intracranial"}},
	{model.NeoplasmLung, []string{"lung", "lungs", "pulmonary"}},
}

// HistoryCues mark a malignancy as personal history rather than active.
var HistoryCues = []string{"history of", "h/o", "hx of", "personal history", "status post", "s/p", "previously treated", "in remission", "remote history"}

// Sexes name the patient's documented sex.
var Sexes = Lookup[model.Sex]{
	{model.SexFemale, []string{"female", "woman", "f"}},
	{model.SexMale, []string{"male", "man", "m"}},
}

// Trimesters name a trimester.
var Trimesters = Lookup[model.Trimester]{
	{model.TrimesterFirst, []string{"first", "1st", "1"}},
	{model.TrimesterSecond, []string{"second", "2nd", "2"}},
	{model.TrimesterThird, []string{"third", "3rd", "3"}},
}

// TrimesterForWeeks derives the trimester from completed weeks of gestation.
func TrimesterForWeeks(weeks int) model.Trimester {
	switch {
	case weeks <= 0:
		return model.TrimesterUnspecified
	case weeks < 14:
		return model.TrimesterFirst
	case weeks < 28:
		return model.TrimesterSecond
	}
	return model.TrimesterThird
}

// GDMControls name how gestational diabetes is managed.
var GDMControls = Lookup[model.GDMControl]{
	{model.GDMInsulin, []string{"insulin", "insulin controlled", "insulin-controlled", "a2gdm"}},
	{model.GDMOral, []string{"oral", "metformin", "glyburide", "oral hypoglycemic"}},
	{model.GDMDiet, []string{"diet", "diet controlled", "diet-controlled", "a1gdm"}},
}

// SeverePreeclampsiaCues mark severe pre-eclampsia.
var SeverePreeclampsiaCues = []string{"severe", "with severe features", "hellp"}

// InsulinPhrases and OralAgentPhrases name long-term diabetes medications.
var (
	InsulinPhrases   = []string{"insulin", "lantus", "glargine", "humalog", "lispro", "novolog", "aspart", "levemir", "detemir"}
	OralAgentPhrases = []string{"metformin", "glipizide", "glyburide", "glimepiride", "sitagliptin", "pioglitazone", "oral hypoglycemic", "oral agent", "oral agents", "oral antidiabetic"}
)

// Reasons classify a stated administrative reason for encounter. Phrases
// carry their preposition so "ckd, not on dialysis" does not read as a
// dialysis visit; ReasonValues covers bare field values.
var Reasons = Lookup[model.ReasonKind]{
	{model.ReasonDialysis, []string{"for dialysis", "for hemodialysis", "for peritoneal dialysis", "routine dialysis", "scheduled dialysis", "maintenance dialysis", "outpatient dialysis", "dialysis session", "routine hemodialysis"}},
	{model.ReasonChemotherapy, []string{"for chemotherapy", "for chemo", "chemotherapy infusion", "scheduled chemotherapy", "chemotherapy session", "for antineoplastic"}},
	{model.ReasonRadiation, []string{"for radiation", "for radiotherapy", "scheduled radiation", "radiation therapy session", "for xrt"}},
	{model.ReasonFollowUp, []string{"for follow-up", "for follow up", "for followup", "follow-up visit", "follow-up examination", "routine follow-up", "surveillance visit"}},
}

// ReasonValues classify a field value that is only the reason's name.
var ReasonValues = map[string]model.ReasonKind{
	"dialysis":            model.ReasonDialysis,
	"hemodialysis":        model.ReasonDialysis,
	"peritoneal dialysis": model.ReasonDialysis,
	"chemotherapy":        model.ReasonChemotherapy,
	"chemo":               model.ReasonChemotherapy,
	"radiation":           model.ReasonRadiation,
	"radiation therapy":   model.ReasonRadiation,
	"radiotherapy":        model.ReasonRadiation,
	"follow-up":           model.ReasonFollowUp,
	"follow up":           model.ReasonFollowUp,
	"followup":            model.ReasonFollowUp,
}

// ClinicalReasons map a clinical reason's wording to the family whose code
// it names. Order matters: "sepsis due to pneumonia" is a sepsis reason.
var ClinicalReasons = Lookup[model.Family]{
	{model.FamilySepsis, []string{"septic shock", "severe sepsis", "sepsis", "septic"}},
	{model.FamilyRespFailure, []string{"respiratory failure"}},
	{model.FamilyHeartFailure, []string{"heart failure", "chf", "hfref", "hfpef"}},
	{model.FamilyInfarction, []string{"nstemi", "stemi", "myocardial infarction"}},
	{model.FamilyHypertensiveCrisis, []string{"hypertensive emergency", "hypertensive urgency", "hypertensive crisis"}},
	{model.FamilyPneumonia, []string{"pneumonia", "aspiration"}},
	{model.FamilyCOPD, []string{"copd", "chronic obstructive"}},
	{model.FamilyAsthma, []string{"asthma", "status asthmaticus"}},
	{model.FamilyAKI, []string{"acute kidney injury", "aki", "acute renal failure"}},
	{model.FamilyAtrialFib, []string{"atrial fibrillation", "afib", "a-fib", "rvr"}},
	{model.FamilyInfection, []string{"urinary tract infection", "uti", "cellulitis", "bacteremia", "peritonitis"}},
	{model.FamilyDiabetes, []string{"hyperglycemia", "hypoglycemia", "diabetes", "diabetic"}},
	{model.FamilyFootUlcer, []string{"foot ulcer", "heel ulcer", "toe ulcer", "wound care"}},
	{model.FamilyPressureUlcer, []string{"pressure ulcer", "pressure injury", "decubitus"}},
	{model.FamilyFracture, []string{"fracture", "fx"}},
	{model.FamilyNeoplasm, []string{"cancer", "carcinoma", "malignancy", "tumor", "metastatic"}},
	{model.FamilyPregnancy, []string{"preeclampsia", "pre-eclampsia", "gestational", "pregnancy", "labor"}},
	{model.FamilyCKD, []string{"chronic kidney disease", "ckd", "esrd"}},
	{model.FamilyHypertension, []string{"hypertension", "htn"}},
}
