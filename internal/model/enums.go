package model

// Family identifies a condition family in the clinical context.
type Family string

const (
	FamilyHypertension       Family = "hypertension"
	FamilyHypertensiveCrisis Family = "hypertensive_crisis"
	FamilyHeartFailure       Family = "heart_failure"
	FamilyAtrialFib          Family = "atrial_fibrillation"
	FamilyCoronary           Family = "coronary_artery_disease"
	FamilyInfarction         Family = "myocardial_infarction"
	FamilyCKD                Family = "ckd"
	FamilyDialysis           Family = "dialysis"
	FamilyTransplant         Family = "kidney_transplant"
	FamilyAKI                Family = "aki"
	FamilyDiabetes           Family = "diabetes"
	FamilySepsis             Family = "sepsis"
	FamilySepticShock        Family = "septic_shock"
	FamilyInfection          Family = "infection"
	FamilyPneumonia          Family = "pneumonia"
	FamilyCOPD               Family = "copd"
	FamilyAsthma             Family = "asthma"
	FamilyRespFailure        Family = "respiratory_failure"
	FamilyFootUlcer          Family = "foot_ulcer"
	FamilyPressureUlcer      Family = "pressure_ulcer"
	FamilyFracture           Family = "fracture"
	FamilyFall               Family = "fall"
	FamilyNeoplasm           Family = "neoplasm"
	FamilyPregnancy          Family = "pregnancy"
	FamilyEncounter          Family = "encounter"
	FamilyPatient            Family = "patient"
)

// Laterality of a body site.
type Laterality string

const (
	LateralityUnspecified Laterality = ""
	LateralityRight       Laterality = "right"
	LateralityLeft        Laterality = "left"
)

// HFType is the heart failure type.
type HFType string

const (
	HFUnspecified HFType = ""
	HFSystolic    HFType = "systolic"
	HFDiastolic   HFType = "diastolic"
	HFCombined    HFType = "combined"
)

// Acuity applies to heart failure and respiratory failure.
type Acuity string

const (
	AcuityUnspecified    Acuity = ""
	AcuityAcute          Acuity = "acute"
	AcuityChronic        Acuity = "chronic"
	AcuityAcuteOnChronic Acuity = "acute_on_chronic"
)

// CKDStage is a chronic kidney disease stage. Ordering follows vocab.CKDStageLadder.
type CKDStage string

const (
	CKDStageUnspecified CKDStage = ""
	CKDStage1           CKDStage = "1"
	CKDStage2           CKDStage = "2"
	CKDStage3           CKDStage = "3"
	CKDStage3a          CKDStage = "3a"
	CKDStage3b          CKDStage = "3b"
	CKDStage4           CKDStage = "4"
	CKDStage5           CKDStage = "5"
	CKDStageESRD        CKDStage = "esrd"
)

// DialysisModality of a patient on dialysis.
type DialysisModality string

const (
	DialysisNone        DialysisModality = ""
	DialysisUnspecified DialysisModality = "unspecified"
	DialysisHemo        DialysisModality = "hemodialysis"
	DialysisPeritoneal  DialysisModality = "peritoneal"
)

// DMType is the diabetes mellitus type.
type DMType string

const (
	DMUnspecified DMType = ""
	DMType1       DMType = "type1"
	DMType2       DMType = "type2"
)

// DMComplication is a documented diabetic complication.
type DMComplication string

const (
	DMCompCKD           DMComplication = "ckd"
	DMCompNeuropathy    DMComplication = "neuropathy"
	DMCompPolyneuropathy DMComplication = "polyneuropathy"
	DMCompGastroparesis DMComplication = "gastroparesis"
	DMCompRetinopathy   DMComplication = "retinopathy"
	DMCompAngiopathy    DMComplication = "peripheral_angiopathy"
	DMCompFootUlcer     DMComplication = "foot_ulcer"
	DMCompHyperglycemia DMComplication = "hyperglycemia"
	DMCompHypoglycemia  DMComplication = "hypoglycemia"
)

// Organism is an infecting organism.
type Organism string

const (
	OrganismUnspecified Organism = ""
	OrganismEColi       Organism = "e_coli"
	OrganismKlebsiella  Organism = "klebsiella"
	OrganismPseudomonas Organism = "pseudomonas"
	OrganismProteus     Organism = "proteus"
	OrganismMRSA        Organism = "mrsa"
	OrganismMSSA        Organism = "mssa"
	OrganismStrepPneumo Organism = "strep_pneumoniae"
	OrganismEnterococcus Organism = "enterococcus"
)

// InfectionSite is the documented source of an infection.
type InfectionSite string

const (
	SiteUnspecified InfectionSite = ""
	SiteUrinary     InfectionSite = "urinary"
	SiteLung        InfectionSite = "lung"
	SiteSkin        InfectionSite = "skin"
	SiteAbdomen     InfectionSite = "abdomen"
	SiteBlood       InfectionSite = "blood"
)

// AsthmaSeverity ladder value.
type AsthmaSeverity string

const (
	AsthmaUnspecified  AsthmaSeverity = ""
	AsthmaIntermittent AsthmaSeverity = "mild_intermittent"
	AsthmaMild         AsthmaSeverity = "mild_persistent"
	AsthmaModerate     AsthmaSeverity = "moderate_persistent"
	AsthmaSevere       AsthmaSeverity = "severe_persistent"
)

// GasExchange qualifies respiratory failure.
type GasExchange string

const (
	GasUnspecified GasExchange = ""
	GasHypoxia     GasExchange = "hypoxia"
	GasHypercapnia GasExchange = "hypercapnia"
)

// UlcerSite is a non-pressure chronic ulcer location of the lower limb.
type UlcerSite string

const (
	UlcerSiteUnspecified UlcerSite = ""
	UlcerSiteCalf        UlcerSite = "calf"
	UlcerSiteAnkle       UlcerSite = "ankle"
	UlcerSiteHeel        UlcerSite = "heel_midfoot"
	UlcerSiteFoot        UlcerSite = "other_foot"
)

// Depth is the documented ulcer depth. Ordering follows vocab.DepthLadder.
type Depth string

const (
	DepthUnspecified Depth = ""
	DepthSkin        Depth = "skin"
	DepthFat         Depth = "fat"
	DepthMuscle      Depth = "muscle"
	DepthBone        Depth = "bone"
)

// PressureSite is a pressure ulcer location.
type PressureSite string

const (
	PressureSiteUnspecified PressureSite = ""
	PressureSiteSacral      PressureSite = "sacral"
	PressureSiteHip         PressureSite = "hip"
	PressureSiteButtock     PressureSite = "buttock"
	PressureSiteHeel        PressureSite = "heel"
)

// PressureStage of a pressure ulcer. Ordering follows vocab.PressureStageLadder.
type PressureStage string

const (
	PressureStageUnspecified PressureStage = ""
	PressureStage1           PressureStage = "1"
	PressureStage2           PressureStage = "2"
	PressureStage3           PressureStage = "3"
	PressureStage4           PressureStage = "4"
	PressureStageUnstageable PressureStage = "unstageable"
)

// FractureSite of a documented fracture.
type FractureSite string

const (
	FractureSiteUnspecified FractureSite = ""
	FractureSiteFemoralNeck FractureSite = "femoral_neck"
	FractureSiteDistalRadius FractureSite = "distal_radius"
	FractureSiteRib         FractureSite = "rib"
)

// EncounterType is the injury 7th-character episode of care.
type EncounterType string

const (
	EncounterUnspecified EncounterType = ""
	EncounterInitial     EncounterType = "initial"
	EncounterSubsequent  EncounterType = "subsequent"
	EncounterSequela     EncounterType = "sequela"
)

// NeoplasmSite of a malignancy.
type NeoplasmSite string

const (
	NeoplasmSiteUnspecified NeoplasmSite = ""
	NeoplasmBreast          NeoplasmSite = "breast"
	NeoplasmLung            NeoplasmSite = "lung"
	NeoplasmColon           NeoplasmSite = "colon"
	NeoplasmProstate        NeoplasmSite = "prostate"
	NeoplasmPancreas        NeoplasmSite = "pancreas"
	NeoplasmBone            NeoplasmSite = "bone"
	NeoplasmLiver           NeoplasmSite = "liver"
	NeoplasmBrain           NeoplasmSite = "brain"
)

// Sex of the patient as documented.
type Sex string

const (
	SexUnspecified Sex = ""
	SexFemale      Sex = "female"
	SexMale        Sex = "male"
)

// Trimester of pregnancy.
type Trimester string

const (
	TrimesterUnspecified Trimester = ""
	TrimesterFirst       Trimester = "first"
	TrimesterSecond      Trimester = "second"
	TrimesterThird       Trimester = "third"
)

// GDMControl is how gestational diabetes is controlled.
type GDMControl string

const (
	GDMNone        GDMControl = ""
	GDMUnspecified GDMControl = "unspecified"
	GDMDiet        GDMControl = "diet"
	GDMInsulin     GDMControl = "insulin"
	GDMOral        GDMControl = "oral"
)

// AFibKind qualifies atrial fibrillation.
type AFibKind string

const (
	AFibUnspecified AFibKind = ""
	AFibParoxysmal  AFibKind = "paroxysmal"
	AFibPersistent  AFibKind = "persistent"
	AFibPermanent   AFibKind = "permanent"
	AFibChronic     AFibKind = "chronic"
)

// InfarctionKind qualifies a myocardial infarction.
type InfarctionKind string

const (
	InfarctionUnspecified InfarctionKind = ""
	InfarctionSTEMI       InfarctionKind = "stemi"
	InfarctionNSTEMI      InfarctionKind = "nstemi"
)

// CrisisKind qualifies a hypertensive crisis.
type CrisisKind string

const (
	CrisisNone        CrisisKind = ""
	CrisisUnspecified CrisisKind = "unspecified"
	CrisisUrgency     CrisisKind = "urgency"
	CrisisEmergency   CrisisKind = "emergency"
)

// ReasonKind classifies a stated reason for encounter.
type ReasonKind string

const (
	ReasonDialysis     ReasonKind = "dialysis"
	ReasonChemotherapy ReasonKind = "chemotherapy"
	ReasonRadiation    ReasonKind = "radiation"
	ReasonFollowUp     ReasonKind = "follow_up"
	ReasonClinical     ReasonKind = "clinical"
)

// IsAdministrative reports whether the reason maps to an administrative Z code.
func (k ReasonKind) IsAdministrative() bool {
	return k != ReasonClinical && k != ""
}
