package vocab

import "github.com/ppiankov/dxcoder/internal/model"

// Context attributes. Field handlers and narrative rules both assign through
// these names, so a field line and a sentence saying the same thing land in
// the same slot.
const (
	AttrHypertension    model.Attr = "hypertension"
	AttrHTNCrisis       model.Attr = "hypertension.crisis"
	AttrHeartFailure    model.Attr = "heart_failure"
	AttrHFType          model.Attr = "heart_failure.type"
	AttrHFAcuity        model.Attr = "heart_failure.acuity"
	AttrAtrialFib       model.Attr = "atrial_fibrillation"
	AttrCoronary        model.Attr = "coronary_artery_disease"
	AttrInfarction      model.Attr = "myocardial_infarction"
	AttrCKD             model.Attr = "ckd"
	AttrCKDStage        model.Attr = "ckd.stage"
	AttrESRD            model.Attr = "ckd.esrd"
	AttrDialysis        model.Attr = "renal.dialysis"
	AttrTransplant      model.Attr = "renal.transplant"
	AttrAKI             model.Attr = "aki"
	AttrEGFR            model.Attr = "egfr"
	AttrDiabetes        model.Attr = "diabetes"
	AttrDiabetesType    model.Attr = "diabetes.type"
	AttrDMComplication  model.Attr = "diabetes.complication"
	AttrInsulin         model.Attr = "medications.insulin"
	AttrOralAgent       model.Attr = "medications.oral_agent"
	AttrSepsis          model.Attr = "infection.sepsis"
	AttrSevereSepsis    model.Attr = "infection.severe_sepsis"
	AttrSepticShock     model.Attr = "infection.septic_shock"
	AttrOrganism        model.Attr = "infection.organism"
	AttrInfectionSite   model.Attr = "infection.site"
	AttrUTI             model.Attr = "infection.uti"
	AttrCellulitis      model.Attr = "infection.cellulitis"
	AttrBacteremia      model.Attr = "infection.bacteremia"
	AttrPeritonitis     model.Attr = "infection.peritonitis"
	AttrUrosepsis       model.Attr = "infection.urosepsis"
	AttrPneumonia       model.Attr = "pneumonia"
	AttrPneumoniaOrg    model.Attr = "pneumonia.organism"
	AttrAspiration      model.Attr = "pneumonia.aspiration"
	AttrCOPD            model.Attr = "copd"
	AttrCOPDExacerbate  model.Attr = "copd.exacerbation"
	AttrAsthma          model.Attr = "asthma"
	AttrAsthmaSeverity  model.Attr = "asthma.severity"
	AttrAsthmaExacerb   model.Attr = "asthma.exacerbation"
	AttrStatusAsthma    model.Attr = "asthma.status_asthmaticus"
	AttrRespFailure     model.Attr = "respiratory_failure"
	AttrFootUlcer       model.Attr = "foot_ulcer"
	AttrUlcerSite       model.Attr = "foot_ulcer.site"
	AttrUlcerDepth      model.Attr = "foot_ulcer.depth"
	AttrUlcerLaterality model.Attr = "foot_ulcer.laterality"
	AttrPressureUlcer   model.Attr = "pressure_ulcer"
	AttrPressureSite    model.Attr = "pressure_ulcer.site"
	AttrPressureStage   model.Attr = "pressure_ulcer.stage"
	AttrFracture        model.Attr = "fracture"
	AttrFractureSite    model.Attr = "fracture.site"
	AttrFractureSide    model.Attr = "fracture.laterality"
	AttrFractureEpisode model.Attr = "fracture.encounter"
	AttrFall            model.Attr = "fall"
	AttrNeoplasm        model.Attr = "neoplasm"
	AttrNeoplasmSite    model.Attr = "neoplasm.site"
	AttrCancerHistory   model.Attr = "neoplasm.history"
	AttrMetastasis      model.Attr = "neoplasm.metastasis"
	AttrNeoplasmAnemia  model.Attr = "neoplasm.anemia"
	AttrPregnancy       model.Attr = "pregnancy"
	AttrTrimester       model.Attr = "pregnancy.trimester"
	AttrGestationWeeks  model.Attr = "pregnancy.weeks"
	AttrGDM             model.Attr = "pregnancy.gdm"
	AttrPreeclampsia    model.Attr = "pregnancy.preeclampsia"
	AttrGestationalHTN  model.Attr = "pregnancy.gestational_hypertension"
	AttrSex             model.Attr = "patient.sex"
	AttrAdmissionReason model.Attr = "encounter.reason"
)

// attrFamilies maps each attribute to the family a negated mention denies.
var attrFamilies = map[model.Attr]model.Family{
	AttrHypertension:    model.FamilyHypertension,
	AttrHTNCrisis:       model.FamilyHypertensiveCrisis,
	AttrHeartFailure:    model.FamilyHeartFailure,
	AttrHFType:          model.FamilyHeartFailure,
	AttrHFAcuity:        model.FamilyHeartFailure,
	AttrAtrialFib:       model.FamilyAtrialFib,
	AttrCoronary:        model.FamilyCoronary,
	AttrInfarction:      model.FamilyInfarction,
	AttrCKD:             model.FamilyCKD,
	AttrCKDStage:        model.FamilyCKD,
	AttrESRD:            model.FamilyCKD,
	AttrDialysis:        model.FamilyDialysis,
	AttrTransplant:      model.FamilyTransplant,
	AttrAKI:             model.FamilyAKI,
	AttrEGFR:            model.FamilyCKD,
	AttrDiabetes:        model.FamilyDiabetes,
	AttrDiabetesType:    model.FamilyDiabetes,
	AttrDMComplication:  model.FamilyDiabetes,
	AttrInsulin:         model.FamilyDiabetes,
	AttrOralAgent:       model.FamilyDiabetes,
	AttrSepsis:          model.FamilySepsis,
	AttrSevereSepsis:    model.FamilySepsis,
	AttrSepticShock:     model.FamilySepticShock,
	AttrOrganism:        model.FamilyInfection,
	AttrInfectionSite:   model.FamilyInfection,
	AttrUTI:             model.FamilyInfection,
	AttrCellulitis:      model.FamilyInfection,
	AttrBacteremia:      model.FamilyInfection,
	AttrPeritonitis:     model.FamilyInfection,
	AttrUrosepsis:       model.FamilySepsis,
	AttrPneumonia:       model.FamilyPneumonia,
	AttrPneumoniaOrg:    model.FamilyPneumonia,
	AttrAspiration:      model.FamilyPneumonia,
	AttrCOPD:            model.FamilyCOPD,
	AttrCOPDExacerbate:  model.FamilyCOPD,
	AttrAsthma:          model.FamilyAsthma,
	AttrAsthmaSeverity:  model.FamilyAsthma,
	AttrAsthmaExacerb:   model.FamilyAsthma,
	AttrStatusAsthma:    model.FamilyAsthma,
	AttrRespFailure:     model.FamilyRespFailure,
	AttrFootUlcer:       model.FamilyFootUlcer,
	AttrUlcerSite:       model.FamilyFootUlcer,
	AttrUlcerDepth:      model.FamilyFootUlcer,
	AttrUlcerLaterality: model.FamilyFootUlcer,
	AttrPressureUlcer:   model.FamilyPressureUlcer,
	AttrPressureSite:    model.FamilyPressureUlcer,
	AttrPressureStage:   model.FamilyPressureUlcer,
	AttrFracture:        model.FamilyFracture,
	AttrFractureSite:    model.FamilyFracture,
	AttrFractureSide:    model.FamilyFracture,
	AttrFractureEpisode: model.FamilyFracture,
	AttrFall:            model.FamilyFall,
	AttrNeoplasm:        model.FamilyNeoplasm,
	AttrNeoplasmSite:    model.FamilyNeoplasm,
	AttrCancerHistory:   model.FamilyNeoplasm,
	AttrMetastasis:      model.FamilyNeoplasm,
	AttrNeoplasmAnemia:  model.FamilyNeoplasm,
	AttrPregnancy:       model.FamilyPregnancy,
	AttrTrimester:       model.FamilyPregnancy,
	AttrGestationWeeks:  model.FamilyPregnancy,
	AttrGDM:             model.FamilyPregnancy,
	AttrPreeclampsia:    model.FamilyPregnancy,
	AttrGestationalHTN:  model.FamilyPregnancy,
	AttrSex:             model.FamilyPatient,
	AttrAdmissionReason: model.FamilyEncounter,
}

// FamilyOf returns the family an attribute belongs to.
func FamilyOf(a model.Attr) (model.Family, bool) {
	f, ok := attrFamilies[a]
	return f, ok
}

// Denial maps a negated attribute to the family it denies. A negated detail
// attribute denies only its own narrow family where one exists: "no septic
// shock" must not deny sepsis itself.
func Denial(a model.Attr) (model.Family, bool) {
	switch a {
	case AttrSevereSepsis, AttrUrosepsis, AttrESRD:
		return "", false
	case AttrInsulin, AttrOralAgent, AttrEGFR:
		return "", false
	case AttrUTI, AttrCellulitis, AttrBacteremia, AttrPeritonitis:
		return "", false
	case AttrHFType, AttrHFAcuity, AttrCKDStage, AttrDiabetesType, AttrDMComplication,
		AttrOrganism, AttrInfectionSite, AttrPneumoniaOrg, AttrAspiration,
		AttrCOPDExacerbate, AttrAsthmaSeverity, AttrAsthmaExacerb, AttrStatusAsthma,
		AttrUlcerSite, AttrUlcerDepth, AttrUlcerLaterality, AttrPressureSite, AttrPressureStage,
		AttrFractureSite, AttrFractureSide, AttrFractureEpisode, AttrNeoplasmSite,
		AttrCancerHistory, AttrMetastasis, AttrNeoplasmAnemia, AttrTrimester,
		AttrGestationWeeks, AttrGDM, AttrPreeclampsia, AttrGestationalHTN,
		AttrSex, AttrAdmissionReason:
		return "", false
	}
	return FamilyOf(a)
}
