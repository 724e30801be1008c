package vocab

import (
	"fmt"
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
)

var labels = map[string]string{
	// Hypertensive disease
	"I10":   "Essential (primary) hypertension",
	"I11.0": "Hypertensive heart disease with heart failure",
	"I12.0": "Hypertensive chronic kidney disease with stage 5 chronic kidney disease or end stage renal disease",
	"I12.9": "Hypertensive chronic kidney disease with stage 1 through stage 4 chronic kidney disease, or unspecified chronic kidney disease",
	"I13.0": "Hypertensive heart and chronic kidney disease with heart failure and stage 1 through stage 4 chronic kidney disease, or unspecified chronic kidney disease",
	"I13.2": "Hypertensive heart and chronic kidney disease with heart failure and with stage 5 chronic kidney disease, or end stage renal disease",
	"I16.0": "Hypertensive urgency",
	"I16.1": "Hypertensive emergency",
	"I16.9": "Hypertensive crisis, unspecified",

	// Heart failure
	"I50.20": "Unspecified systolic (congestive) heart failure",
	"I50.21": "Acute systolic (congestive) heart failure",
	"I50.22": "Chronic systolic (congestive) heart failure",
	"I50.23": "Acute on chronic systolic (congestive) heart failure",
	"I50.30": "Unspecified diastolic (congestive) heart failure",
	"I50.31": "Acute diastolic (congestive) heart failure",
	"I50.32": "Chronic diastolic (congestive) heart failure",
	"I50.33": "Acute on chronic diastolic (congestive) heart failure",
	"I50.40": "Unspecified combined systolic (congestive) and diastolic (congestive) heart failure",
	"I50.41": "Acute combined systolic (congestive) and diastolic (congestive) heart failure",
	"I50.42": "Chronic combined systolic (congestive) and diastolic (congestive) heart failure",
	"I50.43": "Acute on chronic combined systolic (congestive) and diastolic (congestive) heart failure",
	"I50.9":  "Heart failure, unspecified",

	// Other cardiac
	"I48.0":  "Paroxysmal atrial fibrillation",
	"I48.19": "Other persistent atrial fibrillation",
	"I48.20": "Chronic atrial fibrillation, unspecified",
	"I48.21": "Permanent atrial fibrillation",
	"I48.91": "Unspecified atrial fibrillation",
	"I25.10": "Atherosclerotic heart disease of native coronary artery without angina pectoris",
	"I21.3":  "ST elevation (STEMI) myocardial infarction of unspecified site",
	"I21.4":  "Non-ST elevation (NSTEMI) myocardial infarction",
	"I21.9":  "Acute myocardial infarction, unspecified",

	// Renal
	"N18.1":  "Chronic kidney disease, stage 1",
	"N18.2":  "Chronic kidney disease, stage 2 (mild)",
	"N18.30": "Chronic kidney disease, stage 3 unspecified",
	"N18.31": "Chronic kidney disease, stage 3a",
	"N18.32": "Chronic kidney disease, stage 3b",
	"N18.4":  "Chronic kidney disease, stage 4 (severe)",
	"N18.5":  "Chronic kidney disease, stage 5",
	"N18.6":  "End stage renal disease",
	"N18.9":  "Chronic kidney disease, unspecified",
	"N17.9":  "Acute kidney failure, unspecified",
	"Z99.2":  "Dependence on renal dialysis",
	"Z94.0":  "Kidney transplant status",
	"Z49.31": "Encounter for adequacy testing for hemodialysis",
	"Z49.32": "Encounter for adequacy testing for peritoneal dialysis",

	// Diabetes
	"E11.9":   "Type 2 diabetes mellitus without complications",
	"E11.22":  "Type 2 diabetes mellitus with diabetic chronic kidney disease",
	"E11.40":  "Type 2 diabetes mellitus with diabetic neuropathy, unspecified",
	"E11.42":  "Type 2 diabetes mellitus with diabetic polyneuropathy",
	"E11.43":  "Type 2 diabetes mellitus with diabetic autonomic (poly)neuropathy",
	"E11.319": "Type 2 diabetes mellitus with unspecified diabetic retinopathy without macular edema",
	"E11.51":  "Type 2 diabetes mellitus with diabetic peripheral angiopathy without gangrene",
	"E11.621": "Type 2 diabetes mellitus with foot ulcer",
	"E11.65":  "Type 2 diabetes mellitus with hyperglycemia",
	"E11.649": "Type 2 diabetes mellitus with hypoglycemia without coma",
	"E10.9":   "Type 1 diabetes mellitus without complications",
	"E10.22":  "Type 1 diabetes mellitus with diabetic chronic kidney disease",
	"E10.40":  "Type 1 diabetes mellitus with diabetic neuropathy, unspecified",
	"E10.42":  "Type 1 diabetes mellitus with diabetic polyneuropathy",
	"E10.43":  "Type 1 diabetes mellitus with diabetic autonomic (poly)neuropathy",
	"E10.319": "Type 1 diabetes mellitus with unspecified diabetic retinopathy without macular edema",
	"E10.51":  "Type 1 diabetes mellitus with diabetic peripheral angiopathy without gangrene",
	"E10.621": "Type 1 diabetes mellitus with foot ulcer",
	"E10.65":  "Type 1 diabetes mellitus with hyperglycemia",
	"E10.649": "Type 1 diabetes mellitus with hypoglycemia without coma",
	"Z79.4":   "Long term (current) use of insulin",
	"Z79.84":  "Long term (current) use of oral hypoglycemic drugs",

	// Sepsis and infection
	"A41.9":  "Sepsis, unspecified organism",
	"A41.51": "Sepsis due to Escherichia coli [E. coli]",
	"A41.52": "Sepsis due to Pseudomonas",
	"A41.59": "Other Gram-negative sepsis",
	"A41.01": "Sepsis due to Methicillin susceptible Staphylococcus aureus",
	"A41.02": "Sepsis due to Methicillin resistant Staphylococcus aureus",
	"A40.3":  "Sepsis due to Streptococcus pneumoniae",
	"A41.81": "Sepsis due to Enterococcus",
	"R65.20": "Severe sepsis without septic shock",
	"R65.21": "Severe sepsis with septic shock",
	"N39.0":  "Urinary tract infection, site not specified",
	"L03.90": "Cellulitis, unspecified",
	"K65.9":  "Peritonitis, unspecified",
	"R78.81": "Bacteremia",
	"B96.20": "Unspecified Escherichia coli [E. coli] as the cause of diseases classified elsewhere",
	"B96.1":  "Klebsiella pneumoniae [K. pneumoniae] as the cause of diseases classified elsewhere",
	"B96.5":  "Pseudomonas (aeruginosa) (mallei) (pseudomallei) as the cause of diseases classified elsewhere",
	"B96.4":  "Proteus (mirabilis) (morganii) as the cause of diseases classified elsewhere",
	"B95.2":  "Enterococcus as the cause of diseases classified elsewhere",
	"B95.3":  "Streptococcus pneumoniae as the cause of diseases classified elsewhere",
	"B95.61": "Methicillin susceptible Staphylococcus aureus infection as the cause of diseases classified elsewhere",
	"B95.62": "Methicillin resistant Staphylococcus aureus infection as the cause of diseases classified elsewhere",

	// Respiratory
	"J18.9":   "Pneumonia, unspecified organism",
	"J13":     "Pneumonia due to Streptococcus pneumoniae",
	"J15.0":   "Pneumonia due to Klebsiella pneumoniae",
	"J15.1":   "Pneumonia due to Pseudomonas",
	"J15.5":   "Pneumonia due to Escherichia coli",
	"J15.6":   "Pneumonia due to other Gram-negative bacteria",
	"J15.8":   "Pneumonia due to other specified bacteria",
	"J15.211": "Pneumonia due to Methicillin susceptible Staphylococcus aureus",
	"J15.212": "Pneumonia due to Methicillin resistant Staphylococcus aureus",
	"J69.0":   "Pneumonitis due to inhalation of food and vomit",
	"J44.0":   "Chronic obstructive pulmonary disease with (acute) lower respiratory infection",
	"J44.1":   "Chronic obstructive pulmonary disease with (acute) exacerbation",
	"J44.9":   "Chronic obstructive pulmonary disease, unspecified",
	"J45.20":  "Mild intermittent asthma, uncomplicated",
	"J45.21":  "Mild intermittent asthma with (acute) exacerbation",
	"J45.22":  "Mild intermittent asthma with status asthmaticus",
	"J45.30":  "Mild persistent asthma, uncomplicated",
	"J45.31":  "Mild persistent asthma with (acute) exacerbation",
	"J45.32":  "Mild persistent asthma with status asthmaticus",
	"J45.40":  "Moderate persistent asthma, uncomplicated",
	"J45.41":  "Moderate persistent asthma with (acute) exacerbation",
	"J45.42":  "Moderate persistent asthma with status asthmaticus",
	"J45.50":  "Severe persistent asthma, uncomplicated",
	"J45.51":  "Severe persistent asthma with (acute) exacerbation",
	"J45.52":  "Severe persistent asthma with status asthmaticus",
	"J45.901": "Unspecified asthma with (acute) exacerbation",
	"J45.902": "Unspecified asthma with status asthmaticus",
	"J45.909": "Unspecified asthma, uncomplicated",
	"J96.00":  "Acute respiratory failure, unspecified whether with hypoxia or hypercapnia",
	"J96.01":  "Acute respiratory failure with hypoxia",
	"J96.02":  "Acute respiratory failure with hypercapnia",
	"J96.10":  "Chronic respiratory failure, unspecified whether with hypoxia or hypercapnia",
	"J96.11":  "Chronic respiratory failure with hypoxia",
	"J96.12":  "Chronic respiratory failure with hypercapnia",
	"J96.20":  "Acute and chronic respiratory failure, unspecified whether with hypoxia or hypercapnia",
	"J96.21":  "Acute and chronic respiratory failure with hypoxia",
	"J96.22":  "Acute and chronic respiratory failure with hypercapnia",
	"J96.90":  "Respiratory failure, unspecified, unspecified whether with hypoxia or hypercapnia",
	"J96.91":  "Respiratory failure, unspecified with hypoxia",
	"J96.92":  "Respiratory failure, unspecified with hypercapnia",

	// Oncology
	"C50.911": "Malignant neoplasm of unspecified site of right female breast",
	"C50.912": "Malignant neoplasm of unspecified site of left female breast",
	"C50.919": "Malignant neoplasm of unspecified site of unspecified female breast",
	"C50.921": "Malignant neoplasm of unspecified site of right male breast",
	"C50.922": "Malignant neoplasm of unspecified site of left male breast",
	"C50.929": "Malignant neoplasm of unspecified site of unspecified male breast",
	"C34.90":  "Malignant neoplasm of unspecified part of unspecified bronchus or lung",
	"C34.91":  "Malignant neoplasm of unspecified part of right bronchus or lung",
	"C34.92":  "Malignant neoplasm of unspecified part of left bronchus or lung",
	"C18.9":   "Malignant neoplasm of colon, unspecified",
	"C61":     "Malignant neoplasm of prostate",
	"C25.9":   "Malignant neoplasm of pancreas, unspecified",
	"C79.51":  "Secondary malignant neoplasm of bone",
	"C78.7":   "Secondary malignant neoplasm of liver and intrahepatic bile duct",
	"C79.31":  "Secondary malignant neoplasm of brain",
	"C78.00":  "Secondary malignant neoplasm of unspecified lung",
	"D63.0":   "Anemia in neoplastic disease",
	"Z85.3":   "Personal history of malignant neoplasm of breast",
	"Z85.118": "Personal history of other malignant neoplasm of bronchus and lung",
	"Z85.038": "Personal history of other malignant neoplasm of large intestine",
	"Z85.46":  "Personal history of malignant neoplasm of prostate",
	"Z85.07":  "Personal history of malignant neoplasm of pancreas",
	"Z51.11":  "Encounter for antineoplastic chemotherapy",
	"Z51.0":   "Encounter for antineoplastic radiation therapy",
	"Z08":     "Encounter for follow-up examination after completed treatment for malignant neoplasm",
	"Z09":     "Encounter for follow-up examination after completed treatment for conditions other than malignant neoplasm",

	// Obstetric
	"O10.011": "Pre-existing essential hypertension complicating pregnancy, first trimester",
	"O10.012": "Pre-existing essential hypertension complicating pregnancy, second trimester",
	"O10.013": "Pre-existing essential hypertension complicating pregnancy, third trimester",
	"O10.019": "Pre-existing essential hypertension complicating pregnancy, unspecified trimester",
	"O11.1":   "Pre-existing hypertension with pre-eclampsia, first trimester",
	"O11.2":   "Pre-existing hypertension with pre-eclampsia, second trimester",
	"O11.3":   "Pre-existing hypertension with pre-eclampsia, third trimester",
	"O11.9":   "Pre-existing hypertension with pre-eclampsia, unspecified trimester",
	"O13.1":   "Gestational [pregnancy-induced] hypertension without significant proteinuria, first trimester",
	"O13.2":   "Gestational [pregnancy-induced] hypertension without significant proteinuria, second trimester",
	"O13.3":   "Gestational [pregnancy-induced] hypertension without significant proteinuria, third trimester",
	"O13.9":   "Gestational [pregnancy-induced] hypertension without significant proteinuria, unspecified trimester",
	"O14.90":  "Unspecified pre-eclampsia, unspecified trimester",
	"O14.92":  "Unspecified pre-eclampsia, second trimester",
	"O14.93":  "Unspecified pre-eclampsia, third trimester",
	"O14.10":  "Severe pre-eclampsia, unspecified trimester",
	"O14.12":  "Severe pre-eclampsia, second trimester",
	"O14.13":  "Severe pre-eclampsia, third trimester",
	"O24.410": "Gestational diabetes mellitus in pregnancy, diet controlled",
	"O24.414": "Gestational diabetes mellitus in pregnancy, insulin controlled",
	"O24.415": "Gestational diabetes mellitus in pregnancy, controlled by oral hypoglycemic drugs",
	"O24.419": "Gestational diabetes mellitus in pregnancy, unspecified control",
	"Z33.1":   "Pregnant state, incidental",

	// Fallback-only conditions
	"D64.9":   "Anemia, unspecified",
	"E03.9":   "Hypothyroidism, unspecified",
	"E78.5":   "Hyperlipidemia, unspecified",
	"K21.9":   "Gastro-esophageal reflux disease without esophagitis",
	"F32.A":   "Depression, unspecified",
	"E66.9":   "Obesity, unspecified",
	"F03.90":  "Unspecified dementia, unspecified severity, without behavioral disturbance, psychotic disturbance, mood disturbance, and anxiety",
	"G43.909": "Migraine, unspecified, not intractable, without status migrainosus",
}

// Label returns the descriptor for a code. Structured families (L97, L89,
// fracture, external cause and weeks-of-gestation codes) are composed.
func Label(code string) string {
	if l, ok := labels[code]; ok {
		return l
	}
	switch {
	case strings.HasPrefix(code, "L97."):
		return footUlcerLabel(code)
	case strings.HasPrefix(code, "L89."):
		return pressureUlcerLabel(code)
	case strings.HasPrefix(code, "S72.00"), strings.HasPrefix(code, "S52.50"), strings.HasPrefix(code, "S22.3"):
		return fractureLabel(code)
	case strings.HasPrefix(code, "W19.XXX"):
		return "Unspecified fall, " + episodeLabel(code, false)
	case strings.HasPrefix(code, "Z3A."):
		return weeksLabel(code)
	}
	return ""
}

// NewCode builds a high-confidence code with its descriptor filled in.
func NewCode(id, rule, rationale, guideline, trigger string) model.Code {
	return model.Code{
		ID:         id,
		Label:      Label(id),
		Rationale:  rationale,
		Guideline:  guideline,
		Trigger:    trigger,
		Rule:       rule,
		Confidence: model.ConfidenceHigh,
	}
}

var (
	ulcerSiteNames = map[byte]string{'2': "calf", '3': "ankle", '4': "heel and midfoot", '5': "other part of foot"}
	sideNames      = map[byte]string{'1': "right", '2': "left", '0': "unspecified", '9': "unspecified"}
	ulcerDepths    = map[byte]string{
		'1': "limited to breakdown of skin",
		'2': "with fat layer exposed",
		'3': "with necrosis of muscle",
		'4': "with necrosis of bone",
		'9': "with unspecified severity",
	}
)

// L97.<site><side><depth>
func footUlcerLabel(code string) string {
	d := strings.TrimPrefix(code, "L97.")
	if len(d) != 3 {
		return ""
	}
	return fmt.Sprintf("Non-pressure chronic ulcer of %s %s %s", sideNames[d[1]], ulcerSiteNames[d[0]], ulcerDepths[d[2]])
}

var (
	pressureSiteNames = map[string]string{"15": "sacral region", "6": "heel", "2": "hip", "3": "buttock", "9": "unspecified site"}
	pressureStages    = map[byte]string{'0': "unstageable", '1': "stage 1", '2': "stage 2", '3': "stage 3", '4': "stage 4", '9': "unspecified stage"}
	// the unspecified-site subcategory numbers its stages differently
	unspecifiedSiteStages = map[byte]string{'0': "unspecified stage", '1': "stage 1", '2': "stage 2", '3': "stage 3", '4': "stage 4", '5': "unstageable"}
)

// L89.15<stage>, L89.<site><side><stage>, L89.9<stage>
func pressureUlcerLabel(code string) string {
	d := strings.TrimPrefix(code, "L89.")
	switch {
	case strings.HasPrefix(d, "15") && len(d) == 3:
		return fmt.Sprintf("Pressure ulcer of %s, %s", pressureSiteNames["15"], pressureStages[d[2]])
	case strings.HasPrefix(d, "9") && len(d) == 2:
		return fmt.Sprintf("Pressure ulcer of %s, %s", pressureSiteNames["9"], unspecifiedSiteStages[d[1]])
	case len(d) == 3:
		return fmt.Sprintf("Pressure ulcer of %s %s, %s", sideNames[d[1]], pressureSiteNames[d[:1]], pressureStages[d[2]])
	}
	return ""
}

func fractureLabel(code string) string {
	var base string
	switch {
	case strings.HasPrefix(code, "S72.00"):
		base = fmt.Sprintf("Fracture of unspecified part of neck of %s femur", sideWord(code[6]))
	case strings.HasPrefix(code, "S52.50"):
		base = fmt.Sprintf("Unspecified fracture of the lower end of %s radius", sideWord(code[6]))
	case strings.HasPrefix(code, "S22.3"):
		base = fmt.Sprintf("Fracture of one rib, %s side", sideNames[code[5]])
	}
	return base + ", " + episodeLabel(code, true)
}

func sideWord(b byte) string {
	if b == '9' {
		return "unspecified"
	}
	return sideNames[b]
}

func episodeLabel(code string, closed bool) string {
	switch code[len(code)-1] {
	case 'A':
		if closed {
			return "initial encounter for closed fracture"
		}
		return "initial encounter"
	case 'D':
		if closed {
			return "subsequent encounter for fracture with routine healing"
		}
		return "subsequent encounter"
	case 'S':
		return "sequela"
	}
	return ""
}

func weeksLabel(code string) string {
	switch code {
	case "Z3A.01":
		return "Less than 8 weeks gestation of pregnancy"
	case "Z3A.49":
		return "Greater than 42 weeks gestation of pregnancy"
	}
	return strings.TrimPrefix(code, "Z3A.") + " weeks gestation of pregnancy"
}
