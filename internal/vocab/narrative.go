package vocab

import (
	"regexp"
	"sync"

	"github.com/ppiankov/dxcoder/internal/model"
)

// Capture selects what a narrative rule hands to the attribute handler.
type Capture int

const (
	CaptureFixed  Capture = iota // the rule's Value
	CaptureMatch                 // the matched text
	CaptureClause                // the whole clause around the match
)

// Rule is one narrative pattern. Rules are applied in table order.
type Rule struct {
	Pattern   string
	Attr      model.Attr
	Value     string
	Capture   Capture
	Negatable bool
	Exclude   []string // longer phrases that swallow a match ("pulmonary hypertension")
	Unless    []string // clause words that void the rule
}

// CompiledRule pairs a rule with its compiled pattern.
type CompiledRule struct {
	Rule
	Re *regexp.Regexp
}

const organismAlt = `(?:e\.? ?coli|escherichia coli|klebsiella(?: pneumoniae)?|pseudomonas(?: aeruginosa)?|proteus(?: mirabilis)?|mrsa|mssa|methicillin[- ](?:resistant|susceptible|sensitive) staph(?:ylococcus)? aureus|staph(?:ylococcus)? aureus|s\. aureus|strep(?:tococcus)? pneumoniae|s\. pneumoniae|pneumococc(?:al|us)|enterococc(?:us|al)(?: faecalis)?|e\. faecalis)`

const hfNoun = `(?:heart failure|chf|cardiac failure)`

// priorPregnancy voids obstetric conditions from an earlier pregnancy.
var priorPregnancy = []string{"history of", "hx of", "h/o", "prior pregnancy", "previous pregnancy", "last pregnancy"}

// NarrativeRules is the ordered narrative rule table. Text is lower-cased
// before matching.
var NarrativeRules = []Rule{
	// Hypertension
	{Pattern: `\b(?:essential |primary |benign )?hypertension\b|\bhtn\b|\bhigh blood pressure\b|\bhypertensive (?:heart|kidney|renal|chronic kidney)`, Attr: AttrHypertension, Value: "yes", Negatable: true,
		Exclude: []string{"gestational hypertension", "pulmonary hypertension", "portal hypertension", "pregnancy induced hypertension", "pregnancy-induced hypertension", "intracranial hypertension", "ocular hypertension", "white coat hypertension"}},
	{Pattern: `\bhypertensive (?:urgency|emergency|crisis)\b`, Attr: AttrHTNCrisis, Capture: CaptureMatch, Negatable: true},

	// Heart failure
	{Pattern: `\b(?:congestive )?` + hfNoun + `\b|\bhfref\b|\bhfpef\b`, Attr: AttrHeartFailure, Value: "yes", Negatable: true,
		Exclude: []string{"right heart failure due to pulmonary"}},
	{Pattern: `\b(?:systolic|diastolic|combined|hfref|hfpef)(?: and (?:systolic|diastolic))?(?: \w+){0,2} ` + hfNoun + `\b|\bhfref\b|\bhfpef\b|\b` + hfNoun + ` with (?:reduced|preserved) ejection fraction\b`, Attr: AttrHFType, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\bacute on chronic(?: \w+){0,2} ` + hfNoun + `\b|\b(?:acute|chronic|decompensated)(?: \w+){0,2} ` + hfNoun + `\b|\b` + hfNoun + ` exacerbation\b|\bexacerbation of(?: \w+){0,2} ` + hfNoun + `\b`, Attr: AttrHFAcuity, Capture: CaptureMatch, Negatable: true},

	// Cardiac
	{Pattern: `\batrial fibrillation\b|\ba-?fib\b|\bafib\b`, Attr: AttrAtrialFib, Capture: CaptureClause, Negatable: true,
		Exclude: []string{"history of atrial fibrillation ablation"}},
	{Pattern: `\bcoronary artery disease\b|\bcad\b|\batherosclerotic heart disease\b`, Attr: AttrCoronary, Value: "yes", Negatable: true},
	{Pattern: `\bn?stemi\b|\b(?:non-?)?st[- ]elevation myocardial infarction\b|\bmyocardial infarction\b|\bheart attack\b`, Attr: AttrInfarction, Capture: CaptureMatch, Negatable: true,
		Unless: []string{"old myocardial infarction", "history of myocardial infarction", "prior myocardial infarction", "remote myocardial infarction"}},

	// Renal
	{Pattern: `\bchronic kidney disease\b|\bckd\b|\bchronic renal (?:disease|insufficiency|failure)\b`, Attr: AttrCKD, Value: "yes", Negatable: true,
		Unless: []string{"diabetic kidney"}},
	{Pattern: `\b(?:ckd|chronic kidney disease),? (?:stage )?(?:[1-5][ab]?|iii[ab]?|ii|i|iv|v)\b|\bstage (?:[1-5][ab]?|iii[ab]?|ii|i|iv|v) (?:ckd|chronic kidney disease)\b`, Attr: AttrCKDStage, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\besrd\b|\bend[- ]stage (?:renal|kidney) disease\b`, Attr: AttrESRD, Value: "yes", Negatable: true},
	{Pattern: `\bperitoneal dialysis\b|\bhemodialysis\b|\bhaemodialysis\b|\bdialysis\b`, Attr: AttrDialysis, Capture: CaptureMatch, Negatable: true,
		Unless: []string{"dialysis catheter removal", "avoid dialysis", "may need dialysis", "future dialysis"}},
	{Pattern: `\b(?:kidney|renal) transplant(?:ation)?\b|\bs/p (?:kidney|renal) transplant`, Attr: AttrTransplant, Value: "yes", Negatable: true},
	{Pattern: `\bacute kidney injury\b|\baki\b|\bacute renal failure\b`, Attr: AttrAKI, Value: "yes", Negatable: true},
	{Pattern: `\be?gfr\b`, Attr: AttrEGFR, Capture: CaptureMatch},

	// Diabetes
	{Pattern: `\bdiabetes(?: mellitus)?\b|\bt[12]dm\b|\bdm ?[12]?\b|\bn?iddm\b|\bdiabetic\b`, Attr: AttrDiabetes, Value: "yes", Negatable: true,
		Exclude: []string{"gestational diabetes", "diabetes insipidus", "pre-diabetes", "pre-diabetic", "non-diabetic", "non diabetic"}},
	{Pattern: `\btype (?:1|2|i|ii|one|two) (?:diabetes|dm)\b|\bt[12]dm\b|\bdm ?[12]\b|\bn?iddm\b|\bdiabetes(?: mellitus)?,? type (?:1|2|i|ii)\b`, Attr: AttrDiabetesType, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\bdiabetic (?:peripheral |autonomic )?(?:nephropathy|neuropathy|polyneuropathy|gastroparesis|retinopathy|angiopathy|kidney disease|ckd|chronic kidney disease|peripheral vascular disease|foot ulcer)\b|\b(?:diabetes|dm)(?: mellitus)?(?: type (?:1|2))? with (?:\w+ ){0,2}(?:nephropathy|neuropathy|polyneuropathy|gastroparesis|retinopathy|angiopathy|ckd|chronic kidney disease|hyperglycemia|hypoglycemia|foot ulcer)\b`, Attr: AttrDMComplication, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\b(?:poorly|inadequately|un) ?controlled (?:type (?:1|2|i|ii) )?(?:diabetes|dm)\b|\b(?:diabetes|dm) (?:is |remains )?(?:poorly controlled|out of control)\b|\bdiabetic hypoglycemia\b`, Attr: AttrDMComplication, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\b(?:on|uses|using|takes|taking|requires|requiring|long[- ]term|continue|continues) (?:\w+ )?(?:insulin|lantus|glargine|humalog|novolog|levemir)\b|\binsulin[- ](?:dependent|requiring|therapy)\b`, Attr: AttrInsulin, Value: "yes", Negatable: true},
	{Pattern: `\bmetformin\b|\bglipizide\b|\bglyburide\b|\bglimepiride\b|\bsitagliptin\b|\bpioglitazone\b|\boral (?:hypoglycemic|antidiabetic)s?\b`, Attr: AttrOralAgent, Value: "yes", Negatable: true,
		Unless: []string{"gestational"}},

	// Infection
	{Pattern: `\bsepsis\b|\bseptic\b|\bsepticemia\b`, Attr: AttrSepsis, Value: "yes", Negatable: true,
		Exclude: []string{"septic arthritis", "septic joint", "septic bursitis", "septic emboli", "septic thrombophlebitis"}},
	{Pattern: `\bsevere sepsis\b`, Attr: AttrSevereSepsis, Value: "yes", Negatable: true},
	{Pattern: `\bseptic shock\b`, Attr: AttrSepticShock, Value: "yes", Negatable: true},
	{Pattern: `\b` + organismAlt + ` (?:pneumonia|pna)\b|\b(?:pneumonia|pna) (?:due to|secondary to|from|caused by|with) (?:\w+ ){0,2}` + organismAlt, Attr: AttrPneumoniaOrg, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\b` + organismAlt + `(?:\b|$)`, Attr: AttrOrganism, Capture: CaptureMatch, Negatable: true,
		Unless: []string{"colonization", "colonized", "carrier", "screen negative", "vaccine"}},
	{Pattern: `\burinary tract infection\b|\buti\b`, Attr: AttrUTI, Value: "yes", Negatable: true},
	{Pattern: `\b(?:urinary|urine) source\b|\bsource(?: of infection)? (?:is |was |likely |presumed )*(?:urinary|pulmonary|the lungs?|skin|soft tissue|abdominal|intra-abdominal)\b|\bsecondary to (?:urinary tract infection|uti|pneumonia|cellulitis|peritonitis)\b|\bdue to (?:urinary tract infection|uti|pneumonia|cellulitis|peritonitis)\b`, Attr: AttrInfectionSite, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\bcellulitis\b`, Attr: AttrCellulitis, Value: "yes", Negatable: true},
	{Pattern: `\bbacteremia\b`, Attr: AttrBacteremia, Value: "yes", Negatable: true},
	{Pattern: `\bperitonitis\b`, Attr: AttrPeritonitis, Value: "yes", Negatable: true},
	{Pattern: `\burosepsis\b`, Attr: AttrUrosepsis, Value: "yes"},

	// Respiratory
	{Pattern: `\bpneumonia\b|\bpna\b`, Attr: AttrPneumonia, Value: "yes", Negatable: true,
		Exclude: []string{"pneumonia vaccine", "pneumonia vaccination", "pneumococcal vaccine"}},
	{Pattern: `\baspiration (?:pneumonia|pneumonitis)\b`, Attr: AttrAspiration, Value: "yes", Negatable: true},
	{Pattern: `\bcopd\b|\bchronic obstructive pulmonary disease\b|\bchronic obstructive lung disease\b`, Attr: AttrCOPD, Value: "yes", Negatable: true},
	{Pattern: `\bcopd exacerbation\b|\bexacerbation of (?:his |her |their )?copd\b|\baecopd\b|\bcopd with (?:acute )?exacerbation\b|\bacute exacerbation of chronic obstructive\b`, Attr: AttrCOPDExacerbate, Value: "yes", Negatable: true},
	{Pattern: `\basthma\b`, Attr: AttrAsthma, Value: "yes", Negatable: true},
	{Pattern: `\b(?:mild intermittent|mild persistent|moderate persistent|severe persistent) asthma\b`, Attr: AttrAsthmaSeverity, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\basthma exacerbation\b|\bexacerbation of (?:his |her |their )?asthma\b|\basthma attack\b|\basthma with (?:acute )?exacerbation\b`, Attr: AttrAsthmaExacerb, Value: "yes", Negatable: true},
	{Pattern: `\bstatus asthmaticus\b`, Attr: AttrStatusAsthma, Value: "yes", Negatable: true},
	{Pattern: `\b(?:(?:acute on chronic|acute and chronic|acute|chronic) )?(?:(?:hypoxic|hypoxemic|hypercapnic|hypercarbic)(?: and (?:hypoxic|hypoxemic|hypercapnic|hypercarbic))? )?respiratory failure\b`, Attr: AttrRespFailure, Capture: CaptureMatch, Negatable: true},

	// Wounds
	{Pattern: `\bdiabetic foot ulcer\b|\bdfu\b|\bfoot ulcer\b|\b(?:heel|toe|plantar|ankle|midfoot|forefoot|metatarsal|calf|malleolar) ulcer\b|\bulcer (?:of|on) (?:the )?(?:\w+ )?(?:heel|toe|foot|ankle|midfoot|forefoot|calf)\b|\bnon-?pressure (?:chronic )?ulcer\b`, Attr: AttrFootUlcer, Capture: CaptureClause, Negatable: true,
		Unless: []string{"pressure", "decubitus"}},
	{Pattern: `\bpressure (?:ulcer|injury|sore)\b|\bdecubitus(?: ulcer)?\b|\bbed ?sore\b|\bsacral (?:ulcer|wound|decubitus)\b`, Attr: AttrPressureUlcer, Capture: CaptureClause, Negatable: true},

	// Trauma
	{Pattern: `\bfractures?\b|\bfractured\b|\bfx\b`, Attr: AttrFracture, Capture: CaptureClause, Negatable: true,
		Unless: []string{"history of fracture", "fracture risk", "risk of fracture"}},
	{Pattern: `\bfell\b|\bfall\b|\bfalling\b|\bmechanical fall\b|\bslipped and fell\b`, Attr: AttrFall, Value: "yes", Negatable: true,
		Exclude: []string{"fall risk", "risk of fall", "fall precautions", "risk for fall"}},

	// Oncology
	{Pattern: `\b(?:breast|lung|colon|colorectal|prostate|pancreatic|pancreas) (?:cancer|carcinoma|adenocarcinoma|malignancy|neoplasm)\b|\b(?:cancer|carcinoma|adenocarcinoma|malignant neoplasm|malignancy) of (?:the )?(?:\w+ )?(?:breast|lung|colon|prostate|pancreas)\b|\bnsclc\b|\bsmall cell lung\b`, Attr: AttrNeoplasm, Capture: CaptureClause, Negatable: true,
		Unless: []string{"family history", "screening"}},
	{Pattern: `\b(?:bone|osseous|liver|hepatic|brain|lung|pulmonary) (?:metastases|metastasis|mets|metastatic disease)\b|\bmetasta(?:sis|ses|tic|sized) to (?:the )?(?:bones?|liver|brain|lungs?)\b`, Attr: AttrMetastasis, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\banemia (?:due to|secondary to|of|in|associated with) (?:\w+ )?(?:cancer|malignancy|neoplasm|neoplastic disease)\b|\b(?:cancer|malignancy)[- ]related anemia\b`, Attr: AttrNeoplasmAnemia, Value: "yes", Negatable: true},

	// Obstetric
	{Pattern: `\bpregnant\b|\bpregnancy\b|\bgravid\b|\bintrauterine pregnancy\b|\biup\b|\bg\d+ ?p\d+`, Attr: AttrPregnancy, Capture: CaptureClause, Negatable: true,
		Exclude: []string{"pregnancy test", "ectopic pregnancy"}},
	{Pattern: `\b\d{1,2}(?:\+\d)? ?(?:weeks?|wks?)(?: and \d days?)?(?: of)? (?:gestation|gestational age|pregnant|ga|iup)\b|\b(?:ga|gestational age)(?: of| is)? \d{1,2}(?: weeks?| wks?)?\b`, Attr: AttrGestationWeeks, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\b(?:first|second|third|1st|2nd|3rd) trimester\b`, Attr: AttrTrimester, Capture: CaptureMatch, Negatable: true},
	{Pattern: `\bgestational diabetes(?: mellitus)?\b|\bgdm\b|\ba[12]gdm\b`, Attr: AttrGDM, Capture: CaptureClause, Negatable: true,
		Unless: priorPregnancy},
	{Pattern: `\bpre-?eclampsia\b|\bhellp\b`, Attr: AttrPreeclampsia, Capture: CaptureClause, Negatable: true,
		Unless: priorPregnancy},
	{Pattern: `\bgestational hypertension\b|\bpregnancy[- ]induced hypertension\b|\bpih\b`, Attr: AttrGestationalHTN, Value: "yes", Negatable: true},

	// Patient and encounter
	{Pattern: `\b\d{1,3}[- ]?(?:yo|y/o|y\.o\.|year[- ]old) (?:female|woman|male|man|f|m)\b|\b(?:female|male) patient\b`, Attr: AttrSex, Capture: CaptureMatch},
	{Pattern: `\b(?:admitted|presents?|presenting|presented|here|seen|scheduled|arrives?|came in|comes in)(?: \w+){0,2} (?:for|with) (?:[\w/-]+ ){0,6}[\w/-]+`, Attr: AttrAdmissionReason, Capture: CaptureMatch, Negatable: true},
}

var (
	compileOnce   sync.Once
	compiledRules []CompiledRule
)

// CompiledRules compiles the narrative table on first use. Patterns are
// constants, so a compile failure is a programming error and panics.
func CompiledRules() []CompiledRule {
	compileOnce.Do(func() {
		compiledRules = make([]CompiledRule, len(NarrativeRules))
		for i, r := range NarrativeRules {
			compiledRules[i] = CompiledRule{Rule: r, Re: regexp.MustCompile(`(?i)` + r.Pattern)}
		}
	})
	return compiledRules
}
