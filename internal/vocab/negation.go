package vocab

// Negation scope: a pre-negation cue denies a mention that starts within
// PreCueWindow tokens after it or after the last separator of a list the
// cue opens, a post-negation cue denies a mention that
// ends within PostCueWindow tokens before it, and neither reaches across a
// clause boundary.
const (
	PreCueWindow  = 5
	PostCueWindow = 3
)

// PreNegationCues precede the mention they deny. Multi-word cues are listed
// ahead of their prefixes.
var PreNegationCues = []string{
	"no evidence of", "no history of", "negative for", "free of", "absence of",
	"ruled out", "rules out", "rule out", "r/o",
	"denies", "denied", "without", "not", "no",
}

// PostNegationCues follow the mention they deny.
var PostNegationCues = []string{
	"has been ruled out", "was ruled out", "ruled out", "was excluded", "excluded",
	"is absent", "not present", "unlikely", "negative",
}

// ClauseBreakWords end a negation scope. Punctuation . ; : ! ? also ends one;
// a comma does not, so "no fever, chills, or sepsis" denies sepsis.
var ClauseBreakWords = map[string]bool{
	"but": true, "however": true, "although": true, "though": true, "except": true,
	"yet": true, "which": true, "who": true, "has": true, "have": true, "had": true,
	"presents": true, "presented": true, "diagnosed": true, "now": true,
}

// ListCoordinators join the items of a negated list. Like a comma they
// restart the pre-cue window without ending the clause.
var ListCoordinators = map[string]bool{"or": true, "and": true, "nor": true}

// ClauseBreakPunct end a negation scope.
const ClauseBreakPunct = ".;:!?"

// OrganismContradictions retract a named organism when present in a sentence
// about the infection family.
var OrganismContradictions = []string{
	"blood cultures negative", "blood culture negative", "cultures negative", "culture negative",
	"cultures were negative", "culture was negative", "no growth", "no organism identified",
	"no organisms identified", "organism not identified", "sputum culture negative",
	"sputum cultures negative", "cultures pending", "culture pending", "no organism isolated",
}

// SepsisKeywords and PneumoniaKeywords select the sentences the specificity
// pass reads for each family.
var (
	SepsisKeywords    = []string{"sepsis", "septic", "septicemia", "bacteremia", "blood culture", "blood cultures"}
	PneumoniaKeywords = []string{"pneumonia", "pna", "sputum", "sputum culture", "respiratory culture"}
)

// Abbreviations whose trailing period does not end a clause. Single-letter
// initials ("e. coli") are handled by the segmenter directly.
var Abbreviations = map[string]bool{
	"y.o.": true, "dr.": true, "vs.": true, "e.g.": true, "i.e.": true, "approx.": true,
	"st.": true, "mr.": true, "mrs.": true, "ms.": true, "hx.": true, "pt.": true,
}

// InitialContinuations follow a single-letter genus initial ("e. coli"). A
// period after a lone letter ends a clause unless one of these comes next.
var InitialContinuations = []string{
	"coli", "aureus", "pneumoniae", "faecalis", "faecium", "difficile", "mirabilis", "aeruginosa", "epidermidis",
}
