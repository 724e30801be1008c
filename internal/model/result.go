package model

// WarningKind classifies a non-fatal finding.
type WarningKind string

const (
	WarningInput       WarningKind = "input"       // Input was truncated or bounded
	WarningParse       WarningKind = "parse"       // A line or field could not be classified
	WarningStructural  WarningKind = "structural"  // A required attribute was not documented
	WarningCompanion   WarningKind = "companion"   // A required companion code could not be built
	WarningSpecificity WarningKind = "specificity" // Raw text and candidate disagree
	WarningFallback    WarningKind = "fallback"    // Fallback could not decide
	WarningSequencing  WarningKind = "sequencing"  // Conflicting reasons for encounter
)

// Warning is a non-fatal, user-visible finding.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
	Line    int         `json:"line,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// Change is one logged addition or removal.
type Change struct {
	Code     Code   `json:"code"`
	Reason   string `json:"reason"`
	Pass     string `json:"pass"`
	Replaces string `json:"replaces,omitempty"` // Code id this change replaces (for swaps)
}

// Move is one logged re-sequencing.
type Move struct {
	Code   string `json:"code"`
	From   int    `json:"from"`
	To     int    `json:"to"`
	Reason string `json:"reason"`
	Pass   string `json:"pass"`
}

// Record is the audit trail accumulated across validation passes.
type Record struct {
	Removed  []Change  `json:"removed,omitempty"`
	Added    []Change  `json:"added,omitempty"`
	Moved    []Move    `json:"moved,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Merge appends another record's entries.
func (r Record) Merge(o Record) Record {
	r.Removed = append(r.Removed, o.Removed...)
	r.Added = append(r.Added, o.Added...)
	r.Moved = append(r.Moved, o.Moved...)
	r.Warnings = append(r.Warnings, o.Warnings...)
	return r
}

// Empty reports whether the record holds no entries.
func (r Record) Empty() bool {
	return len(r.Removed) == 0 && len(r.Added) == 0 && len(r.Moved) == 0 && len(r.Warnings) == 0
}

// Status distinguishes a coded result from a documented inability to code.
type Status string

const (
	StatusCoded                     Status = "coded"
	StatusInsufficientDocumentation Status = "insufficient_documentation"
)

// Result is the outcome of coding one case.
type Result struct {
	CaseID    string    `json:"case_id"`
	Status    Status    `json:"status"`
	Principal *Code     `json:"principal,omitempty"`
	Secondary []Code    `json:"secondary"`
	Codes     []Code    `json:"codes"`
	Warnings  []Warning `json:"warnings"`
	Audit     Record    `json:"audit"`
	Score     Score     `json:"score"`
	Context   *Context  `json:"context,omitempty"` // populated only when requested
}

// NewResult builds a Result from the final ordered code list.
func NewResult(caseID string, codes []Code, warnings []Warning, audit Record) Result {
	r := Result{
		CaseID:    caseID,
		Status:    StatusCoded,
		Secondary: []Code{},
		Codes:     codes,
		Warnings:  warnings,
		Audit:     audit,
	}
	if r.Codes == nil {
		r.Codes = []Code{}
	}
	if r.Warnings == nil {
		r.Warnings = []Warning{}
	}
	if len(codes) == 0 {
		r.Status = StatusInsufficientDocumentation
		return r
	}
	principal := codes[0]
	r.Principal = &principal
	r.Secondary = append(r.Secondary, codes[1:]...)
	return r
}
