package model

// Score is the transparent coding-confidence breakdown. It never changes codes.
type Score struct {
	Index      int      `json:"index"`      // Overall confidence index (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`    // Diagnostic signals with transparent data
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`           // Signal classification
	Severity    SignalSeverity         `json:"severity"`       // info, warning, critical
	Description string                 `json:"description"`    // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"` // Transparent scoring data (formulas, inputs)
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalSpecificity    SignalType = "specificity"     // Share of unspecified codes
	SignalDocumentation  SignalType = "documentation"   // Structural and parse gaps
	SignalCorrections    SignalType = "corrections"     // Validation pipeline changes
	SignalFallback       SignalType = "fallback"        // Low-confidence fallback used
	SignalInsufficient   SignalType = "insufficient"    // Nothing could be coded
	SignalReasonConflict SignalType = "reason_conflict" // Competing reasons for encounter
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
