package worker

import "fmt"

// Phase names where a batch case failed.
type Phase string

const (
	PhaseLoad      Phase = "load"
	PhaseRateLimit Phase = "rate_limit"
	PhaseCode      Phase = "code"
	PhaseExport    Phase = "export"
)

// PhaseError wraps a batch failure with the phase and case it belongs to
type PhaseError struct {
	Phase  Phase
	CaseID string
	Err    error
}

func (e *PhaseError) Error() string {
	if e.CaseID == "" {
		return fmt.Sprintf("%s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Phase, e.CaseID, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
