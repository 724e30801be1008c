package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// Scorer calculates the coding-confidence index and generates signals. The
// score describes a result; it never changes the codes.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores a final code list together with its warnings and the
// validation record.
func (s *Scorer) Calculate(codes []model.Code, warnings []model.Warning, audit model.Record) model.Score {
	if len(codes) == 0 {
		return model.Score{
			Index:      0,
			Confidence: "low",
			Signals: []model.Signal{{
				Type:        model.SignalInsufficient,
				Severity:    model.SeverityCritical,
				Description: "No codes assigned: insufficient documentation",
				Data: map[string]interface{}{
					"codes":    0,
					"warnings": len(warnings),
				},
			}},
		}
	}

	var signals []model.Signal

	// 1. Specificity (0-40 points)
	specificityScore, specificitySignal := s.calculateSpecificity(codes)
	signals = append(signals, specificitySignal)

	// 2. Documentation gaps (0-30 points)
	documentationScore, documentationSignal := s.calculateDocumentation(warnings)
	signals = append(signals, documentationSignal)

	// 3. Corrections made by validation (0-20 points)
	correctionScore, correctionSignal := s.calculateCorrections(audit)
	signals = append(signals, correctionSignal)

	// 4. Rule coverage (0-10 points)
	fallbackScore, fallbackSignal := s.calculateFallback(codes)
	signals = append(signals, fallbackSignal)

	// 5. Reason conflict (penalty)
	conflictDetected, conflictSignal := s.detectReasonConflict(warnings)
	if conflictDetected {
		signals = append(signals, conflictSignal)
	}

	totalScore := specificityScore + documentationScore + correctionScore + fallbackScore

	if conflictDetected {
		totalScore -= 10
		if totalScore < 0 {
			totalScore = 0
		}
	}

	confidence := s.determineConfidence(totalScore, fallbackScore == 0, conflictDetected)

	return model.Score{
		Index:      totalScore,
		Confidence: confidence,
		Signals:    signals,
	}
}

// calculateSpecificity scores the share of codes carrying full specificity (0-40 points)
func (s *Scorer) calculateSpecificity(codes []model.Code) (int, model.Signal) {
	var unspecified []string
	for _, c := range codes {
		if vocab.IsUnspecified(c.ID) {
			unspecified = append(unspecified, c.ID)
		}
	}

	ratio := float64(len(codes)-len(unspecified)) / float64(len(codes))
	score := int(math.Round(ratio * 40))

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 1.0 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalSpecificity,
		Severity:    severity,
		Description: fmt.Sprintf("Specific codes: %d/%d", len(codes)-len(unspecified), len(codes)),
		Data: map[string]interface{}{
			"codes":       len(codes),
			"unspecified": unspecified,
			"ratio":       ratio,
			"score":       score,
			"formula":     "(specific_count / code_count) * 40",
		},
	}
}

// calculateDocumentation penalizes missing required attributes (0-30 points)
func (s *Scorer) calculateDocumentation(warnings []model.Warning) (int, model.Signal) {
	gaps := 0
	parse := 0
	for _, w := range warnings {
		switch w.Kind {
		case model.WarningStructural, model.WarningCompanion:
			gaps++
		case model.WarningParse, model.WarningInput:
			parse++
		}
	}

	score := 30 - int(math.Min(float64(gaps*10+parse*2), 30))

	severity := model.SeverityInfo
	if gaps >= 2 {
		severity = model.SeverityCritical
	} else if gaps == 1 || parse > 0 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalDocumentation,
		Severity:    severity,
		Description: fmt.Sprintf("Documentation gaps: %d, unreadable lines: %d", gaps, parse),
		Data: map[string]interface{}{
			"gaps":    gaps,
			"parse":   parse,
			"score":   score,
			"formula": "30 - min(gaps * 10 + parse * 2, 30)",
		},
	}
}

// calculateCorrections scores how much validation had to change (0-20 points)
func (s *Scorer) calculateCorrections(audit model.Record) (int, model.Signal) {
	removed := len(audit.Removed)
	added := len(audit.Added)
	moved := len(audit.Moved)
	changes := removed + added

	score := 20 - int(math.Min(float64(changes*4), 20))

	severity := model.SeverityInfo
	if changes > 3 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalCorrections,
		Severity:    severity,
		Description: fmt.Sprintf("Validation changes: %d removed, %d added, %d moved", removed, added, moved),
		Data: map[string]interface{}{
			"removed": removed,
			"added":   added,
			"moved":   moved,
			"score":   score,
			"formula": "20 - min((removed + added) * 4, 20)",
		},
	}
}

// calculateFallback checks whether any code came from the fallback pass (0-10 points)
func (s *Scorer) calculateFallback(codes []model.Code) (int, model.Signal) {
	var low []string
	for _, c := range codes {
		if c.Confidence == model.ConfidenceLow {
			low = append(low, c.ID)
		}
	}

	if len(low) > 0 {
		return 0, model.Signal{
			Type:        model.SignalFallback,
			Severity:    model.SeverityWarning,
			Description: "No rule fired; code chosen by keyword fallback",
			Data: map[string]interface{}{
				"codes": low,
				"score": 0,
			},
		}
	}

	return 10, model.Signal{
		Type:        model.SignalFallback,
		Severity:    model.SeverityInfo,
		Description: "All codes derived by rule modules",
		Data:        map[string]interface{}{"score": 10},
	}
}

// detectReasonConflict reports competing reasons for encounter
func (s *Scorer) detectReasonConflict(warnings []model.Warning) (bool, model.Signal) {
	count := 0
	for _, w := range warnings {
		if w.Kind == model.WarningSequencing {
			count++
		}
	}
	if count == 0 {
		return false, model.Signal{}
	}

	return true, model.Signal{
		Type:        model.SignalReasonConflict,
		Severity:    model.SeverityWarning,
		Description: fmt.Sprintf("Competing reasons for encounter (%d)", count),
		Data: map[string]interface{}{
			"conflicts": count,
			"penalty":   10,
		},
	}
}

// determineConfidence determines the confidence level based on the score
func (s *Scorer) determineConfidence(score int, fallback bool, conflict bool) string {
	if fallback {
		return "low"
	}

	if conflict {
		return "low-medium"
	}

	if score >= 80 {
		return "high"
	} else if score >= 60 {
		return "medium"
	} else {
		return "low"
	}
}
