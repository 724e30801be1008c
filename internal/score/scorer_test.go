package score

import (
	"testing"

	"github.com/ppiankov/dxcoder/internal/model"
)

func codes(ids ...string) []model.Code {
	out := make([]model.Code, len(ids))
	for i, id := range ids {
		out[i] = model.Code{ID: id, Confidence: model.ConfidenceHigh}
	}
	return out
}

func signal(result model.Score, typ model.SignalType) (model.Signal, bool) {
	for _, s := range result.Signals {
		if s.Type == typ {
			return s, true
		}
	}
	return model.Signal{}, false
}

func TestScorer_Calculate_CleanResult(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Calculate(codes("I13.0", "I50.21", "N18.4"), nil, model.Record{})

	if result.Index != 100 {
		t.Errorf("Expected index 100 for specific codes without corrections, got %d", result.Index)
	}
	if result.Confidence != "high" {
		t.Errorf("Expected high confidence, got %s", result.Confidence)
	}
	if len(result.Signals) != 4 {
		t.Errorf("Expected 4 signals, got %d", len(result.Signals))
	}
}

func TestScorer_Calculate_Empty(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Calculate(nil, []model.Warning{{Kind: model.WarningFallback, Message: "insufficient documentation to code"}}, model.Record{})

	if result.Index != 0 {
		t.Errorf("Expected index 0, got %d", result.Index)
	}
	if result.Confidence != "low" {
		t.Errorf("Expected low confidence, got %s", result.Confidence)
	}
	if s, ok := signal(result, model.SignalInsufficient); !ok || s.Severity != model.SeverityCritical {
		t.Errorf("Expected a critical insufficient signal, got %+v", result.Signals)
	}
}

func TestScorer_Calculate_Specificity(t *testing.T) {
	tests := []struct {
		desc  string
		codes []model.Code
		score int
	}{
		{"all specific", codes("E11.22", "N18.4"), 40},
		{"half unspecified", codes("E11.9", "N18.4"), 20},
		{"all unspecified", codes("I50.9"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := NewScorer().Calculate(tt.codes, nil, model.Record{})
			s, ok := signal(result, model.SignalSpecificity)
			if !ok {
				t.Fatal("Expected a specificity signal")
			}
			if s.Data["score"] != tt.score {
				t.Errorf("Expected specificity score %d, got %v", tt.score, s.Data["score"])
			}
			if _, ok := s.Data["formula"]; !ok {
				t.Error("Expected the signal to carry its formula")
			}
		})
	}
}

func TestScorer_Calculate_Penalties(t *testing.T) {
	scorer := NewScorer()
	warnings := []model.Warning{
		{Kind: model.WarningStructural, Message: "CKD stage not documented"},
		{Kind: model.WarningSequencing, Message: "conflicting reasons for encounter"},
	}
	audit := model.Record{Removed: []model.Change{{Code: model.Code{ID: "I10"}}}}

	result := scorer.Calculate(codes("I12.9", "N18.4"), warnings, audit)

	// 40 + 20 + 16 + 10 - 10
	if result.Index != 76 {
		t.Errorf("Expected index 76, got %d", result.Index)
	}
	if result.Confidence != "low-medium" {
		t.Errorf("Expected low-medium confidence with a reason conflict, got %s", result.Confidence)
	}
	if _, ok := signal(result, model.SignalReasonConflict); !ok {
		t.Error("Expected a reason conflict signal")
	}
}

func TestScorer_Calculate_Fallback(t *testing.T) {
	c := codes("E78.5")
	c[0].Confidence = model.ConfidenceLow

	result := NewScorer().Calculate(c, nil, model.Record{Added: []model.Change{{Code: c[0]}}})

	if result.Confidence != "low" {
		t.Errorf("Expected low confidence for a fallback code, got %s", result.Confidence)
	}
	if s, ok := signal(result, model.SignalFallback); !ok || s.Severity != model.SeverityWarning {
		t.Errorf("Expected a fallback warning signal, got %+v", result.Signals)
	}
}
