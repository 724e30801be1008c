package extract

import (
	"strings"
	"testing"
)

func TestNegationScope(t *testing.T) {
	tests := []struct {
		desc   string
		text   string
		phrase string
		want   bool
	}{
		{"adjacent pre-cue", "no hypertension", "hypertension", true},
		{"pre-cue within window", "denies chest pain or hypertension", "hypertension", true},
		{"pre-cue exactly at window", "no fever, chills, nausea, vomiting, or sepsis", "sepsis", true},
		{"pre-cue through a long list", "no fever, chills, nausea, vomiting, headache, or sepsis", "sepsis", true},
		{"pre-cue through a list ending in or", "patient denies chest pain, shortness of breath, or hypertension", "hypertension", true},
		{"pre-cue through a list without commas before or", "denies fever, chills, cough, nausea, vomiting or diabetes", "diabetes", true},
		{"pre-cue through a nor list", "no fever nor chills nor headache nor nausea nor vomiting nor sepsis", "sepsis", true},
		{"pre-cue beyond window", "no fever reported during the entire long admission with sepsis", "sepsis", false},
		{"list item beyond window", "no fever, seen in the clinic last week with sepsis", "sepsis", false},
		{"list does not cross a break word", "denies fever, chills, cough but has diabetes", "diabetes", false},
		{"comma keeps the clause", "without fever, sepsis", "sepsis", true},
		{"break word ends scope", "no fever but hypertension present", "hypertension", false},
		{"has ends scope", "no acute distress, has diabetes", "diabetes", false},
		{"period ends scope", "no fever. hypertension noted", "hypertension", false},
		{"semicolon ends scope", "no edema; heart failure", "heart failure", false},
		{"multi-word pre-cue", "no evidence of pneumonia", "pneumonia", true},
		{"abbreviated rule out", "r/o pneumonia", "pneumonia", true},
		{"post-cue", "pneumonia was ruled out", "pneumonia", true},
		{"post-cue within window", "sepsis on admission is absent", "sepsis", true},
		{"post-cue beyond window", "sepsis with severe acute kidney injury not present", "sepsis", false},
		{"cue after mention is not a pre-cue", "hypertension, no diabetes", "hypertension", false},
		{"cue scopes only its own mention", "e. coli sepsis without shock", "sepsis", false},
		{"cue scopes only its own mention", "e. coli sepsis without shock", "shock", true},
		{"genus initial does not end clause", "no e. coli", "coli", true},
		{"lone letter ends clause otherwise", "no hepatitis a. sepsis present", "sepsis", false},
		{"abbreviation does not end clause", "denies dr. visit for pneumonia", "pneumonia", true},
	}

	for _, tt := range tests {
		t.Run(tt.desc+"/"+tt.phrase, func(t *testing.T) {
			seg := segment(tt.text)
			at := strings.Index(tt.text, tt.phrase)
			if at < 0 {
				t.Fatalf("phrase %q not in %q", tt.phrase, tt.text)
			}
			got := seg.negated(at, at+len(tt.phrase))
			if got != tt.want {
				t.Errorf("Expected negated=%v for %q in %q, got %v", tt.want, tt.phrase, tt.text, got)
			}
		})
	}
}

func TestSegment_Clauses(t *testing.T) {
	seg := segment("sepsis due to e. coli. cultures pending; no shock but hypotension")

	tests := []struct {
		phrase string
		want   string
	}{
		{"sepsis", "sepsis due to e. coli"},
		{"cultures", "cultures pending"},
		{"shock", "no shock"},
		{"hypotension", "but hypotension"},
	}

	for _, tt := range tests {
		at := strings.Index(seg.text, tt.phrase)
		got := seg.clause(at, at+len(tt.phrase))
		if got != tt.want {
			t.Errorf("Expected clause %q for %q, got %q", tt.want, tt.phrase, got)
		}
	}
}

func TestNegationMatcher(t *testing.T) {
	match := NegationMatcher()

	if match("no bone exposed", "bone") {
		t.Error("Expected negated bone to be rejected")
	}
	if !match("no fever; bone exposed", "bone") {
		t.Error("Expected bone in a later clause to be accepted")
	}
	if !match("no bone. bone exposed at base", "bone") {
		t.Error("Expected a positive second occurrence to be accepted")
	}
}
