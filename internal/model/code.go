package model

import "strings"

// Code is one diagnosis code candidate with its explanation trail.
type Code struct {
	ID         string     `json:"code"`                 // ICD-10-CM identifier, dedup identity
	Label      string     `json:"label"`                // Human-readable description
	Rationale  string     `json:"rationale"`            // Why this code was chosen
	Guideline  string     `json:"guideline,omitempty"`  // Guideline reference (e.g., "I.C.9.a.3")
	Trigger    string     `json:"trigger,omitempty"`    // Context fact(s) that fired the rule
	Rule       string     `json:"rule"`                 // Owning rule module or pass
	Confidence Confidence `json:"confidence,omitempty"` // high unless produced by a fallback
}

// Confidence marks how a code was derived.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// HasPrefix reports whether the code identifier starts with any prefix.
func (c Code) HasPrefix(prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(c.ID, p) {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the code id in the list, or -1.
func IndexOf(codes []Code, id string) int {
	for i, c := range codes {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the list holds the code id.
func Contains(codes []Code, id string) bool {
	return IndexOf(codes, id) >= 0
}

// IDs returns the code identifiers in order.
func IDs(codes []Code) []string {
	ids := make([]string, len(codes))
	for i, c := range codes {
		ids[i] = c.ID
	}
	return ids
}

// Dedupe keeps the first occurrence of each code id.
func Dedupe(codes []Code) []Code {
	seen := make(map[string]bool)
	var unique []Code

	for _, c := range codes {
		if !seen[c.ID] {
			seen[c.ID] = true
			unique = append(unique, c)
		}
	}

	return unique
}
