package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admit_note.txt")
	if err := os.WriteFile(path, []byte("Hypertension: Yes"), 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cs, err := NewLoader(nil, 0).Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cs.ID != "admit-note" {
		t.Errorf("Expected case id admit-note, got %q", cs.ID)
	}
	if cs.Name != "admit_note.txt" || cs.Text != "Hypertension: Yes" {
		t.Errorf("Unexpected case %+v", cs)
	}
}

func TestLoader_StdinBounded(t *testing.T) {
	cs, err := NewLoader(strings.NewReader(strings.Repeat("a", 100)), 10).Load("-")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cs.Name != "stdin" {
		t.Errorf("Expected name stdin, got %q", cs.Name)
	}
	if len(cs.Text) != 11 {
		t.Errorf("Expected 11 bytes (limit plus one), got %d", len(cs.Text))
	}
}

func TestLoader_Missing(t *testing.T) {
	if _, err := NewLoader(nil, 0).Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
