package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", false)

	log.Debug().Msg("hidden")
	log.Info().Str("case", "c1").Msg("coded")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line at info level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q", lines[0])
	}
	if entry["case"] != "c1" || entry["message"] != "coded" {
		t.Errorf("Expected case c1 and message coded, got %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected a timestamp")
	}
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", true)

	log.Debug().Msg("pass applied")

	if !strings.Contains(buf.String(), "pass applied") {
		t.Errorf("Expected debug output when verbose, got %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("Expected console output for text format, got %q", buf.String())
	}
}
