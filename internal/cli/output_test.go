package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

func sampleRecords() []event.Record {
	return []event.Record{
		{event.FieldGUID: "a", event.FieldTitle: "First"},
		{event.FieldGUID: "b", event.FieldTitle: "Second"},
		{event.FieldGUID: "c", event.FieldTitle: "Third"},
	}
}

func TestWriteRecordsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteRecords(sampleRecords(), path, 0, false); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Error("output is not 2-space indented")
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("record count = %d", len(decoded))
	}
	if decoded[0]["guid"] != "a" {
		t.Errorf("first record = %v", decoded[0])
	}
}

func TestWriteRecordsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteRecords(sampleRecords(), path, 2, false); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("record count = %d, want 2", len(decoded))
	}
}

func TestWriteRecordsBadPath(t *testing.T) {
	err := WriteRecords(sampleRecords(), filepath.Join(t.TempDir(), "missing", "out.json"), 0, false)
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{" on ", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		if got := Truthy(tt.in); got != tt.want {
			t.Errorf("Truthy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnvFallbackAppliesWhenFlagUnset(t *testing.T) {
	cmd := NewRootCmd()
	flagICSURL = ""
	flagEnrich = false
	t.Setenv("ICS_URL", "https://example.edu/feed.ics")
	t.Setenv("ENRICH_TITLES", "yes")

	resolveEnv(cmd)

	if flagICSURL != "https://example.edu/feed.ics" {
		t.Errorf("ics-url = %q", flagICSURL)
	}
	if !flagEnrich {
		t.Error("enrich-titles not enabled from env")
	}
}

func TestEnvFallbackSkippedWhenFlagSet(t *testing.T) {
	cmd := NewRootCmd()
	if err := cmd.Flags().Set("ics-url", "https://cli.example.edu/feed.ics"); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ICS_URL", "https://env.example.edu/feed.ics")

	resolveEnv(cmd)

	if flagICSURL != "https://cli.example.edu/feed.ics" {
		t.Errorf("explicit flag lost to env: %q", flagICSURL)
	}
}
