// ABOUTME: Tests for export and import of interval data.
// ABOUTME: Covers JSON, YAML and Markdown output plus import merging.
package storage

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func setupExportStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(&flakyBlob{}, nil)
	s.Add("2025-01-01", "Run", "60")
	s.Add("2025-01-01", "Walk", "30")
	s.Add("2025-02-01", "Run", "3600")
	s.Get("2025-03-01")
	return s
}

func TestExportJSON(t *testing.T) {
	s := setupExportStore(t)

	data, err := s.ExportJSON("")
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if export.Version != ExportVersion || export.Tool != "intervals" {
		t.Errorf("header = %s/%s", export.Version, export.Tool)
	}
	if len(export.Dates) != 2 {
		t.Errorf("dates = %d, want 2 (empty dates omitted)", len(export.Dates))
	}
	if len(export.Dates["2025-01-01"]) != 2 {
		t.Errorf("2025-01-01 has %d intervals, want 2", len(export.Dates["2025-01-01"]))
	}
}

func TestExportSince(t *testing.T) {
	s := setupExportStore(t)
	data := s.GetAllData("2025-01-15")
	if _, ok := data.Dates["2025-01-01"]; ok {
		t.Error("expected dates before since to be dropped")
	}
	if _, ok := data.Dates["2025-02-01"]; !ok {
		t.Error("expected later date to be kept")
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	s := setupExportStore(t)

	data, err := s.ExportYAML("")
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	if !strings.Contains(string(data), "duration_seconds: 60") {
		t.Errorf("unexpected YAML:\n%s", data)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}

	parsed, err := ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport failed: %v", err)
	}

	dst := NewStore(&flakyBlob{}, nil)
	added, skipped := dst.ImportData(parsed)
	if added != 3 || skipped != 0 {
		t.Errorf("ImportData = (%d, %d), want (3, 0)", added, skipped)
	}
	if got, want := dst.Get("2025-01-01"), s.Get("2025-01-01"); len(got) != 2 || got[0].ID != want[0].ID || got[1].ID != want[1].ID {
		t.Errorf("imported sequence = %+v, want %+v", got, want)
	}
}

func TestParseExportJSONAndRawBlob(t *testing.T) {
	s := setupExportStore(t)
	data, _ := s.ExportJSON("")

	parsed, err := ParseExport(data)
	if err != nil {
		t.Fatalf("ParseExport(json) failed: %v", err)
	}
	if len(parsed.Dates) != 2 {
		t.Errorf("dates = %d, want 2", len(parsed.Dates))
	}

	raw, _ := Encode(s.All())
	parsed, err = ParseExport(raw)
	if err != nil {
		t.Fatalf("ParseExport(raw) failed: %v", err)
	}
	if len(parsed.Dates["2025-02-01"]) != 1 {
		t.Errorf("raw blob import lost data: %+v", parsed.Dates)
	}

	dst := NewStore(&flakyBlob{}, nil)
	dst.ImportData(parsed)
	added, skipped := dst.ImportData(parsed)
	if added != 0 || skipped != 3 {
		t.Errorf("re-import = (%d, %d), want (0, 3)", added, skipped)
	}
}

func TestParseExportErrors(t *testing.T) {
	for _, input := range []string{"", "{bad json", "just: [yaml"} {
		if _, err := ParseExport([]byte(input)); err == nil {
			t.Errorf("ParseExport(%q) expected error", input)
		}
	}
	if _, err := ParseExport([]byte("foo: bar\n")); err == nil {
		t.Error("expected error for YAML without dates")
	}
}

func TestExportMarkdown(t *testing.T) {
	s := setupExportStore(t)

	md := s.ExportMarkdown("", "")
	for _, want := range []string{"# Interval Export", "## 2025-01-01", "## 2025-02-01", "| 1 | Run | 60 |", "| 2 | Walk | 30 |", "Total: 1:30", "Total: 1:00:00"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "2025-03-01") {
		t.Error("empty date should not be exported")
	}

	single := s.ExportMarkdown("2025-02-01", "")
	if strings.Contains(single, "## 2025-01-01") {
		t.Error("single-date export included other dates")
	}

	empty := s.ExportMarkdown("1999-01-01", "")
	if !strings.Contains(empty, "No intervals found.") {
		t.Errorf("expected empty notice, got:\n%s", empty)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{-4, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.secs); got != tt.want {
			t.Errorf("FormatClock(%d) = %s, want %s", tt.secs, got, tt.want)
		}
	}
}
