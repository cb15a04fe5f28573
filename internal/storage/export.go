// ABOUTME: Export and import functionality for interval data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/intervals/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export file.
const ExportVersion = "1.0"

// ExportData represents the full export format for interval data.
type ExportData struct {
	Version    string                     `json:"version" yaml:"version"`
	ExportedAt time.Time                  `json:"exported_at" yaml:"exported_at"`
	Tool       string                     `json:"tool" yaml:"tool"`
	Dates      map[string]models.Sequence `json:"dates" yaml:"dates"`
}

// GetAllData collects every non-empty date for export.
// A non-empty since (YYYY-MM-DD) drops earlier dates.
func (s *Store) GetAllData(since string) *ExportData {
	dates := make(map[string]models.Sequence)
	for key, seq := range s.All() {
		if len(seq) == 0 || (since != "" && key < since) {
			continue
		}
		dates[key] = seq
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "intervals",
		Dates:      dates,
	}
}

// ExportJSON exports all data as JSON.
func (s *Store) ExportJSON(since string) ([]byte, error) {
	return json.MarshalIndent(s.GetAllData(since), "", "  ")
}

// ExportYAML exports all data as YAML.
func (s *Store) ExportYAML(since string) ([]byte, error) {
	return yaml.Marshal(s.GetAllData(since))
}

// ExportMarkdown renders one table per date. A non-empty dateKey limits the
// export to that date.
func (s *Store) ExportMarkdown(dateKey, since string) string {
	data := s.GetAllData(since)

	var keys []string
	if dateKey != "" {
		if len(data.Dates[dateKey]) > 0 {
			keys = []string{dateKey}
		}
	} else {
		for _, key := range s.Dates() {
			if _, ok := data.Dates[key]; ok {
				keys = append(keys, key)
			}
		}
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Interval Export - %s\n\n", now.Format(models.DateKeyLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(keys) == 0 {
		sb.WriteString("No intervals found.\n")
		return sb.String()
	}

	for _, key := range keys {
		seq := data.Dates[key]
		sb.WriteString(fmt.Sprintf("## %s\n\n", key))
		sb.WriteString("| # | Kind | Seconds | ID |\n")
		sb.WriteString("|---|------|---------|----|\n")
		for i, iv := range seq {
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s |\n", i+1, iv.Kind, iv.WholeSeconds(), iv.ShortID()))
		}
		sb.WriteString(fmt.Sprintf("\nTotal: %s\n\n", FormatClock(int(seq.TotalSeconds()))))
	}

	return sb.String()
}

// ParseExport decodes a JSON or YAML export. A bare blob (date → intervals)
// is also accepted so raw backups can be restored.
func ParseExport(data []byte) (*ExportData, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty import file")
	}

	if trimmed[0] == '{' {
		var export ExportData
		if err := json.Unmarshal(trimmed, &export); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
		if export.Dates != nil {
			return &export, nil
		}

		byDate, err := Decode(trimmed)
		if err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
		return &ExportData{Version: ExportVersion, Tool: "intervals", Dates: byDate}, nil
	}

	var export ExportData
	if err := yaml.Unmarshal(trimmed, &export); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	if export.Dates == nil {
		return nil, fmt.Errorf("no dates found in import file")
	}
	return &export, nil
}

// ImportData merges an export into the store.
func (s *Store) ImportData(data *ExportData) (added, skipped int) {
	return s.Merge(data.Dates)
}

// FormatClock renders seconds as M:SS, or H:MM:SS past an hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
