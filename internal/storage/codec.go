// ABOUTME: JSON encoding of the date-keyed interval mapping.
// ABOUTME: Missing or blank buffers decode to an empty mapping.
package storage

import (
	"bytes"
	"encoding/json"

	"github.com/harperreed/intervals/internal/models"
)

// Encode serializes the full mapping.
func Encode(byDate map[string]models.Sequence) ([]byte, error) {
	out := make(map[string]models.Sequence, len(byDate))
	for key, seq := range byDate {
		if seq == nil {
			seq = models.Sequence{}
		}
		out[key] = seq
	}
	return json.Marshal(out)
}

// Decode parses a blob written by Encode. Unknown fields are ignored.
func Decode(data []byte) (map[string]models.Sequence, error) {
	byDate := make(map[string]models.Sequence)
	if len(bytes.TrimSpace(data)) == 0 {
		return byDate, nil
	}

	if err := json.Unmarshal(data, &byDate); err != nil {
		return make(map[string]models.Sequence), err
	}
	for key, seq := range byDate {
		if seq == nil {
			byDate[key] = models.Sequence{}
		}
	}
	return byDate, nil
}
