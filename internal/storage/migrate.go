// ABOUTME: Data migration between interval storage backends.
// ABOUTME: Copies the decoded blob from a source backend to a destination backend.

package storage

import (
	"errors"
	"fmt"

	"github.com/harperreed/intervals/internal/models"
)

// ErrDestinationNotEmpty is returned when a migration would overwrite data.
var ErrDestinationNotEmpty = errors.New("destination already holds intervals")

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Dates     int
	Intervals int
}

// MigrateData copies all intervals from src to dst. The source is decoded
// first so a corrupt blob is never propagated. Unless force is set, the
// destination must not already hold any intervals.
func MigrateData(src, dst Blob, force bool) (*MigrateSummary, error) {
	raw, err := src.Read()
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	byDate, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode source: %w", err)
	}

	if !force {
		existing, err := dst.Read()
		if err != nil {
			return nil, fmt.Errorf("read destination: %w", err)
		}
		dstData, err := Decode(existing)
		if err == nil && summarize(dstData).Intervals > 0 {
			return nil, ErrDestinationNotEmpty
		}
	}

	summary := summarize(byDate)

	data, err := Encode(byDate)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := dst.Write(data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	return summary, nil
}

func summarize(byDate map[string]models.Sequence) *MigrateSummary {
	summary := &MigrateSummary{}
	for _, seq := range byDate {
		if len(seq) == 0 {
			continue
		}
		summary.Dates++
		summary.Intervals += len(seq)
	}
	return summary
}
