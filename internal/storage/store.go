// ABOUTME: Store owns the date-keyed interval sequences and their persistence.
// ABOUTME: Every mutation re-serializes the whole mapping and writes it back to the Blob.
package storage

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/intervals/internal/models"
)

var (
	// ErrNotFound is returned when no interval matches an ID or prefix.
	ErrNotFound = errors.New("interval not found")
	// ErrAmbiguous is returned when an ID prefix matches several intervals.
	ErrAmbiguous = errors.New("ambiguous interval prefix")
)

// Store maps date keys to interval sequences.
//
// Other processes may share the blob, so every mutation first rereads it and
// applies the change on top of what is saved. After a failed write the
// in-memory mapping holds changes the blob lacks; it stays authoritative
// and the next mutation retries the write.
type Store struct {
	mu     sync.RWMutex
	blob   Blob
	logger *log.Logger
	byDate map[string]models.Sequence
	dirty  bool
}

// NewStore returns an empty Store backed by blob. Call Load to read saved data.
func NewStore(blob Blob, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		blob:   blob,
		logger: logger,
		byDate: make(map[string]models.Sequence),
	}
}

// Load replaces the in-memory mapping with the blob contents.
// Missing data yields an empty mapping. Malformed or unreadable data also
// yields an empty mapping; the error is logged and returned for callers
// that want to report it.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.blob.Read()
	if err != nil {
		s.byDate = make(map[string]models.Sequence)
		perr := &PersistenceError{Op: "read", Err: err}
		s.logger.Warn("loading intervals failed, starting empty", "err", perr)
		return perr
	}

	byDate, err := Decode(data)
	if err != nil {
		s.byDate = make(map[string]models.Sequence)
		perr := &PersistenceError{Op: "decode", Err: err}
		s.logger.Warn("saved intervals are corrupt, starting empty", "err", perr)
		return perr
	}

	s.byDate = byDate
	s.dirty = false
	s.logger.Debug("loaded intervals", "dates", len(byDate))
	return nil
}

// Refresh rereads the blob so changes saved by another process become
// visible. Unsaved local changes, and unreadable or corrupt data, leave the
// in-memory mapping as it is.
func (s *Store) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked()
}

func (s *Store) refreshLocked() error {
	if s.dirty {
		return nil
	}
	data, err := s.blob.Read()
	if err != nil {
		perr := &PersistenceError{Op: "read", Err: err}
		s.logger.Debug("rereading intervals failed, keeping memory", "err", perr)
		return perr
	}
	byDate, err := Decode(data)
	if err != nil {
		perr := &PersistenceError{Op: "decode", Err: err}
		s.logger.Warn("saved intervals are corrupt, keeping memory", "err", perr)
		return perr
	}
	s.byDate = byDate
	return nil
}

// Add parses durationInput and appends a new interval of the given kind.
// Invalid kinds and durations are rejected without touching the store.
func (s *Store) Add(dateKey, kind, durationInput string) (models.Interval, error) {
	k, err := models.ParseKind(kind)
	if err != nil {
		return models.Interval{}, err
	}
	secs, err := models.ParseDuration(durationInput)
	if err != nil {
		return models.Interval{}, err
	}
	return s.append(dateKey, models.NewInterval(k, secs)), nil
}

// AddSeconds is Add for callers that already hold a numeric duration.
func (s *Store) AddSeconds(dateKey string, kind models.IntervalKind, secs float64) (models.Interval, error) {
	if _, err := models.ParseKind(string(kind)); err != nil {
		return models.Interval{}, err
	}
	if err := models.ValidateDuration(secs); err != nil {
		return models.Interval{}, err
	}
	return s.append(dateKey, models.NewInterval(kind, secs)), nil
}

func (s *Store) append(dateKey string, iv models.Interval) models.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.refreshLocked()
	s.byDate[dateKey] = append(s.byDate[dateKey], iv)
	_ = s.persistLocked()
	return iv
}

// Remove deletes the interval with the given ID from dateKey.
// It reports whether an interval was removed; an absent ID is not an error.
func (s *Store) Remove(dateKey string, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.refreshLocked()
	seq := s.byDate[dateKey]
	removed := false
	kept := make(models.Sequence, 0, len(seq))
	for _, iv := range seq {
		if iv.ID == id {
			removed = true
			continue
		}
		kept = append(kept, iv)
	}
	s.byDate[dateKey] = kept
	_ = s.persistLocked()
	return removed
}

// Resolve finds the interval on dateKey whose ID equals or starts with idOrPrefix.
func (s *Store) Resolve(dateKey, idOrPrefix string) (models.Interval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if prefix == "" {
		return models.Interval{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	var matches []models.Interval
	for _, iv := range s.byDate[dateKey] {
		if strings.HasPrefix(iv.ID.String(), prefix) {
			matches = append(matches, iv)
		}
	}

	switch len(matches) {
	case 0:
		return models.Interval{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.Interval{}, fmt.Errorf("%w %s: matches %d intervals", ErrAmbiguous, idOrPrefix, len(matches))
	}
}

// Clear empties the sequence for dateKey.
func (s *Store) Clear(dateKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.refreshLocked()
	s.byDate[dateKey] = models.Sequence{}
	_ = s.persistLocked()
}

// Get returns a copy of the sequence for dateKey, creating an empty one if absent.
func (s *Store) Get(dateKey string) models.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.byDate[dateKey]
	if !ok {
		seq = models.Sequence{}
		s.byDate[dateKey] = seq
	}
	return seq.Clone()
}

// Dates returns the sorted keys that have at least one interval.
func (s *Store) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key, seq := range s.byDate {
		if len(seq) > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// All returns a deep copy of the full mapping.
func (s *Store) All() map[string]models.Sequence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Sequence, len(s.byDate))
	for key, seq := range s.byDate {
		out[key] = seq.Clone()
	}
	return out
}

// Merge adds every interval in byDate whose ID is not already stored on
// that date. It returns how many were added and skipped.
func (s *Store) Merge(byDate map[string]models.Sequence) (added, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.refreshLocked()
	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, iv := range byDate[key] {
			if iv.ID == uuid.Nil {
				iv.ID = uuid.New()
			}
			if s.byDate[key].IndexOf(iv.ID) >= 0 || models.ValidateDuration(iv.DurationSeconds) != nil {
				skipped++
				continue
			}
			s.byDate[key] = append(s.byDate[key], iv)
			added++
		}
	}
	if added > 0 {
		_ = s.persistLocked()
	}
	return added, skipped
}

// Persist writes the full mapping to the blob.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	data, err := Encode(s.byDate)
	if err != nil {
		perr := &PersistenceError{Op: "encode", Err: err}
		s.logger.Error("saving intervals failed", "err", perr)
		return perr
	}
	if err := s.blob.Write(data); err != nil {
		s.dirty = true
		perr := &PersistenceError{Op: "write", Err: err}
		s.logger.Error("saving intervals failed", "err", perr)
		return perr
	}
	s.dirty = false
	return nil
}

// Blob returns the underlying blob.
func (s *Store) Blob() Blob {
	return s.blob
}

// Close closes the underlying blob.
func (s *Store) Close() error {
	return s.blob.Close()
}
