// ABOUTME: Interval and Sequence models for timed workout segments.
// ABOUTME: Intervals are keyed by calendar date and carry a kind and a duration in seconds.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IntervalKind tags what the user does during an interval.
type IntervalKind string

const (
	KindRun  IntervalKind = "Run"
	KindWalk IntervalKind = "Walk"
)

var knownKinds = []IntervalKind{KindRun, KindWalk}

// ErrUnknownKind is returned when a kind name is not recognised.
var ErrUnknownKind = errors.New("unknown interval kind")

// Kinds returns the known interval kinds in display order.
func Kinds() []IntervalKind {
	out := make([]IntervalKind, len(knownKinds))
	copy(out, knownKinds)
	return out
}

// ParseKind matches s case-insensitively against the known kinds.
func ParseKind(s string) (IntervalKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range knownKinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Interval is a single timed segment.
type Interval struct {
	ID              uuid.UUID    `json:"id" yaml:"id"`
	Kind            IntervalKind `json:"kind" yaml:"kind"`
	DurationSeconds float64      `json:"durationSeconds" yaml:"duration_seconds"`
}

// NewInterval creates an Interval with a freshly generated ID.
func NewInterval(kind IntervalKind, seconds float64) Interval {
	return Interval{
		ID:              uuid.New(),
		Kind:            kind,
		DurationSeconds: seconds,
	}
}

// WholeSeconds truncates the duration for display.
func (i Interval) WholeSeconds() int {
	return int(i.DurationSeconds)
}

// ShortID returns the 8-character ID prefix shown in listings.
func (i Interval) ShortID() string {
	return i.ID.String()[:8]
}

func (i Interval) String() string {
	return fmt.Sprintf("%s - %d sec", i.Kind, i.WholeSeconds())
}

// UnmarshalJSON accepts both the current field names and the legacy
// type/duration names used by earlier releases. A record without an id gets
// a fresh one.
func (i *Interval) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              uuid.UUID    `json:"id"`
		Kind            IntervalKind `json:"kind"`
		DurationSeconds *float64     `json:"durationSeconds"`
		Type            IntervalKind `json:"type"`
		Duration        *float64     `json:"duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	i.ID = raw.ID
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.Kind = raw.Kind
	if i.Kind == "" {
		i.Kind = raw.Type
	}
	switch {
	case raw.DurationSeconds != nil:
		i.DurationSeconds = *raw.DurationSeconds
	case raw.Duration != nil:
		i.DurationSeconds = *raw.Duration
	default:
		i.DurationSeconds = 0
	}
	return nil
}

// Sequence is the ordered list of intervals for one date.
type Sequence []Interval

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return Sequence{}
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// TotalSeconds sums the durations in s.
func (s Sequence) TotalSeconds() float64 {
	var total float64
	for _, iv := range s {
		total += iv.DurationSeconds
	}
	return total
}

// IndexOf returns the position of the interval with the given ID, or -1.
func (s Sequence) IndexOf(id uuid.UUID) int {
	for i, iv := range s {
		if iv.ID == id {
			return i
		}
	}
	return -1
}

// ErrInvalidDuration is wrapped by every ParseError.
var ErrInvalidDuration = errors.New("invalid duration")

// ParseError describes a rejected duration input.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid duration %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidDuration
}

// ParseDuration parses a user supplied number of seconds.
// Only finite values greater than zero are accepted.
func ParseDuration(input string) (float64, error) {
	s := strings.TrimSpace(input)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Input: input, Reason: "not a number"}
	}
	if err := validateDuration(v, input); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateDuration rejects non-positive and non-finite durations.
func ValidateDuration(v float64) error {
	return validateDuration(v, strconv.FormatFloat(v, 'g', -1, 64))
}

func validateDuration(v float64, input string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParseError{Input: input, Reason: "not a finite number"}
	}
	if v <= 0 {
		return &ParseError{Input: input, Reason: "must be greater than zero"}
	}
	return nil
}
