// ABOUTME: Date key normalisation for interval sequences.
// ABOUTME: Converts calendar dates in local time to the YYYY-MM-DD store key.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateKeyLayout is the layout of every store key.
const DateKeyLayout = "2006-01-02"

// DateKey normalises t to its calendar date in the local time zone.
func DateKey(t time.Time) string {
	return t.In(time.Local).Format(DateKeyLayout)
}

// Today returns the date key for the current local date.
func Today() string {
	return DateKey(time.Now())
}

// ParseDateKey accepts a YYYY-MM-DD date or one of today, yesterday, tomorrow
// and returns the normalised key. Relative names are resolved against now.
func ParseDateKey(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return DateKey(now), nil
	case "yesterday":
		return DateKey(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return DateKey(now.AddDate(0, 0, 1)), nil
	}

	t, err := time.ParseInLocation(DateKeyLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateKey(t), nil
}
