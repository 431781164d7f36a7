package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical date-key format used across the store.
const KeyLayout = "2006-01-02"

// WeekStart returns the Monday 00:00 (local) of the week containing t.
// ISO semantics: Sunday belongs to the week of the previous Monday.
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -DayIndex(d))
}

// DateKey formats t as YYYY-MM-DD. Lexicographic order of keys matches
// chronological order, which the progress fold relies on.
func DateKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a YYYY-MM-DD key back into a local-midnight time.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// DayIndex returns the Monday-based weekday index: Monday=0 .. Sunday=6.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// AddDays shifts t by n calendar days, correct across month and year
// boundaries.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Midnight truncates t to 00:00 local.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
