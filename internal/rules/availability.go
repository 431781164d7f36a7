package rules

import (
	"time"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
)

// Available reports whether the task applies on the given date.
// dayIdx is the Monday-based weekday index of date.
//
// The deadline constraint is the one wall-clock dependency: it gates only
// same-day real-time entry. For any date other than today(now) a deadline
// is ignored, so historical marks keep counting after the hour has passed.
func (t Task) Available(dayIdx int, date, now time.Time) bool {
	for _, c := range t.Constraints {
		switch c.Kind {
		case ConstraintWeekdaysOnly:
			if dayIdx >= 5 {
				return false
			}
		case ConstraintExplicitDays:
			if !containsDay(c.Days, dayIdx) {
				return false
			}
		case ConstraintDeadline:
			if calendar.DateKey(date) == calendar.DateKey(now) && now.Hour() >= c.Hour {
				return false
			}
		}
	}
	return true
}

// AvailableOn is Available with the day index derived from the date.
func (t Task) AvailableOn(date, now time.Time) bool {
	return t.Available(calendar.DayIndex(date), date, now)
}

func containsDay(days []int, idx int) bool {
	for _, d := range days {
		if d == idx {
			return true
		}
	}
	return false
}
