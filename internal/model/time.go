package model

import (
	"fmt"
	"time"
)

// StartOfDay returns midnight at the start of t's calendar day
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day,
// evaluated in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysUntil returns the whole calendar days from now's day to t's day.
// Negative means t's day is already past.
func DaysUntil(now, t time.Time) int {
	from := StartOfDay(now)
	to := StartOfDay(t.In(now.Location()))
	// Round absorbs the hour lost or gained across a DST transition
	return int(to.Sub(from).Round(24*time.Hour).Hours() / 24)
}

// RelativeDays renders a day-granularity relative phrase ("today",
// "tomorrow", "in 3 days", "2 days ago") for notification messages
func RelativeDays(now, t time.Time) string {
	switch d := DaysUntil(now, t); {
	case d == 0:
		return "today"
	case d == 1:
		return "tomorrow"
	case d == -1:
		return "yesterday"
	case d > 1:
		return fmt.Sprintf("in %d days", d)
	default:
		return fmt.Sprintf("%d days ago", -d)
	}
}
