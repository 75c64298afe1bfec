// Package schedule derives upcoming doses and adherence scores from a
// medication's weekly schedule and its dose history. All functions are pure:
// they take the current time explicitly and never touch storage.
package schedule

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseTimeOfDay parses an "HH:MM" string into hour and minute components.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// InstantOn returns the instant at the given "HH:MM" time of day on the same
// calendar date as day, in day's location.
func InstantOn(day time.Time, timeOfDay string) (time.Time, error) {
	hour, minute, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// StartOfDay returns midnight on t's calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// doseKey identifies a dose slot by calendar date and time of day, the unit
// the projector and the adherence calculator both deduplicate on.
func doseKey(t time.Time) string {
	return t.Format(dateLayout) + " " + t.Format(timeLayout)
}
