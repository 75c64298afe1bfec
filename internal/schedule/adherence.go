package schedule

import (
	"math"
	"time"

	"medisphere-server/internal/models"
)

// Adherence scores today's medication adherence as an integer 0-100: the
// fraction of doses due in [start of today, now] that were actually taken.
// Doses that were due but never logged count against the score without a
// persisted "missed" record, so the history stays append-only for taken
// actions. When nothing was due yet the score is 100.
//
// Duplicate history rows for the same (date, time-of-day) slot are
// deduplicated; the first entry in insertion order wins.
func Adherence(now time.Time, medications []models.Medication) int {
	startOfToday := StartOfDay(now)
	weekday := now.Weekday().String()

	considered := 0
	taken := 0

	for _, med := range medications {
		seen := make(map[string]bool)

		// Logged doses due so far today.
		for _, dose := range med.History {
			if dose.ScheduledTime.Before(startOfToday) || dose.ScheduledTime.After(now) {
				continue
			}
			key := doseKey(dose.ScheduledTime)
			if seen[key] {
				continue
			}
			seen[key] = true
			considered++
			if dose.Status == models.DoseTaken {
				taken++
			}
		}

		// Scheduled times that came due today with no history entry at all:
		// implicit misses, counted at query time.
		if !med.ScheduleDays.Contains(weekday) {
			continue
		}
		for _, timeOfDay := range med.Times {
			scheduled, err := InstantOn(now, timeOfDay)
			if err != nil {
				continue
			}
			if scheduled.After(now) {
				continue
			}
			key := doseKey(scheduled)
			if seen[key] {
				continue
			}
			seen[key] = true
			considered++
		}
	}

	if considered == 0 {
		return 100
	}
	return int(math.Round(float64(taken) / float64(considered) * 100))
}
