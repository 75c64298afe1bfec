package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"medisphere-server/internal/models"
)

// UpcomingDoses returns the doses scheduled for the remainder of now's
// calendar day that have not yet been logged, across all medications, sorted
// ascending by scheduled instant. Ties keep input order: medication list
// order first, then time-of-day list order.
//
// A dose is synthesized for every (medication, time) pair where the schedule
// includes today's weekday, the instant is strictly after now, and no history
// entry exists for today's date at that time of day. Medications with an
// empty time list contribute nothing; unrecognized weekday names are simply
// never selected.
func UpcomingDoses(now time.Time, medications []models.Medication) []models.DoseEvent {
	weekday := now.Weekday().String()
	var upcoming []models.DoseEvent

	for _, med := range medications {
		if !med.ScheduleDays.Contains(weekday) {
			continue
		}
		for _, timeOfDay := range med.Times {
			scheduled, err := InstantOn(now, timeOfDay)
			if err != nil {
				continue // malformed entry, skip
			}
			if !scheduled.After(now) {
				continue
			}
			if historyHasSlot(med.History, scheduled) {
				continue
			}
			upcoming = append(upcoming, models.DoseEvent{
				BaseModel:     models.BaseModel{ID: uuid.New().String()},
				MedicationID:  med.ID,
				ScheduledTime: scheduled,
				TakenTime:     nil,
				Status:        models.DoseUpcoming,
			})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledTime.Before(upcoming[j].ScheduledTime)
	})
	return upcoming
}

// historyHasSlot reports whether any history entry occupies the same
// (date, time-of-day) slot as the given instant.
func historyHasSlot(history []models.DoseEvent, scheduled time.Time) bool {
	key := doseKey(scheduled)
	for _, dose := range history {
		if doseKey(dose.ScheduledTime) == key {
			return true
		}
	}
	return false
}
