package schedule

import (
	"testing"

	"medisphere-server/internal/models"
)

func TestAdherenceNothingDueYet(t *testing.T) {
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"08:00", "20:00"}),
	}

	if score := Adherence(at(6, 0), meds); score != 100 {
		t.Errorf("score before any dose is due = %d, want 100", score)
	}
}

func TestAdherenceMissedThenTaken(t *testing.T) {
	// 08:00 dose due, nothing logged by 08:30.
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"08:00"}),
	}
	if score := Adherence(at(8, 30), meds); score != 0 {
		t.Fatalf("score with unlogged due dose = %d, want 0", score)
	}

	// After marking it taken the score recovers fully.
	meds[0].History = []models.DoseEvent{takenDose("m1", at(8, 0))}
	if score := Adherence(at(8, 30), meds); score != 100 {
		t.Errorf("score after taking the dose = %d, want 100", score)
	}
}

func TestAdherenceIgnoresNotYetDueTimes(t *testing.T) {
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"08:00", "20:00"}, takenDose("m1", at(8, 0))),
	}

	// 20:00 has not come due at 08:30, so only the taken 08:00 dose counts.
	if score := Adherence(at(8, 30), meds); score != 100 {
		t.Errorf("score = %d, want 100", score)
	}
}

func TestAdherenceRoundsAcrossMedications(t *testing.T) {
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"08:00"}, takenDose("m1", at(8, 0))),
		med("m2", []string{"Monday"}, []string{"08:00"}, takenDose("m2", at(8, 0))),
		med("m3", []string{"Monday"}, []string{"08:00"}),
	}

	// 2 of 3 taken: round(66.67) = 67.
	if score := Adherence(at(9, 0), meds); score != 67 {
		t.Errorf("score = %d, want 67", score)
	}
}

func TestAdherenceScoreBounds(t *testing.T) {
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"06:00", "07:00", "08:00"}),
	}
	if score := Adherence(at(12, 0), meds); score < 0 || score > 100 {
		t.Errorf("score %d out of [0,100]", score)
	}
}

func TestAdherenceIdempotent(t *testing.T) {
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"08:00", "12:00"}, takenDose("m1", at(8, 0))),
	}

	first := Adherence(at(12, 30), meds)
	second := Adherence(at(12, 30), meds)
	if first != second {
		t.Errorf("adherence not idempotent: %d then %d", first, second)
	}
}

func TestAdherenceDeduplicatesHistoryRows(t *testing.T) {
	// Two rows for the same slot must count as one dose.
	dup := takenDose("m1", at(8, 0))
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"08:00", "12:00"}, dup, dup),
	}

	// 08:00 taken once, 12:00 missed: 1 of 2 = 50, not 2 of 3.
	if score := Adherence(at(12, 30), meds); score != 50 {
		t.Errorf("score = %d, want 50", score)
	}
}

func TestAdherenceIgnoresHistoryOutsideToday(t *testing.T) {
	yesterday := at(8, 0).AddDate(0, 0, -1)
	meds := []models.Medication{
		med("m1", []string{"Monday"}, []string{"08:00"},
			takenDose("m1", yesterday),
			takenDose("m1", at(8, 0))),
	}

	if score := Adherence(at(9, 0), meds); score != 100 {
		t.Errorf("score = %d, want 100 (yesterday's dose out of window)", score)
	}
}
