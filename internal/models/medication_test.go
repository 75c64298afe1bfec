package models

import (
	"testing"
	"time"
)

func TestStringListRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list StringList
	}{
		{"weekdays", StringList{"Monday", "Wednesday", "Friday"}},
		{"times", StringList{"08:00", "20:00"}},
		{"empty", StringList{}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.list.Value()
			if err != nil {
				t.Fatalf("Value: %v", err)
			}

			var got StringList
			if err := got.Scan(value); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if len(got) != len(tt.list) {
				t.Fatalf("round-trip length %d, want %d", len(got), len(tt.list))
			}
			for i := range got {
				if got[i] != tt.list[i] {
					t.Errorf("round-trip[%d] = %q, want %q", i, got[i], tt.list[i])
				}
			}
		})
	}
}

func TestStringListScanBytes(t *testing.T) {
	var got StringList
	if err := got.Scan([]byte(`["Monday","Tuesday"]`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 2 || got[0] != "Monday" {
		t.Errorf("Scan result = %v", got)
	}
}

func TestStringListScanNil(t *testing.T) {
	var got StringList
	if err := got.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Scan(nil) = %v, want empty", got)
	}
}

func TestStringListContains(t *testing.T) {
	days := StringList{"Monday", "Friday"}
	if !days.Contains("Monday") {
		t.Error("Contains(Monday) = false")
	}
	if days.Contains("Sunday") {
		t.Error("Contains(Sunday) = true")
	}
}

func TestDoseEventMarkTaken(t *testing.T) {
	dose := DoseEvent{
		MedicationID:  "m1",
		ScheduledTime: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		Status:        DoseUpcoming,
	}
	now := time.Date(2025, 3, 10, 8, 4, 0, 0, time.UTC)

	dose.MarkTaken(now)
	if dose.Status != DoseTaken {
		t.Errorf("status = %q, want taken", dose.Status)
	}
	if dose.TakenTime == nil || !dose.TakenTime.Equal(now) {
		t.Errorf("taken time = %v, want %v", dose.TakenTime, now)
	}
}

func TestMedicationNeedsRefill(t *testing.T) {
	tests := []struct {
		name      string
		pillsLeft int
		refillAt  int
		want      bool
	}{
		{"above threshold", 10, 5, false},
		{"at threshold", 5, 5, true},
		{"below threshold", 2, 5, true},
		{"empty bottle", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Medication{PillsLeft: tt.pillsLeft, RefillAt: tt.refillAt}
			if got := m.NeedsRefill(); got != tt.want {
				t.Errorf("NeedsRefill() = %v, want %v", got, tt.want)
			}
		})
	}
}
