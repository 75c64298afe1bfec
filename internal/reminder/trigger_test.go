package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"medisphere-server/internal/models"
)

// Monday
var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu   sync.Mutex
	meds []models.Medication
	err  error
}

func (s *fakeSource) Medications(context.Context) ([]models.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meds, s.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []Reminder
	fail  bool
	tries int
}

func (n *fakeNotifier) Notify(_ context.Context, r Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tries++
	if n.fail {
		return errors.New("sink unavailable")
	}
	n.sent = append(n.sent, r)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func dailyMed(id string, days []string, times []string) models.Medication {
	return models.Medication{
		BaseModel:    models.BaseModel{ID: id},
		UserID:       "u1",
		Name:         "med-" + id,
		Dosage:       "10mg",
		ScheduleDays: models.StringList(days),
		Times:        models.StringList(times),
	}
}

func newTestTrigger(src Source, n Notifier, clock *fakeClock) *Trigger {
	return New(src, n, zerolog.Nop(),
		WithClock(clock.Now),
		WithTolerance(time.Minute),
	)
}

func TestTriggerFiresOncePerSlot(t *testing.T) {
	src := &fakeSource{meds: []models.Medication{
		dailyMed("m1", []string{"Monday"}, []string{"08:00"}),
	}}
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: testDay.Add(8*time.Hour + 30*time.Second)}
	trigger := newTestTrigger(src, notifier, clock)

	trigger.CheckNow(context.Background())
	if notifier.count() != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.count())
	}
	got := notifier.sent[0]
	if got.MedicationID != "m1" || got.Name != "med-m1" {
		t.Errorf("unexpected reminder payload: %+v", got)
	}

	// Sweeps inside the same tolerance window stay silent.
	trigger.CheckNow(context.Background())
	clock.Set(testDay.Add(8*time.Hour + 45*time.Second))
	trigger.CheckNow(context.Background())
	if notifier.count() != 1 {
		t.Errorf("slot fired more than once: %d notifications", notifier.count())
	}
}

func TestTriggerOutsideToleranceWindow(t *testing.T) {
	src := &fakeSource{meds: []models.Medication{
		dailyMed("m1", []string{"Monday"}, []string{"08:00"}),
	}}
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: testDay.Add(8*time.Hour + 5*time.Minute)}
	trigger := newTestTrigger(src, notifier, clock)

	trigger.CheckNow(context.Background())
	if notifier.count() != 0 {
		t.Errorf("fired %d notifications outside the tolerance window", notifier.count())
	}
}

func TestTriggerSuppressedByLoggedDose(t *testing.T) {
	medication := dailyMed("m1", []string{"Monday"}, []string{"08:00"})
	taken := testDay.Add(8*time.Hour + 1*time.Minute)
	medication.History = []models.DoseEvent{{
		MedicationID:  "m1",
		ScheduledTime: testDay.Add(8 * time.Hour),
		TakenTime:     &taken,
		Status:        models.DoseTaken,
	}}
	src := &fakeSource{meds: []models.Medication{medication}}
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: testDay.Add(8*time.Hour + 30*time.Second)}
	trigger := newTestTrigger(src, notifier, clock)

	trigger.CheckNow(context.Background())
	if notifier.count() != 0 {
		t.Errorf("fired for an already-logged dose: %d notifications", notifier.count())
	}
}

func TestTriggerRearmsNextDay(t *testing.T) {
	src := &fakeSource{meds: []models.Medication{
		dailyMed("m1", []string{"Monday", "Tuesday"}, []string{"08:00"}),
	}}
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: testDay.Add(8*time.Hour + 30*time.Second)}
	trigger := newTestTrigger(src, notifier, clock)

	trigger.CheckNow(context.Background())
	if notifier.count() != 1 {
		t.Fatalf("expected 1 notification on Monday, got %d", notifier.count())
	}

	clock.Set(testDay.AddDate(0, 0, 1).Add(8*time.Hour + 30*time.Second))
	trigger.CheckNow(context.Background())
	if notifier.count() != 2 {
		t.Errorf("slot did not re-arm on Tuesday: %d notifications", notifier.count())
	}
}

func TestTriggerNotifierFailureIsSilent(t *testing.T) {
	src := &fakeSource{meds: []models.Medication{
		dailyMed("m1", []string{"Monday"}, []string{"08:00"}),
	}}
	notifier := &fakeNotifier{fail: true}
	clock := &fakeClock{now: testDay.Add(8*time.Hour + 30*time.Second)}
	trigger := newTestTrigger(src, notifier, clock)

	trigger.CheckNow(context.Background())
	// Failed delivery is dropped, not retried.
	trigger.CheckNow(context.Background())
	if notifier.tries != 1 {
		t.Errorf("expected 1 delivery attempt, got %d", notifier.tries)
	}
}

func TestTriggerSourceErrorIsSilent(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: testDay.Add(8 * time.Hour)}
	trigger := newTestTrigger(src, notifier, clock)

	trigger.CheckNow(context.Background())
	if notifier.count() != 0 {
		t.Errorf("notified despite source failure")
	}
}

func TestTriggerRunStopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: testDay}
	trigger := New(src, notifier, zerolog.Nop(),
		WithClock(clock.Now),
		WithInterval(5*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		trigger.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
