// Package reminder runs the periodic dose reminder sweep: it polls the
// medication list at a fixed interval and fires a notification exactly once
// per (medication, date, time-of-day) slot when a scheduled dose comes due
// and has not been logged.
package reminder

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"medisphere-server/internal/models"
	"medisphere-server/internal/schedule"
)

// Reminder describes a dose that just came due.
type Reminder struct {
	MedicationID  string
	UserID        string
	Name          string
	Dosage        string
	ScheduledTime time.Time
}

// Notifier delivers a reminder to the user. Delivery is fire-and-forget:
// an error means the sink was unavailable and the reminder is dropped.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// Source supplies the medications to sweep, with dose history attached.
type Source interface {
	Medications(ctx context.Context) ([]models.Medication, error)
}

// Trigger is the periodic reminder scheduler. A slot moves PENDING -> FIRED
// when its notification goes out and never fires again that day; a slot with
// a logged dose event is suppressed before it can fire.
type Trigger struct {
	source    Source
	notifier  Notifier
	clock     func() time.Time
	interval  time.Duration
	tolerance time.Duration
	log       zerolog.Logger

	mu        sync.Mutex
	fired     map[string]struct{}
	firedDate string
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithClock replaces the wall clock, letting tests simulate time passing.
func WithClock(clock func() time.Time) Option {
	return func(t *Trigger) { t.clock = clock }
}

// WithInterval sets the sweep interval.
func WithInterval(d time.Duration) Option {
	return func(t *Trigger) { t.interval = d }
}

// WithTolerance sets how close to the scheduled instant a sweep must land
// for the slot to fire.
func WithTolerance(d time.Duration) Option {
	return func(t *Trigger) { t.tolerance = d }
}

// New creates a Trigger sweeping once per minute with a 60 second tolerance
// window unless configured otherwise.
func New(source Source, notifier Notifier, log zerolog.Logger, opts ...Option) *Trigger {
	t := &Trigger{
		source:    source,
		notifier:  notifier,
		clock:     time.Now,
		interval:  time.Minute,
		tolerance: time.Minute,
		log:       log,
		fired:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run sweeps on a ticker until the context is cancelled. All work happens
// synchronously inside each tick; cancellation between ticks tears the loop
// down with nothing in flight.
func (t *Trigger) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.log.Info().Dur("interval", t.interval).Msg("reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			t.log.Info().Msg("reminder scheduler stopped")
			return
		case <-ticker.C:
			t.CheckNow(ctx)
		}
	}
}

// CheckNow performs one synchronous sweep over all medications.
func (t *Trigger) CheckNow(ctx context.Context) {
	now := t.clock()

	medications, err := t.source.Medications(ctx)
	if err != nil {
		t.log.Warn().Err(err).Msg("reminder sweep: loading medications failed")
		return
	}

	weekday := now.Weekday().String()
	for _, med := range medications {
		if !med.ScheduleDays.Contains(weekday) {
			continue
		}
		for _, timeOfDay := range med.Times {
			scheduled, err := schedule.InstantOn(now, timeOfDay)
			if err != nil {
				continue
			}
			if absDuration(now.Sub(scheduled)) >= t.tolerance {
				continue
			}
			t.fire(ctx, med, scheduled)
		}
	}
}

// fire emits the notification for one due slot unless it was already fired
// or a dose event is logged for it.
func (t *Trigger) fire(ctx context.Context, med models.Medication, scheduled time.Time) {
	key := slotKey(med.ID, scheduled)
	if !t.arm(key, scheduled) {
		return
	}
	for _, dose := range med.History {
		if schedule.SameDate(dose.ScheduledTime, scheduled) &&
			dose.ScheduledTime.Format("15:04") == scheduled.Format("15:04") {
			return // LOGGED: a dose event exists, stay silent
		}
	}

	r := Reminder{
		MedicationID:  med.ID,
		UserID:        med.UserID,
		Name:          med.Name,
		Dosage:        med.Dosage,
		ScheduledTime: scheduled,
	}
	if err := t.notifier.Notify(ctx, r); err != nil {
		// Sink unavailable: degrade silently, no retry.
		t.log.Debug().Err(err).Str("medication", med.Name).Msg("reminder notification dropped")
		return
	}
	t.log.Info().
		Str("medication", med.Name).
		Time("scheduled", scheduled).
		Msg("reminder fired")
}

// arm records the slot as fired, returning false if it already was. Entries
// from previous days are discarded so each day starts fresh.
func (t *Trigger) arm(key string, scheduled time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := scheduled.Format("2006-01-02")
	if t.firedDate != date {
		t.fired = make(map[string]struct{})
		t.firedDate = date
	}
	if _, ok := t.fired[key]; ok {
		return false
	}
	t.fired[key] = struct{}{}
	return true
}

func slotKey(medicationID string, scheduled time.Time) string {
	return strings.Join([]string{medicationID, scheduled.Format("2006-01-02"), scheduled.Format("15:04")}, "|")
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
