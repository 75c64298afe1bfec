package reminder

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes reminders to the structured log. It stands in for a
// push/sound sink on the client; delivery is best-effort either way.
type LogNotifier struct {
	Log zerolog.Logger
}

var _ Notifier = (*LogNotifier)(nil)

// Notify logs the reminder message.
func (n *LogNotifier) Notify(_ context.Context, r Reminder) error {
	n.Log.Info().
		Str("userId", r.UserID).
		Str("medicationId", r.MedicationID).
		Time("scheduled", r.ScheduledTime).
		Msgf("Time to take %s (%s)", r.Name, r.Dosage)
	return nil
}
