package reminder

import (
	"time"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/notify"
)

// Syncer keeps notification state aligned with record state after each
// create, update, or delete. Every Saved call cancels the record's
// notification first and only reschedules when the policy yields one, so
// a record never holds more than one live notification.
type Syncer struct {
	notifications *notify.Store
	templates     Templates
}

// NewSyncer creates a syncer delivering through the given notification
// store with the given text templates.
func NewSyncer(notifications *notify.Store, templates Templates) *Syncer {
	return &Syncer{
		notifications: notifications,
		templates:     templates,
	}
}

// TaskSaved re-syncs the notification for a created or updated task.
// Marking a task complete removes its reminder through the same path.
func (s *Syncer) TaskSaved(task model.Task) {
	s.notifications.Cancel(NotificationID(KindTask, task.ID))
	if n, ok := TaskReminder(task, time.Now(), s.templates); ok {
		s.schedule(n)
	}
}

// TaskRemoved cancels the notification for a deleted task.
func (s *Syncer) TaskRemoved(id string) {
	s.notifications.Cancel(NotificationID(KindTask, id))
}

// EventSaved re-syncs the notification for a created or updated event.
func (s *Syncer) EventSaved(event model.Event) {
	s.notifications.Cancel(NotificationID(KindEvent, event.ID))
	if n, ok := EventReminder(event, time.Now(), s.templates); ok {
		s.schedule(n)
	}
}

// EventRemoved cancels the notification for a deleted event.
func (s *Syncer) EventRemoved(id string) {
	s.notifications.Cancel(NotificationID(KindEvent, id))
}

// AppointmentSaved re-syncs the notification for a created or updated
// appointment.
func (s *Syncer) AppointmentSaved(appt model.Appointment) {
	s.notifications.Cancel(NotificationID(KindAppointment, appt.ID))
	if n, ok := AppointmentReminder(appt, time.Now(), s.templates); ok {
		s.schedule(n)
	}
}

// AppointmentRemoved cancels the notification for a deleted appointment.
func (s *Syncer) AppointmentRemoved(id string) {
	s.notifications.Cancel(NotificationID(KindAppointment, id))
}

// ClearAll cancels every pending notification. Only called on full data
// reset.
func (s *Syncer) ClearAll() {
	s.notifications.CancelAll()
}

func (s *Syncer) schedule(n Notification) {
	s.notifications.Schedule(notify.Request{
		ID:      n.ID,
		Title:   n.Title,
		Message: n.Body,
		FireAt:  n.FireAt,
		Meta: map[string]string{
			"type": string(n.Kind),
			"id":   n.SourceID,
		},
	})
}
