// Package reminder derives local notifications from organizer records.
//
// The policy functions are pure: they map a record and a reference time to
// at most one notification, with no I/O. Both the foreground lifecycle
// hooks and the background rescan go through them, so eligibility rules
// (completed tasks, missing anchors, past fire times) live in exactly one
// place.
package reminder

import (
	"fmt"
	"time"

	"github.com/winimoid/organext/internal/model"
)

// Kind identifies the type of record a notification derives from.
type Kind string

const (
	KindTask        Kind = "task"
	KindEvent       Kind = "event"
	KindAppointment Kind = "appt"
)

// Lead times before the anchor timestamp, per record kind.
const (
	EventLeadTime       = 15 * time.Minute
	AppointmentLeadTime = 30 * time.Minute

	// taskMorningHour is when tasks due "on a day" (midnight due dates,
	// i.e. dates entered without a time of day) are announced.
	taskMorningHour = 9
)

// Notification is a derived, non-persisted reminder payload. Its ID is
// deterministic per source record, which is what makes rescans idempotent
// and cancellation reliable.
type Notification struct {
	ID       string
	Title    string
	Body     string
	FireAt   time.Time
	Kind     Kind
	SourceID string
}

// NotificationID returns the deterministic notification id for a record,
// e.g. "task-<id>" or "appt-<id>". At most one live notification exists
// per id at any time.
func NotificationID(kind Kind, sourceID string) string {
	return string(kind) + "-" + sourceID
}

// TaskReminder computes the reminder for a task. It returns false when the
// task is completed, has no due date, or the computed fire time is not
// strictly in the future.
//
// A due date whose local time of day is exactly midnight is treated as
// "due that day" and fires at 09:00 local; any other due date fires at the
// due instant itself.
func TaskReminder(task model.Task, now time.Time, tpl Templates) (Notification, bool) {
	if task.IsCompleted || task.DueDate == nil {
		return Notification{}, false
	}

	fireAt := task.DueDate.Local()
	if fireAt.Hour() == 0 && fireAt.Minute() == 0 {
		fireAt = time.Date(
			fireAt.Year(), fireAt.Month(), fireAt.Day(),
			taskMorningHour, 0, 0, 0, fireAt.Location(),
		)
	}

	if !fireAt.After(now) {
		return Notification{}, false
	}

	return Notification{
		ID:       NotificationID(KindTask, task.ID),
		Title:    tpl.TaskTitle,
		Body:     fmt.Sprintf(tpl.TaskBody, task.Title),
		FireAt:   fireAt,
		Kind:     KindTask,
		SourceID: task.ID,
	}, true
}

// EventReminder computes the reminder for an event: 15 minutes before the
// start time. It returns false when the fire time is not strictly in the
// future.
func EventReminder(event model.Event, now time.Time, tpl Templates) (Notification, bool) {
	fireAt := event.StartDate.Add(-EventLeadTime)
	if !fireAt.After(now) {
		return Notification{}, false
	}

	return Notification{
		ID:       NotificationID(KindEvent, event.ID),
		Title:    tpl.EventTitle,
		Body:     fmt.Sprintf(tpl.EventBody, event.Title),
		FireAt:   fireAt,
		Kind:     KindEvent,
		SourceID: event.ID,
	}, true
}

// AppointmentReminder computes the reminder for an appointment: 30 minutes
// before the appointment date. It returns false when the fire time is not
// strictly in the future.
func AppointmentReminder(appt model.Appointment, now time.Time, tpl Templates) (Notification, bool) {
	fireAt := appt.Date.Add(-AppointmentLeadTime)
	if !fireAt.After(now) {
		return Notification{}, false
	}

	return Notification{
		ID:       NotificationID(KindAppointment, appt.ID),
		Title:    tpl.AppointmentTitle,
		Body:     fmt.Sprintf(tpl.AppointmentBody, appt.Title),
		FireAt:   fireAt,
		Kind:     KindAppointment,
		SourceID: appt.ID,
	}, true
}
