// Package organizer wraps record CRUD with the reminder lifecycle hooks.
//
// Every write goes to the store first; only after the write succeeds is
// the record's notification re-synced. Reminder scheduling is best-effort
// and never turns a successful write into an error.
package organizer

import (
	"context"
	"fmt"
	"time"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/reminder"
	"github.com/winimoid/organext/internal/store"
)

// Service is the record lifecycle service used by every foreground caller.
type Service struct {
	store     store.Store
	reminders *reminder.Syncer
}

// New creates a service over the given store and reminder syncer.
func New(s store.Store, reminders *reminder.Syncer) *Service {
	return &Service{store: s, reminders: reminders}
}

// Store exposes the underlying store for read-only callers.
func (s *Service) Store() store.Store {
	return s.store
}

// === Tasks ===

// CreateTask persists a new task and schedules its reminder if eligible.
func (s *Service) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	created, err := s.store.CreateTask(ctx, task)
	if err != nil {
		return model.Task{}, err
	}
	s.reminders.TaskSaved(created)
	return created, nil
}

// UpdateTask persists task changes and re-syncs its reminder.
func (s *Service) UpdateTask(ctx context.Context, task model.Task) error {
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return err
	}
	s.reminders.TaskSaved(task)
	return nil
}

// CompleteTask marks a task as done, which also cancels its reminder.
func (s *Service) CompleteTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.IsCompleted = true
	if err := s.store.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}
	s.reminders.TaskSaved(*task)
	return task, nil
}

// RestoreTask reopens a completed task, re-dating it to now so it shows
// up as due today. The recomputed reminder is a no-op unless the new due
// instant still lies in the future.
func (s *Service) RestoreTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	task.IsCompleted = false
	task.DueDate = &now
	if err := s.store.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}
	s.reminders.TaskSaved(*task)
	return task, nil
}

// DeleteTask removes a task and cancels its reminder unconditionally.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.reminders.TaskRemoved(id)
	return nil
}

// === Events ===

// CreateEvent persists a new event and schedules its reminder if eligible.
func (s *Service) CreateEvent(ctx context.Context, event model.Event) (model.Event, error) {
	created, err := s.store.CreateEvent(ctx, event)
	if err != nil {
		return model.Event{}, err
	}
	s.reminders.EventSaved(created)
	return created, nil
}

// UpdateEvent persists event changes and re-syncs its reminder.
func (s *Service) UpdateEvent(ctx context.Context, event model.Event) error {
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return err
	}
	s.reminders.EventSaved(event)
	return nil
}

// DeleteEvent removes an event and cancels its reminder unconditionally.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.reminders.EventRemoved(id)
	return nil
}

// === Appointments ===

// CreateAppointment persists a new appointment and schedules its reminder
// if eligible.
func (s *Service) CreateAppointment(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	created, err := s.store.CreateAppointment(ctx, appt)
	if err != nil {
		return model.Appointment{}, err
	}
	s.reminders.AppointmentSaved(created)
	return created, nil
}

// UpdateAppointment persists appointment changes and re-syncs its reminder.
func (s *Service) UpdateAppointment(ctx context.Context, appt model.Appointment) error {
	if err := s.store.UpdateAppointment(ctx, appt); err != nil {
		return err
	}
	s.reminders.AppointmentSaved(appt)
	return nil
}

// DeleteAppointment removes an appointment and cancels its reminder
// unconditionally.
func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.store.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	s.reminders.AppointmentRemoved(id)
	return nil
}

// === Maintenance ===

// Reset wipes every record and clears all pending notifications. The
// only caller of the notification CancelAll path.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	s.reminders.ClearAll()
	return nil
}
