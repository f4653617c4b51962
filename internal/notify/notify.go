// Package notify is a thin facade over the local notification scheduler.
//
// Scheduling is keyed by notification id with replace-by-id semantics, so
// redundant schedule calls and cancels of absent ids are safe. Failures
// are logged and swallowed: reminders are a best-effort convenience and
// must never fail the database write that triggered them.
package notify

import (
	"log/slog"
	"time"
)

// Request describes a notification to be delivered at a future instant.
type Request struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	FireAt  time.Time         `json:"fire_at"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Backend is the underlying scheduler the facade delegates to. Schedule
// replaces any pending entry with the same id; Cancel of an unknown id
// must not be an error.
type Backend interface {
	Schedule(req Request) error
	Cancel(id string) error
	CancelAll() error
}

// Store wraps a Backend with the guard rails shared by every caller:
// past-dated requests are silently dropped, and backend failures are
// logged rather than propagated.
type Store struct {
	backend Backend
	log     *slog.Logger
}

// NewStore creates a notification store over the given backend.
func NewStore(backend Backend, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{backend: backend, log: log}
}

// Schedule registers a notification, replacing any pending entry with the
// same id. Requests whose fire time is not in the future are dropped.
func (s *Store) Schedule(req Request) {
	if !req.FireAt.After(time.Now()) {
		s.log.Debug("dropping past-dated notification",
			"id", req.ID, "fire_at", req.FireAt)
		return
	}

	if err := s.backend.Schedule(req); err != nil {
		s.log.Warn("scheduling notification failed", "id", req.ID, "error", err)
		return
	}
	s.log.Debug("notification scheduled", "id", req.ID, "fire_at", req.FireAt)
}

// Cancel removes a pending notification if present. Cancelling an unknown
// id is a no-op.
func (s *Store) Cancel(id string) {
	if err := s.backend.Cancel(id); err != nil {
		s.log.Warn("cancelling notification failed", "id", id, "error", err)
		return
	}
	s.log.Debug("notification cancelled", "id", id)
}

// CancelAll clears every pending notification. Only used on full data
// reset, never as part of the normal reminder flow.
func (s *Store) CancelAll() {
	if err := s.backend.CancelAll(); err != nil {
		s.log.Warn("cancelling all notifications failed", "error", err)
	}
}
