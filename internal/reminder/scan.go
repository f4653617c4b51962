package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/winimoid/organext/internal/notify"
	"github.com/winimoid/organext/internal/store"
)

// DefaultLookahead bounds how far into the future a single scan pass
// schedules notifications. Records beyond the window are left for a
// later pass.
const DefaultLookahead = 24 * time.Hour

// Scanner re-derives pending notifications from database state. It reads
// the store directly and keeps no in-memory application state, so it works
// identically from the foreground daemon and the standalone background
// entry point.
type Scanner struct {
	store         store.Store
	notifications *notify.Store
	templates     Templates
	lookahead     time.Duration
	log           *slog.Logger
}

// ScanResult summarizes a single scan pass.
type ScanResult struct {
	Scanned   int
	Scheduled int
	Failed    int
}

// NewScanner creates a scanner with the given look-ahead window. A zero
// or negative window falls back to DefaultLookahead.
func NewScanner(
	s store.Store,
	notifications *notify.Store,
	templates Templates,
	lookahead time.Duration,
	log *slog.Logger,
) *Scanner {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{
		store:         s,
		notifications: notifications,
		templates:     templates,
		lookahead:     lookahead,
		log:           log,
	}
}

// Run performs one full scan pass: open tasks with due dates, all events,
// and all appointments whose anchor falls inside the look-ahead window are
// run through the policy and scheduled. Rescheduling an already-correct
// notification is a harmless replace-by-id, so repeated passes converge on
// the same registry state.
//
// The reference time is captured once for the whole pass. A failure on one
// table is logged and does not stop the remaining tables.
func (sc *Scanner) Run(ctx context.Context) (ScanResult, error) {
	now := time.Now()
	horizon := now.Add(sc.lookahead)
	var result ScanResult

	sc.log.Info("reminder scan starting", "lookahead", sc.lookahead)

	tasks, err := sc.store.GetRemindableTasks(ctx)
	if err != nil {
		sc.log.Error("scanning tasks failed", "error", err)
		result.Failed++
	}
	for _, task := range tasks {
		result.Scanned++
		if task.DueDate == nil || !inWindow(*task.DueDate, now, horizon) {
			continue
		}
		if n, ok := TaskReminder(task, now, sc.templates); ok {
			sc.schedule(n)
			result.Scheduled++
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	events, err := sc.store.GetEvents(ctx)
	if err != nil {
		sc.log.Error("scanning events failed", "error", err)
		result.Failed++
	}
	for _, event := range events {
		result.Scanned++
		if !inWindow(event.StartDate, now, horizon) {
			continue
		}
		if n, ok := EventReminder(event, now, sc.templates); ok {
			sc.schedule(n)
			result.Scheduled++
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	appts, err := sc.store.GetAppointments(ctx)
	if err != nil {
		sc.log.Error("scanning appointments failed", "error", err)
		result.Failed++
	}
	for _, appt := range appts {
		result.Scanned++
		if !inWindow(appt.Date, now, horizon) {
			continue
		}
		if n, ok := AppointmentReminder(appt, now, sc.templates); ok {
			sc.schedule(n)
			result.Scheduled++
		}
	}

	sc.log.Info("reminder scan complete",
		"scanned", result.Scanned,
		"scheduled", result.Scheduled,
		"failed", result.Failed,
	)
	return result, ctx.Err()
}

// inWindow reports whether the anchor lies in [now, horizon].
func inWindow(anchor, now, horizon time.Time) bool {
	return !anchor.Before(now) && !anchor.After(horizon)
}

func (sc *Scanner) schedule(n Notification) {
	sc.notifications.Schedule(notify.Request{
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
