package notify

import (
	"context"
	"log/slog"
	"time"
)

// Sender delivers a notification to the user.
type Sender interface {
	Send(title, message string) error
}

// Dispatcher watches the registry and delivers notifications when their
// fire time arrives. It sleeps until the earliest pending entry instead of
// polling, and reloads the registry on every wake-up since the background
// rescan process writes to the same file.
//
// Delivery is at-least-once: an entry is removed after a delivery attempt
// whether or not the sender succeeded, and a failed delivery is only
// visible in the logs.
type Dispatcher struct {
	registry  *Registry
	sender    Sender
	log       *slog.Logger
	refreshCh chan struct{}
}

// NewDispatcher creates a dispatcher over the given registry and sender.
func NewDispatcher(registry *Registry, sender Sender, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		registry:  registry,
		sender:    sender,
		log:       log,
		refreshCh: make(chan struct{}, 1),
	}
}

// Refresh signals the dispatcher to re-evaluate the schedule immediately.
func (d *Dispatcher) Refresh() {
	select {
	case d.refreshCh <- struct{}{}:
	default:
		// A refresh is already pending; no need to block.
	}
}

// Run delivers notifications until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Info("notification dispatcher started")

	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		nextFire := d.deliverDue()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		if nextFire.IsZero() {
			d.log.Debug("no pending notifications, dispatcher idle")
		} else {
			wait := time.Until(nextFire)
			if wait < 0 {
				wait = 0
			}
			timer.Reset(wait)
			d.log.Debug("next delivery scheduled", "at", nextFire, "in", wait)
		}

		select {
		case <-ctx.Done():
			d.log.Info("notification dispatcher stopped")
			return
		case <-d.refreshCh:
		case <-timer.C:
		}
	}
}

// deliverDue sends every due notification and returns the fire time of the
// next pending one, or the zero time when nothing is pending.
func (d *Dispatcher) deliverDue() time.Time {
	if err := d.registry.Reload(); err != nil {
		d.log.Warn("reloading notification registry failed", "error", err)
	}

	now := time.Now()
	for _, req := range d.registry.Due(now) {
		if err := d.sender.Send(req.Title, req.Message); err != nil {
			d.log.Warn("delivering notification failed", "id", req.ID, "error", err)
		} else {
			d.log.Info("notification delivered", "id", req.ID, "title", req.Title)
		}
		if err := d.registry.Cancel(req.ID); err != nil {
			d.log.Warn("removing delivered notification failed", "id", req.ID, "error", err)
		}
	}

	next, ok := d.registry.NextFireTime()
	if !ok {
		return time.Time{}
	}
	return next
}
