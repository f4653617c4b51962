package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RunnerState represents the current state of the periodic rescan.
type RunnerState int

const (
	RunnerIdle RunnerState = iota
	RunnerRunning
)

const (
	// minScanInterval is the floor for the periodic interval, matching
	// the minimum the platform scheduler would enforce.
	minScanInterval = 15 * time.Minute

	// scanTimeout is the wall-clock budget for a single scan pass. A
	// pass that overruns it is abandoned and logged; the runner still
	// returns to idle so the next trigger is not blocked.
	scanTimeout = 2 * time.Minute
)

// Runner executes the reminder scan periodically inside the foreground
// daemon. Triggers arriving while a pass is running are dropped, not
// queued: the next tick re-derives everything anyway.
type Runner struct {
	scanner  *Scanner
	interval time.Duration
	log      *slog.Logger

	mu        sync.Mutex
	state     RunnerState
	running   bool
	triggerCh chan struct{}
	stopCh    chan struct{}
}

// NewRunner creates a runner firing every interval. Intervals below the
// platform minimum are raised to it.
func NewRunner(scanner *Scanner, interval time.Duration, log *slog.Logger) *Runner {
	if interval < minScanInterval {
		interval = minScanInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		scanner:   scanner,
		interval:  interval,
		log:       log,
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the periodic loop. An initial pass runs immediately.
func (r *Runner) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()
}

// Stop halts the periodic loop.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}

// Trigger requests an immediate pass without blocking.
func (r *Runner) Trigger() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
}

// State returns the current runner state.
func (r *Runner) State() RunnerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runOnce()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.runOnce()
		case <-r.triggerCh:
			r.runOnce()
		}
	}
}

// runOnce executes a single pass under the scan timeout. The state always
// returns to idle, whether the pass finished, failed, or timed out.
func (r *Runner) runOnce() {
	r.mu.Lock()
	if r.state == RunnerRunning {
		r.mu.Unlock()
		return
	}
	r.state = RunnerRunning
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.state = RunnerIdle
		r.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := r.scanner.Run(ctx); err != nil {
			r.log.Error("reminder scan failed", "error", err)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		r.log.Warn("reminder scan timed out", "timeout", scanTimeout)
	}
}
