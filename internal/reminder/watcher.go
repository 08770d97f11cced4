package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pathakanu/myLists/internal/calendar"
	"github.com/robfig/cron/v3"
)

// Watcher polls for calendar-day rollover and runs the gate when the day
// changes and on a fixed schedule.
type Watcher struct {
	gate     *Gate
	cron     *cron.Cron
	loc      *time.Location
	poll     time.Duration
	schedule string
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	ctx   context.Context
	today string
}

// NewWatcher creates a watcher evaluating days in loc.
func NewWatcher(gate *Gate, loc *time.Location, schedule string, poll time.Duration, logger *slog.Logger) *Watcher {
	if loc == nil {
		loc = time.Local
	}
	return &Watcher{
		gate:     gate,
		cron:     cron.New(cron.WithLocation(loc)),
		loc:      loc,
		poll:     poll,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
		ctx:      context.Background(),
	}
}

// Start registers the cron jobs, runs the gate once for the current day and
// starts the scheduler loop.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()

	if _, err := w.cron.AddFunc(fmt.Sprintf("@every %s", w.poll), func() { w.checkDayChange() }); err != nil {
		return fmt.Errorf("register day poll: %w", err)
	}
	if w.schedule != "" {
		if _, err := w.cron.AddFunc(w.schedule, w.runScheduled); err != nil {
			return fmt.Errorf("register notify schedule %q: %w", w.schedule, err)
		}
	}

	w.checkDayChange()
	w.cron.Start()
	return nil
}

// Stop stops the cron scheduler and waits for running jobs.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

// Today returns the last day observed by the watcher.
func (w *Watcher) Today() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.today == "" {
		return calendar.Format(w.now().In(w.loc))
	}
	return w.today
}

// runScheduled runs the gate for the current day. The clock is read again
// because the day poll may not have seen a rollover yet.
func (w *Watcher) runScheduled() {
	if w.checkDayChange() {
		return
	}
	w.runGate(w.Today())
}

// checkDayChange runs the gate when the day differs from the last one seen
// and reports whether it did.
func (w *Watcher) checkDayChange() bool {
	current := calendar.Format(w.now().In(w.loc))

	w.mu.Lock()
	previous := w.today
	changed := current != previous
	if changed {
		w.today = current
	}
	w.mu.Unlock()

	if !changed {
		return false
	}
	if previous != "" {
		w.logger.Info("date changed", "from", previous, "to", current)
	}
	w.runGate(current)
	return true
}

func (w *Watcher) runGate(today string) {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()

	fired, err := w.gate.Run(ctx, today)
	if err != nil {
		w.logger.Error("reminder run failed", "date", today, "error", err)
	}
	if fired > 0 {
		w.logger.Info("reminders fired", "date", today, "count", fired)
	}
}
