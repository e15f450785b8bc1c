package toast

import (
	"log/slog"
	"time"

	"github.com/vango-dev/toaster/internal/clock"
)

// DefaultRemoveDelay is how long a dismissed toast stays in state before
// it is removed.
const DefaultRemoveDelay = 5 * time.Second

// Scheduler removes dismissed toasts after a delay.
//
// It is an Effect: register it on the Store whose actions it observes and
// give it that store's Dispatch. It never touches state itself; removal
// happens by dispatching REMOVE_TOAST.
type Scheduler struct {
	dispatch func(Action)
	delay    time.Duration
	timers   *timerSet
	logger   *slog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*schedulerConfig)

type schedulerConfig struct {
	clock  clock.Clock
	delay  time.Duration
	logger *slog.Logger
}

// WithSchedulerClock sets the clock used for removal timers.
func WithSchedulerClock(c clock.Clock) SchedulerOption {
	return func(cfg *schedulerConfig) {
		cfg.clock = c
	}
}

// WithDelay sets the removal delay.
func WithDelay(d time.Duration) SchedulerOption {
	return func(cfg *schedulerConfig) {
		cfg.delay = d
	}
}

// WithSchedulerLogger sets the scheduler's logger.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(cfg *schedulerConfig) {
		cfg.logger = logger
	}
}

// NewScheduler returns a Scheduler that submits removals through dispatch.
func NewScheduler(dispatch func(Action), opts ...SchedulerOption) *Scheduler {
	cfg := schedulerConfig{
		clock:  clock.Real(),
		delay:  DefaultRemoveDelay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Scheduler{
		dispatch: dispatch,
		delay:    cfg.delay,
		timers:   newTimerSet(cfg.clock),
		logger:   cfg.logger,
	}
}

// Delay returns the removal delay.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Schedule queues a REMOVE_TOAST for id. It returns false when a removal
// for id is already pending.
func (s *Scheduler) Schedule(id string) bool {
	ok := s.timers.start(id, s.delay, s.fire)
	if ok {
		s.logger.Debug("toast removal scheduled", "toast_id", id, "delay", s.delay)
	}
	return ok
}

func (s *Scheduler) fire(id string) {
	s.logger.Debug("toast removal due", "toast_id", id)
	s.dispatch(Remove(id))
}

// Cancel drops the pending removal for id.
func (s *Scheduler) Cancel(id string) bool {
	return s.timers.stop(id)
}

// CancelAll drops every pending removal.
func (s *Scheduler) CancelAll() {
	if n := s.timers.stopAll(); n > 0 {
		s.logger.Debug("toast removals cancelled", "count", n)
	}
}

// Scheduled reports whether a removal for id is pending.
func (s *Scheduler) Scheduled(id string) bool {
	return s.timers.has(id)
}

// Pending returns the number of pending removals.
func (s *Scheduler) Pending() int {
	return s.timers.count()
}

// Apply implements Effect.
//
// Timers for toasts that left the state (removed or evicted) or were
// reopened are cancelled. A dismissal schedules removal of each affected
// toast that is still present.
func (s *Scheduler) Apply(_, next State, a Action) {
	s.timers.retain(func(id string) bool {
		t, ok := next.Find(id)
		return ok && !t.Open
	})

	if a.Type != ActionDismiss {
		return
	}
	if a.ToastID != "" {
		if t, ok := next.Find(a.ToastID); ok && !t.Open {
			s.Schedule(a.ToastID)
		}
		return
	}
	for _, t := range next.Toasts {
		s.Schedule(t.ID)
	}
}
