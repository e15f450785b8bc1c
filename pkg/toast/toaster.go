package toast

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/toaster/internal/clock"
)

// Options describes a toast to show.
type Options struct {
	Title       string
	Description string
	Level       Type
	Variant     Variant
	Action      *ActionButton

	// Duration overrides the toaster's default auto-dismiss duration.
	// Negative disables auto-dismiss for this toast.
	Duration time.Duration

	Extra map[string]any

	// OnOpenChange is called before the toast dismisses itself.
	OnOpenChange func(open bool)
}

// Toaster is the entry point for creating and dismissing toasts. It owns
// a Store, the removal Scheduler and auto-dismiss timers.
type Toaster struct {
	store      *Store
	removals   *Scheduler
	dismissals *timerSet
	ids        IDGenerator
	duration   time.Duration
	logger     *slog.Logger
	closed     atomic.Bool
}

// Option configures a Toaster.
type Option func(*toasterConfig)

type toasterConfig struct {
	limit       int
	removeDelay time.Duration
	duration    time.Duration
	clock       clock.Clock
	ids         IDGenerator
	logger      *slog.Logger
	storeOpts   []StoreOption
}

// WithLimit sets how many toasts are kept at once.
func WithLimit(limit int) Option {
	return func(c *toasterConfig) {
		c.limit = limit
	}
}

// WithRemoveDelay sets how long dismissed toasts linger before removal.
func WithRemoveDelay(d time.Duration) Option {
	return func(c *toasterConfig) {
		c.removeDelay = d
	}
}

// WithDefaultDuration sets the auto-dismiss duration for toasts that do
// not specify one. Zero disables auto-dismiss.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *toasterConfig) {
		c.duration = d
	}
}

// WithClock sets the clock used by every timer.
func WithClock(cl clock.Clock) Option {
	return func(c *toasterConfig) {
		c.clock = cl
	}
}

// WithIDGenerator sets the toast ID source.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *toasterConfig) {
		c.ids = ids
	}
}

// WithLogger sets the logger for the toaster, its store and scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *toasterConfig) {
		c.logger = logger
	}
}

// WithStoreOptions passes options (middleware, effects, context) to the
// underlying Store.
func WithStoreOptions(opts ...StoreOption) Option {
	return func(c *toasterConfig) {
		c.storeOpts = append(c.storeOpts, opts...)
	}
}

// New returns a Toaster with an empty state.
func New(opts ...Option) *Toaster {
	cfg := toasterConfig{
		limit:       DefaultLimit,
		removeDelay: DefaultRemoveDelay,
		clock:       clock.Real(),
		ids:         CounterIDs(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Toaster{
		ids:        cfg.ids,
		duration:   cfg.duration,
		logger:     cfg.logger,
		dismissals: newTimerSet(cfg.clock),
	}

	storeOpts := []StoreOption{
		WithStoreLogger(cfg.logger),
		WithEffect(EffectFunc(t.observe)),
	}
	storeOpts = append(storeOpts, cfg.storeOpts...)
	t.store = NewStore(NewReducer(cfg.limit), storeOpts...)
	t.removals = NewScheduler(t.store.Dispatch,
		WithSchedulerClock(cfg.clock),
		WithDelay(cfg.removeDelay),
		WithSchedulerLogger(cfg.logger),
	)
	return t
}

// observe keeps the removal and auto-dismiss timers in line with state.
func (t *Toaster) observe(prev, next State, a Action) {
	if t.closed.Load() {
		return
	}
	t.removals.Apply(prev, next, a)
	t.dismissals.retain(func(id string) bool {
		toast, ok := next.Find(id)
		return ok && toast.Open
	})

	if a.Type == ActionAdd && a.Toast.Duration > 0 && a.Toast.Open {
		if _, ok := next.Find(a.Toast.ID); ok {
			t.dismissals.start(a.Toast.ID, a.Toast.Duration, t.autoDismiss)
		}
	}
}

func (t *Toaster) autoDismiss(id string) {
	t.logger.Debug("toast auto-dismissed", "toast_id", id)
	t.store.Dispatch(Dismiss(id))
}

// Toast shows a new toast and returns its handle.
func (t *Toaster) Toast(o Options) *Handle {
	h := &Handle{ID: t.ids.NextID(), toaster: t}

	onOpenChange := o.OnOpenChange
	toast := Toast{
		ID:          h.ID,
		Title:       o.Title,
		Description: o.Description,
		Level:       o.Level,
		Variant:     o.Variant,
		Action:      o.Action,
		Duration:    t.durationFor(o),
		Open:        true,
		Extra:       o.Extra,
		OnOpenChange: func(open bool) {
			if onOpenChange != nil {
				onOpenChange(open)
			}
			if !open {
				h.Dismiss()
			}
		},
	}

	t.store.Dispatch(Add(toast))
	return h
}

func (t *Toaster) durationFor(o Options) time.Duration {
	switch {
	case o.Duration > 0:
		return o.Duration
	case o.Duration < 0:
		return 0
	default:
		return t.duration
	}
}

// Success shows a success toast.
//
//	t.Success("Changes saved")
func (t *Toaster) Success(title string) *Handle {
	return t.Toast(Options{Title: title, Level: TypeSuccess})
}

// Error shows an error toast using the destructive variant.
//
//	t.Error("Failed to delete item")
func (t *Toaster) Error(title string) *Handle {
	return t.Toast(Options{Title: title, Level: TypeError, Variant: VariantDestructive})
}

// Warning shows a warning toast.
func (t *Toaster) Warning(title string) *Handle {
	return t.Toast(Options{Title: title, Level: TypeWarning})
}

// Info shows an info toast.
func (t *Toaster) Info(title string) *Handle {
	return t.Toast(Options{Title: title, Level: TypeInfo})
}

// Dismiss hides the toast with the given ID, or every toast when id is
// empty. Dismissed toasts are removed after the removal delay.
func (t *Toaster) Dismiss(id string) {
	t.store.Dispatch(Dismiss(id))
}

// Remove deletes the toast with the given ID immediately, or every toast
// when id is empty.
func (t *Toaster) Remove(id string) {
	t.store.Dispatch(Remove(id))
}

// Toasts returns a copy of the live toasts, most recent first.
func (t *Toaster) Toasts() []Toast {
	return t.store.State().Toasts
}

// State returns a copy of the current state.
func (t *Toaster) State() State {
	return t.store.State()
}

// Subscribe registers fn for every state change.
func (t *Toaster) Subscribe(fn Subscriber) (unsubscribe func()) {
	return t.store.Subscribe(fn)
}

// Store returns the underlying store.
func (t *Toaster) Store() *Store {
	return t.store
}

// Scheduler returns the removal scheduler.
func (t *Toaster) Scheduler() *Scheduler {
	return t.removals
}

// Close cancels every pending removal and auto-dismiss timer. Toasts in
// state are left as they are. Close is idempotent.
func (t *Toaster) Close() {
	if !t.closed.CompareAndSwap(false, true) {
		return
	}
	t.removals.CancelAll()
	t.dismissals.stopAll()
}

// Handle controls a toast created by Toaster.Toast.
type Handle struct {
	ID      string
	toaster *Toaster
}

// Dismiss hides the toast.
func (h *Handle) Dismiss() {
	h.toaster.store.Dispatch(Dismiss(h.ID))
}

// Update merges p into the toast. p.ID is ignored.
func (h *Handle) Update(p Patch) {
	p.ID = h.ID
	h.toaster.store.Dispatch(Update(p))
}

var (
	defaultToaster     *Toaster
	defaultToasterOnce sync.Once
)

// Default returns the process-wide Toaster, creating it on first use.
// Applications that compose their own Toaster should pass it explicitly
// instead.
func Default() *Toaster {
	defaultToasterOnce.Do(func() {
		defaultToaster = New()
	})
	return defaultToaster
}

// Show displays a toast on the default Toaster.
//
//	h := toast.Show(toast.Options{Title: "Project deleted", Level: toast.TypeSuccess})
//	h.Update(toast.Patch{Description: toast.String("Undo within 10s")})
func Show(o Options) *Handle {
	return Default().Toast(o)
}
