package toast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Handler applies one action and returns the resulting state.
type Handler func(ctx context.Context, a Action) State

// Middleware wraps the handler that applies actions to a Store. It runs
// once per applied action, in the same serialized section as the reducer.
type Middleware func(next Handler) Handler

// Effect observes every applied action after the state has been replaced
// and before subscribers are notified. prev and next are copies; effects
// change the store only by dispatching actions, which are applied after
// the current one.
type Effect interface {
	Apply(prev, next State, a Action)
}

// EffectFunc adapts a function to the Effect interface.
type EffectFunc func(prev, next State, a Action)

// Apply calls f(prev, next, a).
func (f EffectFunc) Apply(prev, next State, a Action) { f(prev, next, a) }

// Subscriber receives the state after every applied action. Each
// subscriber gets its own copy.
type Subscriber func(State)

type subscription struct {
	id uint64
	fn Subscriber
}

// Store owns the live toast state. All changes go through Dispatch.
//
// Actions are applied one at a time in dispatch order. A Dispatch issued
// while another goroutine (or a subscriber, effect or timer callback) is
// already applying actions is queued and applied by that caller before it
// returns, so subscribers are never invoked concurrently.
type Store struct {
	mu       sync.Mutex
	state    State
	queue    []Action
	draining bool
	subs     []subscription
	nextSub  uint64

	reducer    Reducer
	handler    Handler
	middleware []Middleware
	effects    []Effect
	ctx     context.Context
	logger  *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for subscriber failures.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMiddleware appends middleware. The first middleware registered,
// across all WithMiddleware options, is outermost.
func WithMiddleware(mw ...Middleware) StoreOption {
	return func(s *Store) {
		for _, m := range mw {
			if m != nil {
				s.middleware = append(s.middleware, m)
			}
		}
	}
}

// WithEffect registers effects, run in registration order.
func WithEffect(effects ...Effect) StoreOption {
	return func(s *Store) {
		s.effects = append(s.effects, effects...)
	}
}

// WithContext sets the base context handed to middleware.
func WithContext(ctx context.Context) StoreOption {
	return func(s *Store) {
		s.ctx = ctx
	}
}

// NewStore returns a Store with an empty state.
func NewStore(reducer Reducer, opts ...StoreOption) *Store {
	if reducer == nil {
		reducer = NewReducer(DefaultLimit)
	}
	s := &Store{
		state:   State{Toasts: []Toast{}},
		reducer: reducer,
		ctx:     context.Background(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = s.apply
	for i := len(s.middleware) - 1; i >= 0; i-- {
		s.handler = s.middleware[i](s.handler)
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.snapshot()
}

// Subscribers returns the number of registered subscribers.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Subscribe registers fn to receive every subsequent state. The returned
// function removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Dispatch submits an action. If no other caller is applying actions, the
// action (and anything queued behind it) is applied before Dispatch
// returns.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.queue = append(s.queue, a)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.drain()
}

func (s *Store) drain() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		a := s.queue[0]
		s.queue[0] = Action{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.handler(s.ctx, a)
	}
}

// apply is the innermost Handler: reduce, publish, run effects, notify.
// Only the store keeps next; everything downstream sees copies.
func (s *Store) apply(_ context.Context, a Action) State {
	s.mu.Lock()
	prev := s.state
	next := s.reducer(prev, a)
	s.state = next
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, e := range s.effects {
		e.Apply(prev.snapshot(), next.snapshot(), a)
	}
	for _, sub := range subs {
		s.notify(sub, next.snapshot())
	}
	return next.snapshot()
}

func (s *Store) notify(sub subscription, st State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("toast subscriber panicked",
				"subscriber", sub.id,
				"error", fmt.Sprint(r),
			)
		}
	}()
	sub.fn(st)
}
