package toast

import (
	"sync"
	"time"

	"github.com/vango-dev/toaster/internal/clock"
)

// timerSet holds at most one pending timer per toast ID.
type timerSet struct {
	clock clock.Clock

	mu      sync.Mutex
	pending map[string]*timerEntry
}

type timerEntry struct {
	timer *clock.Timer
}

func newTimerSet(c clock.Clock) *timerSet {
	return &timerSet{
		clock:   c,
		pending: make(map[string]*timerEntry),
	}
}

// start runs fn(id) after d unless a timer for id is already pending, in
// which case it returns false. The entry is cleared before fn runs; a
// timer that was stopped or replaced never calls fn.
func (ts *timerSet) start(id string, d time.Duration, fn func(id string)) bool {
	ts.mu.Lock()
	if _, ok := ts.pending[id]; ok {
		ts.mu.Unlock()
		return false
	}
	entry := &timerEntry{}
	ts.pending[id] = entry
	ts.mu.Unlock()

	timer := ts.clock.AfterFunc(d, func() {
		ts.mu.Lock()
		if ts.pending[id] != entry {
			ts.mu.Unlock()
			return
		}
		delete(ts.pending, id)
		ts.mu.Unlock()

		fn(id)
	})

	ts.mu.Lock()
	if ts.pending[id] == entry {
		entry.timer = timer
	}
	ts.mu.Unlock()
	return true
}

// stop cancels the pending timer for id.
func (ts *timerSet) stop(id string) bool {
	ts.mu.Lock()
	entry, ok := ts.pending[id]
	if ok {
		delete(ts.pending, id)
	}
	ts.mu.Unlock()

	if ok {
		entry.timer.Stop()
	}
	return ok
}

// stopAll cancels every pending timer.
func (ts *timerSet) stopAll() int {
	ts.mu.Lock()
	entries := ts.pending
	ts.pending = make(map[string]*timerEntry)
	ts.mu.Unlock()

	for _, entry := range entries {
		entry.timer.Stop()
	}
	return len(entries)
}

// retain cancels the timers whose IDs do not satisfy keep.
func (ts *timerSet) retain(keep func(id string) bool) {
	ts.mu.Lock()
	var dropped []*timerEntry
	for id, entry := range ts.pending {
		if !keep(id) {
			delete(ts.pending, id)
			dropped = append(dropped, entry)
		}
	}
	ts.mu.Unlock()

	for _, entry := range dropped {
		entry.timer.Stop()
	}
}

func (ts *timerSet) has(id string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	_, ok := ts.pending[id]
	return ok
}

func (ts *timerSet) count() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.pending)
}
