package toast

import "sync"

// Binding is a UI component's view of a Toaster. It mirrors the toast
// list locally and stays subscribed until Close.
//
//	b := toaster.Use(func(toasts []toast.Toast) { rerender() })
//	defer b.Close()
//	b.Toast(toast.Options{Title: "Saved"})
type Binding struct {
	toaster  *Toaster
	onChange func([]Toast)

	mu          sync.Mutex
	toasts      []Toast
	closed      bool
	unsubscribe func()
}

// Use subscribes to t and returns a Binding holding the current toasts.
// onChange, if non-nil, is called with the new toasts after every state
// change until the binding is closed.
func (t *Toaster) Use(onChange func([]Toast)) *Binding {
	b := &Binding{toaster: t, onChange: onChange}

	b.mu.Lock()
	b.unsubscribe = t.store.Subscribe(b.sync)
	b.toasts = t.store.State().Toasts
	b.mu.Unlock()
	return b
}

func (b *Binding) sync(s State) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.toasts = s.Toasts
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil {
		onChange(s.snapshot().Toasts)
	}
}

// Toasts returns a copy of the binding's toast list.
func (b *Binding) Toasts() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{Toasts: b.toasts}.snapshot().Toasts
}

// Toast shows a toast through the bound Toaster.
func (b *Binding) Toast(o Options) *Handle {
	return b.toaster.Toast(o)
}

// Dismiss dismisses a toast, or all toasts when id is empty.
func (b *Binding) Dismiss(id string) {
	b.toaster.Dismiss(id)
}

// Close unsubscribes the binding. Its toast list stops changing.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	unsubscribe := b.unsubscribe
	b.mu.Unlock()

	unsubscribe()
}
