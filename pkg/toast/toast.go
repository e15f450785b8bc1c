package toast

import (
	"maps"
	"time"
)

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Variant selects the visual treatment of a toast.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// ActionButton is an optional call-to-action rendered inside a toast.
type ActionButton struct {
	Label string
	ID    string
}

// Toast is a single notification record.
//
// Open is true while the toast is visible and becomes false once it is
// dismissed. Only an explicit update can set it back to true.
type Toast struct {
	ID          string
	Title       string
	Description string
	Level       Type
	Variant     Variant
	Action      *ActionButton

	// Duration dismisses the toast automatically once elapsed. Zero
	// disables auto-dismiss.
	Duration time.Duration

	Open bool

	// Extra holds display properties the runtime passes through untouched.
	Extra map[string]any

	// OnOpenChange is called by the UI when the toast's visibility changes.
	// Toasts created through a Toaster dismiss themselves when it is called
	// with false.
	OnOpenChange func(open bool)
}

// Patch is a partial Toast applied by an UPDATE_TOAST action. Nil fields
// are left unchanged; Extra keys are merged into the existing map.
type Patch struct {
	ID          string
	Title       *string
	Description *string
	Level       *Type
	Variant     *Variant
	Action      *ActionButton
	Open        *bool
	Extra       map[string]any
}

// apply returns a copy of t with p merged in.
func (p Patch) apply(t Toast) Toast {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Level != nil {
		t.Level = *p.Level
	}
	if p.Variant != nil {
		t.Variant = *p.Variant
	}
	if p.Action != nil {
		action := *p.Action
		t.Action = &action
	}
	if p.Open != nil {
		t.Open = *p.Open
	}
	if len(p.Extra) > 0 {
		merged := make(map[string]any, len(t.Extra)+len(p.Extra))
		for k, v := range t.Extra {
			merged[k] = v
		}
		for k, v := range p.Extra {
			merged[k] = v
		}
		t.Extra = merged
	}
	return t
}

// String returns a pointer to s, for building a Patch.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building a Patch.
func Bool(b bool) *bool { return &b }

// State is the list of live toasts, most recently added first.
//
// States handed out by a Store are copies: writing to them never changes
// the store.
type State struct {
	Toasts []Toast
}

// snapshot returns a copy of s that shares no slice, map or ActionButton
// with it.
func (s State) snapshot() State {
	toasts := make([]Toast, len(s.Toasts))
	for i, t := range s.Toasts {
		if t.Action != nil {
			action := *t.Action
			t.Action = &action
		}
		if t.Extra != nil {
			t.Extra = maps.Clone(t.Extra)
		}
		toasts[i] = t
	}
	return State{Toasts: toasts}
}

// Len returns the number of toasts in the state.
func (s State) Len() int {
	return len(s.Toasts)
}

// Find returns the toast with the given ID.
func (s State) Find(id string) (Toast, bool) {
	for _, t := range s.Toasts {
		if t.ID == id {
			return t, true
		}
	}
	return Toast{}, false
}

// IDs returns the toast IDs in state order.
func (s State) IDs() []string {
	ids := make([]string, len(s.Toasts))
	for i, t := range s.Toasts {
		ids[i] = t.ID
	}
	return ids
}

// Open returns the number of toasts that are still visible.
func (s State) Open() int {
	n := 0
	for _, t := range s.Toasts {
		if t.Open {
			n++
		}
	}
	return n
}
