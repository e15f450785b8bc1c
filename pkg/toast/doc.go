// Package toast manages transient notifications ("toasts") for Vango
// applications.
//
// State lives in a Store and changes only through actions:
//
//	ADD_TOAST      prepend a toast, evicting the oldest beyond the limit
//	UPDATE_TOAST   merge a Patch into the toast with the same ID
//	DISMISS_TOAST  set Open=false on one toast, or all of them
//	REMOVE_TOAST   delete one toast, or all of them
//
// The reducer is a pure function. Timing lives outside it: the Scheduler
// observes dismissals and dispatches REMOVE_TOAST once the removal delay
// has passed, and never edits state directly.
//
// # Usage
//
// A Toaster wires the store, reducer and scheduler together:
//
//	toaster := toast.New(
//	    toast.WithLimit(3),
//	    toast.WithRemoveDelay(5*time.Second),
//	)
//	defer toaster.Close()
//
//	h := toaster.Toast(toast.Options{
//	    Title:       "Project deleted",
//	    Description: "The project and its files were removed.",
//	    Level:       toast.TypeSuccess,
//	})
//	h.Update(toast.Patch{Action: &toast.ActionButton{Label: "Undo", ID: "undo-42"}})
//	h.Dismiss()
//
// UI code binds to a toaster with Use, which keeps a local copy of the
// toast list in sync until Close:
//
//	b := toaster.Use(func(toasts []toast.Toast) { markDirty() })
//	defer b.Close()
//
// # Client Events
//
// Bridge forwards state to the browser through the vango:toast custom
// event, leaving rendering to whichever toast library the client uses.
//
// # Defaults
//
// Only one toast is kept at a time (DefaultLimit) and dismissed toasts are
// removed after DefaultRemoveDelay. Both are configurable.
package toast
