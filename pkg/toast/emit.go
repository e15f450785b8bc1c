package toast

// EventName is the custom event name dispatched to clients on every
// toast state change.
const EventName = "vango:toast"

// Emitter delivers a named custom event to a client. vango's server.Ctx
// satisfies it.
type Emitter interface {
	Emit(name string, data any)
}

// Bridge forwards every state change of t to e as an EventName event
// whose detail is {"toasts": [...]}, each entry built by Payload.
//
// The client renders the list with any toast library:
//
//	window.addEventListener("vango:toast", (e) => {
//	    for (const t of e.detail.toasts) render(t);
//	});
func Bridge(t *Toaster, e Emitter) (unsubscribe func()) {
	return t.Subscribe(func(s State) {
		toasts := make([]map[string]any, len(s.Toasts))
		for i, toast := range s.Toasts {
			toasts[i] = Payload(toast)
		}
		e.Emit(EventName, map[string]any{
			"toasts": toasts,
		})
	})
}

// Payload renders a toast as event detail. Extra keys are copied first so
// the fixed keys always win.
func Payload(t Toast) map[string]any {
	data := make(map[string]any, len(t.Extra)+8)
	for k, v := range t.Extra {
		data[k] = v
	}
	data["id"] = t.ID
	data["open"] = t.Open
	data["message"] = t.Description
	if t.Level != "" {
		data["level"] = string(t.Level)
	}
	if t.Title != "" {
		data["title"] = t.Title
	}
	if t.Variant != "" {
		data["variant"] = string(t.Variant)
	}
	if t.Action != nil {
		data["actionLabel"] = t.Action.Label
		data["actionID"] = t.Action.ID
	}
	if t.Duration > 0 {
		data["duration"] = t.Duration.Milliseconds()
	}
	return data
}
