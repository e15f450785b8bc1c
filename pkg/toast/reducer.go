package toast

// DefaultLimit is the number of toasts kept in state. Adding a toast
// beyond the limit evicts the oldest ones.
const DefaultLimit = 1

// Reducer computes the next state from the current state and an action.
type Reducer func(State, Action) State

// NewReducer returns a Reducer that keeps at most limit toasts. Limits
// below 1 are treated as 1.
//
// The returned reducer is pure: it never mutates the input state and
// identifiers that match nothing leave the state unchanged.
func NewReducer(limit int) Reducer {
	if limit < 1 {
		limit = 1
	}
	return func(s State, a Action) State {
		return reduce(s, a, limit)
	}
}

func reduce(s State, a Action, limit int) State {
	switch a.Type {
	case ActionAdd:
		next := make([]Toast, 0, min(len(s.Toasts)+1, limit))
		next = append(next, a.Toast)
		for _, t := range s.Toasts {
			if len(next) == limit {
				break
			}
			if t.ID == a.Toast.ID {
				continue
			}
			next = append(next, t)
		}
		return State{Toasts: next}

	case ActionUpdate:
		i := indexOf(s.Toasts, a.Patch.ID)
		if i < 0 {
			return s
		}
		next := cloneToasts(s.Toasts)
		next[i] = a.Patch.apply(next[i])
		return State{Toasts: next}

	case ActionDismiss:
		if a.ToastID != "" && indexOf(s.Toasts, a.ToastID) < 0 {
			return s
		}
		next := cloneToasts(s.Toasts)
		for i := range next {
			if a.ToastID == "" || next[i].ID == a.ToastID {
				next[i].Open = false
			}
		}
		return State{Toasts: next}

	case ActionRemove:
		if a.ToastID == "" {
			return State{Toasts: []Toast{}}
		}
		i := indexOf(s.Toasts, a.ToastID)
		if i < 0 {
			return s
		}
		next := make([]Toast, 0, len(s.Toasts)-1)
		next = append(next, s.Toasts[:i]...)
		next = append(next, s.Toasts[i+1:]...)
		return State{Toasts: next}
	}

	return s
}

func indexOf(toasts []Toast, id string) int {
	for i, t := range toasts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneToasts(toasts []Toast) []Toast {
	next := make([]Toast, len(toasts))
	copy(next, toasts)
	return next
}
