package toast

// ActionType identifies a state transition.
type ActionType uint8

const (
	ActionAdd ActionType = iota + 1
	ActionUpdate
	ActionDismiss
	ActionRemove
)

// String returns the conventional action name.
func (a ActionType) String() string {
	switch a {
	case ActionAdd:
		return "ADD_TOAST"
	case ActionUpdate:
		return "UPDATE_TOAST"
	case ActionDismiss:
		return "DISMISS_TOAST"
	case ActionRemove:
		return "REMOVE_TOAST"
	default:
		return "UNKNOWN"
	}
}

// Action is a request to change the toast state.
//
// Toast is used by ActionAdd, Patch by ActionUpdate and ToastID by
// ActionDismiss and ActionRemove. An empty ToastID targets every toast.
type Action struct {
	Type    ActionType
	Toast   Toast
	Patch   Patch
	ToastID string
}

// Add returns an ADD_TOAST action.
func Add(t Toast) Action {
	return Action{Type: ActionAdd, Toast: t}
}

// Update returns an UPDATE_TOAST action for p.ID.
func Update(p Patch) Action {
	return Action{Type: ActionUpdate, Patch: p}
}

// Dismiss returns a DISMISS_TOAST action for one toast.
func Dismiss(id string) Action {
	return Action{Type: ActionDismiss, ToastID: id}
}

// DismissAll returns a DISMISS_TOAST action for every toast.
func DismissAll() Action {
	return Action{Type: ActionDismiss}
}

// Remove returns a REMOVE_TOAST action for one toast.
func Remove(id string) Action {
	return Action{Type: ActionRemove, ToastID: id}
}

// RemoveAll returns a REMOVE_TOAST action for every toast.
func RemoveAll() Action {
	return Action{Type: ActionRemove}
}

// TargetID returns the toast ID the action refers to, or "" when it
// targets every toast.
func (a Action) TargetID() string {
	switch a.Type {
	case ActionAdd:
		return a.Toast.ID
	case ActionUpdate:
		return a.Patch.ID
	default:
		return a.ToastID
	}
}
