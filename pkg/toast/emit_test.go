package toast_test

import (
	"testing"
	"time"

	"github.com/vango-dev/toaster/pkg/toast"
)

// mockEmitter captures emitted events for verification.
type mockEmitter struct {
	emittedEvents []emittedEvent
}

type emittedEvent struct {
	name string
	data any
}

func (m *mockEmitter) Emit(name string, data any) {
	m.emittedEvents = append(m.emittedEvents, emittedEvent{name, data})
}

func lastToasts(t *testing.T, e *mockEmitter) []map[string]any {
	t.Helper()
	if len(e.emittedEvents) == 0 {
		t.Fatal("no events emitted")
	}
	event := e.emittedEvents[len(e.emittedEvents)-1]
	if event.name != toast.EventName {
		t.Errorf("expected event name %q, got %q", toast.EventName, event.name)
	}
	data := event.data.(map[string]any)
	return data["toasts"].([]map[string]any)
}

func TestBridgeSuccess(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()
	e := &mockEmitter{}
	defer toast.Bridge(toaster, e)()

	toaster.Success("Item saved!")

	if len(e.emittedEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(e.emittedEvents))
	}
	toasts := lastToasts(t, e)
	if len(toasts) != 1 {
		t.Fatalf("expected 1 toast, got %d", len(toasts))
	}
	if toasts[0]["level"] != "success" {
		t.Errorf("expected level success, got %v", toasts[0]["level"])
	}
	if toasts[0]["title"] != "Item saved!" {
		t.Errorf("expected title 'Item saved!', got %v", toasts[0]["title"])
	}
	if toasts[0]["open"] != true {
		t.Errorf("expected open true, got %v", toasts[0]["open"])
	}
}

func TestBridgeDismissAndRemove(t *testing.T) {
	toaster, fc := newTestToaster(toast.WithRemoveDelay(time.Second))
	defer toaster.Close()
	e := &mockEmitter{}
	defer toast.Bridge(toaster, e)()

	h := toaster.Error("Something went wrong")
	h.Dismiss()
	if toasts := lastToasts(t, e); toasts[0]["open"] != false {
		t.Errorf("expected open false after dismiss, got %v", toasts[0]["open"])
	}

	fc.Advance(time.Second)
	if toasts := lastToasts(t, e); len(toasts) != 0 {
		t.Errorf("expected empty list after removal, got %v", toasts)
	}
	if len(e.emittedEvents) != 3 {
		t.Errorf("expected 3 events, got %d", len(e.emittedEvents))
	}
}

func TestBridgeUnsubscribe(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()
	e := &mockEmitter{}

	unsubscribe := toast.Bridge(toaster, e)
	toaster.Info("First")
	unsubscribe()
	toaster.Info("Second")

	if len(e.emittedEvents) != 1 {
		t.Errorf("expected 1 event, got %d", len(e.emittedEvents))
	}
}

func TestPayload(t *testing.T) {
	data := toast.Payload(toast.Toast{
		ID:          "7",
		Title:       "Item deleted",
		Description: "The item was moved to trash",
		Level:       toast.TypeInfo,
		Variant:     toast.VariantDestructive,
		Action:      &toast.ActionButton{Label: "Undo", ID: "undo-123"},
		Duration:    5 * time.Second,
		Open:        true,
		Extra: map[string]any{
			"position": "top-right",
			"id":       "shadowed",
		},
	})

	want := map[string]any{
		"id":          "7",
		"title":       "Item deleted",
		"message":     "The item was moved to trash",
		"level":       "info",
		"variant":     "destructive",
		"actionLabel": "Undo",
		"actionID":    "undo-123",
		"duration":    int64(5000),
		"open":        true,
		"position":    "top-right",
	}
	for k, v := range want {
		if data[k] != v {
			t.Errorf("expected %s %v, got %v", k, v, data[k])
		}
	}
	if len(data) != len(want) {
		t.Errorf("expected %d keys, got %d: %v", len(want), len(data), data)
	}
}

func TestPayloadMinimal(t *testing.T) {
	data := toast.Payload(toast.Toast{ID: "1"})

	for _, key := range []string{"level", "title", "variant", "actionLabel", "actionID", "duration"} {
		if _, ok := data[key]; ok {
			t.Errorf("unexpected key %q in minimal payload", key)
		}
	}
	if data["message"] != "" {
		t.Errorf("expected empty message, got %v", data["message"])
	}
}
