package toast_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/toaster/internal/clock"
	"github.com/vango-dev/toaster/pkg/toast"
)

func newTestToaster(opts ...toast.Option) (*toast.Toaster, *clock.FakeClock) {
	fc := clock.Fake(epoch)
	t := toast.New(append([]toast.Option{toast.WithClock(fc)}, opts...)...)
	return t, fc
}

func TestToastReturnsHandle(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()

	h := toaster.Toast(toast.Options{Title: "Test"})

	if h.ID == "" {
		t.Fatal("handle has empty ID")
	}
	toasts := toaster.Toasts()
	if len(toasts) != 1 {
		t.Fatalf("len(Toasts()) = %d, want 1", len(toasts))
	}
	if toasts[0].ID != h.ID || toasts[0].Title != "Test" || !toasts[0].Open {
		t.Errorf("toast = %+v, want open toast %q titled Test", toasts[0], h.ID)
	}
	if toasts[0].OnOpenChange == nil {
		t.Error("OnOpenChange not wired")
	}
}

func TestToastUniqueIDs(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()

	h1 := toaster.Toast(toast.Options{Title: "Same"})
	h2 := toaster.Toast(toast.Options{Title: "Same"})

	if h1.ID == h2.ID {
		t.Errorf("both toasts got ID %q", h1.ID)
	}
}

func TestToastDismissThenRemoved(t *testing.T) {
	toaster, fc := newTestToaster()
	defer toaster.Close()

	h := toaster.Toast(toast.Options{Title: "X"})
	h.Dismiss()

	got, ok := toaster.State().Find(h.ID)
	if !ok || got.Open {
		t.Fatalf("after Dismiss toast = %+v (present=%v), want present and closed", got, ok)
	}

	fc.Advance(toast.DefaultRemoveDelay)
	if _, ok := toaster.State().Find(h.ID); ok {
		t.Error("toast still present after the removal delay")
	}
}

func TestToastHandleUpdate(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()

	h := toaster.Toast(toast.Options{Title: "Uploading", Level: toast.TypeInfo})
	h.Update(toast.Patch{
		ID:          "ignored",
		Title:       toast.String("Uploaded"),
		Description: toast.String("3 files"),
		Action:      &toast.ActionButton{Label: "View", ID: "view-uploads"},
	})

	got, ok := toaster.State().Find(h.ID)
	if !ok {
		t.Fatal("toast missing after update")
	}
	if got.Title != "Uploaded" || got.Description != "3 files" {
		t.Errorf("toast = %+v, want updated title and description", got)
	}
	if got.Action == nil || got.Action.ID != "view-uploads" {
		t.Errorf("Action = %+v, want view-uploads", got.Action)
	}
	if !got.Open {
		t.Error("update changed Open")
	}
}

func TestToastOnOpenChangeDismisses(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()

	var calls []bool
	h := toaster.Toast(toast.Options{
		Title:        "Closable",
		OnOpenChange: func(open bool) { calls = append(calls, open) },
	})

	live, _ := toaster.State().Find(h.ID)
	live.OnOpenChange(true)
	if got, _ := toaster.State().Find(h.ID); !got.Open {
		t.Error("OnOpenChange(true) dismissed the toast")
	}

	live.OnOpenChange(false)
	if got, _ := toaster.State().Find(h.ID); got.Open {
		t.Error("OnOpenChange(false) did not dismiss the toast")
	}
	if diff := cmp.Diff([]bool{true, false}, calls); diff != "" {
		t.Errorf("user callback calls (-want +got):\n%s", diff)
	}
}

func TestToasterLimitEvicts(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()

	toaster.Toast(toast.Options{Title: "first"})
	h := toaster.Toast(toast.Options{Title: "second"})

	toasts := toaster.Toasts()
	if len(toasts) != 1 || toasts[0].ID != h.ID {
		t.Errorf("Toasts() = %v, want only %q", toaster.State().IDs(), h.ID)
	}
}

func TestToasterWithLimit(t *testing.T) {
	toaster, _ := newTestToaster(toast.WithLimit(3))
	defer toaster.Close()

	for i := 0; i < 5; i++ {
		toaster.Info("hello")
	}
	if got := len(toaster.Toasts()); got != 3 {
		t.Errorf("len(Toasts()) = %d, want 3", got)
	}
}

func TestToasterDismissAll(t *testing.T) {
	toaster, fc := newTestToaster(toast.WithLimit(3), toast.WithRemoveDelay(time.Second))
	defer toaster.Close()

	toaster.Success("a")
	toaster.Warning("b")
	toaster.Dismiss("")

	if toaster.State().Open() != 0 {
		t.Errorf("Open() = %d after dismiss all, want 0", toaster.State().Open())
	}
	if toaster.Scheduler().Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", toaster.Scheduler().Pending())
	}

	fc.Advance(time.Second)
	if len(toaster.Toasts()) != 0 {
		t.Errorf("Toasts() = %v after delay, want none", toaster.State().IDs())
	}
}

func TestToasterRemove(t *testing.T) {
	toaster, fc := newTestToaster(toast.WithLimit(3))
	defer toaster.Close()

	h := toaster.Error("failed")
	h.Dismiss()
	toaster.Remove(h.ID)

	if toaster.Scheduler().Pending() != 0 {
		t.Error("manual remove left a pending removal")
	}
	if fc.PendingCount() != 0 {
		t.Errorf("clock has %d timers, want 0", fc.PendingCount())
	}

	toaster.Info("a")
	toaster.Info("b")
	toaster.Remove("")
	if len(toaster.Toasts()) != 0 {
		t.Error("Remove(\"\") left toasts behind")
	}
}

func TestToasterLevelShortcuts(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()

	tests := []struct {
		name    string
		show    func(string) *toast.Handle
		level   toast.Type
		variant toast.Variant
	}{
		{"success", toaster.Success, toast.TypeSuccess, ""},
		{"error", toaster.Error, toast.TypeError, toast.VariantDestructive},
		{"warning", toaster.Warning, toast.TypeWarning, ""},
		{"info", toaster.Info, toast.TypeInfo, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.show("message")
			got, ok := toaster.State().Find(h.ID)
			if !ok {
				t.Fatal("toast missing")
			}
			if got.Level != tt.level || got.Variant != tt.variant {
				t.Errorf("level=%q variant=%q, want %q %q", got.Level, got.Variant, tt.level, tt.variant)
			}
		})
	}
}

func TestToastAutoDismiss(t *testing.T) {
	toaster, fc := newTestToaster(toast.WithRemoveDelay(time.Second))
	defer toaster.Close()

	h := toaster.Toast(toast.Options{Title: "Saved", Duration: 3 * time.Second})

	fc.Advance(2 * time.Second)
	if got, _ := toaster.State().Find(h.ID); !got.Open {
		t.Fatal("toast dismissed before its duration")
	}

	fc.Advance(time.Second)
	if got, ok := toaster.State().Find(h.ID); !ok || got.Open {
		t.Fatalf("toast = %+v (present=%v), want present and closed", got, ok)
	}

	fc.Advance(time.Second)
	if _, ok := toaster.State().Find(h.ID); ok {
		t.Error("auto-dismissed toast not removed after the removal delay")
	}
}

func TestToastAutoDismissCancelledByManualDismiss(t *testing.T) {
	toaster, fc := newTestToaster(toast.WithRemoveDelay(10 * time.Second))
	defer toaster.Close()

	h := toaster.Toast(toast.Options{Title: "Saved", Duration: 3 * time.Second})
	h.Dismiss()

	var dismissals int
	toaster.Subscribe(func(toast.State) { dismissals++ })
	fc.Advance(5 * time.Second)
	if dismissals != 0 {
		t.Errorf("auto-dismiss fired %d times after manual dismiss", dismissals)
	}
}

func TestToastDefaultDuration(t *testing.T) {
	toaster, fc := newTestToaster(toast.WithDefaultDuration(time.Second))
	defer toaster.Close()

	timed := toaster.Toast(toast.Options{Title: "timed"})
	if got, _ := toaster.State().Find(timed.ID); got.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", got.Duration)
	}

	sticky := toaster.Toast(toast.Options{Title: "sticky", Duration: -1})
	fc.Advance(time.Minute)
	got, ok := toaster.State().Find(sticky.ID)
	if !ok || !got.Open || got.Duration != 0 {
		t.Errorf("sticky toast = %+v (present=%v), want open with no duration", got, ok)
	}
}

func TestToasterClose(t *testing.T) {
	toaster, fc := newTestToaster(toast.WithLimit(2))

	toaster.Toast(toast.Options{Title: "timed", Duration: time.Second})
	h := toaster.Toast(toast.Options{Title: "dismissed"})
	h.Dismiss()

	toaster.Close()
	toaster.Close()

	if fc.PendingCount() != 0 {
		t.Errorf("clock has %d timers after Close, want 0", fc.PendingCount())
	}
	fc.Advance(time.Hour)
	if len(toaster.Toasts()) != 2 {
		t.Errorf("Close changed state: %v", toaster.State().IDs())
	}
}

func TestToasterUUIDs(t *testing.T) {
	toaster, _ := newTestToaster(toast.WithIDGenerator(toast.UUIDIDs()))
	defer toaster.Close()

	h := toaster.Info("hello")
	if len(h.ID) != 36 {
		t.Errorf("ID = %q, want a UUID", h.ID)
	}
}

func TestDefaultToaster(t *testing.T) {
	if toast.Default() != toast.Default() {
		t.Fatal("Default() returned different toasters")
	}

	h := toast.Show(toast.Options{Title: "global"})
	if _, ok := toast.Default().State().Find(h.ID); !ok {
		t.Error("Show did not add to the default toaster")
	}
	toast.Default().Remove("")
}

func TestToasterToastsIsACopy(t *testing.T) {
	toaster, _ := newTestToaster()
	defer toaster.Close()

	h := toaster.Toast(toast.Options{Title: "Saved"})
	toaster.Toasts()[0].Title = "changed"
	toaster.Toasts()[0].Open = false

	got, _ := toaster.State().Find(h.ID)
	if got.Title != "Saved" || !got.Open {
		t.Errorf("store toast = %+v, want open and titled Saved", got)
	}
	if toaster.Scheduler().Scheduled(h.ID) {
		t.Error("removal scheduled without a dismissal")
	}
}
