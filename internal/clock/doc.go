// Package clock abstracts the timer operations used by the toast
// scheduler so tests can drive removal and auto-dismiss deterministically.
//
// Production code uses Real(). Tests use Fake() and move time forward with
// Advance; AfterFunc callbacks fire synchronously on the goroutine that
// calls Advance.
//
//	fc := clock.Fake(time.Unix(0, 0))
//	t := toast.New(toast.WithClock(fc))
//	h := t.Toast(toast.Options{Title: "Saved"})
//	h.Dismiss()
//	fc.Advance(toast.DefaultRemoveDelay) // toast is removed here
package clock
