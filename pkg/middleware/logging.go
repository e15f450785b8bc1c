package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/toaster/pkg/toast"
)

// Logging logs every applied action at debug level. A nil logger uses
// slog.Default().
func Logging(logger *slog.Logger) toast.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next toast.Handler) toast.Handler {
		return func(ctx context.Context, a toast.Action) toast.State {
			start := time.Now()
			st := next(ctx, a)
			logger.LogAttrs(ctx, slog.LevelDebug, "toast action applied",
				slog.String("action", a.Type.String()),
				slog.String("toast_id", a.TargetID()),
				slog.Int("toasts", st.Len()),
				slog.Int("open", st.Open()),
				slog.Duration("duration", time.Since(start)),
			)
			return st
		}
	}
}
