// Package middleware provides dispatch middleware for toast stores.
//
// Middleware wraps every action a toast.Store applies, running inside the
// store's serialized section. This package includes:
//   - OpenTelemetry tracing (one span per applied action)
//   - Prometheus metrics (actions, apply latency, live and open toasts)
//   - Structured logging with log/slog
//
// Install them when building a Toaster:
//
//	t := toast.New(toast.WithStoreOptions(
//	    toast.WithMiddleware(
//	        middleware.Logging(slog.Default()),
//	        middleware.Prometheus(middleware.WithNamespace("myapp")),
//	        middleware.OpenTelemetry(middleware.WithTracerName("myapp")),
//	    ),
//	))
//
// # Prometheus Metrics
//
// With the default "toaster" namespace:
//   - toaster_actions_total: Actions applied, by action type
//   - toaster_apply_duration_seconds: Time to apply an action and notify subscribers
//   - toaster_evictions_total: Toasts dropped because the limit was reached
//   - toaster_toasts: Toasts currently in state
//   - toaster_toasts_open: Toasts currently visible
//
// # OpenTelemetry
//
// Spans are named after the action ("toast.DISMISS_TOAST") and carry the
// target toast ID and the resulting toast counts. The tracer comes from the
// global provider unless WithTracerProvider is given.
package middleware
