package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/toaster/pkg/toast"
)

// Default tracer name for toast stores.
const defaultTracerName = "toaster"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "toaster").
	TracerName string

	// TracerProvider supplies the tracer. If nil, the global provider is used.
	TracerProvider trace.TracerProvider

	// Filter determines which actions to trace.
	// Return true to trace the action, false to skip.
	// If nil, all actions are traced.
	Filter func(a toast.Action) bool

	// AttributeExtractor extracts custom attributes from the action.
	// Called for each traced action.
	AttributeExtractor func(a toast.Action) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithActionFilter sets a filter function for actions.
func WithActionFilter(filter func(a toast.Action) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(a toast.Action) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every applied toast action.
//
// The middleware:
//   - Creates a span named "toast.<ACTION>" with the target toast ID
//   - Passes the span context to inner middleware
//   - Records the resulting toast counts as span attributes
//   - Marks the span as errored and re-panics if applying the action panics
//
// Example:
//
//	t := toast.New(toast.WithStoreOptions(
//	    toast.WithMiddleware(middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	    )),
//	))
func OpenTelemetry(opts ...OTelOption) toast.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(next toast.Handler) toast.Handler {
		return func(ctx context.Context, a toast.Action) toast.State {
			if config.Filter != nil && !config.Filter(a) {
				return next(ctx, a)
			}

			attrs := []attribute.KeyValue{
				attribute.String("toast.action", a.Type.String()),
			}
			if id := a.TargetID(); id != "" {
				attrs = append(attrs, attribute.String("toast.id", id))
			} else if a.Type == toast.ActionDismiss || a.Type == toast.ActionRemove {
				attrs = append(attrs, attribute.Bool("toast.all", true))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(a)...)
			}

			ctx, span := config.tracer.Start(ctx, "toast."+a.Type.String(),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			defer func() {
				if r := recover(); r != nil {
					span.SetStatus(codes.Error, "panic while applying action")
					span.SetAttributes(attribute.Bool("toast.panic", true))
					panic(r)
				}
			}()

			st := next(ctx, a)

			span.SetAttributes(
				attribute.Int("toast.count", st.Len()),
				attribute.Int("toast.open", st.Open()),
			)
			span.SetStatus(codes.Ok, "")
			return st
		}
	}
}
