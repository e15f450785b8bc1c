package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/toaster/pkg/toast"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "toaster").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for apply duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "toaster",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for toast stores.
type metrics struct {
	actionsTotal  *prometheus.CounterVec
	applyDuration *prometheus.HistogramVec
	evictions     prometheus.Counter
	toasts        prometheus.Gauge
	toastsOpen    prometheus.Gauge
}

// registered holds one metrics set per registry, created by the first
// Prometheus call for that registry.
var (
	registered   = make(map[prometheus.Registerer]*metrics)
	registeredMu sync.Mutex
)

// metricsFor returns the metrics registered with config.Registry,
// registering them on first use.
func metricsFor(config MetricsConfig) *metrics {
	registeredMu.Lock()
	defer registeredMu.Unlock()
	m, ok := registered[config.Registry]
	if !ok {
		m = initMetrics(config)
		registered[config.Registry] = m
	}
	return m
}

// initMetrics registers the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		actionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "actions_total",
			Help:        "Total number of toast actions applied",
			ConstLabels: config.ConstLabels,
		}, []string{"action"}),

		applyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "apply_duration_seconds",
			Help:        "Time to apply a toast action and notify subscribers",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"action"}),

		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "evictions_total",
			Help:        "Total number of toasts dropped because the limit was reached",
			ConstLabels: config.ConstLabels,
		}),

		toasts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts",
			Help:        "Number of toasts currently in state",
			ConstLabels: config.ConstLabels,
		}),

		toastsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_open",
			Help:        "Number of toasts currently visible",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// applied toast actions. Metrics are registered once per registry; later
// calls with the same registry share them and ignore the other options.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	t := toast.New(toast.WithStoreOptions(
//	    toast.WithMiddleware(middleware.Prometheus(middleware.WithRegistry(reg))),
//	))
func Prometheus(opts ...MetricsOption) toast.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := metricsFor(config)

	return func(next toast.Handler) toast.Handler {
		// Only touched from inside the store's serialized section.
		var last toast.State

		return func(ctx context.Context, a toast.Action) toast.State {
			start := time.Now()
			st := next(ctx, a)
			label := a.Type.String()

			m.applyDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
			m.actionsTotal.WithLabelValues(label).Inc()
			if a.Type == toast.ActionAdd {
				if n := evicted(last, st, a.Toast.ID); n > 0 {
					m.evictions.Add(float64(n))
				}
			}
			m.toasts.Set(float64(st.Len()))
			m.toastsOpen.Set(float64(st.Open()))

			last = st
			return st
		}
	}
}

// evicted counts the toasts in prev that are missing from next, not
// counting a toast replaced by one with the same ID.
func evicted(prev, next toast.State, addedID string) int {
	n := 0
	for _, t := range prev.Toasts {
		if t.ID == addedID {
			continue
		}
		if _, ok := next.Find(t.ID); !ok {
			n++
		}
	}
	return n
}

// Collector exposes the metrics for use in custom registrations and tests.
type Collector struct {
	ActionsTotal  *prometheus.CounterVec
	ApplyDuration *prometheus.HistogramVec
	Evictions     prometheus.Counter
	Toasts        prometheus.Gauge
	ToastsOpen    prometheus.Gauge
}

// GetMetrics returns the collector registered with the registry selected
// by opts (prometheus.DefaultRegisterer when none is given).
// Returns nil if Prometheus has not been called for that registry.
func GetMetrics(opts ...MetricsOption) *Collector {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	registeredMu.Lock()
	defer registeredMu.Unlock()
	m, ok := registered[config.Registry]
	if !ok {
		return nil
	}
	return &Collector{
		ActionsTotal:  m.actionsTotal,
		ApplyDuration: m.applyDuration,
		Evictions:     m.evictions,
		Toasts:        m.toasts,
		ToastsOpen:    m.toastsOpen,
	}
}
