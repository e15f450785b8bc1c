package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vango-dev/toaster/internal/clock"
	"github.com/vango-dev/toaster/internal/config"
	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/pkg/middleware"
	"github.com/vango-dev/toaster/pkg/toast"
)

type demoOptions struct {
	realtime bool
	metrics  bool
	trace    bool
	events   bool
}

func demoCmd(configPath *string) *cobra.Command {
	var (
		opts        demoOptions
		limit       int
		removeDelay time.Duration
		duration    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted toast session and print the state after each step",
		Long: `Run a scripted sequence of toast operations against a toaster
built from the configuration, printing the toast list after each step.

By default time is simulated, so removal and auto-dismiss timers fire
instantly. Use --realtime to wait on the wall clock instead.

Examples:
  toaster demo
  toaster demo --limit=3 --remove-delay=2s
  toaster demo --metrics --trace
  toaster demo --events`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if cmd.Flags().Changed("limit") {
				if limit < 1 {
					return errors.New("E120").
						WithDetail("--limit is " + strconv.Itoa(limit)).
						WithSuggestion("Use a limit of at least 1")
				}
				cfg.Limit = limit
			}
			if cmd.Flags().Changed("remove-delay") {
				if removeDelay < 0 {
					return errors.New("E120").WithDetail("--remove-delay must not be negative")
				}
				cfg.RemoveDelay = removeDelay.String()
			}
			if cmd.Flags().Changed("duration") {
				if duration < 0 {
					return errors.New("E120").WithDetail("--duration must not be negative")
				}
				cfg.Duration = duration.String()
			}

			return runDemo(cmd, cfg, opts)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", config.DefaultLimit, "Maximum number of toasts kept (default from config)")
	cmd.Flags().DurationVar(&removeDelay, "remove-delay", 0, "Delay between dismissal and removal (default from config)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Auto-dismiss duration, 0 disables (default from config)")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "Wait on the wall clock instead of simulating time")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print Prometheus metrics at the end")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Trace actions and print a span summary at the end")
	cmd.Flags().BoolVar(&opts.events, "events", false, "Print every vango:toast event as JSON")

	return cmd
}

// demoStep is one scripted operation.
type demoStep struct {
	title string
	run   func()
}

func runDemo(cmd *cobra.Command, cfg *config.Config, opts demoOptions) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cfg.Log, cmd.ErrOrStderr())

	mws := []toast.Middleware{middleware.Logging(logger)}

	var reg *prometheus.Registry
	if opts.metrics || cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		mws = append(mws, middleware.Prometheus(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		))
	}

	var tally *spanTally
	if opts.trace || cfg.Tracing.Enabled {
		tally = newSpanTally()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tally))
		defer func() { _ = tp.Shutdown(context.Background()) }()
		mws = append(mws, middleware.OpenTelemetry(
			middleware.WithTracerProvider(tp),
			middleware.WithTracerName(cfg.Tracing.TracerName),
		))
	}

	var (
		clk  clock.Clock
		wait func(time.Duration)
	)
	if opts.realtime {
		clk = clock.Real()
		// Timers fire on their own goroutines; give them a moment.
		wait = func(d time.Duration) { time.Sleep(d + 100*time.Millisecond) }
	} else {
		fake := clock.Fake(time.Now())
		clk = fake
		wait = fake.Advance
	}

	t := toast.New(
		toast.WithLimit(cfg.Limit),
		toast.WithRemoveDelay(cfg.RemoveDelayDuration()),
		toast.WithDefaultDuration(cfg.DurationValue()),
		toast.WithClock(clk),
		toast.WithIDGenerator(idGenerator(cfg.IDs)),
		toast.WithLogger(logger),
		toast.WithStoreOptions(toast.WithMiddleware(mws...)),
	)
	defer t.Close()

	if opts.events {
		defer toast.Bridge(t, &printEmitter{w: out})()
	}

	b := t.Use(nil)
	defer b.Close()

	info(cmd, "limit=%d removeDelay=%s duration=%s ids=%s",
		cfg.Limit, cfg.RemoveDelayDuration(), cfg.DurationValue(), cfg.IDs)
	if opts.realtime && cfg.RemoveDelayDuration() > 10*time.Second {
		warn(cmd, "--realtime with a %s remove delay will take a while", cfg.RemoveDelayDuration())
	}
	fmt.Fprintln(out)

	var upload *toast.Handle
	retrying := toast.TypeInfo
	linger := cfg.RemoveDelayDuration() + cfg.DurationValue()

	steps := []demoStep{
		{"Show a success toast", func() {
			b.Toast(toast.Options{
				Title:       "Saved",
				Description: "Your changes were saved.",
				Level:       toast.TypeSuccess,
			})
		}},
		{"Show an error toast with a retry action", func() {
			upload = b.Toast(toast.Options{
				Title:       "Upload failed",
				Description: "The network is unreachable.",
				Level:       toast.TypeError,
				Variant:     toast.VariantDestructive,
				Action:      &toast.ActionButton{Label: "Retry", ID: "retry"},
				Duration:    -1,
			})
		}},
		{"Update the error toast through its handle", func() {
			upload.Update(toast.Patch{
				Title:       toast.String("Retrying upload"),
				Description: toast.String("Attempt 2 of 3"),
				Level:       &retrying,
				Variant:     ptr(toast.VariantDefault),
			})
		}},
		{"Dismiss it", func() {
			upload.Dismiss()
		}},
		{"Wait for the removal delay", func() {
			wait(cfg.RemoveDelayDuration())
		}},
		{"Show three info toasts", func() {
			for i := 1; i <= 3; i++ {
				t.Info(fmt.Sprintf("Message %d", i))
			}
		}},
		{"Dismiss all", func() {
			b.Dismiss("")
		}},
		{"Wait until everything is gone", func() {
			wait(linger)
		}},
	}

	for i, step := range steps {
		step.run()
		fmt.Fprintf(out, "%d. %s\n", i+1, step.title)
		fmt.Fprintln(out, renderToasts(b.Toasts(), t.Scheduler()))
		fmt.Fprintln(out)
	}

	success(cmd, "Demo complete")

	if tally != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, tally.render())
	}

	if reg != nil {
		fmt.Fprintln(out)
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}

	return nil
}

func ptr[T any](v T) *T { return &v }

func idGenerator(name string) toast.IDGenerator {
	if name == "uuid" {
		return toast.UUIDIDs()
	}
	return toast.CounterIDs()
}

// renderToasts renders the toast list as a table.
func renderToasts(toasts []toast.Toast, s *toast.Scheduler) string {
	if len(toasts) == 0 {
		return "  (no toasts)"
	}
	rows := make([][]string, 0, len(toasts))
	for _, t := range toasts {
		removal := ""
		if s.Scheduled(t.ID) {
			removal = "in " + s.Delay().String()
		}
		action := ""
		if t.Action != nil {
			action = t.Action.Label
		}
		rows = append(rows, []string{
			t.ID,
			string(t.Level),
			t.Title,
			t.Description,
			action,
			strconv.FormatBool(t.Open),
			removal,
		})
	}
	return renderTable(
		[]string{"ID", "Level", "Title", "Description", "Action", "Open", "Removal"},
		rows,
		[]columnAlignment{alignRight},
	)
}

// printEmitter writes each event as one JSON line.
type printEmitter struct {
	w io.Writer
}

func (e *printEmitter) Emit(name string, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(e.w, "event %s: %v\n", name, err)
		return
	}
	fmt.Fprintf(e.w, "event %s %s\n", name, b)
}

// writeMetrics writes every gathered metric family in the Prometheus text
// exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.New("E121").Wrap(err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.New("E121").Wrap(err)
		}
	}
	return nil
}
