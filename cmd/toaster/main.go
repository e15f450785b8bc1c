package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toaster/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┌─┐┌─┐┌┬┐┌─┐┬─┐
   ║ │ │├─┤└─┐ │ ├┤ ├┬┘
   ╩ └─┘┴ ┴└─┘ ┴ └─┘┴└─
`

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format, _ := rootCmd.PersistentFlags().GetString("error-format")
		reportError(os.Stderr, err, format)
		os.Exit(1)
	}
}

// reportError writes err in the named style. Errors without a code are
// reported as E120; an unknown style falls back to text.
func reportError(w io.Writer, err error, format string) {
	style, ok := errors.ParseStyle(format)
	if !ok {
		style = errors.StyleText
	}
	errors.Fprint(w, errors.FromError(err, "E120"), style)
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		errorFormat string
		noColor     bool
	)

	rootCmd := &cobra.Command{
		Use:   "toaster",
		Short: "Toast notification state for Go UI servers",
		Long: `toaster manages a bounded list of toast notifications.

Toasts are added, updated, dismissed and removed through a reducer.
Dismissed toasts stay in state for a short delay so clients can
animate them out. Features include:

  • Configurable toast limit and removal delay
  • Auto-dismiss timers
  • Prometheus metrics and OpenTelemetry tracing middleware
  • toaster.json, toaster.toml or toaster.yaml configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor || os.Getenv("NO_COLOR") != "" {
				errors.SetColors(false)
			}
			if _, ok := errors.ParseStyle(errorFormat); !ok {
				return errors.New("E120").
					WithDetail(fmt.Sprintf("unknown --error-format %q", errorFormat)).
					WithSuggestion("Use text, compact or json")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: toaster.json, .toml or .yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", string(errors.StyleText), "Error output style: text, compact or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	// Add commands
	rootCmd.AddCommand(
		demoCmd(&configPath),
		configCmd(&configPath),
		errorsCmd(),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the toaster ASCII art banner.
func printBanner(cmd *cobra.Command) {
	fmt.Fprint(cmd.OutOrStdout(), banner)
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
