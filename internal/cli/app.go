// Package cli provides the paspale command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vdobler/paspale/internal/logging"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	logLevel  string
	logFormat string
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "paspale",
		Short: "Publication ready charts from CSV files",
		Long: `paspale draws grouped bar, stacked bar, line and density plots from CSV
files, styled for papers: large fonts, a legend band below the plot and
vector output.

Examples:
  # Bar chart with legend and fixed y range
  paspale bar data.csv -o figure.pdf -y Speedup -l A -l B -l C --ylim 6

  # Extended color scheme, half width
  paspale bar data.csv -o fig.pdf --colors extended --size 7,4.5

  # Density of every column, re-rendered on change
  paspale kde samples.csv -o dist.pdf --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logging.ValidLevel(app.logLevel) {
				return fmt.Errorf("unknown log level %q", app.logLevel)
			}
			logging.Init(logging.Config{
				Level:  app.logLevel,
				Format: app.logFormat,
				Output: app.stderr,
			})
			return nil
		},
	}
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	app.root.PersistentFlags().StringVar(&app.logFormat, "log-format", "console", "Log format (console, json)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newPlotCmd(barKind),
		app.newPlotCmd(stackedKind),
		app.newPlotCmd(lineKind),
		app.newKDECmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application. Watch mode stops when ctx is done.
func (a *App) Execute(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "paspale version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
		},
	}
}
