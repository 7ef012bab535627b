package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vdobler/paspale"
)

// plotKind selects the plotter of a plot command.
type plotKind struct {
	name  string
	short string
	new   func(cfg paspale.PlotConfig) paspale.Plotter
}

var (
	barKind = plotKind{
		name:  "bar",
		short: "Draw a grouped bar chart",
		new:   func(cfg paspale.PlotConfig) paspale.Plotter { return paspale.NewBarPlotter(cfg) },
	}
	stackedKind = plotKind{
		name:  "stacked",
		short: "Draw a stacked bar chart",
		new:   func(cfg paspale.PlotConfig) paspale.Plotter { return paspale.NewStackedBarPlotter(cfg) },
	}
	lineKind = plotKind{
		name:  "line",
		short: "Draw one line per column",
		new:   func(cfg paspale.PlotConfig) paspale.Plotter { return paspale.NewLinePlotter(cfg) },
	}
)

// commonOptions holds the flags shared by all plot commands.
type commonOptions struct {
	configPath string
	output     string
	ylabel     string
	legend     []string
	colors     string
	size       string
	watch      bool
}

func (o *commonOptions) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file; flags override its values")
	flags.StringVarP(&o.output, "output", "o", "output.pdf", "Output file; the extension selects the format")
	flags.StringVarP(&o.ylabel, "ylabel", "y", "", "Y-axis label")
	flags.StringArrayVarP(&o.legend, "legend", "l", nil, "Legend label (repeat for each series)")
	flags.StringVar(&o.colors, "colors", "", "Color scheme or comma separated colors ("+paspale.SchemeNames()+")")
	flags.StringVar(&o.size, "size", "", "Figure size in inches as W,H")
	flags.BoolVar(&o.watch, "watch", false, "Render again whenever the data or configuration changes")
}

// outputPath is the output path: the flag if given, else the configuration
// file's, else the flag default.
func (o *commonOptions) outputPath(flags *pflag.FlagSet, configured string) string {
	if flags.Changed("output") || configured == "" {
		return o.output
	}
	return configured
}

// watched are the files a --watch run observes.
func (o *commonOptions) watched(data string) []string {
	paths := []string{data}
	if o.configPath != "" {
		paths = append(paths, o.configPath)
	}
	return paths
}

// parseSize parses "W,H" (or "WxH") in inches.
func parseSize(s string) (paspale.Size, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == 'x' || r == ' ' })
	if len(parts) != 2 {
		return paspale.Size{}, fmt.Errorf("invalid size %q: want W,H", s)
	}
	var wh [2]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v <= 0 {
			return paspale.Size{}, fmt.Errorf("invalid size %q: %q is not a positive number", s, p)
		}
		wh[i] = v
	}
	return paspale.Size{Width: wh[0], Height: wh[1]}, nil
}

// plotOptions holds options for the bar, stacked and line commands.
type plotOptions struct {
	commonOptions
	ylim     float64
	ylimMin  float64
	logScale bool
}

// newPlotCmd creates the command of one PlotConfig based plot type.
func (a *App) newPlotCmd(kind plotKind) *cobra.Command {
	opts := &plotOptions{}

	cmd := &cobra.Command{
		Use:   kind.name + " <csv>",
		Short: kind.short,
		Long: kind.short + `.

The first column of the CSV file holds the group labels (x values for
line plots), every further column is one series. Without -l the column
headers are not shown as legend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build := func() (paspale.Plotter, error) {
				cfg, err := opts.config(cmd.Flags())
				if err != nil {
					return nil, err
				}
				return kind.new(cfg), nil
			}
			return a.run(cmd.Context(), args[0], &opts.commonOptions, build)
		},
	}

	opts.bind(cmd.Flags())
	return cmd
}

func (o *plotOptions) bind(flags *pflag.FlagSet) {
	o.commonOptions.bind(flags)
	flags.Float64Var(&o.ylim, "ylim", 0, "Y-axis upper limit")
	flags.Float64Var(&o.ylimMin, "ylim-min", 0, "Y-axis lower limit")
	flags.BoolVar(&o.logScale, "log", false, "Logarithmic y axis")
}

// config builds the configuration from the file (if any) and the flags
// given on the command line.
func (o *plotOptions) config(flags *pflag.FlagSet) (paspale.PlotConfig, error) {
	cfg := paspale.DefaultPlotConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = paspale.LoadPlotConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	cfg.Output = o.outputPath(flags, cfg.Output)
	if flags.Changed("ylabel") {
		cfg.YLabel = o.ylabel
	}
	if flags.Changed("legend") {
		cfg.Legend = o.legend
	}
	if flags.Changed("colors") {
		cfg.Colors = paspale.ParseColors(o.colors)
	}
	if flags.Changed("size") {
		size, err := parseSize(o.size)
		if err != nil {
			return cfg, err
		}
		cfg.Size = size
	}
	if flags.Changed("ylim") {
		cfg.YLim = paspale.FloatPtr(o.ylim)
	}
	if flags.Changed("ylim-min") {
		cfg.YLimMin = o.ylimMin
	}
	if flags.Changed("log") {
		cfg.LogScale = o.logScale
	}
	return cfg, cfg.Validate()
}

// run loads data into the plotter returned by build and renders it,
// repeatedly in watch mode.
func (a *App) run(ctx context.Context, data string, opts *commonOptions,
	build func() (paspale.Plotter, error)) error {

	render := func() error {
		p, err := build()
		if err != nil {
			return err
		}
		if err := p.LoadCSV(data); err != nil {
			return err
		}
		fig, err := paspale.Render(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "saved %s\n", fig.Output)
		return nil
	}

	if !opts.watch {
		return render()
	}
	return watch(ctx, opts.watched(data), render)
}
