package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vdobler/paspale"
)

// kdeOptions holds options for the kde command.
type kdeOptions struct {
	commonOptions
	xlabel  string
	fill    bool
	alpha   float64
	percent bool
}

// newKDECmd creates the kde command.
func (a *App) newKDECmd() *cobra.Command {
	opts := &kdeOptions{}

	cmd := &cobra.Command{
		Use:   "kde <csv>",
		Short: "Draw kernel density estimates",
		Long: `Draw a Gaussian kernel density estimate of every column of the CSV file.
The column headers label the curves; empty cells are ignored.

Examples:
  paspale kde samples.csv -o dist.pdf --alpha 0.3
  paspale kde samples.csv -o dist.png --fill=false --percent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build := func() (paspale.Plotter, error) {
				cfg, err := opts.config(cmd.Flags())
				if err != nil {
					return nil, err
				}
				return paspale.NewKDEPlotter(cfg), nil
			}
			return a.run(cmd.Context(), args[0], &opts.commonOptions, build)
		},
	}

	opts.bind(cmd.Flags())
	cmd.Flags().StringVar(&opts.xlabel, "xlabel", "", "X-axis label (default \"Value\")")
	cmd.Flags().BoolVar(&opts.fill, "fill", true, "Fill the area under each curve")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", 0.4, "Opacity of the fill")
	cmd.Flags().BoolVar(&opts.percent, "percent", false, "Label the y axis in percent")

	return cmd
}

func (o *kdeOptions) config(flags *pflag.FlagSet) (paspale.KDEConfig, error) {
	cfg := paspale.DefaultKDEConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = paspale.LoadKDEConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	cfg.Output = o.outputPath(flags, cfg.Output)
	if flags.Changed("xlabel") {
		cfg.XLabel = o.xlabel
	}
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
	if flags.Changed("fill") {
		cfg.Fill = o.fill
	}
	if flags.Changed("alpha") {
		cfg.Alpha = o.alpha
	}
	if flags.Changed("percent") {
		cfg.UsePercentage = o.percent
	}
	return cfg, cfg.Validate()
}
