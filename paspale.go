package paspale

// QuickOptions are the options of Quick. Zero values keep the defaults
// of DefaultPlotConfig.
type QuickOptions struct {
	YLabel string
	Legend []string
	YLim   *float64
	Colors Colors
	Size   Size

	// Configure, if set, may change any further option of the
	// configuration before rendering.
	Configure func(cfg *PlotConfig)
}

func (o QuickOptions) config(output string) PlotConfig {
	cfg := DefaultPlotConfig()
	cfg.Output = output
	cfg.YLabel = o.YLabel
	cfg.Legend = o.Legend
	cfg.YLim = o.YLim
	if !o.Colors.IsZero() {
		cfg.Colors = o.Colors
	}
	if o.Size.Width > 0 && o.Size.Height > 0 {
		cfg.Size = o.Size
	}
	if o.Configure != nil {
		o.Configure(&cfg)
	}
	return cfg
}

// Quick draws the CSV file data as a grouped bar chart to output.
//
//	paspale.Quick("results.csv", "comparison.pdf", paspale.QuickOptions{
//		YLabel: "Speedup",
//		Legend: []string{"Baseline", "Optimized", "Ours"},
//		YLim:   paspale.FloatPtr(6),
//	})
func Quick(data, output string, opts QuickOptions) (*Figure, error) {
	bp := NewBarPlotter(opts.config(output))
	if err := bp.LoadCSV(data); err != nil {
		return nil, err
	}
	return bp.Plot()
}

// QuickFrame is Quick for an already loaded data frame.
func QuickFrame(df *DataFrame, output string, opts QuickOptions) (*Figure, error) {
	bp := NewBarPlotter(opts.config(output))
	bp.LoadFrame(df)
	return bp.Plot()
}
