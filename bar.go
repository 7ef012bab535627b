package paspale

// BarPlotter draws grouped bar charts: one group per row, one bar per
// series.
//
//	cfg := paspale.DefaultPlotConfig()
//	cfg.Output = "speedup.pdf"
//	cfg.YLabel = "Speedup"
//	bp := paspale.NewBarPlotter(cfg)
//	if err := bp.LoadCSV("results.csv"); err != nil { ... }
//	fig, err := bp.Plot()
type BarPlotter struct {
	Base
}

// NewBarPlotter returns a bar plotter using cfg.
func NewBarPlotter(cfg PlotConfig) *BarPlotter {
	return &BarPlotter{Base{Config: cfg}}
}

// Draw adds the bars of all rows to fig.
func (bp *BarPlotter) Draw(fig *Figure) error {
	return bp.drawBars(fig, PosDodge, bp.config().BarWidth)
}

// Plot renders bp to its configured output.
func (bp *BarPlotter) Plot() (*Figure, error) { return Render(bp) }

func (bp *BarPlotter) axisConfig() PlotConfig { return bp.config() }

func (bp *BarPlotter) dataRange() (min, max float64, err error) {
	return seriesRange(bp.Data, false)
}
