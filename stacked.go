package paspale

// StackedBarPlotter draws one bar per row with the series stacked on top
// of each other. The values are not required to sum to one.
type StackedBarPlotter struct {
	Base
}

// NewStackedBarPlotter returns a stacked bar plotter using cfg.
func NewStackedBarPlotter(cfg PlotConfig) *StackedBarPlotter {
	return &StackedBarPlotter{Base{Config: cfg}}
}

// Draw adds the stacked bars of all rows to fig.
func (sp *StackedBarPlotter) Draw(fig *Figure) error {
	return sp.drawBars(fig, PosStack, fig.Theme.StackedWidth)
}

// Plot renders sp to its configured output.
func (sp *StackedBarPlotter) Plot() (*Figure, error) { return Render(sp) }

func (sp *StackedBarPlotter) axisConfig() PlotConfig { return sp.config() }

func (sp *StackedBarPlotter) dataRange() (min, max float64, err error) {
	return seriesRange(sp.Data, true)
}
