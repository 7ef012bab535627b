package paspale

import (
	"fmt"
	"image/color"
	"time"

	"github.com/vdobler/paspale/internal/logging"
)

// Plotter is implemented by every plot type. Render drives a Plotter
// through its lifecycle; Draw is the type specific part, Customize a
// hook for post-processing the drawn figure.
type Plotter interface {
	// LoadCSV reads the dataset from a CSV file.
	LoadCSV(path string) error

	// Validate checks the configuration.
	Validate() error

	// Frame returns the resolved display options.
	Frame() Frame

	// Draw adds the data of the plotter to fig.
	Draw(fig *Figure) error

	// Customize is called after the shared styling has been applied.
	Customize(fig *Figure) error
}

// Render produces the output file of p. In order it validates the
// configuration, creates a figure sized per configuration, lets p draw
// its data, applies the shared styling (labels, limits, ticks, log
// scale, legend), runs the Customize hook and saves the figure
// atomically to the configured output. The figure is returned for
// inspection; p keeps no reference to it.
func Render(p Plotter) (*Figure, error) {
	start := time.Now()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	fig := newFigure(p.Frame())
	if err := p.Draw(fig); err != nil {
		return nil, err
	}
	if err := fig.applyFrame(); err != nil {
		return nil, err
	}
	if err := p.Customize(fig); err != nil {
		return nil, fmt.Errorf("%w: customize: %v", ErrRender, err)
	}
	if err := fig.Save(fig.Frame.Output); err != nil {
		return nil, err
	}
	logging.Info().
		Add(logging.PlotType(plotType(p))).
		Add(logging.Output(fig.Output)).
		Add(logging.Format(fig.Format)).
		Add(logging.Duration(time.Since(start))).
		Msg("saved")
	return fig, nil
}

// plotType names p in log output.
func plotType(p Plotter) string {
	switch p.(type) {
	case *BarPlotter:
		return "bar"
	case *StackedBarPlotter:
		return "stacked"
	case *LinePlotter:
		return "line"
	case *DualAxisPlotter:
		return "dual"
	case *KDEPlotter:
		return "kde"
	}
	return fmt.Sprintf("%T", p)
}

// Hooks lets callers post-process a figure without defining a new type.
type Hooks struct {
	CustomizeFunc func(fig *Figure) error
}

// Customize runs CustomizeFunc if set.
func (h Hooks) Customize(fig *Figure) error {
	if h.CustomizeFunc == nil {
		return nil
	}
	return h.CustomizeFunc(fig)
}

// Base holds the configuration and data shared by the bar, stacked bar
// and line plotters. It provides everything of Plotter but Draw.
type Base struct {
	Config PlotConfig
	Data   *DataFrame
	Hooks
}

// LoadCSV reads the CSV file at path. The first column holds the group
// labels or x values, all others a data series each.
func (b *Base) LoadCSV(path string) error {
	df, err := LoadCSV(path)
	if err != nil {
		return err
	}
	logging.Debug().Add(logging.Input(path)).Add(logging.Rows(df.N)).Add(logging.Columns(df.FieldNames())).Msg("loaded")
	b.Data = df
	return nil
}

// LoadFrame uses an already loaded data frame.
func (b *Base) LoadFrame(df *DataFrame) {
	b.Data = df
}

// LoadData takes raw series. Rows are numbered from 0; labels name the
// series. Sequences of different length are accepted here and rejected
// when drawing.
func (b *Base) LoadData(seqs [][]float64, labels []string) {
	b.Data = FromSequences(seqs, labels).withIndex()
}

// Validate checks the configuration.
func (b *Base) Validate() error { return b.Config.Validate() }

// Frame returns the resolved display options.
func (b *Base) Frame() Frame { return b.Config.Frame() }

// config is the resolved configuration.
func (b *Base) config() PlotConfig { return b.Config.Resolve() }

// colors resolves the configured colors for the n series.
func (b *Base) colors(n int) ([]color.Color, error) {
	return ResolveColors(b.config().Colors, n)
}

// groupLabels are the configured labels or else the first column.
func (b *Base) groupLabels() []string {
	if labels := b.config().Labels; len(labels) > 0 {
		return labels
	}
	return b.Data.Labels()
}
