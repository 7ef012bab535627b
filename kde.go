package paspale

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/paspale/internal/logging"
)

// Distribution is one sample drawn as a density curve.
type Distribution struct {
	Label  string
	Values []float64
}

// KDEPlotter draws one kernel density curve per distribution, optionally
// filled down to zero.
type KDEPlotter struct {
	Config        KDEConfig
	Distributions []Distribution
	Hooks
}

// NewKDEPlotter returns a KDE plotter using cfg.
func NewKDEPlotter(cfg KDEConfig) *KDEPlotter {
	return &KDEPlotter{Config: cfg}
}

// Add appends a distribution. Non-finite values are dropped.
func (kp *KDEPlotter) Add(values []float64, label string) {
	kp.Distributions = append(kp.Distributions, Distribution{
		Label:  label,
		Values: finite(values),
	})
}

// LoadCSV reads the CSV file at path. Every column is one distribution
// labeled by its header.
func (kp *KDEPlotter) LoadCSV(path string) error {
	df, err := LoadCSV(path)
	if err != nil {
		return err
	}
	logging.Debug().Add(logging.Input(path)).Add(logging.Rows(df.N)).Add(logging.Columns(df.FieldNames())).Msg("loaded")
	return kp.LoadFrame(df)
}

// LoadFrame adds every column of df as a distribution. All columns must
// be numeric.
func (kp *KDEPlotter) LoadFrame(df *DataFrame) error {
	for _, f := range df.Fields {
		if f.Discrete() {
			return fmt.Errorf("%w: column %q of %q is not numeric", ErrDataLoad, f.Name, df.Name)
		}
	}
	for _, f := range df.Fields {
		kp.Add(f.Finite(), f.Name)
	}
	return nil
}

// LoadData adds one distribution per sequence. Sequences without a
// label are named "Series 1", "Series 2", ...
func (kp *KDEPlotter) LoadData(seqs [][]float64, labels []string) {
	for i, seq := range seqs {
		label := fmt.Sprintf("Series %d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		kp.Add(seq, label)
	}
}

// Validate checks the configuration.
func (kp *KDEPlotter) Validate() error { return kp.Config.Validate() }

// Frame returns the resolved display options.
func (kp *KDEPlotter) Frame() Frame { return kp.Config.Frame() }

// Draw adds one curve per distribution to fig. Distributions which
// cannot be estimated (fewer than two values, no spread) are skipped
// with a warning; it is an error if none is left.
func (kp *KDEPlotter) Draw(fig *Figure) error {
	if len(kp.Distributions) == 0 {
		return fmt.Errorf("%w: no distributions", ErrRender)
	}
	cfg := kp.Config.Resolve()
	cols, err := ResolveColors(cfg.Colors, len(kp.Distributions))
	if err != nil {
		return err
	}

	for i, d := range kp.Distributions {
		kde, err := NewKDE(d.Values)
		if err != nil {
			logging.Warn().
				Add(logging.Str("distribution", d.Label)).
				Add(logging.ErrorField(err)).
				Msg("skipping distribution")
			continue
		}
		curve := Curve{
			Name:      d.Label,
			Points:    kde.Grid(KDEGridSize, KDECut),
			Filled:    cfg.Fill,
			Color:     cols[i],
			Bandwidth: kde.Bandwidth,
		}
		thumbs, err := kp.drawCurve(fig, curve, cfg.Alpha)
		if err != nil {
			return err
		}
		fig.Curves = append(fig.Curves, curve)
		fig.addLegend(d.Label, thumbs...)
	}
	if len(fig.Curves) == 0 {
		return fmt.Errorf("%w: no distribution has enough values for a density estimate", ErrRender)
	}
	fig.Plot.Y.Min = 0
	return nil
}

func (kp *KDEPlotter) drawCurve(fig *Figure, curve Curve, alpha float64) ([]plot.Thumbnailer, error) {
	var thumbs []plot.Thumbnailer
	if curve.Filled {
		poly, err := plotter.NewPolygon(area(curve.Points))
		if err != nil {
			return nil, fmt.Errorf("%w: fill %q: %v", ErrRender, curve.Name, err)
		}
		poly.Color = SetAlpha(curve.Color, alpha)
		poly.LineStyle = draw.LineStyle{Color: color.Transparent}
		fig.Plot.Add(poly)
		thumbs = append(thumbs, poly)
	}
	line, err := plotter.NewLine(curve.Points)
	if err != nil {
		return nil, fmt.Errorf("%w: curve %q: %v", ErrRender, curve.Name, err)
	}
	line.LineStyle = draw.LineStyle{Color: curve.Color, Width: fig.Theme.CurveWidth}
	fig.Plot.Add(line)
	return append(thumbs, line), nil
}

// area closes the curve pts down to y = 0.
func area(pts plotter.XYs) plotter.XYs {
	if len(pts) == 0 {
		return nil
	}
	out := make(plotter.XYs, 0, len(pts)+2)
	out = append(out, pts...)
	out = append(out,
		plotter.XY{X: pts[len(pts)-1].X, Y: 0},
		plotter.XY{X: pts[0].X, Y: 0},
	)
	return out
}

// Plot renders kp to its configured output.
func (kp *KDEPlotter) Plot() (*Figure, error) { return Render(kp) }
