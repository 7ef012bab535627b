package paspale

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// LinePlotter draws one line with markers per series against the first
// column. A non-numeric first column is placed at 0, 1, 2, ... and used
// as tick labels.
type LinePlotter struct {
	Base
}

// NewLinePlotter returns a line plotter using cfg.
func NewLinePlotter(cfg PlotConfig) *LinePlotter {
	return &LinePlotter{Base{Config: cfg}}
}

// Draw adds one line per series to fig. Rows with a missing value are
// left out of that series' line.
func (lp *LinePlotter) Draw(fig *Figure) error {
	df := lp.Data
	if err := df.checkSeries(); err != nil {
		return err
	}
	xs, err := lp.xValues(fig)
	if err != nil {
		return err
	}
	series := df.Series()
	cols, err := lp.colors(len(series))
	if err != nil {
		return err
	}

	axis := 0
	if fig.mapY != nil {
		axis = 1
	}
	theme := fig.Theme
	cfg := lp.config()
	for i, s := range series {
		var pts plotter.XYs
		for r, y := range s.Data {
			if math.IsNaN(y) || math.IsInf(y, 0) || math.IsNaN(xs[r]) {
				continue
			}
			pts = append(pts, plotter.XY{X: xs[r], Y: fig.y(y)})
		}
		if len(pts) == 0 {
			return fmt.Errorf("%w: series %q has no values", ErrRender, s.Name)
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("%w: series %q: %v", ErrRender, s.Name, err)
		}
		shape, style := lineStyle(cfg, i)
		line.LineStyle = draw.LineStyle{Color: cols[i], Width: theme.LineWidth}
		line.LineStyle.Dashes = style.Dashes(theme.LineWidth)
		points.GlyphStyle = draw.GlyphStyle{Color: cols[i], Radius: theme.MarkerRadius, Shape: shape.Glyph()}

		var drawn []plot.Thumbnailer
		if style != BlankLine {
			fig.Plot.Add(line)
			drawn = append(drawn, line)
		}
		if shape != BlankPoint {
			fig.Plot.Add(points)
			drawn = append(drawn, points)
		}
		fig.Lines = append(fig.Lines, Series{
			Name:   s.Name,
			Points: pts,
			Color:  cols[i],
			Shape:  shape,
			Style:  style,
			Axis:   axis,
		})
		fig.addLegend(s.Name, drawn...)
	}
	return nil
}

// lineStyle returns the marker and line type of series i: the configured
// ones, cycling, or DefaultShapes with solid lines.
func lineStyle(cfg PlotConfig, i int) (PointShape, LineType) {
	shape, style := DefaultShapes[i%len(DefaultShapes)], SolidLine
	if m := cfg.Markers; len(m) > 0 {
		shape = String2PointShape(m[i%len(m)])
	}
	if ls := cfg.LineStyles; len(ls) > 0 {
		style = String2LineType(ls[i%len(ls)])
	}
	return shape, style
}

// xValues returns the x position of every row: the bar group centers if
// the figure asks for alignment, row numbers for a label column, the
// column values otherwise.
func (lp *LinePlotter) xValues(fig *Figure) ([]float64, error) {
	df := lp.Data
	if fig.alignX != nil {
		if len(fig.alignX) < df.N {
			return nil, fmt.Errorf("%w: %d rows but only %d bar groups to align to",
				ErrRender, df.N, len(fig.alignX))
		}
		return fig.alignX[:df.N], nil
	}
	first := df.Fields[0]
	if first.Type == Float {
		return first.Data, nil
	}
	xs := make([]float64, df.N)
	var ticks plot.ConstantTicks
	for i := range xs {
		xs[i] = float64(i)
		ticks = append(ticks, plot.Tick{Value: xs[i], Label: first.Label(i)})
	}
	if len(fig.Groups) == 0 {
		fig.Plot.X.Tick.Marker = ticks
	}
	return xs, nil
}

// Plot renders lp to its configured output.
func (lp *LinePlotter) Plot() (*Figure, error) { return Render(lp) }

func (lp *LinePlotter) axisConfig() PlotConfig { return lp.config() }

func (lp *LinePlotter) dataRange() (min, max float64, err error) {
	return seriesRange(lp.Data, false)
}
