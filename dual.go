package paspale

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// AxisPlotter is a plotter which can take one axis of a DualAxisPlotter:
// a *BarPlotter, *StackedBarPlotter or *LinePlotter.
type AxisPlotter interface {
	Plotter
	axisConfig() PlotConfig
	dataRange() (min, max float64, err error)
}

// DualAxisPlotter combines two plotters sharing the x axis. The primary
// draws against the left y axis. The values of the secondary are mapped
// onto the range of the left axis and labeled on a right y axis built
// from the secondary's configuration. A line plot over a bar plot puts
// its points on the bar group centers.
type DualAxisPlotter struct {
	Primary   AxisPlotter
	Secondary AxisPlotter

	// Config, if set, replaces the display options of the primary.
	// Its legend labels replace the combined legend.
	Config *PlotConfig

	Hooks
}

// NewDualAxisPlotter combines primary and secondary.
func NewDualAxisPlotter(primary, secondary AxisPlotter) *DualAxisPlotter {
	return &DualAxisPlotter{Primary: primary, Secondary: secondary}
}

// LoadCSV loads the data of the primary plotter. The secondary loads
// its own data.
func (d *DualAxisPlotter) LoadCSV(path string) error {
	return d.Primary.LoadCSV(path)
}

func (d *DualAxisPlotter) config() PlotConfig {
	if d.Config != nil {
		return d.Config.Resolve()
	}
	return d.Primary.axisConfig()
}

// ownLegend reports whether Config brings the legend labels.
func (d *DualAxisPlotter) ownLegend() bool {
	return d.Config != nil && len(d.Config.Legend) > 0
}

// Validate checks the effective configuration and both sub
// configurations. Log scales cannot be combined on two axes.
func (d *DualAxisPlotter) Validate() error {
	cfg := d.config()
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, sub := range []PlotConfig{d.Primary.axisConfig(), d.Secondary.axisConfig()} {
		sub.Output = cfg.Output
		if err := sub.Validate(); err != nil {
			return err
		}
		if sub.LogScale {
			cfg.LogScale = true
		}
	}
	if cfg.LogScale {
		return fmt.Errorf("%w: log scale not supported on dual axis plots", ErrConfiguration)
	}
	return nil
}

// Frame returns the display options of the primary (or Config).
func (d *DualAxisPlotter) Frame() Frame {
	fr := d.config().Frame()
	if !d.ownLegend() {
		fr.Legend = nil
		fr.AutoLegend = len(d.Primary.axisConfig().Legend)+len(d.Secondary.axisConfig().Legend) > 0
	}
	return fr
}

// Draw draws the primary, fixes the left axis range and draws the
// secondary mapped onto it.
func (d *DualAxisPlotter) Draw(fig *Figure) error {
	prim, sec := d.Primary.axisConfig(), d.Secondary.axisConfig()
	cfg := d.config()

	n0 := len(fig.legend)
	if err := d.Primary.Draw(fig); err != nil {
		return err
	}
	d.relabel(fig, n0, prim.Legend)

	left := Range{Min: fig.Plot.Y.Min, Max: fig.Plot.Y.Max}
	if cfg.YLim != nil {
		left = Range{Min: cfg.YLimMin, Max: *cfg.YLim}
	}
	if !(left.Max > left.Min) {
		left.Max = left.Min + 1
	}
	fig.Plot.Y.Min, fig.Plot.Y.Max = left.Min, left.Max

	right, err := d.secondaryRange(sec)
	if err != nil {
		return err
	}
	m := linearMap{From: right, To: left}

	if _, ok := d.Secondary.(*LinePlotter); ok && len(fig.Groups) > 0 {
		fig.alignX = make([]float64, len(fig.Groups))
		for i, g := range fig.Groups {
			fig.alignX[i] = g.Center
		}
	}
	fig.mapY = m.Map
	n1 := len(fig.legend)
	err = d.Secondary.Draw(fig)
	fig.mapY, fig.alignX = nil, nil
	if err != nil {
		return err
	}
	d.relabel(fig, n1, sec.Legend)

	fig.Right = newRightAxis(fig, sec, m)
	fig.Plot.Add(fig.Right)
	return nil
}

// relabel names the legend entries from index from on with labels.
// Entries without a label are dropped from the legend.
func (d *DualAxisPlotter) relabel(fig *Figure, from int, labels []string) {
	if d.ownLegend() {
		return
	}
	n := len(fig.legend) - from
	if len(labels) > 0 && len(labels) != n {
		warnLegendMismatch(fig.Frame.Output, len(labels), n)
	}
	for i := from; i < len(fig.legend); i++ {
		label := ""
		if j := i - from; j < len(labels) {
			label = labels[j]
		}
		fig.legend[i].label = label
	}
}

// secondaryRange is the ylim of the secondary if set, else its data
// range extended down to ylim_min.
func (d *DualAxisPlotter) secondaryRange(sec PlotConfig) (Range, error) {
	if sec.YLim != nil {
		return Range{Min: sec.YLimMin, Max: *sec.YLim}, nil
	}
	lo, hi, err := d.Secondary.dataRange()
	if err != nil {
		return Range{}, err
	}
	lo = math.Min(lo, sec.YLimMin)
	if !(hi > lo) {
		hi = lo + 1
	}
	return Range{Min: lo, Max: hi}, nil
}

// Customize runs the hooks of the primary, the secondary and d.
func (d *DualAxisPlotter) Customize(fig *Figure) error {
	if err := d.Primary.Customize(fig); err != nil {
		return err
	}
	if err := d.Secondary.Customize(fig); err != nil {
		return err
	}
	return d.Hooks.Customize(fig)
}

// Plot renders d to its configured output.
func (d *DualAxisPlotter) Plot() (*Figure, error) { return Render(d) }

// seriesRange is the extent of all values of the series of df, summed
// per row if stacked.
func seriesRange(df *DataFrame, stacked bool) (min, max float64, err error) {
	if err := df.checkSeries(); err != nil {
		return 0, 0, err
	}
	min, max = math.Inf(+1), math.Inf(-1)
	if !stacked {
		for _, s := range df.Series() {
			lo, hi, i, _ := s.MinMax()
			if i >= 0 {
				min, max = math.Min(min, lo), math.Max(max, hi)
			}
		}
	}
	for r := 0; stacked && r < df.N; r++ {
		bottom := 0.0
		for _, s := range df.Series() {
			v := s.Data[r]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi := bottom, bottom+v
			bottom += v
			min = math.Min(min, math.Min(lo, hi))
			max = math.Max(max, math.Max(lo, hi))
		}
	}
	if math.IsInf(min, +1) {
		return 0, 0, fmt.Errorf("%w: no values in %q", ErrRender, df.Name)
	}
	return min, max, nil
}

// -------------------------------------------------------------------------
// Right axis

// RightAxis is the secondary y axis of a dual axis plot. Its values are
// drawn through Map onto the left axis.
type RightAxis struct {
	Label string
	Range Range
	Ticks []plot.Tick

	mapping    linearMap
	line       draw.LineStyle
	tickLen    vg.Length
	tickStyle  text.Style
	labelStyle text.Style
}

func newRightAxis(fig *Figure, sec PlotConfig, m linearMap) *RightAxis {
	a := &RightAxis{
		Label:      sec.YLabel,
		Range:      m.From,
		mapping:    m,
		line:       fig.Plot.Y.LineStyle,
		tickLen:    fig.Plot.Y.Tick.Length,
		tickStyle:  fig.textStyle(fig.Plot.Y.Tick.Label, sec.Font.Tick),
		labelStyle: fig.textStyle(fig.Plot.Y.Label.TextStyle, sec.Font.Label),
	}
	if sec.YLim != nil && sec.YTicks > 0 {
		a.Ticks = fixedTicks(sec.YLimMin, *sec.YLim, sec.YTicks, false, sec.YTickFormat)
	} else {
		var ticker plot.Ticker = plot.DefaultTicks{}
		if sec.YTickFormat == PercentFormat {
			ticker = percentTicks{ticker}
		}
		for _, t := range ticker.Ticks(m.From.Min, m.From.Max) {
			if t.Value >= m.From.Min && t.Value <= m.From.Max {
				a.Ticks = append(a.Ticks, t)
			}
		}
	}
	return a
}

// Map maps a value of the right axis to the left axis.
func (a *RightAxis) Map(v float64) float64 { return a.mapping.Map(v) }

func (a *RightAxis) gap() vg.Length { return a.tickLen / 2 }

func (a *RightAxis) tickWidth() vg.Length {
	var w vg.Length
	for _, t := range a.Ticks {
		if tw := a.tickStyle.Width(t.Label); tw > w {
			w = tw
		}
	}
	return w
}

// width is the horizontal room the axis needs right of the data area.
func (a *RightAxis) width() vg.Length {
	w := a.tickLen + a.gap() + a.tickWidth()
	if a.Label != "" {
		w += a.gap() + a.labelStyle.Height(a.Label)
	}
	return w
}

func (a *RightAxis) Plot(c draw.Canvas, p *plot.Plot) {
	_, trY := p.Transforms(&c)
	x := c.Max.X
	c.StrokeLine2(a.line, x, c.Min.Y, x, c.Max.Y)

	sty := a.tickStyle
	sty.XAlign, sty.YAlign = draw.XLeft, draw.YCenter
	for _, t := range a.Ticks {
		y := trY(a.Map(t.Value))
		if !c.ContainsY(y) {
			continue
		}
		c.StrokeLine2(a.line, x, y, x+a.tickLen, y)
		if t.IsMinor() {
			continue
		}
		c.FillText(sty, vg.Point{X: x + a.tickLen + a.gap(), Y: y}, t.Label)
	}

	if a.Label == "" {
		return
	}
	ls := a.labelStyle
	ls.Rotation = math.Pi / 2
	ls.XAlign, ls.YAlign = draw.XCenter, draw.YTop
	lx := x + a.tickLen + 2*a.gap() + a.tickWidth()
	c.FillText(ls, vg.Point{X: lx, Y: (c.Min.Y + c.Max.Y) / 2}, a.Label)
}

// GlyphBoxes reserves the room of the axis right of the data area.
func (a *RightAxis) GlyphBoxes(*plot.Plot) []plot.GlyphBox {
	return []plot.GlyphBox{{
		X:         1,
		Y:         0.5,
		Rectangle: vg.Rectangle{Max: vg.Point{X: a.width()}},
	}}
}
