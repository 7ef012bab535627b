package paspale

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure is the state of a single render: the gonum plot plus a record
// of everything drawn on it. A Figure is created by Render and not kept
// by the plotter.
type Figure struct {
	Plot  *plot.Plot
	Frame Frame
	Theme Theme

	Groups []BarGroup
	Lines  []Series
	Curves []Curve
	HLines []HLine
	Right  *RightAxis // secondary y axis of dual axis plots

	// Output is the file written by Render, Format its format.
	Output string
	Format string

	legend []legendEntry

	// mapY maps values of the plotter currently drawing onto the left
	// y axis; nil is the identity.
	mapY func(float64) float64
	// alignX, if set, replaces the x value of row i of line plots.
	alignX []float64
}

func newFigure(fr Frame) *Figure {
	fig := &Figure{
		Plot:  plot.New(),
		Frame: fr,
		Theme: DefaultTheme,
	}
	p := fig.Plot
	p.X.Label.TextStyle = fig.textStyle(p.X.Label.TextStyle, fr.Font.Label)
	p.Y.Label.TextStyle = fig.textStyle(p.Y.Label.TextStyle, fr.Font.Label)
	p.X.Tick.Label = fig.textStyle(p.X.Tick.Label, fr.Font.Tick)
	p.Y.Tick.Label = fig.textStyle(p.Y.Tick.Label, fr.Font.Tick)
	p.Title.TextStyle = fig.textStyle(p.Title.TextStyle, fr.Font.Title)
	p.Legend.TextStyle = fig.textStyle(p.Legend.TextStyle, fr.Font.Legend)
	p.X.LineStyle.Width = fig.Theme.AxisWidth
	p.Y.LineStyle.Width = fig.Theme.AxisWidth

	if fr.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		grid.Horizontal = fig.Theme.Grid
		p.Add(grid)
	}
	return fig
}

// Font returns the configured font family at the given size.
func (fig *Figure) Font(size float64) font.Font {
	f := font.Font{Typeface: "Liberation", Variant: "Serif", Size: vg.Points(size)}
	family := strings.ToLower(fig.Frame.Font.Family)
	switch {
	case strings.Contains(family, "mono"), strings.Contains(family, "courier"):
		f.Variant = "Mono"
	case strings.Contains(family, "sans"), strings.Contains(family, "arial"),
		strings.Contains(family, "helvetica"):
		f.Variant = "Sans"
	}
	return f
}

// textStyle returns base with the figure font at size.
func (fig *Figure) textStyle(base text.Style, size float64) text.Style {
	base.Font = fig.Font(size)
	if base.Handler == nil {
		base.Handler = plot.DefaultTextHandler
	}
	return base
}

// TextStyle is the annotation style of the figure.
func (fig *Figure) TextStyle() text.Style {
	return fig.textStyle(fig.Plot.Y.Tick.Label, fig.Frame.Font.Annotation)
}

func (fig *Figure) y(v float64) float64 {
	if fig.mapY == nil {
		return v
	}
	return fig.mapY(v)
}

// Width and Height return the size of the figure.
func (fig *Figure) Width() vg.Length  { return vg.Length(fig.Frame.Size.Width) * vg.Inch }
func (fig *Figure) Height() vg.Length { return vg.Length(fig.Frame.Size.Height) * vg.Inch }

// AddHLine draws a horizontal reference line at y across the figure.
// A nil color uses the theme's reference line color.
func (fig *Figure) AddHLine(y float64, c color.Color, lt LineType) *plotter.Function {
	f := plotter.NewFunction(func(float64) float64 { return y })
	f.LineStyle = fig.Theme.HLine
	if c != nil {
		f.LineStyle.Color = c
	}
	if lt != BlankLine {
		f.LineStyle.Dashes = lt.Dashes(f.LineStyle.Width)
	}
	fig.Plot.Add(f)
	fig.HLines = append(fig.HLines, HLine{Y: y, Color: f.LineStyle.Color, Style: lt})
	return f
}

// AddLabel writes txt at the data coordinates (x, y).
func (fig *Figure) AddLabel(x, y float64, txt string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{txt},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	l.TextStyle[0] = fig.TextStyle()
	fig.Plot.Add(l)
	return nil
}

// AddNote writes txt at a position given as fraction of the data area,
// (0,0) being the lower left and (1,1) the upper right corner. The text
// is aligned so that it stays inside the data area.
func (fig *Figure) AddNote(fx, fy float64, txt string) {
	sty := fig.TextStyle()
	sty.XAlign = draw.XAlignment(-clamp01(fx))
	sty.YAlign = draw.YAlignment(-clamp01(fy))
	fig.Plot.Add(note{fx: fx, fy: fy, text: txt, style: sty})
}

type note struct {
	fx, fy float64
	text   string
	style  text.Style
}

func (n note) Plot(c draw.Canvas, _ *plot.Plot) {
	pt := vg.Point{
		X: c.Min.X + vg.Length(n.fx)*(c.Max.X-c.Min.X),
		Y: c.Min.Y + vg.Length(n.fy)*(c.Max.Y-c.Min.Y),
	}
	c.FillText(n.style, pt, n.text)
}

func clamp01(x float64) float64 { return math.Max(0, math.Min(1, x)) }

// yValues are all drawn y values, used to find a log scale baseline.
func (fig *Figure) yValues() []float64 {
	var vals []float64
	for _, g := range fig.Groups {
		for _, b := range g.Bars {
			vals = append(vals, b.Bottom, b.Top)
		}
	}
	for _, s := range fig.Lines {
		for _, pt := range s.Points {
			vals = append(vals, pt.Y)
		}
	}
	return vals
}

// applyFrame applies the shared styling: labels, limits, ticks, log
// scale, reference lines and legend. Fixed ticks on a log axis start at
// the visible baseline.
func (fig *Figure) applyFrame() error {
	fr, p := fig.Frame, fig.Plot
	p.X.Label.Text = fr.XLabel
	p.Y.Label.Text = fr.YLabel

	if fr.XLim != nil {
		p.X.Min, p.X.Max = fr.XLim.Min, fr.XLim.Max
	}
	if fr.YLim != nil {
		p.Y.Min, p.Y.Max = fr.YLimMin, *fr.YLim
	}

	if fr.LogScale {
		base, err := logBaseline(fr.YLimMin, fig.yValues())
		if err != nil {
			return err
		}
		if p.Y.Min <= 0 {
			p.Y.Min = base
		}
		if p.Y.Max <= p.Y.Min {
			return fmt.Errorf("%w: log scale needs ylim above %g", ErrRender, p.Y.Min)
		}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	switch {
	case fr.YTicks > 0 && fr.YLim != nil:
		lo := fr.YLimMin
		if fr.LogScale {
			lo = p.Y.Min
		}
		p.Y.Tick.Marker = fixedTicks(lo, *fr.YLim, fr.YTicks, fr.LogScale, fr.YTickFormat)
	case fr.Percent || fr.YTickFormat == PercentFormat:
		p.Y.Tick.Marker = percentTicks{p.Y.Tick.Marker}
	}

	for _, r := range fr.RefLines {
		var c color.Color
		if r.Color != "" {
			c = String2Color(r.Color)
		}
		fig.AddHLine(r.Y, c, String2LineType(r.Style))
	}

	return fig.finishLegend()
}

// Save renders the figure to path. The format follows the file
// extension. The file is written to a temporary file next to path and
// renamed on success, so a failed render leaves no partial output.
func (fig *Figure) Save(path string) (err error) {
	format, err := outputFormat(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = fig.WriteTo(tmp, format); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	fig.Output, fig.Format = path, format
	return nil
}

// WriteTo renders the figure in the given format to w.
func (fig *Figure) WriteTo(w io.Writer, format string) (n int64, err error) {
	c, err := fig.canvas(format)
	if err != nil {
		return 0, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()
	fig.draw(draw.New(c))
	n, err = c.WriteTo(w)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrRender, err)
	}
	return n, err
}

func (fig *Figure) canvas(format string) (vg.CanvasWriterTo, error) {
	w, h := fig.Width(), fig.Height()
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(fig.Frame.DPI))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: img}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: img}, nil
		default:
			return vgimg.TiffCanvas{Canvas: img}, nil
		}
	}
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return c, nil
}

// draw lays out the legend band, if any, and the plot on c.
func (fig *Figure) draw(c draw.Canvas) {
	c = fig.drawLegendBand(c)
	fig.Plot.Draw(c)
}

var formats = NewStringSetFrom([]string{"pdf", "svg", "eps", "png", "jpg", "jpeg", "tif", "tiff", "tex"})

// outputFormat derives the output format from the extension of path.
// Paths without extension are written as PDF.
func outputFormat(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "pdf", nil
	}
	if !formats.Contains(ext) {
		return "", fmt.Errorf("%w: unsupported output format %q (use one of %s)",
			ErrConfiguration, ext, strings.Join(formats.Elements(), ", "))
	}
	return ext, nil
}
