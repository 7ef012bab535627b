package paspale

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/paspale/internal/logging"
)

// legendLoc describes where a legend goes. Band legends are laid out in
// rows below or above the plot; all others are drawn by gonum inside the
// data area.
type legendLoc struct {
	band bool
	top  bool
	left bool
}

var legendLocations = map[string]legendLoc{
	"lower center": {band: true},
	"upper center": {band: true, top: true},
	"best":         {top: true},
	"upper right":  {top: true},
	"upper left":   {top: true, left: true},
	"lower right":  {},
	"lower left":   {left: true},
}

type legendEntry struct {
	label  string
	thumbs []plot.Thumbnailer
}

// addLegend registers a legend entry for a drawn series. The label is
// the default; configured legend labels replace it by position.
func (fig *Figure) addLegend(label string, thumbs ...plot.Thumbnailer) {
	fig.legend = append(fig.legend, legendEntry{label: label, thumbs: thumbs})
}

// finishLegend applies the configured labels and hands the entries to
// gonum for the in-plot locations. A legend is shown if labels are
// configured, or for plots which label their series themselves.
// Configured labels pair up with the series by position; series beyond
// the labels get no entry.
func (fig *Figure) finishLegend() error {
	fr := fig.Frame
	if len(fr.Legend) > 0 && len(fr.Legend) != len(fig.legend) {
		warnLegendMismatch(fr.Output, len(fr.Legend), len(fig.legend))
	}
	if len(fr.Legend) == 0 && !fr.AutoLegend {
		fig.legend = nil
		return nil
	}

	var entries []legendEntry
	for i, e := range fig.legend {
		if len(fr.Legend) > 0 {
			e.label = ""
			if i < len(fr.Legend) {
				e.label = fr.Legend[i]
			}
		}
		if e.label != "" {
			entries = append(entries, e)
		}
	}
	fig.legend = entries

	loc := legendLocations[fr.LegendLoc]
	if loc.band {
		return nil
	}
	l := &fig.Plot.Legend
	l.Top, l.Left = loc.top, loc.left
	l.XOffs, l.YOffs = -vg.Points(8), -vg.Points(8)
	if loc.left {
		l.XOffs = vg.Points(8)
	}
	if !loc.top {
		l.YOffs = vg.Points(8)
	}
	for _, e := range entries {
		l.Add(e.label, e.thumbs...)
	}
	return nil
}

func warnLegendMismatch(output string, labels, series int) {
	logging.Warn().
		Add(logging.Output(output)).
		Add(logging.Counts(labels, series)).
		Msg("legend labels do not match series")
}

// Legend returns the labels of the legend entries in drawing order.
func (fig *Figure) Legend() []string {
	labels := make([]string, len(fig.legend))
	for i, e := range fig.legend {
		labels[i] = e.label
	}
	return labels
}

// drawLegendBand draws a band legend along the lower or upper edge of c
// and returns the remaining canvas for the plot.
func (fig *Figure) drawLegendBand(c draw.Canvas) draw.Canvas {
	loc := legendLocations[fig.Frame.LegendLoc]
	if !loc.band || len(fig.legend) == 0 {
		return c
	}

	sty := fig.Plot.Legend.TextStyle
	sty.XAlign, sty.YAlign = draw.XLeft, draw.YCenter
	cols := fig.Frame.LegendCols
	if cols <= 0 || cols > len(fig.legend) {
		cols = len(fig.legend)
	}
	rows := legendRows(len(fig.legend), cols)

	var textW vg.Length
	for _, e := range fig.legend {
		if w := sty.Width(e.label); w > textW {
			textW = w
		}
	}
	rowH := sty.Height("Xg") * 1.3
	thumbW, gap := rowH*1.5, rowH/2
	entryW := thumbW + gap/2 + textW + gap
	pad := rowH / 3
	bandH := vg.Length(rows)*rowH + 2*pad

	width := vg.Length(cols) * entryW
	x0 := c.Min.X + (c.Max.X-c.Min.X-width)/2
	var y0 vg.Length // top of the first row
	if loc.top {
		y0 = c.Max.Y - pad
	} else {
		y0 = c.Min.Y + bandH - pad
	}

	for i, e := range fig.legend {
		row, col := i/cols, i%cols
		x := x0 + vg.Length(col)*entryW
		top := y0 - vg.Length(row)*rowH
		inset := rowH * 0.15
		thumb := draw.Canvas{
			Canvas: c.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: x, Y: top - rowH + inset},
				Max: vg.Point{X: x + thumbW, Y: top - inset},
			},
		}
		for _, t := range e.thumbs {
			t.Thumbnail(&thumb)
		}
		c.FillText(sty, vg.Point{X: x + thumbW + gap/2, Y: top - rowH/2}, e.label)
	}

	if loc.top {
		return draw.Crop(c, 0, 0, 0, -bandH)
	}
	return draw.Crop(c, 0, 0, bandH, 0)
}

// barThumb is the legend thumbnail of a bar series: a filled rectangle
// with the bar outline.
type barThumb struct {
	fill    color.Color
	outline draw.LineStyle
}

func (b barThumb) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.fill, pts)
	c.StrokeLines(b.outline, append(pts, pts[0]))
}

// legendRows is the number of rows a band legend with n entries and the
// configured column count occupies.
func legendRows(n, cols int) int {
	if n == 0 {
		return 0
	}
	if cols <= 0 || cols > n {
		cols = n
	}
	return int(math.Ceil(float64(n) / float64(cols)))
}
