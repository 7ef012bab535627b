package paspale

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// -------------------------------------------------------------------------
// Position Adjustments

// PositionAdjust selects how the bars of one row are placed.
type PositionAdjust int

const (
	PosDodge PositionAdjust = iota // side by side
	PosStack                       // on top of each other
)

// layoutBars computes the bars of every row of df. The first field of
// df holds the row labels, each further field is one series.
//
// Dodged groups start at x = 2g. The width w is shared by the n bars of a
// group, bar i is centered at 2g + i*w/n.
//
//	     +------------------- w --------------------+
//	n=3  |------ w/n ---|--------------|------------|
//	     ^ 2g - w/2n (label)
//
// Stacked groups are centered at x = g; each series starts where the
// previous one ended. Missing (NaN) values leave a gap.
func layoutBars(df *DataFrame, pos PositionAdjust, width float64, labels []string, cols []color.Color) []BarGroup {
	series := df.Series()
	n := float64(len(series))
	groups := make([]BarGroup, df.N)
	for g := range groups {
		grp := &groups[g]
		if g < len(labels) {
			grp.Label = labels[g]
		}
		switch pos {
		case PosDodge:
			x0, w := 2*float64(g), width/n
			grp.Center = x0 + (n-1)*w/2
			grp.LabelX = x0 - w/2
			for i, s := range series {
				v := s.Data[g]
				grp.Bars = append(grp.Bars, Bar{
					Series: i, Name: s.Name,
					X: x0 + float64(i)*w, Width: w,
					Bottom: 0, Top: v, Value: v,
					Color: cols[i],
				})
			}
		case PosStack:
			x := float64(g)
			grp.Center = x
			grp.LabelX = x - width/2
			bottom := 0.0
			for i, s := range series {
				v := s.Data[g]
				bar := Bar{
					Series: i, Name: s.Name,
					X: x, Width: width,
					Bottom: bottom, Top: bottom + v, Value: v,
					Color: cols[i],
				}
				if !math.IsNaN(v) {
					bottom += v
				}
				grp.Bars = append(grp.Bars, bar)
			}
		}
	}
	return groups
}

// mapBars maps the y extent of all bars through f.
func mapBars(groups []BarGroup, f func(float64) float64) {
	for g := range groups {
		for i := range groups[g].Bars {
			b := &groups[g].Bars[i]
			b.Bottom, b.Top = f(b.Bottom), f(b.Top)
		}
	}
}

// -------------------------------------------------------------------------
// Bar chart

// barChart draws bar groups as outlined rectangles with the group labels
// below the data area. It implements plot.Plotter, plot.DataRanger and
// plot.GlyphBoxer.
type barChart struct {
	groups  []BarGroup
	outline draw.LineStyle
	axis    draw.LineStyle
	label   text.Style // zero Handler: no labels
}

func (b *barChart) showLabels() bool { return b.label.Handler != nil }

func (b *barChart) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	_, logY := p.Y.Scale.(plot.LogScale)
	for _, g := range b.groups {
		for _, bar := range g.Bars {
			lo, hi := bar.Bottom, bar.Top
			if math.IsNaN(lo) || math.IsNaN(hi) {
				continue
			}
			if lo > hi {
				lo, hi = hi, lo
			}
			if logY {
				if hi <= 0 {
					continue
				}
				if lo <= 0 {
					lo = p.Y.Min
				}
			}
			x0, x1 := trX(bar.X-bar.Width/2), trX(bar.X+bar.Width/2)
			y0, y1 := trY(lo), trY(hi)
			pts := []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
			c.FillPolygon(bar.Color, c.ClipPolygonXY(pts))
			c.StrokeLines(b.outline, c.ClipLinesXY(append(pts, pts[0]))...)
		}
	}

	if b.axis.Width > 0 {
		c.StrokeLine2(b.axis, c.Min.X, c.Min.Y, c.Max.X, c.Min.Y)
	}
	if !b.showLabels() {
		return
	}
	for _, g := range b.groups {
		if g.Label == "" {
			continue
		}
		c.FillText(b.label, vg.Point{X: trX(g.LabelX), Y: c.Min.Y}, g.Label)
	}
}

func (b *barChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(+1), math.Inf(+1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, g := range b.groups {
		for _, bar := range g.Bars {
			xmin = math.Min(xmin, bar.X-bar.Width/2)
			xmax = math.Max(xmax, bar.X+bar.Width/2)
			for _, y := range []float64{bar.Bottom, bar.Top} {
				if math.IsNaN(y) {
					continue
				}
				ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
			}
		}
	}
	return xmin, xmax, ymin, ymax
}

// GlyphBoxes reserves room for the group labels below the data area.
func (b *barChart) GlyphBoxes(p *plot.Plot) []plot.GlyphBox {
	if !b.showLabels() {
		return nil
	}
	var boxes []plot.GlyphBox
	for _, g := range b.groups {
		if g.Label == "" {
			continue
		}
		boxes = append(boxes, plot.GlyphBox{
			X:         p.X.Norm(g.LabelX),
			Y:         0,
			Rectangle: b.label.Rectangle(g.Label),
		})
	}
	return boxes
}

// drawBars is the shared drawing step of the bar and stacked bar
// plotters.
func (b *Base) drawBars(fig *Figure, pos PositionAdjust, width float64) error {
	if err := b.Data.checkSeries(); err != nil {
		return err
	}
	cfg := b.config()
	series := b.Data.Series()
	cols, err := b.colors(len(series))
	if err != nil {
		return err
	}

	groups := layoutBars(b.Data, pos, width, b.groupLabels(), cols)
	if fig.mapY != nil {
		mapBars(groups, fig.mapY)
	}
	chart := &barChart{
		groups:  groups,
		outline: fig.Theme.BarOutline,
	}
	p := fig.Plot
	if len(fig.Groups) == 0 && fig.mapY == nil {
		// The first bar chart on the left axis owns the x axis.
		chart.axis = p.X.LineStyle
		chart.label = fig.TextStyle()
		chart.label.XAlign, chart.label.YAlign = draw.XLeft, draw.YTop
		chart.label.Rotation = cfg.LabelRotation * math.Pi / 180
		chart.label.Color = fig.Theme.LabelColor
		p.X.LineStyle.Width = 0
		p.X.Tick.Marker = hiddenTicks
	}
	p.Add(chart)
	fig.Groups = append(fig.Groups, groups...)

	for i, s := range series {
		fig.addLegend(s.Name, barThumb{fill: cols[i], outline: fig.Theme.BarOutline})
	}
	return nil
}
