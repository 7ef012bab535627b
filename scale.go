package paspale

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/plot"
)

// -------------------------------------------------------------------------
// Scale Transformations

// ScaleTransform maps data values to the space in which ticks are spaced
// evenly, and back.
type ScaleTransform struct {
	Trans   func(float64) float64
	Inverse func(float64) float64
}

var Log10Scale = ScaleTransform{
	Trans:   func(x float64) float64 { return math.Log10(x) },
	Inverse: func(y float64) float64 { return math.Pow(10, y) },
}

var IdentityScale = ScaleTransform{
	Trans:   func(x float64) float64 { return x },
	Inverse: func(y float64) float64 { return y },
}

// Space returns n values from lo to hi (both included) evenly spaced in
// the transformed space of t.
func (t ScaleTransform) Space(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	tlo, thi := t.Trans(lo), t.Trans(hi)
	step := (thi - tlo) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = t.Inverse(tlo + float64(i)*step)
	}
	vals[0], vals[n-1] = lo, hi
	return vals
}

// minLogValue keeps log ticks away from zero.
const minLogValue = 1e-10

// fixedTicks returns n labeled ticks between lo and hi. On a log axis the
// ticks are spaced logarithmically and lo is clamped to a small positive
// value.
func fixedTicks(lo, hi float64, n int, logScale bool, format string) plot.ConstantTicks {
	t := IdentityScale
	if logScale {
		t = Log10Scale
		lo = math.Max(lo, minLogValue)
	}
	var ticks plot.ConstantTicks
	for _, v := range t.Space(lo, hi, n) {
		ticks = append(ticks, plot.Tick{Value: v, Label: TickLabel(v, format)})
	}
	return ticks
}

// TickLabel formats a tick value with a printf verb. PercentFormat
// renders the fraction v as a whole percentage.
func TickLabel(v float64, format string) string {
	switch {
	case format == PercentFormat:
		return fmt.Sprintf("%d%%", int(v*100))
	case strings.Contains(format, "%"):
		return fmt.Sprintf(format, v)
	}
	return fmt.Sprintf("%g", v)
}

// percentTicks relabels the major ticks of Ticker as percentages of 1.
type percentTicks struct {
	plot.Ticker
}

func (t percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.Ticker.Ticks(min, max)
	for i := range ticks {
		if ticks[i].IsMinor() {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%.0f%%", ticks[i].Value*100)
	}
	return ticks
}

// hiddenTicks draws neither tick marks nor labels.
var hiddenTicks = plot.ConstantTicks{}

// -------------------------------------------------------------------------
// Linear maps

// linearMap maps the interval From linearly onto To.
type linearMap struct {
	From, To Range
}

func (m linearMap) Map(v float64) float64 {
	return m.To.Min + (v-m.From.Min)*(m.To.Max-m.To.Min)/(m.From.Max-m.From.Min)
}

// Invert maps v from To back to From.
func (m linearMap) Invert(v float64) float64 {
	return linearMap{From: m.To, To: m.From}.Map(v)
}

// logBaseline is the lower end of a log y axis: lower if positive,
// otherwise a decade below the smallest positive value.
func logBaseline(lower float64, values []float64) (float64, error) {
	if lower > 0 {
		return lower, nil
	}
	min := math.Inf(+1)
	for _, v := range values {
		if v > 0 && v < min {
			min = v
		}
	}
	if math.IsInf(min, +1) {
		return 0, fmt.Errorf("%w: log scale without positive values", ErrRender)
	}
	return min / 10, nil
}
