package paspale

import (
	"image/color"

	"gonum.org/v1/plot/plotter"
)

// The graphical objects below record what a plotter put on a figure in
// data coordinates. They are what callers and tests inspect after a
// render.

// Bar is a single drawn bar.
type Bar struct {
	Series int    // index of the series
	Name   string // name of the series
	X      float64
	Width  float64
	Bottom float64
	Top    float64
	Value  float64
	Color  color.Color
}

// Height is the signed extent of the bar.
func (b Bar) Height() float64 { return b.Top - b.Bottom }

// BarGroup is the set of bars drawn for one data row.
type BarGroup struct {
	Label  string
	LabelX float64 // left edge of the group label
	Center float64
	Bars   []Bar
}

// Series is a drawn line with markers.
type Series struct {
	Name   string
	Points plotter.XYs
	Color  color.Color
	Shape  PointShape
	Style  LineType
	Axis   int // 0: left, 1: right y axis
}

// HLine is a drawn horizontal reference line.
type HLine struct {
	Y     float64
	Color color.Color
	Style LineType
}

// Curve is a drawn density curve.
type Curve struct {
	Name      string
	Points    plotter.XYs
	Filled    bool
	Color     color.Color
	Bandwidth float64
}

// Min returns the smallest y value of c.
func (c Curve) Min() float64 {
	min := 0.0
	for i, p := range c.Points {
		if i == 0 || p.Y < min {
			min = p.Y
		}
	}
	return min
}
