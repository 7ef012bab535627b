package paspale

import (
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Theme collects the fixed styling of the drawn elements.
type Theme struct {
	BarOutline   draw.LineStyle
	LineWidth    vg.Length
	MarkerRadius vg.Length
	CurveWidth   vg.Length
	AxisWidth    vg.Length
	Grid         draw.LineStyle
	HLine        draw.LineStyle
	StackedWidth float64 // data units
	LabelColor   color.Color
}

var DefaultTheme = Theme{
	BarOutline: draw.LineStyle{
		Color: color.Black,
		Width: vg.Points(0.5),
	},
	LineWidth:    vg.Points(2),
	MarkerRadius: vg.Points(4),
	CurveWidth:   vg.Points(1.5),
	AxisWidth:    vg.Points(1.5),
	Grid: draw.LineStyle{
		Color:  color.Gray{0xcc},
		Width:  vg.Points(0.5),
		Dashes: []vg.Length{},
	},
	HLine: draw.LineStyle{
		Color:  color.NRGBA{0xff, 0, 0, 0xff},
		Width:  vg.Points(1),
		Dashes: DashedLine.Dashes(vg.Points(1.5)),
	},
	StackedWidth: 0.6,
	LabelColor:   color.Black,
}
