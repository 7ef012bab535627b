package paspale

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Set alpha to a in color c. An existing alpha channel of c is dropped.
func SetAlpha(c color.Color, a float64) color.Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	nc.A = uint8(a*0xff + 0.5)
	return nc
}

// -------------------------------------------------------------------------
// Points

// PointShape selects the marker drawn at the data points of a line.
type PointShape int

const (
	BlankPoint PointShape = iota
	CirclePoint
	SquarePoint
	TrianglePoint
	RingPoint
	BoxPoint
	CrossPoint
	PlusPoint
	PyramidPoint
)

// DefaultShapes is the marker sequence used for line series; it mirrors
// the o, s, ^, D, v sequence common in paper figures as far as the
// glyphs available allow.
var DefaultShapes = []PointShape{
	CirclePoint, SquarePoint, TrianglePoint, BoxPoint, PyramidPoint,
	RingPoint, CrossPoint, PlusPoint,
}

func String2PointShape(s string) PointShape {
	n, err := strconv.Atoi(s)
	if err == nil {
		return PointShape(n % (int(PyramidPoint) + 1))
	}
	switch s {
	case "circle", "o":
		return CirclePoint
	case "square", "s":
		return SquarePoint
	case "triangle", "^":
		return TrianglePoint
	case "ring":
		return RingPoint
	case "box", "D":
		return BoxPoint
	case "cross", "x":
		return CrossPoint
	case "plus", "+":
		return PlusPoint
	case "pyramid", "v":
		return PyramidPoint
	}
	return BlankPoint
}

// Glyph returns the gonum glyph drawer for s, nil for BlankPoint.
func (s PointShape) Glyph() draw.GlyphDrawer {
	switch s {
	case CirclePoint:
		return draw.CircleGlyph{}
	case SquarePoint:
		return draw.SquareGlyph{}
	case TrianglePoint:
		return draw.TriangleGlyph{}
	case RingPoint:
		return draw.RingGlyph{}
	case BoxPoint:
		return draw.BoxGlyph{}
	case CrossPoint:
		return draw.CrossGlyph{}
	case PlusPoint:
		return draw.PlusGlyph{}
	case PyramidPoint:
		return draw.PyramidGlyph{}
	}
	return nil
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	BlankLine LineType = iota
	SolidLine
	DashedLine
	DottedLine
	DotDashLine
	LongdashLine
)

func String2LineType(s string) LineType {
	n, err := strconv.Atoi(s)
	if err == nil {
		return LineType(n % (int(LongdashLine) + 1))
	}
	switch s {
	case "blank":
		return BlankLine
	case "solid", "-":
		return SolidLine
	case "dashed", "--":
		return DashedLine
	case "dotted", ":":
		return DottedLine
	case "dotdash", "-.":
		return DotDashLine
	case "longdash":
		return LongdashLine
	default:
		return BlankLine
	}
}

// Dashes returns the dash pattern of t scaled to the line width w.
func (t LineType) Dashes(w vg.Length) []vg.Length {
	switch t {
	case DashedLine:
		return []vg.Length{4 * w, 2 * w}
	case DottedLine:
		return []vg.Length{w, 2 * w}
	case DotDashLine:
		return []vg.Length{4 * w, 2 * w, w, 2 * w}
	case LongdashLine:
		return []vg.Length{8 * w, 3 * w}
	}
	return nil
}

// -------------------------------------------------------------------------
// Colors

var BuiltinColors = map[string]color.RGBA{
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"gray20":  {0x33, 0x33, 0x33, 0xff},
	"gray40":  {0x66, 0x66, 0x66, 0xff},
	"gray":    {0x7f, 0x7f, 0x7f, 0xff},
	"gray60":  {0x99, 0x99, 0x99, 0xff},
	"gray80":  {0xcc, 0xcc, 0xcc, 0xff},
	"black":   {0x00, 0x00, 0x00, 0xff},
}

// ParseColor parses "#rrggbb", "#rrggbbaa", "#rgb" or one of the
// BuiltinColors.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 && len(hex) != 8 {
			return nil, fmt.Errorf("%w: bad color %q", ErrConfiguration, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad color %q", ErrConfiguration, s)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	if col, ok := BuiltinColors[strings.ToLower(s)]; ok {
		return col, nil
	}
	return nil, fmt.Errorf("%w: unknown color %q", ErrConfiguration, s)
}

// String2Color is ParseColor without the error: unparsable input yields
// a translucent pink which is hard to miss in a figure.
func String2Color(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{0xaa, 0x66, 0x77, 0x7f}
	}
	return c
}

// Color2String formats c as "#rrggbb" (or "#rrggbbaa" if not opaque).
func Color2String(c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nc.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", nc.R, nc.G, nc.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", nc.R, nc.G, nc.B, nc.A)
}
