package paspale

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot/palette/brewer"
	"gopkg.in/yaml.v3"
)

// The built-in color schemes. Pastel fills for bars, saturated colors
// for lines.
var (
	Primary = []string{
		"#fbb4ae", // light red
		"#b3e2cd", // light green
		"#fdcdac", // light orange
		"#cbd5e8", // light blue
		"#bdbdbd", // gray
		"#e5d8bd", // light brown
	}

	Extended = append(append([]string{}, Primary...),
		"#a6cee3", // soft blue
		"#ffb3c6", // soft pink
		"#b2df8a", // soft green
		"#ffe6a7", // soft yellow
		"#cab2d6", // soft purple
	)

	// Gradient suits sequential data like ablation steps.
	Gradient = []string{"#b3e2cd", "#efedf8", "#e3e5f6", "#d7ddef", "#cbd5e8", "#bdbdbd"}

	// Breakdown is meant for three part breakdowns in stacked bars.
	Breakdown = []string{"#fbb4ae", "#b3e2cd", "#fdcdac"}

	Lines = []string{"#000000", "#007700", "#666666", "#0077bb", "#cc3311", "#ee7733"}
)

var schemes = map[string][]string{
	"primary":   Primary,
	"extended":  Extended,
	"gradient":  Gradient,
	"breakdown": Breakdown,
	"lines":     Lines,
}

// BrewerPrefix selects a ColorBrewer palette, e.g. "brewer:Set2".
const BrewerPrefix = "brewer:"

// Scheme looks up a named scheme. Names are case insensitive. Names with
// the BrewerPrefix are looked up in the ColorBrewer palettes, using the
// largest variant available.
func Scheme(name string) ([]string, bool) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(strings.ToLower(name), BrewerPrefix) {
		return brewerScheme(name[len(BrewerPrefix):])
	}
	s, ok := schemes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), s...), true
}

func brewerScheme(name string) ([]string, bool) {
	for n := 12; n >= 3; n-- {
		p, err := brewer.GetPalette(brewer.TypeAny, name, n)
		if err != nil {
			continue
		}
		var hex []string
		for _, c := range p.Colors() {
			hex = append(hex, Color2String(c))
		}
		return hex, true
	}
	return nil, false
}

// Schemes returns the names of the built-in schemes, sorted.
func Schemes() []string {
	names := NewStringSet()
	for n := range schemes {
		names.Add(n)
	}
	return names.Elements()
}

// Colors is either the name of a color scheme or an explicit list of
// colors. The zero value means "use the plot's default scheme".
type Colors struct {
	Scheme string
	List   []string
}

// SchemeColors selects the named scheme.
func SchemeColors(name string) Colors { return Colors{Scheme: name} }

// ListColors uses the given colors verbatim.
func ListColors(c ...string) Colors { return Colors{List: c} }

// ParseColors interprets s the way the command line takes it: a comma
// separated list or anything starting with '#' is an explicit list,
// everything else a scheme name.
func ParseColors(s string) Colors {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") || strings.HasPrefix(s, "#") {
		var list []string
		for _, c := range strings.Split(s, ",") {
			if c = strings.TrimSpace(c); c != "" {
				list = append(list, c)
			}
		}
		return ListColors(list...)
	}
	return SchemeColors(s)
}

// IsZero reports whether neither a scheme nor a list is set.
func (c Colors) IsZero() bool { return c.Scheme == "" && len(c.List) == 0 }

func (c Colors) String() string {
	if len(c.List) > 0 {
		return strings.Join(c.List, ",")
	}
	return c.Scheme
}

// UnmarshalYAML accepts a scalar (scheme name) or a sequence of colors.
func (c *Colors) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*c = SchemeColors(value.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*c = ListColors(list...)
		return nil
	}
	return fmt.Errorf("%w: colors must be a scheme name or a list, line %d",
		ErrConfiguration, value.Line)
}

// MarshalYAML implements yaml.Marshaler.
func (c Colors) MarshalYAML() (any, error) {
	if len(c.List) > 0 {
		return c.List, nil
	}
	return c.Scheme, nil
}

// ColorHex resolves c to n color strings. Known schemes yield their
// colors, explicit lists are used as given; both repeat cyclically if
// n exceeds their length. An unknown scheme is a configuration error.
func ColorHex(c Colors, n int) ([]string, error) {
	palette := c.List
	if len(palette) == 0 {
		var ok bool
		palette, ok = Scheme(c.Scheme)
		if !ok {
			return nil, fmt.Errorf("%w: unknown color scheme %q (known: %s)",
				ErrConfiguration, c.Scheme, strings.Join(Schemes(), ", "))
		}
	}
	if n <= 0 {
		n = len(palette)
	}
	hex := make([]string, n)
	for i := range hex {
		hex[i] = palette[i%len(palette)]
	}
	return hex, nil
}

// ResolveColors is ColorHex followed by parsing every entry.
func ResolveColors(c Colors, n int) ([]color.Color, error) {
	hex, err := ColorHex(c, n)
	if err != nil {
		return nil, err
	}
	cols := make([]color.Color, len(hex))
	for i, h := range hex {
		if cols[i], err = ParseColor(h); err != nil {
			return nil, err
		}
	}
	return cols, nil
}

// SchemeNames lists the accepted scheme names for help texts.
func SchemeNames() string {
	return strings.Join(Schemes(), ", ") + ", " + BrewerPrefix + "<Name>"
}
