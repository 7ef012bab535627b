package paspale

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Size is a figure size in inches.
type Size struct {
	Width, Height float64
}

// Common figure sizes for two column papers.
var (
	FullWidth  = Size{14, 4.5}
	HalfWidth  = Size{7, 4.5}
	DoubleWide = Size{28, 4.5}
	Tall       = Size{14, 6}
	Square     = Size{8, 8}
)

// Full is a full width figure of height h.
func Full(h float64) Size { return Size{14, h} }

// Double is a double width figure of height h.
func Double(h float64) Size { return Size{28, h} }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// UnmarshalYAML accepts [w, h] as well as {width: w, height: h}.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var wh []float64
		if err := value.Decode(&wh); err != nil {
			return err
		}
		if len(wh) != 2 {
			return fmt.Errorf("%w: size needs width and height, line %d",
				ErrConfiguration, value.Line)
		}
		s.Width, s.Height = wh[0], wh[1]
		return nil
	}
	var m struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	}
	m.Width, m.Height = s.Width, s.Height
	if err := value.Decode(&m); err != nil {
		return err
	}
	s.Width, s.Height = m.Width, m.Height
	return nil
}

// Range is a closed interval on an axis.
type Range struct {
	Min, Max float64
}

// UnmarshalYAML accepts [min, max].
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	var mm []float64
	if err := value.Decode(&mm); err != nil {
		return err
	}
	if len(mm) != 2 {
		return fmt.Errorf("%w: range needs min and max, line %d",
			ErrConfiguration, value.Line)
	}
	r.Min, r.Max = mm[0], mm[1]
	return nil
}

// FontConfig holds font sizes in points and the font family.
type FontConfig struct {
	Label      float64 `yaml:"label"`
	Tick       float64 `yaml:"tick"`
	Legend     float64 `yaml:"legend"`
	Title      float64 `yaml:"title"`
	Annotation float64 `yaml:"annotation"`
	Family     string  `yaml:"family"`
}

// DefaultFont is tuned for figures scaled down to column width.
var DefaultFont = FontConfig{
	Label:      32,
	Tick:       21,
	Legend:     32,
	Title:      32,
	Annotation: 26,
	Family:     "Times New Roman",
}

func (f FontConfig) resolve() FontConfig {
	d := DefaultFont
	if f.Label <= 0 {
		f.Label = d.Label
	}
	if f.Tick <= 0 {
		f.Tick = d.Tick
	}
	if f.Legend <= 0 {
		f.Legend = d.Legend
	}
	if f.Title <= 0 {
		f.Title = d.Title
	}
	if f.Annotation <= 0 {
		f.Annotation = d.Annotation
	}
	if f.Family == "" {
		f.Family = d.Family
	}
	return f
}

// PercentFormat is the YTickFormat rendering 0.25 as "25%".
const PercentFormat = "percent"

// PlotConfig configures bar, stacked bar, line and dual axis plots.
type PlotConfig struct {
	Output string `yaml:"output"`
	Size   Size   `yaml:"size"`

	XLabel  string   `yaml:"xlabel"`
	YLabel  string   `yaml:"ylabel"`
	YLim    *float64 `yaml:"ylim"`     // upper limit, nil: from data
	YLimMin float64  `yaml:"ylim_min"` // lower limit
	XLim    *Range   `yaml:"xlim"`

	LogScale bool `yaml:"log_scale"`

	// YTicks is the number of y ticks placed between YLimMin and YLim
	// when YLim is set. Negative disables fixed ticks.
	YTicks      int    `yaml:"yticks"`
	YTickFormat string `yaml:"ytick_format"` // printf verb or PercentFormat

	Legend     []string `yaml:"legend"`
	LegendLoc  string   `yaml:"legend_loc"`
	LegendCols int      `yaml:"legend_ncol"` // 0: all entries in one row

	Labels        []string `yaml:"labels"`         // group labels, default first column
	LabelRotation float64  `yaml:"label_rotation"` // degrees

	Colors   Colors     `yaml:"colors"`
	BarWidth float64    `yaml:"bar_width"`
	Font     FontConfig `yaml:"font"`

	// Markers and LineStyles override the marker shape ("o", "s", "^",
	// "D", "v", "x", "+", "ring" or "none") and the dash pattern ("-",
	// "--", ":", "-.", "longdash" or "blank") of line series, cycling
	// when there are more series than entries.
	Markers    []string `yaml:"markers"`
	LineStyles []string `yaml:"line_styles"`

	RefLines []RefLine `yaml:"ref_lines"`

	DPI int `yaml:"dpi"` // raster formats only
}

// RefLine is a horizontal reference line such as the baseline of a
// speedup chart.
type RefLine struct {
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color"` // empty: the theme's reference color
	Style string  `yaml:"style"` // line style, empty: dashed
}

func (r RefLine) validate(logScale bool) error {
	if r.Color != "" {
		if _, err := ParseColor(r.Color); err != nil {
			return err
		}
	}
	if r.Style != "" && String2LineType(r.Style) == BlankLine {
		return fmt.Errorf("%w: unknown line style %q of reference line", ErrConfiguration, r.Style)
	}
	if logScale && r.Y <= 0 {
		return fmt.Errorf("%w: reference line at %g on a log scale", ErrConfiguration, r.Y)
	}
	return nil
}

func validMarker(m string) bool { return m == "none" || String2PointShape(m) != BlankPoint }

func validLineStyle(s string) bool { return s == "blank" || String2LineType(s) != BlankLine }

// DefaultPlotConfig returns the defaults for PlotConfig.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Size:          FullWidth,
		YTicks:        7,
		YTickFormat:   "%.1f",
		LegendLoc:     "lower center",
		LabelRotation: -15,
		Colors:        SchemeColors("primary"),
		BarWidth:      1.3,
		Font:          DefaultFont,
		DPI:           300,
	}
}

// Resolve returns a copy of c with unset fields replaced by their
// defaults. LabelRotation and the limits are taken as they are.
func (c PlotConfig) Resolve() PlotConfig {
	d := DefaultPlotConfig()
	if c.Size.Width == 0 && c.Size.Height == 0 {
		c.Size = d.Size
	}
	if c.YTicks == 0 {
		c.YTicks = d.YTicks
	}
	if c.YTickFormat == "" {
		c.YTickFormat = d.YTickFormat
	}
	if c.LegendLoc == "" {
		c.LegendLoc = d.LegendLoc
	}
	if c.Colors.IsZero() {
		c.Colors = d.Colors
	}
	if c.BarWidth == 0 {
		c.BarWidth = d.BarWidth
	}
	if c.DPI == 0 {
		c.DPI = d.DPI
	}
	c.Font = c.Font.resolve()
	return c
}

// Validate checks c after resolving it.
func (c PlotConfig) Validate() error {
	c = c.Resolve()
	if err := c.Frame().validate(); err != nil {
		return err
	}
	if c.BarWidth <= 0 {
		return fmt.Errorf("%w: bar width %g must be positive", ErrConfiguration, c.BarWidth)
	}
	if _, err := ResolveColors(c.Colors, 0); err != nil {
		return err
	}
	for _, m := range c.Markers {
		if !validMarker(m) {
			return fmt.Errorf("%w: unknown marker %q", ErrConfiguration, m)
		}
	}
	for _, ls := range c.LineStyles {
		if !validLineStyle(ls) {
			return fmt.Errorf("%w: unknown line style %q", ErrConfiguration, ls)
		}
	}
	for _, r := range c.RefLines {
		if err := r.validate(c.LogScale); err != nil {
			return err
		}
	}
	return nil
}

// Frame returns the display options shared by all plot types.
func (c PlotConfig) Frame() Frame {
	c = c.Resolve()
	return Frame{
		Output:      c.Output,
		Size:        c.Size,
		DPI:         c.DPI,
		XLabel:      c.XLabel,
		YLabel:      c.YLabel,
		XLim:        c.XLim,
		YLim:        c.YLim,
		YLimMin:     c.YLimMin,
		LogScale:    c.LogScale,
		YTicks:      c.YTicks,
		YTickFormat: c.YTickFormat,
		Grid:        true,
		Legend:      c.Legend,
		LegendLoc:   c.LegendLoc,
		LegendCols:  c.LegendCols,
		RefLines:    c.RefLines,
		Font:        c.Font,
	}
}

// KDEConfig configures kernel density plots.
type KDEConfig struct {
	Output string `yaml:"output"`
	Size   Size   `yaml:"size"`

	XLabel string `yaml:"xlabel"`
	YLabel string `yaml:"ylabel"`
	XLim   *Range `yaml:"xlim"`

	Fill          bool    `yaml:"fill"`
	Alpha         float64 `yaml:"alpha"` // fill opacity
	UsePercentage bool    `yaml:"use_percentage"`

	Legend    []string `yaml:"legend"`
	LegendLoc string   `yaml:"legend_loc"`

	Colors Colors     `yaml:"colors"`
	Font   FontConfig `yaml:"font"`

	DPI int `yaml:"dpi"`
}

// DefaultKDEConfig returns the defaults for KDEConfig.
func DefaultKDEConfig() KDEConfig {
	return KDEConfig{
		Size:      Size{12, 7},
		XLabel:    "Value",
		YLabel:    "Density",
		Fill:      true,
		Alpha:     0.4,
		LegendLoc: "upper right",
		Colors:    SchemeColors("extended"),
		Font:      DefaultFont,
		DPI:       300,
	}
}

// Resolve returns a copy of c with unset fields replaced by their
// defaults. Fill and Alpha are taken as they are.
func (c KDEConfig) Resolve() KDEConfig {
	d := DefaultKDEConfig()
	if c.Size.Width == 0 && c.Size.Height == 0 {
		c.Size = d.Size
	}
	if c.XLabel == "" {
		c.XLabel = d.XLabel
	}
	if c.YLabel == "" {
		c.YLabel = d.YLabel
	}
	if c.LegendLoc == "" {
		c.LegendLoc = d.LegendLoc
	}
	if c.Colors.IsZero() {
		c.Colors = d.Colors
	}
	if c.DPI == 0 {
		c.DPI = d.DPI
	}
	c.Font = c.Font.resolve()
	return c
}

// Validate checks c after resolving it.
func (c KDEConfig) Validate() error {
	c = c.Resolve()
	if err := c.Frame().validate(); err != nil {
		return err
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("%w: alpha %g not in [0,1]", ErrConfiguration, c.Alpha)
	}
	if _, err := ResolveColors(c.Colors, 0); err != nil {
		return err
	}
	return nil
}

// Frame returns the display options shared by all plot types.
func (c KDEConfig) Frame() Frame {
	c = c.Resolve()
	return Frame{
		Output:     c.Output,
		Size:       c.Size,
		DPI:        c.DPI,
		XLabel:     c.XLabel,
		YLabel:     c.YLabel,
		XLim:       c.XLim,
		YTicks:     -1,
		Percent:    c.UsePercentage,
		Legend:     c.Legend,
		LegendLoc:  c.LegendLoc,
		AutoLegend: true,
		Font:       c.Font,
	}
}

// Frame is the resolved set of options the shared styling step applies
// to every figure.
type Frame struct {
	Output string
	Size   Size
	DPI    int

	XLabel, YLabel string

	XLim     *Range
	YLim     *float64
	YLimMin  float64
	LogScale bool

	YTicks      int
	YTickFormat string
	Percent     bool // y axis in percent
	Grid        bool // horizontal grid lines

	Legend     []string
	LegendLoc  string
	LegendCols int
	AutoLegend bool // show series names even without configured labels

	RefLines []RefLine

	Font FontConfig
}

func (f Frame) validate() error {
	if f.Output == "" {
		return fmt.Errorf("%w: no output path", ErrConfiguration)
	}
	if f.Size.Width <= 0 || f.Size.Height <= 0 {
		return fmt.Errorf("%w: bad figure size %s", ErrConfiguration, f.Size)
	}
	if f.YLim != nil && f.YLimMin > *f.YLim {
		return fmt.Errorf("%w: ylim_min %g above ylim %g", ErrConfiguration, f.YLimMin, *f.YLim)
	}
	if f.XLim != nil && f.XLim.Min >= f.XLim.Max {
		return fmt.Errorf("%w: empty xlim [%g,%g]", ErrConfiguration, f.XLim.Min, f.XLim.Max)
	}
	if _, ok := legendLocations[f.LegendLoc]; !ok {
		return fmt.Errorf("%w: unknown legend location %q", ErrConfiguration, f.LegendLoc)
	}
	if _, err := outputFormat(f.Output); err != nil {
		return err
	}
	return nil
}

// LoadPlotConfig reads a YAML file on top of DefaultPlotConfig.
func LoadPlotConfig(path string) (PlotConfig, error) {
	cfg := DefaultPlotConfig()
	if err := loadYAML(path, &cfg); err != nil {
		return PlotConfig{}, err
	}
	return cfg, nil
}

// LoadKDEConfig reads a YAML file on top of DefaultKDEConfig.
func LoadKDEConfig(path string) (KDEConfig, error) {
	cfg := DefaultKDEConfig()
	if err := loadYAML(path, &cfg); err != nil {
		return KDEConfig{}, err
	}
	return cfg, nil
}

func loadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfiguration, path, err)
	}
	return nil
}

// FloatPtr returns a pointer to x, handy for YLim.
func FloatPtr(x float64) *float64 { return &x }
