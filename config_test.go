package paspale

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultPlotConfig(t *testing.T) {
	cfg := DefaultPlotConfig()
	if cfg.Size != (Size{14, 4.5}) {
		t.Errorf("Size = %s", cfg.Size)
	}
	if cfg.YLim != nil || cfg.YLimMin != 0 || cfg.LogScale {
		t.Errorf("limits: %v %g %t", cfg.YLim, cfg.YLimMin, cfg.LogScale)
	}
	if cfg.YTicks != 7 || cfg.YTickFormat != "%.1f" {
		t.Errorf("ticks: %d %q", cfg.YTicks, cfg.YTickFormat)
	}
	if cfg.LegendLoc != "lower center" || cfg.LabelRotation != -15 || cfg.BarWidth != 1.3 {
		t.Errorf("Got %q %g %g", cfg.LegendLoc, cfg.LabelRotation, cfg.BarWidth)
	}
	if cfg.Colors.Scheme != "primary" || cfg.Font != DefaultFont {
		t.Errorf("Got %v %v", cfg.Colors, cfg.Font)
	}
}

func TestDefaultKDEConfig(t *testing.T) {
	cfg := DefaultKDEConfig()
	if cfg.Size != (Size{12, 7}) || cfg.XLabel != "Value" || cfg.YLabel != "Density" {
		t.Errorf("Got %s %q %q", cfg.Size, cfg.XLabel, cfg.YLabel)
	}
	if !cfg.Fill || cfg.Alpha != 0.4 || cfg.UsePercentage {
		t.Errorf("Got fill=%t alpha=%g pct=%t", cfg.Fill, cfg.Alpha, cfg.UsePercentage)
	}
	if cfg.LegendLoc != "upper right" || cfg.Colors.Scheme != "extended" {
		t.Errorf("Got %q %v", cfg.LegendLoc, cfg.Colors)
	}
}

func TestPlotConfigResolve(t *testing.T) {
	cfg := PlotConfig{
		Output: "x.pdf",
		Size:   HalfWidth,
		Colors: ListColors("red"),
		Font:   FontConfig{Label: 10},
	}.Resolve()
	if cfg.Size != HalfWidth || !reflect.DeepEqual(cfg.Colors.List, []string{"red"}) {
		t.Errorf("explicit values lost: %s %v", cfg.Size, cfg.Colors)
	}
	if cfg.BarWidth != 1.3 || cfg.YTicks != 7 || cfg.LegendLoc != "lower center" {
		t.Errorf("defaults not filled: %g %d %q", cfg.BarWidth, cfg.YTicks, cfg.LegendLoc)
	}
	if cfg.Font.Label != 10 || cfg.Font.Tick != 21 || cfg.Font.Family != "Times New Roman" {
		t.Errorf("font: %+v", cfg.Font)
	}
}

func TestPlotConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  PlotConfig
		ok   bool
	}{
		{"minimal", PlotConfig{Output: "a.pdf"}, true},
		{"svg", PlotConfig{Output: "dir/a.svg"}, true},
		{"no extension", PlotConfig{Output: "a"}, true},
		{"no output", PlotConfig{}, false},
		{"bad format", PlotConfig{Output: "a.docx"}, false},
		{"ylim below min", PlotConfig{Output: "a.pdf", YLim: FloatPtr(1), YLimMin: 2}, false},
		{"ylim equal min", PlotConfig{Output: "a.pdf", YLim: FloatPtr(2), YLimMin: 2}, true},
		{"negative size", PlotConfig{Output: "a.pdf", Size: Size{-1, 3}}, false},
		{"negative bar width", PlotConfig{Output: "a.pdf", BarWidth: -1}, false},
		{"unknown scheme", PlotConfig{Output: "a.pdf", Colors: SchemeColors("rainbow")}, false},
		{"brewer scheme", PlotConfig{Output: "a.pdf", Colors: SchemeColors("brewer:Pastel1")}, true},
		{"unknown legend loc", PlotConfig{Output: "a.pdf", LegendLoc: "center"}, false},
		{"empty xlim", PlotConfig{Output: "a.pdf", XLim: &Range{2, 2}}, false},
		{"markers", PlotConfig{Output: "a.pdf", Markers: []string{"o", "none", "ring"}}, true},
		{"unknown marker", PlotConfig{Output: "a.pdf", Markers: []string{"star"}}, false},
		{"line styles", PlotConfig{Output: "a.pdf", LineStyles: []string{"--", "blank"}}, true},
		{"unknown line style", PlotConfig{Output: "a.pdf", LineStyles: []string{"wavy"}}, false},
		{"ref line", PlotConfig{Output: "a.pdf", RefLines: []RefLine{{Y: 1, Color: "gray40", Style: ":"}}}, true},
		{"ref line color", PlotConfig{Output: "a.pdf", RefLines: []RefLine{{Y: 1, Color: "#12"}}}, false},
		{"ref line style", PlotConfig{Output: "a.pdf", RefLines: []RefLine{{Y: 1, Style: "blank"}}}, false},
		{"ref line at zero on log scale", PlotConfig{Output: "a.pdf", LogScale: true, RefLines: []RefLine{{Y: 0}}}, false},
	}
	for _, tc := range tests {
		err := tc.cfg.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %s", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: got %v, want ErrConfiguration", tc.name, err)
		}
	}
}

func TestKDEConfigValidate(t *testing.T) {
	for _, alpha := range []float64{0, 0.5, 1} {
		if err := (KDEConfig{Output: "k.pdf", Alpha: alpha}).Validate(); err != nil {
			t.Errorf("alpha %g: unexpected error %s", alpha, err)
		}
	}
	for _, alpha := range []float64{-0.1, 1.5} {
		err := KDEConfig{Output: "k.pdf", Alpha: alpha}.Validate()
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("alpha %g: got %v", alpha, err)
		}
	}
	if err := (KDEConfig{}).Validate(); !errors.Is(err, ErrConfiguration) {
		t.Errorf("no output: got %v", err)
	}
}

func TestFrame(t *testing.T) {
	fr := PlotConfig{Output: "a.pdf", YLim: FloatPtr(3)}.Frame()
	if !fr.Grid || fr.AutoLegend || *fr.YLim != 3 || fr.DPI != 300 {
		t.Errorf("plot frame: %+v", fr)
	}
	kf := KDEConfig{Output: "k.pdf", UsePercentage: true}.Frame()
	if !kf.Percent || !kf.AutoLegend || kf.YTicks >= 0 || kf.LegendLoc != "upper right" {
		t.Errorf("kde frame: %+v", kf)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadPlotConfig(t *testing.T) {
	path := writeFile(t, "plot.yaml", `
output: figures/speedup.pdf
ylabel: Speedup
ylim: 6
size: [7, 3]
legend: [Baseline, Ours]
colors: ["#ff0000", green]
font:
  label: 20
`)
	cfg, err := LoadPlotConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if cfg.Output != "figures/speedup.pdf" || cfg.YLabel != "Speedup" {
		t.Errorf("Got %q %q", cfg.Output, cfg.YLabel)
	}
	if cfg.YLim == nil || *cfg.YLim != 6 || cfg.Size != (Size{7, 3}) {
		t.Errorf("Got ylim %v size %s", cfg.YLim, cfg.Size)
	}
	if !reflect.DeepEqual(cfg.Legend, []string{"Baseline", "Ours"}) {
		t.Errorf("legend %v", cfg.Legend)
	}
	if !reflect.DeepEqual(cfg.Colors.List, []string{"#ff0000", "green"}) {
		t.Errorf("colors %v", cfg.Colors)
	}
	// Absent keys keep their defaults.
	if cfg.Font.Label != 20 || cfg.Font.Tick != 21 || cfg.BarWidth != 1.3 || cfg.LabelRotation != -15 {
		t.Errorf("defaults lost: %+v %g %g", cfg.Font, cfg.BarWidth, cfg.LabelRotation)
	}
}

func TestLoadPlotConfigSizeMapping(t *testing.T) {
	path := writeFile(t, "plot.yaml", "size: {width: 10}\nxlim: [1, 5]\n")
	cfg, err := LoadPlotConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if cfg.Size != (Size{10, 4.5}) {
		t.Errorf("size %s", cfg.Size)
	}
	if cfg.XLim == nil || *cfg.XLim != (Range{1, 5}) {
		t.Errorf("xlim %v", cfg.XLim)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"short size":  "size: [7]\n",
		"long range":  "xlim: [1, 2, 3]\n",
		"bad type":    "ylim: lots\n",
		"bad colors":  "colors: {a: b}\n",
		"broken yaml": "legend: [a, b\n",
	}
	for name, src := range tests {
		path := writeFile(t, "bad.yaml", src)
		if _, err := LoadPlotConfig(path); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: got %v, want ErrConfiguration", name, err)
		}
	}
	if _, err := LoadPlotConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrConfiguration) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestLoadKDEConfig(t *testing.T) {
	path := writeFile(t, "kde.yaml", "output: dist.png\nfill: false\nalpha: 0.2\nuse_percentage: true\n")
	cfg, err := LoadKDEConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if cfg.Fill || cfg.Alpha != 0.2 || !cfg.UsePercentage || cfg.Output != "dist.png" {
		t.Errorf("Got %+v", cfg)
	}
	if cfg.XLabel != "Value" || cfg.Colors.Scheme != "extended" {
		t.Errorf("defaults lost: %q %v", cfg.XLabel, cfg.Colors)
	}
}

func TestLoadPlotConfigLineOptions(t *testing.T) {
	path := writeFile(t, "lines.yaml", `
output: lines.svg
markers: [o, none]
line_styles: ["--"]
ref_lines:
  - y: 1
    color: black
    style: ":"
`)
	cfg, err := LoadPlotConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if !reflect.DeepEqual(cfg.Markers, []string{"o", "none"}) || !reflect.DeepEqual(cfg.LineStyles, []string{"--"}) {
		t.Errorf("Got markers %q, line styles %q", cfg.Markers, cfg.LineStyles)
	}
	want := []RefLine{{Y: 1, Color: "black", Style: ":"}}
	if !reflect.DeepEqual(cfg.RefLines, want) {
		t.Errorf("Got ref lines %+v, want %+v", cfg.RefLines, want)
	}
	if fr := cfg.Frame(); !reflect.DeepEqual(fr.RefLines, want) {
		t.Errorf("frame ref lines %+v", fr.RefLines)
	}
}
