package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

const speedupCSV = `label,Baseline,Optimized,Ours
gemm,1.0,1.8,2.4
spmv,1.0,1.2,3.1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), err
}

func TestApp_Version(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "paspale version") {
		t.Errorf("version output missing 'paspale version', got: %s", out)
	}
}

func TestApp_Help(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, cmd := range []string{"bar", "stacked", "line", "kde", "version"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("help output missing %q command, got: %s", cmd, out)
		}
	}
}

func TestApp_Bar(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", speedupCSV)
	output := filepath.Join(dir, "fig.pdf")

	out, err := run(t, "bar", data, "-o", output, "-y", "Speedup",
		"-l", "A", "-l", "B", "-l", "C", "--ylim", "6", "--colors", "extended", "--size", "7,4.5")
	if err != nil {
		t.Fatalf("bar command failed: %v", err)
	}
	if !strings.Contains(out, "saved "+output) {
		t.Errorf("output %q", out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("figure not written: %v", err)
	}
}

func TestApp_PlotKinds(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", speedupCSV)
	for _, kind := range []string{"stacked", "line"} {
		output := filepath.Join(dir, kind+".svg")
		if _, err := run(t, kind, data, "-o", output); err != nil {
			t.Errorf("%s command failed: %v", kind, err)
			continue
		}
		if _, err := os.Stat(output); err != nil {
			t.Errorf("%s: figure not written: %v", kind, err)
		}
	}
}

func TestApp_Config(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", speedupCSV)
	config := writeFile(t, dir, "plot.yaml", "output: "+filepath.Join(dir, "from-config.pdf")+"\nylabel: Time\nlegend: [x, y, z]\n")

	out, err := run(t, "bar", data, "-c", config, "-y", "Speedup")
	if err != nil {
		t.Fatalf("bar command failed: %v", err)
	}
	if !strings.Contains(out, "from-config.pdf") {
		t.Errorf("config output path not used: %q", out)
	}

	out, err = run(t, "bar", data, "-c", config, "-o", filepath.Join(dir, "flag.pdf"))
	if err != nil {
		t.Fatalf("bar command failed: %v", err)
	}
	if !strings.Contains(out, "flag.pdf") {
		t.Errorf("output flag did not override config: %q", out)
	}
}

func TestPlotOptionsOverride(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "plot.yaml", "output: a.pdf\nylabel: Time\nylim: 3\ncolors: gradient\n")

	opts := &plotOptions{}
	flags := pflag.NewFlagSet("bar", pflag.ContinueOnError)
	opts.bind(flags)
	if err := flags.Parse([]string{"-c", config, "-y", "Speedup", "--log"}); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	cfg, err := opts.config(flags)
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if cfg.YLabel != "Speedup" || cfg.YLim == nil || *cfg.YLim != 3 || !cfg.LogScale {
		t.Errorf("Got ylabel %q ylim %v log %t", cfg.YLabel, cfg.YLim, cfg.LogScale)
	}
	if cfg.Colors.Scheme != "gradient" || cfg.Output != "a.pdf" {
		t.Errorf("config values lost: %v %q", cfg.Colors, cfg.Output)
	}
}

func TestApp_KDE(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "samples.csv", "a,b\n1,4\n2,5\n3,7\n2.5,\n")
	output := filepath.Join(dir, "dist.pdf")
	if _, err := run(t, "kde", data, "-o", output, "--fill=false", "--alpha", "0.2", "--percent", "--xlabel", "Latency"); err != nil {
		t.Fatalf("kde command failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("figure not written: %v", err)
	}
}

func TestApp_Errors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", speedupCSV)
	tests := map[string][]string{
		"missing argument":  {"bar"},
		"missing file":      {"bar", filepath.Join(dir, "nope.csv"), "-o", filepath.Join(dir, "a.pdf")},
		"bad size":          {"bar", data, "--size", "7"},
		"negative size":     {"bar", data, "--size", "7,-1"},
		"unknown scheme":    {"bar", data, "--colors", "neon", "-o", filepath.Join(dir, "b.pdf")},
		"bad alpha":         {"kde", data, "--alpha", "2", "-o", filepath.Join(dir, "c.pdf")},
		"unknown log level": {"bar", data, "--log-level", "loud"},
		"unknown command":   {"pie", data},
	}
	for name, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestApp_NonNumericColumn(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "notes.csv", "label,time,note\ngemm,1.5,fast\nspmv,2.0,slow\n")
	_, err := run(t, "bar", data, "-o", filepath.Join(dir, "a.pdf"))
	if err == nil || !strings.Contains(err.Error(), `"note"`) {
		t.Errorf("expected error naming the non-numeric column, got %v", err)
	}
}

func TestParseSize(t *testing.T) {
	for in, want := range map[string][2]float64{"7,4.5": {7, 4.5}, "14x6": {14, 6}, "8, 8": {8, 8}} {
		got, err := parseSize(in)
		if err != nil || got.Width != want[0] || got.Height != want[1] {
			t.Errorf("parseSize(%q) = %v, %v", in, got, err)
		}
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", speedupCSV)

	var renders atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, []string{data}, func() error {
			renders.Add(1)
			return nil
		})
	}()

	waitFor := func(n int32) bool {
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if renders.Load() >= n {
				return true
			}
			time.Sleep(20 * time.Millisecond)
		}
		return false
	}
	if !waitFor(1) {
		t.Fatalf("no initial render")
	}
	// Give the watcher time to register before changing the file.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, dir, "data.csv", speedupCSV+"conv,1.0,2.2,2.9\n")
	if !waitFor(2) {
		t.Errorf("change did not trigger a render")
	}
	writeFile(t, dir, "other.csv", "x\n")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watch did not stop")
	}
}

func TestApp_WatchCancelled(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", speedupCSV)
	output := filepath.Join(dir, "fig.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	err := New().WithOutput(&stdout, &stderr).ExecuteWithArgs(ctx, []string{"bar", data, "-o", output, "--watch"})
	if err != nil {
		t.Fatalf("watch run failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("initial render missing: %v", err)
	}
}
