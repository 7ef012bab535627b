package paspale

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const speedupCSV = `label,Baseline,Optimized,Ours
gemm,1.0,1.8,2.4
spmv,1.0,1.2,3.1
conv,1.0,2.2,2.9
`

func TestReadCSV(t *testing.T) {
	df, err := ReadCSV(strings.NewReader(speedupCSV), "speedup")
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if df.N != 3 || len(df.Fields) != 4 {
		t.Fatalf("Got %d rows, %d fields, want 3, 4", df.N, len(df.Fields))
	}
	if got := df.FieldNames(); !reflect.DeepEqual(got, []string{"label", "Baseline", "Optimized", "Ours"}) {
		t.Errorf("names %v", got)
	}
	if df.Fields[0].Type != String || !df.Fields[0].Discrete() {
		t.Errorf("label column has type %s", df.Fields[0].Type)
	}
	if got := df.Labels(); !reflect.DeepEqual(got, []string{"gemm", "spmv", "conv"}) {
		t.Errorf("labels %v", got)
	}
	ours := df.Fields[3]
	if ours.Name != "Ours" || ours.Type != Float || !reflect.DeepEqual(ours.Data, []float64{2.4, 3.1, 2.9}) {
		t.Errorf("Ours = %+v", ours)
	}
	if len(df.Series()) != 3 || df.Series()[0].Name != "Baseline" {
		t.Errorf("series %v", df.Series())
	}
	if err := df.checkSeries(); err != nil {
		t.Errorf("Unexpected error %s", err)
	}
}

func TestReadCSVMissingValues(t *testing.T) {
	src := "# measured 2024\nx, a, b\n1, 2,\n2, NaN, 4\n3, 5, oops\n"
	df, err := ReadCSV(strings.NewReader(src), "gaps")
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	a := df.Fields[1]
	if a.Type != Float || !math.IsNaN(a.Data[1]) || a.Data[2] != 5 {
		t.Errorf("a = %+v", a)
	}
	if got := a.Finite(); !reflect.DeepEqual(got, []float64{2, 5}) {
		t.Errorf("finite a = %v", got)
	}
	b := df.Fields[2]
	if b.Type != String || b.Strings[0] != "" {
		t.Errorf("b = %+v", b)
	}
	if err := df.checkSeries(); !errors.Is(err, ErrRender) || !strings.Contains(err.Error(), `["b"]`) {
		t.Errorf("non-numeric series: got %v", err)
	}
	if x := df.Fields[0]; x.Label(2) != "3" {
		t.Errorf("label of float field %q", x.Label(2))
	}
}

func TestReadCSVByteOrderMark(t *testing.T) {
	df, err := ReadCSV(strings.NewReader("\ufefflabel,a\nx,1\n"), "excel")
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if got := df.FieldNames(); !reflect.DeepEqual(got, []string{"label", "a"}) {
		t.Errorf("Got names %q, want [label a]", got)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"duplicate":    "a,b,a\n1,2,3\n",
		"short record": "a,b\n1,2\n3\n",
	}
	for name, src := range tests {
		if _, err := ReadCSV(strings.NewReader(src), name); !errors.Is(err, ErrDataLoad) {
			t.Errorf("%s: got %v, want ErrDataLoad", name, err)
		}
	}
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); !errors.Is(err, ErrDataLoad) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestLoadCSV(t *testing.T) {
	df, err := LoadCSV(writeFile(t, "speedup.csv", speedupCSV))
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if df.Name != "speedup.csv" || df.N != 3 {
		t.Errorf("Got %q with %d rows", df.Name, df.N)
	}
}

func TestMinMax(t *testing.T) {
	f := NewFloatField("v", []float64{3, math.NaN(), -1, math.Inf(1), 7})
	min, max, mini, maxi := f.MinMax()
	if min != -1 || max != 7 || mini != 2 || maxi != 4 {
		t.Errorf("Got %g %g %d %d", min, max, mini, maxi)
	}
	_, _, mini, maxi = NewFloatField("e", []float64{math.NaN()}).MinMax()
	if mini != -1 || maxi != -1 {
		t.Errorf("all NaN: got indices %d %d", mini, maxi)
	}
}

func TestFromSequences(t *testing.T) {
	seq := []float64{1, 2, 3}
	df := FromSequences([][]float64{seq, {4, 5, 6}}, []string{"first"})
	seq[0] = 99
	if got := df.FieldNames(); !reflect.DeepEqual(got, []string{"first", "Series 2"}) {
		t.Errorf("names %v", got)
	}
	if df.Fields[0].Data[0] != 1 {
		t.Errorf("sequence not copied")
	}
	if df.N != 3 || df.Ragged() {
		t.Errorf("N=%d ragged=%t", df.N, df.Ragged())
	}

	idx := df.withIndex()
	if idx.Fields[0].Name != "index" || !reflect.DeepEqual(idx.Fields[0].Data, []float64{0, 1, 2}) {
		t.Errorf("index %+v", idx.Fields[0])
	}
	if len(idx.Series()) != 2 {
		t.Errorf("Got %d series", len(idx.Series()))
	}

	ragged := FromSequences([][]float64{{1, 2, 3}, {1, 2}}, nil).withIndex()
	if !ragged.Ragged() {
		t.Errorf("ragged frame not detected")
	}
	if err := ragged.checkSeries(); !errors.Is(err, ErrRender) {
		t.Errorf("ragged: got %v", err)
	}
}

func TestCheckSeries(t *testing.T) {
	var nilFrame *DataFrame
	empty, _ := ReadCSV(strings.NewReader("a,b\n"), "empty")
	single, _ := ReadCSV(strings.NewReader("a\n1\n"), "single")
	for name, df := range map[string]*DataFrame{"nil": nilFrame, "no rows": empty, "no series": single} {
		if err := df.checkSeries(); !errors.Is(err, ErrRender) {
			t.Errorf("%s: got %v", name, err)
		}
	}
}
