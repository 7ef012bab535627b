package paspale

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DataFrame is a small column store: an ordered list of named, typed
// fields. The first field holds the group labels (bar plots) or the x
// values (line plots); the remaining fields are the data series.
type DataFrame struct {
	Name   string
	N      int // number of rows; the longest field if ragged
	Fields []Field
}

// FieldType represents the basic type of a field.
type FieldType uint

const (
	Float FieldType = iota
	String
)

func (t FieldType) String() string {
	switch t {
	case Float:
		return "Float"
	case String:
		return "String"
	}
	return fmt.Sprintf("FieldType(%d)", t)
}

// Field is one column of a data frame. Float fields keep their values in
// Data, String fields in Strings. Missing float values are NaN.
type Field struct {
	Name    string
	Type    FieldType
	Data    []float64
	Strings []string
}

// NewFloatField returns a Float field holding data.
func NewFloatField(name string, data []float64) Field {
	return Field{Name: name, Type: Float, Data: data}
}

// NewStringField returns a String field holding data.
func NewStringField(name string, data []string) Field {
	return Field{Name: name, Type: String, Strings: data}
}

// Len is the number of values in f.
func (f Field) Len() int {
	if f.Type == String {
		return len(f.Strings)
	}
	return len(f.Data)
}

// Discrete reports whether f holds strings.
func (f Field) Discrete() bool { return f.Type == String }

// Label returns the i'th value of f formatted for display.
func (f Field) Label(i int) string {
	if f.Type == String {
		return f.Strings[i]
	}
	return strconv.FormatFloat(f.Data[i], 'g', -1, 64)
}

// MinMax returns the minimum and maximum of a Float field together with
// their indices, ignoring NaN and Inf. If no finite value exists the
// indices are -1.
func (f Field) MinMax() (min, max float64, mini, maxi int) {
	min, max = math.Inf(+1), math.Inf(-1)
	mini, maxi = -1, -1
	for i, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min {
			min, mini = v, i
		}
		if v > max {
			max, maxi = v, i
		}
	}
	return min, max, mini, maxi
}

// Finite returns the finite values of f.
func (f Field) Finite() []float64 { return finite(f.Data) }

// Add appends field to df.
func (df *DataFrame) Add(field Field) {
	df.Fields = append(df.Fields, field)
	if n := field.Len(); n > df.N {
		df.N = n
	}
}

// FieldNames returns the names of all fields in order.
func (df *DataFrame) FieldNames() []string {
	names := make([]string, len(df.Fields))
	for i, f := range df.Fields {
		names[i] = f.Name
	}
	return names
}

// Series returns all fields but the first.
func (df *DataFrame) Series() []Field {
	if len(df.Fields) < 2 {
		return nil
	}
	return df.Fields[1:]
}

// Labels returns the first field formatted for display.
func (df *DataFrame) Labels() []string {
	if len(df.Fields) == 0 {
		return nil
	}
	first := df.Fields[0]
	labels := make([]string, first.Len())
	for i := range labels {
		labels[i] = first.Label(i)
	}
	return labels
}

// Ragged reports whether the fields of df differ in length.
func (df *DataFrame) Ragged() bool {
	for _, f := range df.Fields {
		if f.Len() != df.N {
			return true
		}
	}
	return false
}

// checkSeries is the common precondition of the row/column plot types:
// at least one row, at least one series, all series numeric and all
// fields of equal length.
func (df *DataFrame) checkSeries() error {
	if df == nil || df.N == 0 || len(df.Fields) == 0 {
		return fmt.Errorf("%w: empty dataset", ErrRender)
	}
	if len(df.Fields) < 2 {
		return fmt.Errorf("%w: dataset %q has no data series", ErrRender, df.Name)
	}
	var discrete []string
	for _, f := range df.Series() {
		if f.Discrete() {
			discrete = append(discrete, f.Name)
		}
	}
	if len(discrete) > 0 {
		return fmt.Errorf("%w: non-numeric series %q in %q", ErrRender, discrete, df.Name)
	}
	if df.Ragged() {
		return fmt.Errorf("%w: series lengths differ in %q", ErrRender, df.Name)
	}
	return nil
}

// ReadCSV reads a data frame from CSV. The first record is the header.
// Columns in which every non-empty cell parses as a number become Float
// fields (empty cells and "NaN" yield NaN); all other columns become
// String fields.
func ReadCSV(r io.Reader, name string) (*DataFrame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: no header", ErrDataLoad, name)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if dups := Duplicates(header); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s: duplicate columns %v", ErrDataLoad, name, dups)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, name, err)
	}

	df := &DataFrame{Name: name}
	for c, col := range header {
		cells := make([]string, len(records))
		for r, rec := range records {
			cells[r] = strings.TrimSpace(rec[c])
		}
		df.Add(parseColumn(col, cells))
	}
	df.N = len(records)
	return df, nil
}

func parseColumn(name string, cells []string) Field {
	data := make([]float64, len(cells))
	for i, s := range cells {
		if s == "" {
			data[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return NewStringField(name, cells)
		}
		data[i] = v
	}
	return NewFloatField(name, data)
}

// LoadCSV reads the CSV file at path.
func LoadCSV(path string) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer f.Close()
	return ReadCSV(f, filepath.Base(path))
}

// FromSequences builds a frame with one Float field per sequence. Fields
// are named after labels, or "Series i" (counting from 1) where no label
// is given. The sequences may differ in length.
func FromSequences(seqs [][]float64, labels []string) *DataFrame {
	df := &DataFrame{Name: "data"}
	for i, seq := range seqs {
		name := fmt.Sprintf("Series %d", i+1)
		if i < len(labels) && labels[i] != "" {
			name = labels[i]
		}
		df.Add(NewFloatField(name, append([]float64(nil), seq...)))
	}
	return df
}

// withIndex returns a copy of df with a leading "index" field 0, 1, ...
// of length N.
func (df *DataFrame) withIndex() *DataFrame {
	idx := make([]float64, df.N)
	for i := range idx {
		idx[i] = float64(i)
	}
	out := &DataFrame{Name: df.Name}
	out.Add(NewFloatField("index", idx))
	for _, f := range df.Fields {
		out.Add(f)
	}
	return out
}
