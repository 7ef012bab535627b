package logging

import (
	"strings"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Output adds the path of a rendered file.
func Output(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("output", path)
	}
}

// Input adds the path of a data or config file.
func Input(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("input", path)
	}
}

// PlotType adds the kind of plot, e.g. "bar" or "kde".
func PlotType(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("plot", kind)
	}
}

// Format adds the output format.
func Format(format string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("format", format)
	}
}

// Counts adds the number of legend entries and of drawn series.
func Counts(legend, series int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("legend", legend).Int("series", series)
	}
}

// Rows adds the number of data rows.
func Rows(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("rows", n)
	}
}

// Columns adds the column names of a data file.
func Columns(names []string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("columns", strings.Join(names, ","))
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
