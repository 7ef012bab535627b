package paspale

import "errors"

var (
	// ErrConfiguration is returned for missing or invalid options, e.g.
	// an empty output path or an unknown color scheme.
	ErrConfiguration = errors.New("configuration error")

	// ErrDataLoad is returned when input data cannot be read or parsed.
	ErrDataLoad = errors.New("data load error")

	// ErrRender is returned when the loaded data cannot be drawn, e.g.
	// because it is empty or its series have different lengths.
	ErrRender = errors.New("render error")
)
