package domain

import "errors"

var (
	// ErrMalformedRow marks a workbook row that cannot become a Record.
	ErrMalformedRow = errors.New("malformed row")

	// ErrMissingColumn marks a workbook whose header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidRange marks a year range whose start is after its end.
	ErrInvalidRange = errors.New("invalid year range")
)
