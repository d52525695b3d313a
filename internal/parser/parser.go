// Package parser defines the contract shared by tabular input parsers.
package parser

import (
	"errors"
	"io"

	"csvsnapshot/internal/dataset"
)

var (
	// ErrNoHeader is returned when the input holds no header row at all.
	ErrNoHeader = errors.New("no columns to parse from file")
	// ErrNoRows is returned when a header was read but no data rows follow it.
	ErrNoRows = errors.New("no data rows after header")
)

// Parser reads a whole input into a Dataset.
type Parser interface {
	Parse(r io.Reader) (*dataset.Dataset, error)
}
