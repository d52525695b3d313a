// Package dataset holds the in-memory table that flows between pipeline
// stages: an ordered column set and rows of scalar values aligned to it.
//
// Values are one of int64, float64, bool, string, or nil (missing). Stages
// treat a Dataset as immutable input and build a new one for their output.
package dataset

import (
	"fmt"
	"math"
)

// Dataset is an ordered sequence of rows sharing one ordered column set.
type Dataset struct {
	Columns []string
	Rows    [][]any
}

// New returns an empty Dataset over a copy of columns.
func New(columns []string) *Dataset {
	return &Dataset{Columns: append([]string(nil), columns...)}
}

// Append adds a row. The row must be aligned to Columns.
func (d *Dataset) Append(row []any) error {
	if len(row) != len(d.Columns) {
		return fmt.Errorf("dataset: row has %d values, want %d", len(row), len(d.Columns))
	}
	d.Rows = append(d.Rows, row)
	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Index returns the position of the column named exactly col, or -1.
func (d *Dataset) Index(col string) int {
	for i, c := range d.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the column set and rows. Scalar values are
// immutable so they are shared.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([][]any, len(d.Rows)),
	}
	for i, row := range d.Rows {
		out.Rows[i] = append([]any(nil), row...)
	}
	return out
}

// IsMissing reports whether v is the missing marker. A float NaN counts as
// missing too, so values produced by arithmetic behave like parsed blanks.
func IsMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	}
	return false
}
