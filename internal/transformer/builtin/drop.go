// Package builtin contains simple, reusable transformers used in the ETL.
package builtin

import (
	"strings"

	"csvsnapshot/internal/dataset"
)

// DropColumns removes the named columns. Names match case-insensitively
// against the trimmed column name; names that match nothing are ignored.
type DropColumns struct {
	Names []string
}

// Apply returns a copy of in without the dropped columns.
func (d DropColumns) Apply(in *dataset.Dataset) *dataset.Dataset {
	keep := make([]int, 0, len(in.Columns))
	for i, col := range in.Columns {
		if !d.matches(col) {
			keep = append(keep, i)
		}
	}

	cols := make([]string, len(keep))
	for j, i := range keep {
		cols[j] = in.Columns[i]
	}
	out := &dataset.Dataset{Columns: cols, Rows: make([][]any, len(in.Rows))}
	for r, row := range in.Rows {
		nr := make([]any, len(keep))
		for j, i := range keep {
			nr[j] = row[i]
		}
		out.Rows[r] = nr
	}
	return out
}

func (d DropColumns) matches(col string) bool {
	c := strings.TrimSpace(col)
	for _, n := range d.Names {
		if strings.EqualFold(c, strings.TrimSpace(n)) {
			return true
		}
	}
	return false
}
