package builtin

import "csvsnapshot/internal/dataset"

// Require removes any row missing a value for one of the specified fields.
// Fields are matched by exact column name. A field that is not a column at
// all counts as missing in every row.
type Require struct {
	Fields []string
}

// Apply returns a copy of in holding only the rows where every required
// field is present.
func (r Require) Apply(in *dataset.Dataset) *dataset.Dataset {
	idx := make([]int, len(r.Fields))
	for i, f := range r.Fields {
		idx[i] = in.Index(f)
	}

	out := &dataset.Dataset{
		Columns: append([]string(nil), in.Columns...),
		Rows:    make([][]any, 0, len(in.Rows)),
	}
	for _, row := range in.Rows {
		if hasAll(row, idx) {
			out.Rows = append(out.Rows, append([]any(nil), row...))
		}
	}
	return out
}

func hasAll(row []any, idx []int) bool {
	for _, i := range idx {
		if i < 0 || i >= len(row) || dataset.IsMissing(row[i]) {
			return false
		}
	}
	return true
}
