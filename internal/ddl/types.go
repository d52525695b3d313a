package ddl

import "csvsnapshot/internal/dataset"

// ColumnDef describes one column. Name is unquoted; quoting happens at render
// time. The SQL type comes from Kind through a Dialect.
type ColumnDef struct {
	Name     string
	Kind     dataset.Kind
	Nullable bool
}

// TableDef holds the fully-qualified table name (FQN) and an ordered list of
// columns. The FQN is expected in dotted form (e.g., "schema.table") and will
// be quoted/escaped by renderers as needed.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// ColumnNames returns the column names in order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
