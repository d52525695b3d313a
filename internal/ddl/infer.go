package ddl

import "csvsnapshot/internal/dataset"

// FromDataset derives a table definition from the columns and values of ds.
// Every column is nullable; types come from the inferred column kinds.
func FromDataset(fqn string, ds *dataset.Dataset) TableDef {
	kinds := ds.ColumnKinds()
	cols := make([]ColumnDef, len(ds.Columns))
	for i, name := range ds.Columns {
		k := kinds[i]
		// An all-null column has no type evidence; text accepts anything.
		if k == dataset.KindNull {
			k = dataset.KindText
		}
		cols[i] = ColumnDef{Name: name, Kind: k, Nullable: true}
	}
	return TableDef{FQN: fqn, Columns: cols}
}
