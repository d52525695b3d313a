// Package ddl contains SQLite-specific helpers for generating DDL.
package ddl

import "csvsnapshot/internal/dataset"

// MapType maps a logical column kind into a SQLite column type.
//
//	int   -> INTEGER
//	float -> REAL
//	bool  -> INTEGER
//	text  -> TEXT (also the fallback)
func MapType(k dataset.Kind) string {
	switch k {
	case dataset.KindInt:
		return "INTEGER"
	case dataset.KindFloat:
		return "REAL"
	case dataset.KindBool:
		return "INTEGER"
	default:
		return "TEXT"
	}
}
