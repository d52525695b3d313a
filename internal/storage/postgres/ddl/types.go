// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import "csvsnapshot/internal/dataset"

// MapType maps a logical column kind into a Postgres column type.
//
//	int   -> BIGINT
//	float -> DOUBLE PRECISION
//	bool  -> BOOLEAN
//	text  -> TEXT (also the fallback)
func MapType(k dataset.Kind) string {
	switch k {
	case dataset.KindInt:
		return "BIGINT"
	case dataset.KindFloat:
		return "DOUBLE PRECISION"
	case dataset.KindBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}
