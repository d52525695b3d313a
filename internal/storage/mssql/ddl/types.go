// Package ddl contains SQL Server-specific helpers for generating DDL.
package ddl

import "csvsnapshot/internal/dataset"

// MapType maps a logical column kind into a SQL Server column type.
//
//	int   -> BIGINT
//	float -> FLOAT
//	bool  -> BIT
//	text  -> NVARCHAR(MAX) (also the fallback)
func MapType(k dataset.Kind) string {
	switch k {
	case dataset.KindInt:
		return "BIGINT"
	case dataset.KindFloat:
		return "FLOAT"
	case dataset.KindBool:
		return "BIT"
	default:
		return "NVARCHAR(MAX)"
	}
}
