package ddl

import (
	"strings"

	"csvsnapshot/internal/dataset"
	gddl "csvsnapshot/internal/ddl"
)

// Dialect renders DuckDB DDL.
var Dialect gddl.Dialect = dialect{}

type dialect struct{}

func (dialect) Name() string                  { return "duckdb" }
func (dialect) MapType(k dataset.Kind) string { return MapType(k) }

func (dialect) QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
