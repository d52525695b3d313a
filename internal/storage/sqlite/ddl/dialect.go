package ddl

import (
	"strings"

	"csvsnapshot/internal/dataset"
	gddl "csvsnapshot/internal/ddl"
)

// Dialect renders SQLite DDL: double-quoted identifiers, affinity types.
var Dialect gddl.Dialect = dialect{}

type dialect struct{}

func (dialect) Name() string                  { return "sqlite" }
func (dialect) MapType(k dataset.Kind) string { return MapType(k) }

func (dialect) QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}
