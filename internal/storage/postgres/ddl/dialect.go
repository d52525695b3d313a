package ddl

import (
	"strings"

	"csvsnapshot/internal/dataset"
	gddl "csvsnapshot/internal/ddl"
)

// Dialect renders Postgres DDL. Identifiers are always double-quoted, so
// mixed-case column names keep their case.
var Dialect gddl.Dialect = dialect{}

type dialect struct{}

func (dialect) Name() string                  { return "postgres" }
func (dialect) MapType(k dataset.Kind) string { return MapType(k) }

// QuoteIdent safely quotes a single identifier segment for Postgres.
func (dialect) QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// BuildCreateTableSQL returns a Postgres CREATE TABLE statement for t. A
// schema-qualified FQN ("public.passengers") is quoted per segment.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}
