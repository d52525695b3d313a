package ddl

import (
	"strings"

	"csvsnapshot/internal/dataset"
	gddl "csvsnapshot/internal/ddl"
)

// Dialect renders SQL Server DDL with [bracketed] identifiers.
var Dialect gddl.Dialect = dialect{}

type dialect struct{}

func (dialect) Name() string                  { return "mssql" }
func (dialect) MapType(k dataset.Kind) string { return MapType(k) }

// QuoteIdent safely quotes a SQL Server identifier using [brackets], escaping ].
func (dialect) QuoteIdent(id string) string {
	return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]`
}

// BuildCreateTableSQL returns a SQL Server CREATE TABLE statement for t.
// DROP TABLE IF EXISTS, used on replace, needs SQL Server 2016 or later.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}
