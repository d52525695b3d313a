package ddl

import (
	"strings"

	"csvsnapshot/internal/dataset"
	gddl "csvsnapshot/internal/ddl"
)

// Dialect renders MySQL DDL with `backtick` identifiers.
var Dialect gddl.Dialect = dialect{}

type dialect struct{}

func (dialect) Name() string                  { return "mysql" }
func (dialect) MapType(k dataset.Kind) string { return MapType(k) }

func (dialect) QuoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}
