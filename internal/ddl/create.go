// Package ddl defines a small, backend-agnostic model for SQL DDL and helpers
// to render CREATE TABLE and DROP TABLE statements from that model.
//
// Dialect-specific details (identifier quoting and type names) come from a
// Dialect. Backend packages (e.g., internal/storage/postgres/ddl) provide one.
package ddl

import (
	"fmt"
	"strings"

	"csvsnapshot/internal/dataset"
)

// Dialect adapts rendering to one SQL backend.
type Dialect interface {
	// Name is used in error messages, e.g. "postgres".
	Name() string
	// QuoteIdent quotes a single identifier segment.
	QuoteIdent(id string) string
	// MapType returns the column type used for a logical kind.
	MapType(k dataset.Kind) string
}

// QuoteFQN quotes each dot-separated segment of fqn. Empty segments are
// dropped.
func QuoteFQN(d Dialect, fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, d.QuoteIdent(p))
	}
	return strings.Join(out, ".")
}

// BuildCreateTableSQL renders a CREATE TABLE statement from a TableDef.
//
// Rules:
//
//   - t.FQN must be non-empty; each segment is quoted.
//
//   - Each column must have a non-empty Name, and names must be unique.
//
//   - A column is rendered as:
//
//     <Name> <d.MapType(Kind)> [NOT NULL]
func BuildCreateTableSQL(t TableDef, d Dialect) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s ddl: table FQN must not be empty", d.Name())
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s ddl: at least one column is required", d.Name())
	}

	cols := make([]string, 0, len(t.Columns))
	seen := make(map[string]struct{}, len(t.Columns))

	for _, c := range t.Columns {
		// Names are quoted verbatim; blank or padded names still need a
		// non-empty body.
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("%s ddl: column with empty name in table %s", d.Name(), fqn)
		}
		if _, dup := seen[c.Name]; dup {
			return "", fmt.Errorf("%s ddl: duplicate column name %q in table %s", d.Name(), c.Name, fqn)
		}
		seen[c.Name] = struct{}{}

		col := d.QuoteIdent(c.Name) + " " + d.MapType(c.Kind)
		if !c.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}

	return fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n)",
		QuoteFQN(d, fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

// BuildDropTableSQL renders DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string, d Dialect) (string, error) {
	if strings.TrimSpace(fqn) == "" {
		return "", fmt.Errorf("%s ddl: table FQN must not be empty", d.Name())
	}
	return "DROP TABLE IF EXISTS " + QuoteFQN(d, fqn), nil
}

// BuildInsertSQL renders a single-row INSERT with one placeholder per column.
// placeholder receives the 1-based column position.
func BuildInsertSQL(t TableDef, d Dialect, placeholder func(i int) string) string {
	names := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = d.QuoteIdent(c.Name)
		marks[i] = placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QuoteFQN(d, t.FQN), strings.Join(names, ", "), strings.Join(marks, ", "))
}
