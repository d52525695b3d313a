package builtin

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"csvsnapshot/internal/dataset"
)

// NormalizeColumns trims surrounding whitespace from every column name and
// lower-cases it. Row values are untouched.
type NormalizeColumns struct{}

// Apply returns a copy of in with normalized column names.
func (NormalizeColumns) Apply(in *dataset.Dataset) *dataset.Dataset {
	out := in.Clone()
	for i, c := range out.Columns {
		out.Columns[i] = NormalizeName(c)
	}
	return out
}

// NormalizeName trims and lower-cases one column name.
func NormalizeName(s string) string {
	// cases.Caser is stateful, so one per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
