package dataset

import (
	"fmt"
	"strconv"
)

// Kind is the logical type of a column, inferred from its values. Storage
// backends map kinds onto their own SQL types.
type Kind int

const (
	// KindNull marks a column whose values are all missing.
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

// kindOf returns the kind of a single non-missing value.
func kindOf(v any) Kind {
	switch v.(type) {
	case int64, int, int32:
		return KindInt
	case float64, float32:
		return KindFloat
	case bool:
		return KindBool
	default:
		return KindText
	}
}

// Widen combines the running kind of a column with the kind of one more
// value. Integers widen to floats; any other disagreement widens to text.
func Widen(cur, next Kind) Kind {
	switch {
	case cur == KindNull:
		return next
	case cur == next:
		return cur
	case (cur == KindInt && next == KindFloat) || (cur == KindFloat && next == KindInt):
		return KindFloat
	default:
		return KindText
	}
}

// ColumnKinds infers one Kind per column from the current values.
func (d *Dataset) ColumnKinds() []Kind {
	kinds := make([]Kind, len(d.Columns))
	for _, row := range d.Rows {
		for i, v := range row {
			if i >= len(kinds) || IsMissing(v) {
				continue
			}
			kinds[i] = Widen(kinds[i], kindOf(v))
		}
	}
	return kinds
}

// Conform returns the rows with every value converted to the kind of its
// column: ints become float64 in float columns and non-strings are rendered
// as text in text columns. Missing values become nil.
func (d *Dataset) Conform(kinds []Kind) [][]any {
	out := make([][]any, len(d.Rows))
	for r, row := range d.Rows {
		conv := make([]any, len(row))
		for i, v := range row {
			if IsMissing(v) {
				continue
			}
			k := KindText
			if i < len(kinds) {
				k = kinds[i]
			}
			conv[i] = conformValue(v, k)
		}
		out[r] = conv
	}
	return out
}

func conformValue(v any, k Kind) any {
	switch k {
	case KindInt:
		switch t := v.(type) {
		case int:
			return int64(t)
		case int32:
			return int64(t)
		}
	case KindFloat:
		switch t := v.(type) {
		case int64:
			return float64(t)
		case int:
			return float64(t)
		case int32:
			return float64(t)
		case float32:
			return float64(t)
		}
	case KindText:
		return Format(v)
	}
	return v
}

// Format renders a scalar the way it would appear in delimited text.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(t)
	}
}
