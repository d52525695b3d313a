package csv

import (
	"strconv"
	"strings"

	"csvsnapshot/internal/dataset"
)

// classify reports the narrowest kind s can be parsed as.
func classify(s string) dataset.Kind {
	t := strings.TrimSpace(s)
	if _, err := strconv.ParseInt(t, 10, 64); err == nil {
		return dataset.KindInt
	}
	if isFloat(t) {
		return dataset.KindFloat
	}
	if _, ok := parseBool(s); ok {
		return dataset.KindBool
	}
	return dataset.KindText
}

func isFloat(t string) bool {
	// strconv accepts hex mantissas and underscores; plain CSV numbers never
	// carry either.
	if strings.ContainsAny(t, "xX_") {
		return false
	}
	_, err := strconv.ParseFloat(t, 64)
	return err == nil
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

// inferColumn converts the string values of column c to a single kind shared
// by every non-missing value. Columns that do not agree stay text.
func inferColumn(rows [][]any, c int) {
	kind := dataset.KindNull
	for _, row := range rows {
		s, ok := row[c].(string)
		if !ok {
			continue
		}
		kind = dataset.Widen(kind, classify(s))
		if kind == dataset.KindText {
			return
		}
	}

	for _, row := range rows {
		s, ok := row[c].(string)
		if !ok {
			continue
		}
		t := strings.TrimSpace(s)
		switch kind {
		case dataset.KindInt:
			n, _ := strconv.ParseInt(t, 10, 64)
			row[c] = n
		case dataset.KindFloat:
			f, _ := strconv.ParseFloat(t, 64)
			row[c] = f
		case dataset.KindBool:
			b, _ := parseBool(s)
			row[c] = b
		}
	}
}
