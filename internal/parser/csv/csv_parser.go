// Package csv parses delimited text with a header row into a Dataset. Column
// values are typed per column (integer, float, boolean or text) and the
// common missing-value markers become nulls.
package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"csvsnapshot/internal/dataset"
	"csvsnapshot/internal/parser"
)

// Options configures the CSV parser behavior. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value before
	// missing-value detection and typing. Header names are never trimmed.
	TrimSpace bool

	// Encoding names the input character set (e.g. "utf-8", "latin-1",
	// "windows-1250"). Empty means UTF-8.
	Encoding string

	// NAValues are additional strings treated as missing.
	NAValues []string

	// NoDefaultNA disables the built-in missing-value markers. The empty
	// string is always missing.
	NoDefaultNA bool

	// RawStrings keeps every non-missing value as a string.
	RawStrings bool
}

// defaultNA are the markers recognized as missing unless NoDefaultNA is set.
var defaultNA = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// ErrMalformed marks structural problems such as a row wider than the header.
var ErrMalformed = errors.New("malformed csv")

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct {
	opt Options
	na  map[string]struct{}
}

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	na := make(map[string]struct{}, len(defaultNA)+len(opt.NAValues))
	na[""] = struct{}{}
	if !opt.NoDefaultNA {
		for _, s := range defaultNA {
			na[s] = struct{}{}
		}
	}
	for _, s := range opt.NAValues {
		na[s] = struct{}{}
	}
	return &Parser{opt: opt, na: na}
}

var _ parser.Parser = (*Parser)(nil)

// Parse reads the header and every data row from r.
//
// Errors:
//   - parser.ErrNoHeader when r holds no records at all;
//   - parser.ErrNoRows when only the header is present;
//   - ErrMalformed, *csv.ParseError, decoding and I/O errors otherwise.
func (p *Parser) Parse(r io.Reader) (*dataset.Dataset, error) {
	dec, err := decodeReader(r, p.opt.Encoding)
	if err != nil {
		return nil, err
	}
	validate := isUTF8(p.opt.Encoding)

	br := bufio.NewReaderSize(dec, 64*1024)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cr := csv.NewReader(br)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Width is enforced below so short rows can be padded.
	cr.FieldsPerRecord = -1

	h, err := readRecord(cr)
	if err == io.EOF {
		return nil, parser.ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if validate {
		line, _ := cr.FieldPos(0)
		if err := checkUTF8(h, line); err != nil {
			return nil, err
		}
	}

	ds := dataset.New(dedupeHeaders(h))
	width := len(ds.Columns)

	for {
		row, err := readRecord(cr)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) > width {
			return nil, fmt.Errorf("%w: expected %d fields in line %d, saw %d", ErrMalformed, width, line, len(row))
		}
		if validate {
			if err := checkUTF8(row, line); err != nil {
				return nil, err
			}
		}

		rec := make([]any, width)
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			if _, missing := p.na[val]; missing {
				continue
			}
			rec[i] = val
		}
		// Append only fails on width mismatch, which cannot happen here.
		_ = ds.Append(rec)
	}

	if ds.Len() == 0 {
		return nil, parser.ErrNoRows
	}
	if !p.opt.RawStrings {
		for c := range ds.Columns {
			inferColumn(ds.Rows, c)
		}
	}
	return ds, nil
}

// readRecord returns the next record that is not a blank line. encoding/csv
// only skips empty lines; a line holding nothing but spaces or tabs comes
// back as a single whitespace field and is skipped here as well.
func readRecord(cr *csv.Reader) ([]string, error) {
	for {
		rec, err := cr.Read()
		if err != nil {
			return nil, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		return rec, nil
	}
}

// dedupeHeaders names blank headers "Unnamed: N" and suffixes repeated names
// with ".1", ".2", ... so that every column name is unique.
func dedupeHeaders(h []string) []string {
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, name := range h {
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		cur := name
		if _, dup := seen[cur]; dup {
			n := seen[name]
			for {
				cur = name + "." + strconv.Itoa(n)
				n++
				if _, taken := seen[cur]; !taken {
					break
				}
			}
			seen[name] = n
		}
		seen[cur] = 1
		out[i] = cur
	}
	return out
}

func checkUTF8(fields []string, line int) error {
	for _, f := range fields {
		if !utf8.ValidString(f) {
			return fmt.Errorf("invalid utf-8 in line %d", line)
		}
	}
	return nil
}
