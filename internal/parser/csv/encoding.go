package csv

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// pythonAliases covers spellings common in existing job configs that the
// WHATWG index either lacks or maps differently.
var pythonAliases = map[string]encoding.Encoding{
	"latin-1":    charmap.ISO8859_1,
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"cp1250":     charmap.Windows1250,
	"cp1252":     charmap.Windows1252,
	"cp437":      charmap.CodePage437,
	"cp850":      charmap.CodePage850,
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "utf-8-sig", "utf_8":
		return true
	}
	return false
}

// LookupEncoding resolves an encoding label. It returns (nil, nil) for UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if isUTF8(name) {
		return nil, nil
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := pythonAliases[n]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(n)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}

// decodeReader wraps r so that it yields UTF-8.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
