package csv

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM discards a leading UTF-8 byte order mark, if present.
func skipBOM(br *bufio.Reader) error {
	b, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.Equal(b, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}
