package file

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/xxh3"
)

// Fingerprint is an io.Reader that hashes every byte read through it with
// XXH3-128. The digest identifies exactly which bytes a run consumed, which
// makes two runs over the same snapshot easy to correlate in the event log.
type Fingerprint struct {
	r io.Reader
	h *xxh3.Hasher
	n int64
}

// NewFingerprint wraps r.
func NewFingerprint(r io.Reader) *Fingerprint {
	return &Fingerprint{r: r, h: xxh3.New()}
}

// Read implements io.Reader.
func (f *Fingerprint) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if n > 0 {
		_, _ = f.h.Write(p[:n])
		f.n += int64(n)
	}
	return n, err
}

// Sum returns the hex digest of the bytes read so far.
func (f *Fingerprint) Sum() string {
	b := f.h.Sum128().Bytes()
	return hex.EncodeToString(b[:])
}

// BytesRead returns how many bytes passed through the reader.
func (f *Fingerprint) BytesRead() int64 { return f.n }
