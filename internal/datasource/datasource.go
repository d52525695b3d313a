// Package datasource defines how the extractor reaches raw input bytes.
package datasource

import (
	"context"
	"io"
)

// Source is a readable input whose size is known before it is opened.
type Source interface {
	// Size returns the number of bytes the source currently holds. It may
	// block (a remote source downloads here) and honours ctx.
	Size(ctx context.Context) (int64, error)
	// Open returns a reader positioned at the first byte.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in log events.
	Name() string
}
