// Package transformer composes dataset cleaning steps into one stage.
package transformer

import (
	"fmt"
	"io"
	"log/slog"

	"csvsnapshot/internal/dataset"
)

// Step is one cleaning operation. Apply must not modify its input; it returns
// a new Dataset (or the input itself when nothing changes).
type Step interface {
	Apply(in *dataset.Dataset) *dataset.Dataset
}

// Chain is an ordered list of steps.
type Chain []Step

// Apply runs every step in order.
func (c Chain) Apply(in *dataset.Dataset) *dataset.Dataset {
	out := in
	for _, s := range c {
		out = s.Apply(out)
	}
	return out
}

// Transformer is the transform stage: a Chain plus its two log events.
type Transformer struct {
	Chain  Chain
	Logger *slog.Logger
}

// New returns a Transformer running chain.
func New(chain Chain, logger *slog.Logger) *Transformer {
	return &Transformer{Chain: chain, Logger: logger}
}

// Transform applies the chain to in. It never fails and never modifies in.
func (t *Transformer) Transform(in *dataset.Dataset) *dataset.Dataset {
	if in == nil {
		in = dataset.New(nil)
	}
	out := t.Chain.Apply(in)

	log := t.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log.Info("Data transformed successfully.", "columns", len(out.Columns))
	log.Info(fmt.Sprintf("Number of records after transformation: %d", out.Len()),
		"rows_in", in.Len(), "rows_out", out.Len())
	return out
}
