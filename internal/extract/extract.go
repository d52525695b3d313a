// Package extract reads a delimited source file into a Dataset.
package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"csvsnapshot/internal/datasource"
	"csvsnapshot/internal/datasource/file"
	"csvsnapshot/internal/dataset"
	"csvsnapshot/internal/etlerr"
	"csvsnapshot/internal/parser"
	pcsv "csvsnapshot/internal/parser/csv"
)

// Extractor turns a source into a Dataset. The zero value parses plain
// comma-separated UTF-8 with the default missing-value markers.
type Extractor struct {
	Options pcsv.Options
	Logger  *slog.Logger

	// newParser is swapped in tests.
	newParser func(pcsv.Options) parser.Parser
}

// New returns an Extractor that logs to logger.
func New(opt pcsv.Options, logger *slog.Logger) *Extractor {
	return &Extractor{Options: opt, Logger: logger}
}

// Extract reads src in full.
//
// A zero-length source fails with etlerr.ErrEmptyInput before it is opened.
// A source with no header or no data rows also fails with ErrEmptyInput.
// Every other failure is returned as etlerr.ErrExtractFailed wrapping the
// cause. On success exactly one info event is logged.
func (e *Extractor) Extract(ctx context.Context, src datasource.Source) (*dataset.Dataset, error) {
	n, err := src.Size(ctx)
	if err != nil {
		return nil, etlerr.ExtractFailed(err)
	}
	if n == 0 {
		return nil, etlerr.EmptyInput(nil)
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, etlerr.ExtractFailed(err)
	}
	defer rc.Close()

	fp := file.NewFingerprint(rc)
	ds, err := e.parser().Parse(fp)
	switch {
	case errors.Is(err, parser.ErrNoHeader), errors.Is(err, parser.ErrNoRows):
		return nil, etlerr.EmptyInput(err)
	case err != nil:
		return nil, etlerr.ExtractFailed(err)
	case ds.Len() == 0 || len(ds.Columns) == 0:
		return nil, etlerr.EmptyInput(nil)
	}

	e.logger().Info("Data extracted successfully.",
		"source", src.Name(),
		"rows", ds.Len(),
		"columns", len(ds.Columns),
		"bytes", fp.BytesRead(),
		"xxh3", fp.Sum(),
	)
	return ds, nil
}

func (e *Extractor) parser() parser.Parser {
	if e.newParser != nil {
		return e.newParser(e.Options)
	}
	return pcsv.NewParser(e.Options)
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}
