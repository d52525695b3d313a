// Package pipeline sequences extraction, transformation and loading for one
// input file and builds those stages from configuration.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"csvsnapshot/internal/datasource"
	"csvsnapshot/internal/dataset"
	"csvsnapshot/internal/etlerr"
	"csvsnapshot/internal/metrics"
)

// Extractor reads a source into a Dataset.
type Extractor interface {
	Extract(ctx context.Context, src datasource.Source) (*dataset.Dataset, error)
}

// Transformer cleans a Dataset. It cannot fail.
type Transformer interface {
	Transform(in *dataset.Dataset) *dataset.Dataset
}

// Loader replaces a table with a Dataset.
type Loader interface {
	Load(ctx context.Context, ds *dataset.Dataset, table string) error
}

// Driver runs the three stages in order for one source.
type Driver struct {
	Extractor   Extractor
	Transformer Transformer
	Loader      Loader

	// Table is the destination table name.
	Table string

	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Run executes extract, transform and load. Stage errors are returned
// unchanged. "ETL process has ended." is logged exactly once on every path,
// after everything else.
func (d *Driver) Run(ctx context.Context, src datasource.Source) error {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log.Info("Starting the ETL process...", "source", src.Name(), "table", d.Table)
	defer log.Info("ETL process has ended.")

	start := time.Now()
	raw, err := d.Extractor.Extract(ctx, src)
	d.Metrics.Stage(etlerr.StageExtract, err, time.Since(start))
	if err != nil {
		return err
	}
	d.Metrics.Rows(metrics.RowsExtracted, raw.Len())

	start = time.Now()
	clean := d.Transformer.Transform(raw)
	d.Metrics.Stage(etlerr.StageTransform, nil, time.Since(start))
	d.Metrics.Rows(metrics.RowsDropped, raw.Len()-clean.Len())

	start = time.Now()
	err = d.Loader.Load(ctx, clean, d.Table)
	d.Metrics.Stage(etlerr.StageLoad, err, time.Since(start))
	if err != nil {
		return err
	}
	d.Metrics.Rows(metrics.RowsLoaded, clean.Len())

	log.Info("ETL process completed successfully.")
	return nil
}
