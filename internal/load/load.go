// Package load writes a Dataset to the configured database as the complete
// contents of one table.
package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"csvsnapshot/internal/dataset"
	"csvsnapshot/internal/ddl"
	"csvsnapshot/internal/etlerr"
	"csvsnapshot/internal/storage"
)

// ErrNoTable is returned (wrapped in etlerr.ErrLoadFailed) for a blank
// destination table name.
var ErrNoTable = errors.New("destination table name is empty")

// Loader replaces a destination table with a Dataset.
type Loader struct {
	Storage storage.Config
	Logger  *slog.Logger

	// open is swapped in tests; nil means storage.New.
	open func(ctx context.Context, cfg storage.Config) (storage.Repository, error)
}

// New returns a Loader writing through the backend selected by cfg.
func New(cfg storage.Config, logger *slog.Logger) *Loader {
	return &Loader{Storage: cfg, Logger: logger}
}

// Load opens the destination, drops any existing table named table, creates
// it from the dataset's columns and inferred types, and inserts every row.
// No row index column is written.
//
// On success one info event names the table. On failure one error event
// carries the cause, and the cause is returned as etlerr.ErrLoadFailed.
func (l *Loader) Load(ctx context.Context, ds *dataset.Dataset, table string) error {
	n, err := l.replace(ctx, ds, table)
	if err != nil {
		l.logger().Error(fmt.Sprintf("Error loading data into the database: %v", err),
			"table", table,
			"storage", l.Storage.Kind,
		)
		return etlerr.LoadFailed(err)
	}

	l.logger().Info(fmt.Sprintf("Data loaded into the table '%s'.", table),
		"storage", l.Storage.Kind,
		"rows", n,
	)
	return nil
}

func (l *Loader) replace(ctx context.Context, ds *dataset.Dataset, table string) (int64, error) {
	if strings.TrimSpace(table) == "" {
		return 0, ErrNoTable
	}
	if ds == nil {
		ds = dataset.New(nil)
	}

	def := ddl.FromDataset(table, ds)
	kinds := make([]dataset.Kind, len(def.Columns))
	for i, c := range def.Columns {
		kinds[i] = c.Kind
	}
	rows := ds.Conform(kinds)

	open := l.open
	if open == nil {
		open = storage.New
	}
	repo, err := open(ctx, l.Storage)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	return repo.ReplaceTable(ctx, def, rows)
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Logger
}
