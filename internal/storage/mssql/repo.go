// Package mssql implements a Microsoft SQL Server repository using the
// go-mssqldb bulk copy API. A table is replaced in one transaction: DROP IF
// EXISTS, CREATE, then a bulk copy of every row.
package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"csvsnapshot/internal/ddl"
	"csvsnapshot/internal/storage"
	msddl "csvsnapshot/internal/storage/mssql/ddl"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN string
}

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	storage.SQLWriter
	cfg Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mssql: ping: %w", mssqlErr(err))
	}
	closeFn := func() { _ = db.Close() }
	return newWithDB(db, cfg), closeFn, nil
}

func newWithDB(db *sql.DB, cfg Config) *Repository {
	return &Repository{
		SQLWriter: storage.SQLWriter{
			DB:       db,
			Dialect:  msddl.Dialect,
			BulkStmt: bulkStmt,
		},
		cfg: cfg,
	}
}

// ReplaceTable implements storage.Repository.ReplaceTable, adding the server
// error number to failures.
func (r *Repository) ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any) (int64, error) {
	n, err := r.SQLWriter.ReplaceTable(ctx, def, rows)
	if err != nil {
		return 0, mssqlErr(err)
	}
	return n, nil
}

// bulkStmt returns the CopyIn statement for def. The table name is passed
// bracket-quoted; column names are matched by the driver against the
// destination metadata and stay unquoted.
func bulkStmt(def ddl.TableDef) string {
	return mssql.CopyIn(ddl.QuoteFQN(msddl.Dialect, def.FQN), mssql.BulkOptions{}, def.ColumnNames()...)
}

// mssqlErr annotates err with the SQL Server error number and line, if any.
func mssqlErr(err error) error {
	var me mssql.Error
	if errors.As(err, &me) {
		return fmt.Errorf("%w (mssql error %d, line %d)", err, me.Number, me.LineNo)
	}
	return err
}
