// Package duckdb implements an embedded DuckDB storage.Repository on top of
// marcboeker/go-duckdb. The DSN is a database file path; an empty DSN opens
// an in-memory database that disappears on Close.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	// Registers the "duckdb" database/sql driver.
	_ "github.com/marcboeker/go-duckdb"

	"csvsnapshot/internal/storage"
	duckddl "csvsnapshot/internal/storage/duckdb/ddl"
)

// Config holds DuckDB repository configuration.
type Config struct {
	DSN string
}

// Repository is a DuckDB-backed implementation of storage.Repository.
type Repository struct {
	storage.SQLWriter
	cfg Config
}

// NewRepository opens the DuckDB database at cfg.DSN and returns a Repository
// plus a Close function.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	db, err := sql.Open("duckdb", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("duckdb: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("duckdb: ping: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return newWithDB(db, cfg), closeFn, nil
}

func newWithDB(db *sql.DB, cfg Config) *Repository {
	return &Repository{
		SQLWriter: storage.SQLWriter{
			DB:          db,
			Dialect:     duckddl.Dialect,
			Placeholder: placeholder,
		},
		cfg: cfg,
	}
}

func placeholder(i int) string { return "$" + strconv.Itoa(i) }
