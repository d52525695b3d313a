package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"

	"csvsnapshot/internal/storage"
	sqliteddl "csvsnapshot/internal/storage/sqlite/ddl"
)

// Repository is a SQLite-backed implementation of storage.Repository. It
// replaces a table inside a single transaction using a prepared INSERT per
// row; SQLite has no dedicated bulk-load API, but one transaction keeps
// performance acceptable for snapshot-sized inputs.
type Repository struct {
	storage.SQLWriter
	cfg Config
}

// NewRepository opens a SQLite connection using the provided DSN and returns
// a Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	closeFn := func() { _ = db.Close() }
	return newWithDB(db, cfg), closeFn, nil
}

func newWithDB(db *sql.DB, cfg Config) *Repository {
	return &Repository{
		SQLWriter: storage.SQLWriter{DB: db, Dialect: sqliteddl.Dialect},
		cfg:       cfg,
	}
}
