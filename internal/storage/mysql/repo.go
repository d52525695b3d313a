// Package mysql provides a MySQL-backed storage.Repository implementation
// built on go-sql-driver/mysql.
//
// MySQL commits DDL implicitly, so a replace is three steps rather than one
// atomic unit: a failure after DROP leaves the table missing.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"csvsnapshot/internal/ddl"
	"csvsnapshot/internal/storage"
	myddl "csvsnapshot/internal/storage/mysql/ddl"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN string
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	storage.SQLWriter
	cfg Config
}

// NewRepository opens a connection pool for cfg.DSN, pings it and returns a
// Repository plus a Close function.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql dsn: %w", err)
	}
	if mc.Timeout == 0 {
		mc.Timeout = 10 * time.Second
	}
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", mysqlErr(err))
	}
	closeFn := func() { _ = db.Close() }
	return newWithDB(db, cfg), closeFn, nil
}

func newWithDB(db *sql.DB, cfg Config) *Repository {
	return &Repository{
		SQLWriter: storage.SQLWriter{DB: db, Dialect: myddl.Dialect},
		cfg:       cfg,
	}
}

// ReplaceTable implements storage.Repository.ReplaceTable.
func (r *Repository) ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any) (int64, error) {
	n, err := r.SQLWriter.ReplaceTable(ctx, def, rows)
	if err != nil {
		return 0, mysqlErr(err)
	}
	return n, nil
}

// mysqlErr annotates err with the server error number and SQLSTATE.
func mysqlErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return fmt.Errorf("%w (mysql error %d, sqlstate %s)", err, me.Number, string(me.SQLState[:]))
	}
	return err
}
