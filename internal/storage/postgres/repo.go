// Package postgres implements a Postgres repository using pgx v5. A table is
// replaced in one transaction: DROP IF EXISTS, CREATE, then COPY of every row.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"csvsnapshot/internal/ddl"
	pgddl "csvsnapshot/internal/storage/postgres/ddl"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// pool is the subset of *pgxpool.Pool the repository uses.
type pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
// The pool is pinged once so an unreachable server fails here rather than on
// the first write.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	p, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: p, cfg: cfg}, p.Close, nil
}

// ReplaceTable implements storage.Repository.ReplaceTable.
func (r *Repository) ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any) (int64, error) {
	drop, err := ddl.BuildDropTableSQL(def.FQN, pgddl.Dialect)
	if err != nil {
		return 0, err
	}
	create, err := pgddl.BuildCreateTableSQL(def)
	if err != nil {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin tx: %w", err)
	}
	// No-op once the transaction has committed.
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, drop); err != nil {
		return 0, pgErr("drop table", err)
	}
	if _, err := tx.Exec(ctx, create); err != nil {
		return 0, pgErr("create table", err)
	}

	var n int64
	if len(rows) > 0 {
		n, err = tx.CopyFrom(ctx, splitFQN(def.FQN), def.ColumnNames(), pgx.CopyFromRows(rows))
		if err != nil {
			return 0, pgErr("copy", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return n, nil
}

// pgErr adds the server-side detail and SQLSTATE, when present, to err.
func pgErr(op string, err error) error {
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Detail != "" {
		return fmt.Errorf("postgres: %s: %s (%s): %w", op, pe.Detail, pe.SQLState(), err)
	}
	return fmt.Errorf("postgres: %s: %w", op, err)
}

// splitFQN converts "schema.table" into a pgx.Identifier {"schema","table"}.
// If no dot is present, returns {"table"}.
func splitFQN(fqn string) pgx.Identifier {
	parts := strings.Split(fqn, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			id = append(id, p)
		}
	}
	return id
}
