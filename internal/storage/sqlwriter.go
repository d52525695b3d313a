package storage

import (
	"context"
	"database/sql"
	"fmt"

	"csvsnapshot/internal/ddl"
)

// SQLWriter implements table replacement on top of database/sql. Backends
// supply the dialect and either a placeholder style (one prepared INSERT per
// row) or a bulk statement (driver-level bulk copy).
//
// The drop, create and insert statements run in one transaction. On engines
// where DDL commits implicitly (MySQL) the replace is not atomic.
type SQLWriter struct {
	DB      *sql.DB
	Dialect ddl.Dialect

	// Placeholder renders the i-th (1-based) bind parameter. Nil means "?".
	Placeholder func(i int) string

	// BulkStmt, when set, returns the statement to prepare for a bulk copy.
	// Rows are sent with one Exec each and flushed by a final Exec with no
	// arguments, as go-mssqldb's CopyIn expects.
	BulkStmt func(def ddl.TableDef) string
}

// ReplaceTable implements Repository.ReplaceTable.
func (w *SQLWriter) ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any) (int64, error) {
	name := w.Dialect.Name()

	drop, err := ddl.BuildDropTableSQL(def.FQN, w.Dialect)
	if err != nil {
		return 0, err
	}
	create, err := ddl.BuildCreateTableSQL(def, w.Dialect)
	if err != nil {
		return 0, err
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin tx: %w", name, err)
	}
	rollback := func() { _ = tx.Rollback() }

	if _, err := tx.ExecContext(ctx, drop); err != nil {
		rollback()
		return 0, fmt.Errorf("%s: drop table: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, create); err != nil {
		rollback()
		return 0, fmt.Errorf("%s: create table: %w", name, err)
	}

	var n int64
	if len(rows) > 0 {
		if w.BulkStmt != nil {
			n, err = w.bulk(ctx, tx, def, rows)
		} else {
			n, err = w.insert(ctx, tx, def, rows)
		}
		if err != nil {
			rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", name, err)
	}
	return n, nil
}

func (w *SQLWriter) insert(ctx context.Context, tx *sql.Tx, def ddl.TableDef, rows [][]any) (int64, error) {
	name := w.Dialect.Name()
	ph := w.Placeholder
	if ph == nil {
		ph = func(int) string { return "?" }
	}

	stmt, err := tx.PrepareContext(ctx, ddl.BuildInsertSQL(def, w.Dialect, ph))
	if err != nil {
		return 0, fmt.Errorf("%s: prepare insert: %w", name, err)
	}
	defer stmt.Close()

	var inserted int64
	for i, row := range rows {
		if len(row) != len(def.Columns) {
			return inserted, fmt.Errorf("%s: row %d has %d values, want %d", name, i, len(row), len(def.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return inserted, fmt.Errorf("%s: insert row %d: %w", name, i, err)
		}
		inserted++
	}
	return inserted, nil
}

func (w *SQLWriter) bulk(ctx context.Context, tx *sql.Tx, def ddl.TableDef, rows [][]any) (int64, error) {
	name := w.Dialect.Name()

	stmt, err := tx.PrepareContext(ctx, w.BulkStmt(def))
	if err != nil {
		return 0, fmt.Errorf("%s: prepare bulk: %w", name, err)
	}
	for i := range rows {
		if _, err := stmt.ExecContext(ctx, rows[i]...); err != nil {
			_ = stmt.Close()
			return 0, fmt.Errorf("%s: bulk row %d: %w", name, i, err)
		}
	}
	res, err := stmt.ExecContext(ctx)
	if cerr := stmt.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("%s: bulk finalize: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", name, err)
	}
	return n, nil
}
