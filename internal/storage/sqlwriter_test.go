package storage

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvsnapshot/internal/dataset"
	"csvsnapshot/internal/ddl"
)

type testDialect struct{}

func (testDialect) Name() string { return "test" }
func (testDialect) QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
func (testDialect) MapType(k dataset.Kind) string {
	if k == dataset.KindInt {
		return "INTEGER"
	}
	return "TEXT"
}

func passengersDef() ddl.TableDef {
	return ddl.TableDef{FQN: "passengers", Columns: []ddl.ColumnDef{
		{Name: "passengerid", Kind: dataset.KindInt, Nullable: true},
		{Name: "embarked", Kind: dataset.KindText, Nullable: true},
	}}
}

func newMock(t *testing.T) (*SQLWriter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &SQLWriter{DB: db, Dialect: testDialect{}}, mock
}

func TestSQLWriter_ReplaceTable_Insert(t *testing.T) {
	w, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "passengers"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE \"passengers\" (\n  \"passengerid\" INTEGER,\n  \"embarked\" TEXT\n)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO "passengers" ("passengerid", "embarked") VALUES (?, ?)`))
	prep.ExpectExec().WithArgs(int64(1), "S").WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(int64(2), nil).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	n, err := w.ReplaceTable(context.Background(), passengersDef(), [][]any{{int64(1), "S"}, {int64(2), nil}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLWriter_ReplaceTable_EmptyRowsStillReplaces(t *testing.T) {
	w, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := w.ReplaceTable(context.Background(), passengersDef(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLWriter_ReplaceTable_RollsBackOnInsertError(t *testing.T) {
	w, mock := newMock(t)
	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("INSERT INTO").ExpectExec().WillReturnError(boom)
	mock.ExpectRollback()

	_, err := w.ReplaceTable(context.Background(), passengersDef(), [][]any{{int64(1), "S"}})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "test: insert row 0")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLWriter_ReplaceTable_DropError(t *testing.T) {
	w, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	_, err := w.ReplaceTable(context.Background(), passengersDef(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test: drop table: permission denied")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLWriter_ReplaceTable_RowWidthMismatch(t *testing.T) {
	w, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("INSERT INTO")
	mock.ExpectRollback()

	_, err := w.ReplaceTable(context.Background(), passengersDef(), [][]any{{int64(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0 has 1 values, want 2")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLWriter_ReplaceTable_Bulk(t *testing.T) {
	w, mock := newMock(t)
	w.BulkStmt = func(def ddl.TableDef) string { return "BULK " + def.FQN }

	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare("BULK passengers")
	prep.ExpectExec().WithArgs(int64(1), "S").WillReturnResult(sqlmock.NewResult(0, 0))
	prep.ExpectExec().WithArgs(int64(2), "C").WillReturnResult(sqlmock.NewResult(0, 0))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := w.ReplaceTable(context.Background(), passengersDef(), [][]any{{int64(1), "S"}, {int64(2), "C"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
