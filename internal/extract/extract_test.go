package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvsnapshot/internal/datasource/file"
	"csvsnapshot/internal/dataset"
	"csvsnapshot/internal/etlerr"
	"csvsnapshot/internal/logging"
	"csvsnapshot/internal/parser"
	pcsv "csvsnapshot/internal/parser/csv"
)

func writeCSV(t *testing.T, content string) *file.Local {
	t.Helper()
	p := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return file.NewLocal(p)
}

type panicParser struct{}

func (panicParser) Parse(io.Reader) (*dataset.Dataset, error) {
	panic("parser must not run for zero-length input")
}

func TestExtract_Success(t *testing.T) {
	rec := logging.NewRecorder()
	ex := New(pcsv.Options{}, rec.Logger())

	ds, err := ex.Extract(context.Background(), writeCSV(t, "PassengerId,Age,Embarked\n1,22,S\n2,,C\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"PassengerId", "Age", "Embarked"}, ds.Columns)

	evs := rec.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, slog.LevelInfo, evs[0].Level)
	assert.Equal(t, "Data extracted successfully.", evs[0].Message)
	assert.Equal(t, int64(2), evs[0].Attrs["rows"])
	assert.Len(t, evs[0].Attrs["xxh3"], 32)
}

func TestExtract_ZeroLengthFailsBeforeParsing(t *testing.T) {
	rec := logging.NewRecorder()
	ex := New(pcsv.Options{}, rec.Logger())
	ex.newParser = func(pcsv.Options) parser.Parser { return panicParser{} }

	_, err := ex.Extract(context.Background(), writeCSV(t, ""))
	require.ErrorIs(t, err, etlerr.ErrEmptyInput)
	assert.Equal(t, "The file is empty. Unable to extract data.", err.Error())
	assert.Empty(t, rec.Events())
}

func TestExtract_Failures(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		opt      pcsv.Options
		wantKind error
		wantMsg  string
	}{
		{"header_only", "PassengerId,Age,Embarked\n", pcsv.Options{}, etlerr.ErrEmptyInput, ""},
		{"blank_lines", "\n\n", pcsv.Options{}, etlerr.ErrEmptyInput, ""},
		{"header_then_whitespace_line", "PassengerId,Age,Embarked\n   \n", pcsv.Options{}, etlerr.ErrEmptyInput, ""},
		{"whitespace_only", "   \n  \n", pcsv.Options{}, etlerr.ErrEmptyInput, ""},
		{"wide_row", "a,b\n1,2,3\n", pcsv.Options{}, etlerr.ErrExtractFailed, "expected 2 fields in line 2, saw 3"},
		{"bad_quote", "a,b\n\"1,2\n", pcsv.Options{}, etlerr.ErrExtractFailed, "An error occurred while reading the file: "},
		{"bad_utf8", "a\n\xff\n", pcsv.Options{}, etlerr.ErrExtractFailed, "invalid utf-8"},
		{"bad_encoding_name", "a\n1\n", pcsv.Options{Encoding: "nope"}, etlerr.ErrExtractFailed, "unknown encoding"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := logging.NewRecorder()
			_, err := New(c.opt, rec.Logger()).Extract(context.Background(), writeCSV(t, c.content))

			require.ErrorIs(t, err, c.wantKind)
			if c.wantMsg != "" {
				assert.Contains(t, err.Error(), c.wantMsg)
			}
			assert.Empty(t, rec.Events(), "no events on failure")
		})
	}
}

func TestExtract_MissingFileIsExtractFailed(t *testing.T) {
	src := file.NewLocal(filepath.Join(t.TempDir(), "gone.csv"))
	_, err := New(pcsv.Options{}, nil).Extract(context.Background(), src)
	require.ErrorIs(t, err, etlerr.ErrExtractFailed)
	require.ErrorIs(t, err, os.ErrNotExist)
}

type blockingSource struct{}

func (blockingSource) Name() string { return "remote" }
func (blockingSource) Size(ctx context.Context) (int64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}
func (blockingSource) Open(context.Context) (io.ReadCloser, error) {
	panic("Open must not be reached")
}

func TestExtract_CanceledWhileSizing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(pcsv.Options{}, nil).Extract(ctx, blockingSource{})
	require.ErrorIs(t, err, etlerr.ErrExtractFailed)
	require.ErrorIs(t, err, context.Canceled)
}

type erroringSource struct{ size int64 }

func (s erroringSource) Size(context.Context) (int64, error) { return s.size, nil }
func (s erroringSource) Name() string         { return "broken" }
func (s erroringSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(io.MultiReader(strings.NewReader("a,b\n1,2\n"), errReader{})), nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestExtract_ReadErrorIsExtractFailed(t *testing.T) {
	_, err := New(pcsv.Options{}, nil).Extract(context.Background(), erroringSource{size: 10})
	require.ErrorIs(t, err, etlerr.ErrExtractFailed)
	assert.Contains(t, err.Error(), "disk on fire")
}
