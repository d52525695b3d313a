package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("etl", pflag.ContinueOnError)
	for name := range FlagKeys {
		fs.String(name, "", "")
	}
	fs.Bool("validate", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	p, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "csvsnapshot", p.Job)
	assert.Equal(t, "file", p.Source.Kind)
	assert.Equal(t, "csv", p.Parser.Kind)
	assert.Equal(t, ",", p.Parser.Options.String("comma", ""))
	assert.Equal(t, "sqlite", p.Storage.Kind)
	assert.Equal(t, "file:etl.db", p.Storage.DB.DSN)
	assert.Equal(t, "passengers", p.Storage.DB.Table)
	assert.Equal(t, "etl_process.log", p.Log.File)
	assert.Equal(t, "classic", p.Log.Format)
	assert.Equal(t, "none", p.Metrics.Backend)

	require.Len(t, p.Transform, 3)
	assert.Equal(t, "drop_columns", p.Transform[0].Kind)
	assert.Equal(t, []string{"Ticket", "Cabin"}, p.Transform[0].Options.StringSlice("columns"))
	assert.Equal(t, "require", p.Transform[1].Kind)
	assert.Equal(t, []string{"Age", "Embarked"}, p.Transform[1].Options.StringSlice("fields"))
	assert.Equal(t, "normalize_columns", p.Transform[2].Kind)

	assert.Empty(t, ValidatePipeline(p))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "etl.yaml", `
job: titanic
parser:
  options:
    comma: ";"
    na_values: ["?"]
transform:
  - kind: normalize_columns
storage:
  kind: postgres
  db:
    dsn: postgresql://etl@localhost/etl
    table: public.passengers
`)
	p, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "titanic", p.Job)
	assert.Equal(t, ";", p.Parser.Options.String("comma", ""))
	// Sibling keys from defaults survive a partial override.
	assert.Equal(t, "utf-8", p.Parser.Options.String("encoding", ""))
	assert.Equal(t, []string{"?"}, p.Parser.Options.StringSlice("na_values"))
	// Lists are replaced, not merged.
	require.Len(t, p.Transform, 1)
	assert.Equal(t, "normalize_columns", p.Transform[0].Kind)
	assert.Equal(t, "postgres", p.Storage.Kind)
	assert.Equal(t, "public.passengers", p.Storage.DB.Table)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "etl.json", `{"storage": {"kind": "duckdb", "db": {"dsn": "etl.duckdb"}}}`)
	p, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", p.Storage.Kind)
	assert.Equal(t, "etl.duckdb", p.Storage.DB.DSN)
	assert.Equal(t, "passengers", p.Storage.DB.Table)
}

func TestLoad_HTTPSource(t *testing.T) {
	path := writeFile(t, "etl.yaml", `
source:
  kind: http
  http:
    url: https://example.com/train.csv
    timeout: 45s
`)
	p, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "http", p.Source.Kind)
	assert.Equal(t, "https://example.com/train.csv", p.Source.HTTP.URL)
	assert.Equal(t, 45*time.Second, p.Source.HTTP.Timeout)
	assert.Equal(t, 3, p.Source.HTTP.MaxRetries)
	assert.Empty(t, ValidatePipeline(p))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "etl.yaml", "storage:\n  db:\n    table: from_file\n    dsn: file:file.db\n")
	t.Setenv("ETL_STORAGE__DB__TABLE", "from_env")
	t.Setenv("ETL_STORAGE__DB__DSN", "file:env.db")
	t.Setenv("ETL_LOG__LEVEL", "debug")

	p, err := Load(path, newFlags(t, "--table", "from_flag"))
	require.NoError(t, err)

	assert.Equal(t, "from_flag", p.Storage.DB.Table)
	assert.Equal(t, "file:env.db", p.Storage.DB.DSN)
	assert.Equal(t, "debug", p.Log.Level)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("ETL_STORAGE__KIND", "mysql")

	p, err := Load("", newFlags(t, "--validate"))
	require.NoError(t, err)
	assert.Equal(t, "mysql", p.Storage.Kind)
	assert.Equal(t, "passengers", p.Storage.DB.Table)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "storage.db.dsn", envKey("ETL_STORAGE__DB__DSN"))
	assert.Equal(t, "job", envKey("ETL_JOB"))
	assert.Equal(t, "metrics.pushgateway.url", envKey("ETL_METRICS__PUSHGATEWAY__URL"))
}

func TestOptions(t *testing.T) {
	o := Options{
		"s":   "x",
		"b":   true,
		"i":   3,
		"f":   4.0,
		"r":   "|",
		"l":   []any{"a", 1, "b"},
		"ls":  []string{"c"},
		"bad": 1,
	}
	assert.Equal(t, "x", o.String("s", "d"))
	assert.Equal(t, "d", o.String("bad", "d"))
	assert.True(t, o.Bool("b", false))
	assert.True(t, o.Bool("missing", true))
	assert.Equal(t, 3, o.Int("i", 0))
	assert.Equal(t, 4, o.Int("f", 0))
	assert.Equal(t, '|', o.Rune("r", ','))
	assert.Equal(t, ',', o.Rune("missing", ','))
	assert.Equal(t, []string{"a", "b"}, o.StringSlice("l"))
	assert.Equal(t, []string{"c"}, o.StringSlice("ls"))
	assert.Nil(t, o.StringSlice("s"))
	assert.True(t, o.Has("s"))
	assert.False(t, Options(nil).Has("s"))
}
