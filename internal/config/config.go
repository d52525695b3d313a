// Package config defines the pipeline configuration model and loads it from
// layered sources (defaults, a YAML or JSON file, ETL_* environment variables
// and command-line flags).
//
// Example file:
//
//	job: titanic
//	parser:
//	  kind: csv
//	  options: { comma: ",", encoding: utf-8 }
//	transform:
//	  - kind: drop_columns
//	    options: { columns: [Ticket, Cabin] }
//	  - kind: require
//	    options: { fields: [Age, Embarked] }
//	  - kind: normalize_columns
//	storage:
//	  kind: postgres
//	  db: { dsn: "postgresql://etl@localhost/etl", table: public.passengers }
package config

import (
	"time"

	"csvsnapshot/internal/logging"
)

// Pipeline is the top-level configuration of one ETL run.
type Pipeline struct {
	// Job names the run in metrics.
	Job string `koanf:"job" json:"job" yaml:"job"`

	// Source describes where input data comes from. The path is normally
	// supplied on the command line.
	Source Source `koanf:"source" json:"source" yaml:"source"`

	// Parser configures how raw bytes become a dataset.
	Parser Parser `koanf:"parser" json:"parser" yaml:"parser"`

	// Transform lists the ordered cleaning steps. Each step has a kind and an
	// options bag whose shape is defined by the step.
	Transform []Transform `koanf:"transform" json:"transform" yaml:"transform"`

	// Storage describes the destination database and table.
	Storage Storage `koanf:"storage" json:"storage" yaml:"storage"`

	Log     logging.Config `koanf:"log" json:"log" yaml:"log"`
	Metrics Metrics        `koanf:"metrics" json:"metrics" yaml:"metrics"`
}

// Source identifies the data source.
type Source struct {
	// Kind selects the source implementation: "file" or "http".
	Kind string     `koanf:"kind" json:"kind" yaml:"kind"`
	File SourceFile `koanf:"file" json:"file" yaml:"file"`
	HTTP SourceHTTP `koanf:"http" json:"http" yaml:"http"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `koanf:"path" json:"path" yaml:"path"`
}

// SourceHTTP holds configuration for the "http" source kind. The body of a
// single GET is parsed as the input file.
type SourceHTTP struct {
	URL                string        `koanf:"url" json:"url" yaml:"url"`
	Timeout            time.Duration `koanf:"timeout" json:"timeout" yaml:"timeout"`
	MaxRetries         int           `koanf:"max_retries" json:"max_retries" yaml:"max_retries"`
	InsecureSkipVerify bool          `koanf:"insecure_skip_verify" json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// Parser selects how to parse the raw source.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `koanf:"kind" json:"kind" yaml:"kind"`

	// Options for "csv": comma (string), trim_space (bool), encoding
	// (string), na_values ([]string), no_default_na (bool), raw_strings (bool).
	Options Options `koanf:"options" json:"options" yaml:"options"`
}

// Transform defines a single transformation step.
type Transform struct {
	// Kind is one of "drop_columns", "require", "normalize_columns".
	Kind    string  `koanf:"kind" json:"kind" yaml:"kind"`
	Options Options `koanf:"options" json:"options" yaml:"options"`
}

// Storage selects the sink used to persist the dataset.
type Storage struct {
	// Kind is a registered storage backend: sqlite, postgres, mssql, mysql
	// or duckdb.
	Kind string   `koanf:"kind" json:"kind" yaml:"kind"`
	DB   DBConfig `koanf:"db" json:"db" yaml:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is handed to the backend driver unchanged.
	DSN string `koanf:"dsn" json:"dsn" yaml:"dsn"`

	// Table is the destination table, optionally schema-qualified
	// ("public.passengers"). It is replaced on every run.
	Table string `koanf:"table" json:"table" yaml:"table"`
}

// Metrics selects an optional metrics backend.
type Metrics struct {
	// Backend is "none" (default), "pushgateway" or "datadog".
	Backend     string      `koanf:"backend" json:"backend" yaml:"backend"`
	Pushgateway Pushgateway `koanf:"pushgateway" json:"pushgateway" yaml:"pushgateway"`
	Datadog     Datadog     `koanf:"datadog" json:"datadog" yaml:"datadog"`
}

// Pushgateway configures the Prometheus Pushgateway backend.
type Pushgateway struct {
	URL string `koanf:"url" json:"url" yaml:"url"`
}

// Datadog configures the DogStatsD backend.
type Datadog struct {
	Addr      string   `koanf:"addr" json:"addr" yaml:"addr"`
	Namespace string   `koanf:"namespace" json:"namespace" yaml:"namespace"`
	Tags      []string `koanf:"tags" json:"tags" yaml:"tags"`
}

// Options is a small helper to fetch typed values from decoded option maps.
// It performs only minimal coercion and returns the provided default when a
// key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. YAML yields int, JSON yields
// float64; both are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int64:
			return int(n)
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringSlice returns a []string for key when the value is a list of
// strings. Returns nil when the key is missing or the value is not a list.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// Has reports whether key is present.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}
