package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"csvsnapshot/internal/logging"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: ETL_STORAGE__DB__DSN sets storage.db.dsn.
const EnvPrefix = "ETL_"

// FlagKeys maps command-line flag names to configuration keys. Flags not
// listed here are not configuration.
var FlagKeys = map[string]string{
	"job":             "job",
	"source":          "source.kind",
	"storage":         "storage.kind",
	"dsn":             "storage.db.dsn",
	"table":           "storage.db.table",
	"delimiter":       "parser.options.comma",
	"encoding":        "parser.options.encoding",
	"log-file":        "log.file",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"metrics-backend": "metrics.backend",
}

// Defaults returns the built-in configuration as a flat key map.
func Defaults() map[string]any {
	return map[string]any{
		"job":                     "csvsnapshot",
		"source.kind":             "file",
		"source.http.max_retries": 3,
		"parser.kind":             "csv",
		"parser.options.comma":    ",",
		"parser.options.encoding": "utf-8",
		"transform": []any{
			map[string]any{"kind": "drop_columns", "options": map[string]any{"columns": []any{"Ticket", "Cabin"}}},
			map[string]any{"kind": "require", "options": map[string]any{"fields": []any{"Age", "Embarked"}}},
			map[string]any{"kind": "normalize_columns"},
		},
		"storage.kind":     "sqlite",
		"storage.db.dsn":   "file:etl.db",
		"storage.db.table": "passengers",
		"log.file":         logging.DefaultFile,
		"log.level":        "info",
		"log.format":       logging.FormatClassic,
		"metrics.backend":  "none",
	}
}

// Load builds a Pipeline. Precedence, highest first: flags that were set,
// ETL_* environment variables, the config file (if cfgFile is non-empty),
// defaults. A list such as transform is replaced wholesale by a higher layer,
// never merged element by element.
func Load(cfgFile string, flags *pflag.FlagSet) (Pipeline, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return Pipeline{}, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return Pipeline{}, fmt.Errorf("config file: %w", err)
		}
		// JSON is valid YAML, so one parser covers both.
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return Pipeline{}, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Pipeline{}, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := FlagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Pipeline{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var p Pipeline
	if err := k.Unmarshal("", &p); err != nil {
		return Pipeline{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return p, nil
}

// envKey turns ETL_STORAGE__DB__DSN into storage.db.dsn.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
