package config

import (
	"fmt"
	"net/url"
	"strings"

	"csvsnapshot/internal/logging"
	pcsv "csvsnapshot/internal/parser/csv"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config, e.g. "storage.db.table" or "transform[1].options.fields".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is error-severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// TransformKinds lists the transform kinds the pipeline can build.
var TransformKinds = []string{"drop_columns", "require", "normalize_columns"}

// StorageKinds lists the built-in storage backends.
var StorageKinds = []string{"sqlite", "postgres", "mssql", "mysql", "duckdb"}

// ValidatePipeline performs static checks over p and returns every finding.
// It does not mutate p.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels metrics",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTransforms(p.Transform)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateLog(p.Log)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue
	switch s.Kind {
	case "file":
	case "http":
		if s.HTTP.URL != "" {
			u, err := url.Parse(s.HTTP.URL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     "source.http.url",
					Message:  fmt.Sprintf("url must be an absolute http(s) URL, got %q", s.HTTP.URL),
				})
			}
		}
		if s.HTTP.MaxRetries < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.http.max_retries",
				Message:  "max_retries must not be negative",
			})
		}
		if s.HTTP.InsecureSkipVerify {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "source.http.insecure_skip_verify",
				Message:  "TLS certificate verification is disabled",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unsupported source kind %q; use \"file\" or \"http\"", s.Kind),
		})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	if p.Kind != "csv" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unsupported parser kind %q; only \"csv\" is available", p.Kind),
		})
	}

	if comma := p.Options.String("comma", ","); len([]rune(comma)) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("comma must be a single character, got %q", comma),
		})
	} else if r := []rune(comma)[0]; r == '"' || r == '\r' || r == '\n' {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("comma %q cannot be a quote or line break", comma),
		})
	}

	if enc := p.Options.String("encoding", ""); enc != "" {
		if _, err := pcsv.LookupEncoding(enc); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.encoding",
				Message:  err.Error(),
			})
		}
	}
	return issues
}

func validateTransforms(ts []Transform) []Issue {
	var issues []Issue

	if len(ts) == 0 {
		return append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "transform",
			Message:  "no transforms configured; the parsed file will be loaded as-is",
		})
	}

	for i, t := range ts {
		path := fmt.Sprintf("transform[%d]", i)
		switch t.Kind {
		case "drop_columns":
			if len(t.Options.StringSlice("columns")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     path + ".options.columns",
					Message:  "drop_columns has no columns; it does nothing",
				})
			}
		case "require":
			if len(t.Options.StringSlice("fields")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     path + ".options.fields",
					Message:  "require has no fields; it keeps every row",
				})
			}
		case "normalize_columns":
		case "":
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  "transform kind must not be empty",
			})
		default:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  fmt.Sprintf("unknown transform kind %q; want one of %s", t.Kind, strings.Join(TransformKinds, ", ")),
			})
		}
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
	} else if !contains(StorageKinds, s.Kind) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		// An empty DuckDB DSN opens an in-memory database.
		sev := SeverityError
		msg := "storage.db.dsn must not be empty"
		if s.Kind == "duckdb" {
			sev = SeverityWarning
			msg = "empty duckdb dsn opens an in-memory database; the table is lost on exit"
		}
		issues = append(issues, Issue{Severity: sev, Path: "storage.db.dsn", Message: msg})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "storage.db.table must not be empty",
		})
	} else if schema, _, ok := strings.Cut(s.DB.Table, "."); ok && s.Kind == "sqlite" &&
		schema != "main" && schema != "temp" {
		// A dot always separates schema from table; in SQLite the schema is
		// an attached database name.
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.db.table",
			Message: fmt.Sprintf("table %q is read as schema %q; sqlite resolves it only if that database is attached",
				s.DB.Table, schema),
		})
	}
	return issues
}

func validateLog(l logging.Config) []Issue {
	var issues []Issue
	if _, err := logging.ParseLevel(l.Level); err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Path: "log.level", Message: err.Error()})
	}
	if !logging.ValidFormat(l.Format) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "log.format",
			Message:  fmt.Sprintf("unknown log format %q; want classic, text or json", l.Format),
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	switch m.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(m.Pushgateway.URL) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.pushgateway.url",
				Message:  "pushgateway backend requires a url",
			}}
		}
	case "datadog":
		if strings.TrimSpace(m.Datadog.Addr) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.datadog.addr",
				Message:  "datadog backend requires an addr",
			}}
		}
	default:
		return []Issue{{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; want none, pushgateway or datadog", m.Backend),
		}}
	}
	return nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
