package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"csvsnapshot/internal/config"
	"csvsnapshot/internal/datasource"
	"csvsnapshot/internal/datasource/file"
	"csvsnapshot/internal/datasource/httpds"
	"csvsnapshot/internal/extract"
	"csvsnapshot/internal/load"
	"csvsnapshot/internal/metrics"
	"csvsnapshot/internal/metrics/datadog"
	"csvsnapshot/internal/metrics/prompush"
	pcsv "csvsnapshot/internal/parser/csv"
	"csvsnapshot/internal/storage"
	"csvsnapshot/internal/transformer"
	"csvsnapshot/internal/transformer/builtin"
)

// Build wires a Driver from p. Every event logged by the driver and its
// stages carries a fresh run_id.
func Build(p config.Pipeline, logger *slog.Logger, rec *metrics.Recorder) (*Driver, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("run_id", uuid.NewString())

	opt, err := ParserOptions(p.Parser)
	if err != nil {
		return nil, err
	}
	chain, err := BuildChain(p.Transform)
	if err != nil {
		return nil, err
	}

	return &Driver{
		Extractor:   extract.New(opt, logger),
		Transformer: transformer.New(chain, logger),
		Loader:      load.New(storage.Config{Kind: p.Storage.Kind, DSN: p.Storage.DB.DSN}, logger),
		Table:       p.Storage.DB.Table,
		Logger:      logger,
		Metrics:     rec,
	}, nil
}

// OpenSource returns the configured input. path, when non-empty, overrides
// source.file.path or source.http.url.
func OpenSource(s config.Source, path string) (datasource.Source, error) {
	switch s.Kind {
	case "file", "":
		if path == "" {
			path = s.File.Path
		}
		return file.NewLocal(path), nil
	case "http":
		if path == "" {
			path = s.HTTP.URL
		}
		c := httpds.NewClient(httpds.Config{
			Timeout:            s.HTTP.Timeout,
			MaxRetries:         s.HTTP.MaxRetries,
			InsecureSkipVerify: s.HTTP.InsecureSkipVerify,
			Headers:            http.Header{"User-Agent": {"csvsnapshot"}},
		})
		return httpds.NewRemote(c, path), nil
	default:
		return nil, fmt.Errorf("unsupported source.kind=%s", s.Kind)
	}
}

// ParserOptions maps parser configuration onto CSV parser options.
func ParserOptions(p config.Parser) (pcsv.Options, error) {
	switch p.Kind {
	case "csv", "":
	default:
		return pcsv.Options{}, fmt.Errorf("unsupported parser.kind=%s", p.Kind)
	}
	opt := pcsv.Options{
		Comma:       p.Options.Rune("comma", ','),
		TrimSpace:   p.Options.Bool("trim_space", false),
		Encoding:    p.Options.String("encoding", ""),
		NAValues:    p.Options.StringSlice("na_values"),
		NoDefaultNA: p.Options.Bool("no_default_na", false),
		RawStrings:  p.Options.Bool("raw_strings", false),
	}
	if _, err := pcsv.LookupEncoding(opt.Encoding); err != nil {
		return pcsv.Options{}, fmt.Errorf("parser.options.encoding: %w", err)
	}
	return opt, nil
}

// BuildChain turns the configured transform list into an ordered chain.
func BuildChain(ts []config.Transform) (transformer.Chain, error) {
	c := transformer.Chain{}
	for i, t := range ts {
		switch t.Kind {
		case "drop_columns":
			c = append(c, builtin.DropColumns{Names: t.Options.StringSlice("columns")})
		case "require":
			c = append(c, builtin.Require{Fields: t.Options.StringSlice("fields")})
		case "normalize_columns":
			c = append(c, builtin.NormalizeColumns{})
		default:
			return nil, fmt.Errorf("transform[%d]: unsupported transformer.kind=%s", i, t.Kind)
		}
	}
	return c, nil
}

// NewMetrics returns a Recorder for the configured backend. The caller
// flushes it once the run is over.
func NewMetrics(p config.Pipeline) (*metrics.Recorder, error) {
	var (
		b   metrics.Backend
		err error
	)
	switch p.Metrics.Backend {
	case "", "none":
		b = metrics.Nop()
	case "pushgateway":
		b, err = prompush.NewBackend(p.Job, p.Metrics.Pushgateway.URL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       p.Metrics.Datadog.Addr,
			Namespace:  p.Metrics.Datadog.Namespace,
			GlobalTags: p.Metrics.Datadog.Tags,
		})
	default:
		err = fmt.Errorf("unsupported metrics.backend=%s", p.Metrics.Backend)
	}
	if err != nil {
		return nil, err
	}
	return metrics.NewRecorder(p.Job, b), nil
}
