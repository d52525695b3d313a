package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"csvsnapshot/internal/config"
	"csvsnapshot/internal/etlerr"
	"csvsnapshot/internal/logging"
	"csvsnapshot/internal/pipeline"
	"csvsnapshot/internal/storage"
)

// exitError carries a process exit code out of the command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var errNoInput = errors.New("Please provide the path to the CSV file.")

// run executes the command line args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile  string
		validate bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "etl [flags] <csv-file | url>",
		Short: "Load a CSV file into a database table",
		Long: `etl reads a comma-separated file with a header row, drops the Ticket and
Cabin columns and every row missing Age or Embarked, lower-cases the column
names, and replaces the destination table with the result.

Configuration is layered: built-in defaults, then --config (YAML or JSON),
then ETL_* environment variables (ETL_STORAGE__DB__DSN sets storage.db.dsn),
then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			issues := config.ValidatePipeline(p)
			for _, iss := range issues {
				fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
			}
			if config.HasErrors(issues) {
				return &exitError{code: 1, err: errors.New("configuration is invalid")}
			}
			if validate {
				fmt.Fprintln(stdout, "Configuration is valid.")
				return nil
			}

			var path string
			switch {
			case len(args) > 0:
				path = args[0]
			case p.Source.Kind == "http" && p.Source.HTTP.URL != "":
			default:
				fmt.Fprintln(stdout, errNoInput)
				fmt.Fprint(stderr, cmd.UsageString())
				return &exitError{code: 1, err: errNoInput}
			}
			if p.Source.Kind == "file" {
				if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
					fmt.Fprintf(stdout, "File not found: %s\n", path)
					return nil
				}
			}

			if verbose {
				fmt.Fprintf(stderr, "pipeline: job=%s storage=%s table=%s log=%s\n",
					p.Job, p.Storage.Kind, p.Storage.DB.Table, p.Log.File)
			}
			return execute(cmd.Context(), p, path, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "pipeline config file (YAML or JSON)")
	f.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	f.BoolVarP(&verbose, "verbose", "v", false, "print the resolved pipeline to stderr")
	f.String("job", "", "job name used to label metrics")
	f.String("source", "", `input kind: "file" or "http" (the argument is then a URL)`)
	f.String("storage", "", "storage backend: "+strings.Join(storage.ListKinds(), ", "))
	f.String("dsn", "", "destination connection string")
	f.String("table", "", `destination table, replaced on every run; a dot separates schema and table ("public.passengers")`)
	f.String("delimiter", "", "field delimiter")
	f.String("encoding", "", "input encoding, e.g. utf-8, latin-1, windows-1250")
	f.String("log-file", "", `event log path ("-" for stderr)`)
	f.String("log-level", "", "debug, info, warn or error")
	f.String("log-format", "", "classic, text or json")
	f.String("metrics-backend", "", "none, pushgateway or datadog")

	return cmd
}

// execute runs the pipeline and maps its outcome to an exit status. Empty or
// unreadable input is reported and treated as a normal exit.
func execute(ctx context.Context, p config.Pipeline, path string, stdout, stderr io.Writer) error {
	logger, closeLog, err := logging.New(p.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	rec, err := pipeline.NewMetrics(p)
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Flush(); err != nil {
			fmt.Fprintf(stderr, "metrics: flush error: %v\n", err)
		}
	}()

	d, err := pipeline.Build(p, logger, rec)
	if err != nil {
		return err
	}
	src, err := pipeline.OpenSource(p.Source, path)
	if err != nil {
		return err
	}

	err = d.Run(ctx, src)
	switch {
	case err == nil:
		fmt.Fprintln(stdout, "ETL process completed successfully.")
		return nil
	case etlerr.IsInputError(err):
		fmt.Fprintln(stdout, err)
		return nil
	default:
		return err
	}
}
