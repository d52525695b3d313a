// Package logging builds the process event log.
//
// The log is an append-only, timestamped, leveled stream. It is created once
// in main and handed to every stage explicitly.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Formats understood by New.
const (
	FormatClassic = "classic"
	FormatText    = "text"
	FormatJSON    = "json"
)

// DefaultFile is where events go when Config.File is empty.
const DefaultFile = "etl_process.log"

// Config selects the destination, format and minimum level of the log.
type Config struct {
	File   string `koanf:"file" json:"file" yaml:"file"`
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// ValidFormat reports whether f names a supported format. Empty is valid.
func ValidFormat(f string) bool {
	switch f {
	case "", FormatClassic, FormatText, FormatJSON:
		return true
	}
	return false
}

// New opens the configured destination and returns a logger writing to it.
// The returned close function releases the file; it is a no-op for stderr.
func New(cfg Config) (*slog.Logger, func() error, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if !ValidFormat(cfg.Format) {
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }

	path := cfg.File
	if path == "" {
		path = DefaultFile
	}
	if path != "-" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		w = f
		closeFn = f.Close
	}

	return slog.New(NewHandler(w, cfg.Format, lvl)), closeFn, nil
}

// NewHandler returns the slog.Handler for format writing to w.
func NewHandler(w io.Writer, format string, lvl slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatText:
		return slog.NewTextHandler(w, opts)
	default:
		return NewClassicHandler(w, opts)
	}
}
