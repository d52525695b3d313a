package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// classicTime matches "2024-05-01 13:45:10,123".
const classicTime = "2006-01-02 15:04:05,000"

// ClassicHandler writes one line per record:
//
//	2024-05-01 13:45:10,123 - INFO - Data extracted successfully. rows=891
//
// Attributes follow the message as key=value pairs. Group names prefix keys
// with a dot.
type ClassicHandler struct {
	opts   slog.HandlerOptions
	prefix string // pre-rendered attrs from WithAttrs
	group  string

	mu *sync.Mutex
	w  io.Writer
}

// NewClassicHandler returns a ClassicHandler writing to w.
func NewClassicHandler(w io.Writer, opts *slog.HandlerOptions) *ClassicHandler {
	h := &ClassicHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled implements slog.Handler.
func (h *ClassicHandler) Enabled(_ context.Context, l slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}
	return l >= floor
}

// Handle implements slog.Handler.
func (h *ClassicHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}
	buf.WriteString(t.Format(classicTime))
	buf.WriteString(" - ")
	buf.WriteString(levelName(r.Level))
	buf.WriteString(" - ")
	buf.WriteString(r.Message)
	buf.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, h.group, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs implements slog.Handler.
func (h *ClassicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		appendAttr(&buf, h.group, a)
	}
	h2 := *h
	h2.prefix = buf.String()
	return &h2
}

// WithGroup implements slog.Handler.
func (h *ClassicHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = joinKey(h.group, name)
	return &h2
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func appendAttr(buf *bytes.Buffer, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		g := group
		if a.Key != "" {
			g = joinKey(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, g, ga)
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(joinKey(group, a.Key))
	buf.WriteByte('=')
	s := a.Value.String()
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		s = strconv.Quote(s)
	}
	buf.WriteString(s)
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
