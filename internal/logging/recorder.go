package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Event is one recorded log record.
type Event struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that keeps every record in memory. Tests use it
// to assert which events a stage emitted and in what order.
type Recorder struct {
	mu     *sync.Mutex
	events *[]Event
	attrs  []slog.Attr
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, events: &[]Event{}}
}

// Logger returns a logger backed by r.
func (r *Recorder) Logger() *slog.Logger { return slog.New(r) }

// Enabled implements slog.Handler. Every level is recorded.
func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	ev := Event{Level: rec.Level, Message: rec.Message, Attrs: map[string]any{}}
	for _, a := range r.attrs {
		ev.Attrs[a.Key] = a.Value.Resolve().Any()
	}
	rec.Attrs(func(a slog.Attr) bool {
		ev.Attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})
	r.mu.Lock()
	*r.events = append(*r.events, ev)
	r.mu.Unlock()
	return nil
}

// WithAttrs implements slog.Handler.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	r2 := *r
	r2.attrs = append(append([]slog.Attr(nil), r.attrs...), attrs...)
	return &r2
}

// WithGroup implements slog.Handler. Groups are flattened.
func (r *Recorder) WithGroup(string) slog.Handler { return r }

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), *r.events...)
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	evs := r.Events()
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Message
	}
	return out
}

// Count returns how many records carried msg.
func (r *Recorder) Count(msg string) int {
	n := 0
	for _, e := range r.Events() {
		if e.Message == msg {
			n++
		}
	}
	return n
}

// AtLevel returns the records logged at exactly lvl.
func (r *Recorder) AtLevel(lvl slog.Level) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Level == lvl {
			out = append(out, e)
		}
	}
	return out
}
