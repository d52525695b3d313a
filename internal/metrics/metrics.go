// Package metrics records operational metrics for pipeline runs behind a
// small backend interface. Concrete systems live in subpackages (prompush,
// datadog); the default backend discards everything, so recording is always
// safe.
package metrics

import "time"

// Metric names emitted by Recorder.
const (
	StageTotal           = "csvsnapshot_stage_total"
	StageDurationSeconds = "csvsnapshot_stage_duration_seconds"
	RowsTotal            = "csvsnapshot_rows_total"
)

// Row counter kinds.
const (
	RowsExtracted = "extracted"
	RowsDropped   = "dropped"
	RowsLoaded    = "loaded"
)

// Values of the stage "status" label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

// Nop returns a Backend that records nothing.
func Nop() Backend { return nopBackend{} }

// Recorder attaches a job name to every sample and forwards to a Backend.
type Recorder struct {
	backend Backend
	job     string
}

// NewRecorder returns a Recorder for job. A nil backend records nothing.
func NewRecorder(job string, b Backend) *Recorder {
	if b == nil {
		b = nopBackend{}
	}
	return &Recorder{backend: b, job: job}
}

// Stage records one execution of a pipeline stage: a counter labelled
// success or error, and its duration.
func (r *Recorder) Stage(stage string, err error, d time.Duration) {
	if r == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	lbls := Labels{"job": r.job, "stage": stage, "status": status}
	r.backend.IncCounter(StageTotal, 1, lbls)
	r.backend.ObserveHistogram(StageDurationSeconds, d.Seconds(), lbls)
}

// Rows increments the row counter for kind. Non-positive deltas are ignored.
func (r *Recorder) Rows(kind string, delta int) {
	if r == nil || delta <= 0 {
		return
	}
	r.backend.IncCounter(RowsTotal, float64(delta), Labels{"job": r.job, "kind": kind})
}

// Flush delegates to the backend.
func (r *Recorder) Flush() error {
	if r == nil {
		return nil
	}
	return r.backend.Flush()
}
