package datadog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvsnapshot/internal/metrics"
)

type sample struct {
	kind  string
	name  string
	value float64
	tags  []string
}

type fakeClient struct {
	samples []sample
	closed  bool
}

func (f *fakeClient) Count(name string, value int64, tags []string, _ float64) error {
	f.samples = append(f.samples, sample{"count", name, float64(value), tags})
	return nil
}

func (f *fakeClient) Histogram(name string, value float64, tags []string, _ float64) error {
	f.samples = append(f.samples, sample{"histogram", name, value, tags})
	return nil
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func TestNewBackend(t *testing.T) {
	_, err := NewBackend(Config{})
	require.Error(t, err)

	b, err := NewBackend(Config{Addr: "127.0.0.1:8125", Namespace: "etl.", GlobalTags: []string{"env:test"}})
	require.NoError(t, err)
	require.NoError(t, b.Flush())
}

func TestBackend_ForwardsSamples(t *testing.T) {
	fc := &fakeClient{}
	b := &Backend{client: fc}

	r := metrics.NewRecorder("titanic", b)
	r.Stage("transform", nil, 0)
	r.Rows(metrics.RowsDropped, 1)
	require.NoError(t, r.Flush())

	require.Len(t, fc.samples, 3)
	assert.Equal(t, sample{"count", metrics.StageTotal, 1,
		[]string{"job:titanic", "stage:transform", "status:success"}}, fc.samples[0])
	assert.Equal(t, "histogram", fc.samples[1].kind)
	assert.Equal(t, sample{"count", metrics.RowsTotal, 1,
		[]string{"job:titanic", "kind:dropped"}}, fc.samples[2])
	assert.True(t, fc.closed)
}

func TestLabelsToTags(t *testing.T) {
	assert.Nil(t, labelsToTags(nil))
	assert.Equal(t, []string{"a:1", "b:2"}, labelsToTags(metrics.Labels{"b": "2", "a": "1"}))
}
