package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_AppendAndLookup(t *testing.T) {
	ds := New([]string{"PassengerId", "Age"})
	require.NoError(t, ds.Append([]any{int64(1), 22.0}))
	require.NoError(t, ds.Append([]any{int64(2), nil}))

	assert.Error(t, ds.Append([]any{int64(3)}), "short rows must be rejected")
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 1, ds.Index("Age"))
	assert.Equal(t, -1, ds.Index("age"), "lookups are case-sensitive")

	assert.Equal(t, 22.0, ds.Rows[0][ds.Index("Age")])
	assert.Equal(t, -1, ds.Index("Cabin"))
}

func TestDataset_CloneIsIndependent(t *testing.T) {
	ds := New([]string{"a"})
	require.NoError(t, ds.Append([]any{"x"}))

	cp := ds.Clone()
	cp.Columns[0] = "b"
	cp.Rows[0][0] = "y"

	assert.Equal(t, []string{"a"}, ds.Columns)
	assert.Equal(t, "x", ds.Rows[0][0])
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(math.NaN()))
	assert.False(t, IsMissing(""))
	assert.False(t, IsMissing(int64(0)))
}

func TestColumnKinds(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"id", "age", "survived", "name", "empty", "mixed"},
		Rows: [][]any{
			{int64(1), int64(22), true, "Braund", nil, int64(1)},
			{int64(2), 38.5, false, "Cumings", nil, "x"},
			{int64(3), nil, nil, nil, nil, nil},
		},
	}

	assert.Equal(t,
		[]Kind{KindInt, KindFloat, KindBool, KindText, KindNull, KindText},
		ds.ColumnKinds(),
	)
}

func TestConform(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"age", "label", "n"},
		Rows: [][]any{
			{int64(22), int64(7), math.NaN()},
			{38.5, "x", int64(4)},
		},
	}
	kinds := ds.ColumnKinds()
	rows := ds.Conform(kinds)

	assert.Equal(t, [][]any{
		{22.0, "7", nil},
		{38.5, "x", int64(4)},
	}, rows)

	// Conform never touches the receiver.
	assert.Equal(t, int64(22), ds.Rows[0][0])
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "42", Format(int64(42)))
	assert.Equal(t, "0.5", Format(0.5))
	assert.Equal(t, "True", Format(true))
	assert.Equal(t, "S", Format("S"))
}
