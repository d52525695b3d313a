package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"csvsnapshot/internal/dataset"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind dataset.Kind
		want string
	}{
		{dataset.KindInt, "BIGINT"},
		{dataset.KindFloat, "DOUBLE"},
		{dataset.KindBool, "BOOLEAN"},
		{dataset.KindText, "VARCHAR"},
		{dataset.KindNull, "VARCHAR"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MapType(tc.kind), tc.kind.String())
	}
}
