package all

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"csvsnapshot/internal/config"
	"csvsnapshot/internal/storage"
)

func TestAllBackendsRegistered(t *testing.T) {
	assert.Subset(t, storage.ListKinds(), []string{"duckdb", "mssql", "mysql", "postgres", "sqlite"})
	assert.ElementsMatch(t, config.StorageKinds, storage.ListKinds(),
		"config validation and the registry must agree on backend kinds")
}
