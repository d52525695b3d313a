// Package all wires all built-in storage backends into the storage factory.
//
// Importing it for side effects runs each backend's init, which registers
// these storage kinds:
//
//   - "sqlite"   (csvsnapshot/internal/storage/sqlite)
//   - "postgres" (csvsnapshot/internal/storage/postgres)
//   - "mssql"    (csvsnapshot/internal/storage/mssql)
//   - "mysql"    (csvsnapshot/internal/storage/mysql)
//   - "duckdb"   (csvsnapshot/internal/storage/duckdb)
//
// A binary that needs a subset can import the backend packages directly
// instead.
package all

import (
	_ "csvsnapshot/internal/storage/duckdb"
	_ "csvsnapshot/internal/storage/mssql"
	_ "csvsnapshot/internal/storage/mysql"
	_ "csvsnapshot/internal/storage/postgres"
	_ "csvsnapshot/internal/storage/sqlite"
)
