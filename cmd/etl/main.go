// Command etl loads one CSV file, local or fetched over HTTP, into a
// database table, replacing the table's previous contents.
//
//	etl [flags] <csv-file>
//	etl --source http [flags] <url>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	// register all backends with the storage factory.
	_ "csvsnapshot/internal/storage/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
