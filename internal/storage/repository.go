// Package storage contains the storage-agnostic repository contract and the
// factory that backend packages register with.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"csvsnapshot/internal/ddl"
)

// Repository writes whole tables.
type Repository interface {
	// ReplaceTable discards any existing table named def.FQN, creates it from
	// def and inserts rows. Rows are aligned to def.Columns. It returns the
	// number of rows written.
	ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any) (int64, error)

	// Close releases the underlying connection(s).
	Close()
}

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite" or "postgres".
	Kind string
	// DSN is passed to the backend driver as-is.
	DSN string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind. Backend packages
// call it from init.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s (registered: %s)",
			cfg.Kind, strings.Join(ListKinds(), ", "))
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds in sorted order. The slice is a copy.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
