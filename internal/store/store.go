// ABOUTME: KV interface and entry type for showcase persistence
// ABOUTME: Namespaced string key-value storage shared by all backends

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested key does not exist
var ErrNotFound = errors.New("not found")

// Entry is a single stored value
type Entry struct {
	Namespace string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// KV is a string key-value store partitioned into namespaces.
// A namespace plays the role of one browser's local storage.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, namespace, key string) (string, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, namespace, key, value string) error

	// Delete removes key. Deleting a missing key returns ErrNotFound.
	Delete(ctx context.Context, namespace, key string) error

	// Clear removes every key in namespace. Clearing an empty namespace is not an error.
	Clear(ctx context.Context, namespace string) error

	// List returns all entries in namespace ordered by key.
	List(ctx context.Context, namespace string) ([]Entry, error)

	Close() error
}

// Backend names accepted by Open
const (
	BackendSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
	BackendSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3, cgo
	BackendTOML    = "toml"
	BackendMemory  = "memory"
)
