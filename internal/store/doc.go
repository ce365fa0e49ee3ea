// Package store provides namespaced key-value persistence for showcase.
//
// # Architecture
//
// Every backend implements the KV interface:
//
//   - SQLiteStore: SQLite table kv_entries, using either modernc.org/sqlite
//     (driver "sqlite", pure Go) or github.com/mattn/go-sqlite3 (driver "sqlite3")
//   - TOMLStore: a single TOML file, one table per namespace
//   - MemoryStore: in-memory maps, used by tests and the "memory" backend
//
// Open selects a backend by name.
//
// # Namespaces
//
// A namespace is the equivalent of one browser's local storage. The settings
// package uses "settings:<profile id>" so each client profile keeps its own
// style preferences and Clear only touches that profile.
//
// # SQLite Configuration
//
// The SQLite store enables WAL mode:
//
//	PRAGMA journal_mode=WAL;
//
// Database file locations:
//
//   - Development: ~/.local/share/showcase/showcase.db
//   - Testing: :memory: (in-memory database, single connection)
//
// # Error Handling
//
// Get and Delete return ErrNotFound for missing keys. All other failures are
// wrapped with the namespace and key involved.
package store
