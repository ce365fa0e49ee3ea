package store

import "fmt"

// Open returns a KV for the named backend. path is ignored by the memory backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteStore(path)
	case BackendSQLite3:
		return NewSQLiteStoreWithDriver(BackendSQLite3, path)
	case BackendTOML:
		return NewTOMLStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
