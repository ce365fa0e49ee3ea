// ABOUTME: File-backed KV implementation using a single TOML document
// ABOUTME: Each namespace is a table; every write rewrites the file atomically

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// TOMLStore implements KV on top of a TOML file:
//
//	["settings:6f1c..."]
//	primaryColor = "#ff0000"
//	theme = "dark"
type TOMLStore struct {
	path   string
	mu     sync.RWMutex
	data   map[string]map[string]string
	logger *slog.Logger
}

// NewTOMLStore opens (or lazily creates) the TOML file at path.
func NewTOMLStore(path string) (*TOMLStore, error) {
	s := &TOMLStore{
		path:   path,
		data:   make(map[string]map[string]string),
		logger: slog.Default().With("component", "store", "driver", "toml"),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	s.load(doc)

	s.logger.Info("TOML store initialized", "path", path, "namespaces", len(s.data))
	return s, nil
}

// load copies a decoded document into s.data. Hand-edited scalars such as
// `fontSize = 20` are kept in their string form; anything that is not a
// namespace table of scalars is skipped and logged.
func (s *TOMLStore) load(doc map[string]any) {
	for namespace, raw := range doc {
		table, ok := raw.(map[string]any)
		if !ok {
			s.logger.Warn("skipping non-table entry", "path", s.path, "key", namespace)
			continue
		}

		ns := make(map[string]string, len(table))
		for key, v := range table {
			switch v := v.(type) {
			case string:
				ns[key] = v
			case int64, float64, bool, time.Time:
				ns[key] = fmt.Sprint(v)
			default:
				s.logger.Warn("skipping non-scalar value", "path", s.path, "namespace", namespace, "key", key)
			}
		}
		if len(ns) > 0 {
			s.data[namespace] = ns
		}
	}
}

// Get retrieves a value by namespace and key.
func (s *TOMLStore) Get(ctx context.Context, namespace, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[namespace][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set creates or updates a value and flushes the file.
func (s *TOMLStore) Set(ctx context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, existed := s.data[namespace]
	if !existed {
		ns = make(map[string]string)
		s.data[namespace] = ns
	}
	prev, hadKey := ns[key]
	ns[key] = value

	if err := s.flushLocked(); err != nil {
		// Keep memory in step with the file.
		switch {
		case !existed:
			delete(s.data, namespace)
		case hadKey:
			ns[key] = prev
		default:
			delete(ns, key)
		}
		return err
	}
	return nil
}

// Delete removes a single key and flushes the file.
func (s *TOMLStore) Delete(ctx context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		return ErrNotFound
	}
	if _, ok := ns[key]; !ok {
		return ErrNotFound
	}
	prev := ns[key]
	delete(ns, key)
	if len(ns) == 0 {
		delete(s.data, namespace)
	}

	if err := s.flushLocked(); err != nil {
		ns[key] = prev
		s.data[namespace] = ns
		return err
	}
	return nil
}

// Clear removes a namespace table and flushes the file.
func (s *TOMLStore) Clear(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		return nil
	}
	delete(s.data, namespace)

	if err := s.flushLocked(); err != nil {
		s.data[namespace] = ns
		return err
	}
	return nil
}

// List returns all entries in a namespace ordered by key.
// The file keeps no timestamps, so UpdatedAt is the file's modification time.
func (s *TOMLStore) List(ctx context.Context, namespace string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var modTime time.Time
	if info, err := os.Stat(s.path); err == nil {
		modTime = info.ModTime().UTC()
	}

	ns := s.data[namespace]
	entries := make([]Entry, 0, len(ns))
	for k, v := range ns {
		entries = append(entries, Entry{Namespace: namespace, Key: k, Value: v, UpdatedAt: modTime})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

// Close is a no-op; every write is already flushed.
func (s *TOMLStore) Close() error {
	return nil
}

// flushLocked writes the document to a temp file and renames it over path.
// Must be called with mu held.
func (s *TOMLStore) flushLocked() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".showcase-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(s.data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
