// ABOUTME: Behavioural tests shared by every KV backend
// ABOUTME: Runs the same suite against SQLite, TOML and memory stores

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]func(t *testing.T) KV {
	t.Helper()
	return map[string]func(t *testing.T) KV{
		"sqlite": func(t *testing.T) KV {
			s, err := NewSQLiteStore(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
		"toml": func(t *testing.T) KV {
			s, err := NewTOMLStore(filepath.Join(t.TempDir(), "store.toml"))
			require.NoError(t, err)
			return s
		},
		"memory": func(t *testing.T) KV {
			return NewMemoryStore()
		},
	}
}

func TestKV_GetMissing(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			_, err := kv.Get(context.Background(), "ns", "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestKV_SetAndGet(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			ctx := context.Background()

			require.NoError(t, kv.Set(ctx, "ns", "theme", "dark"))
			v, err := kv.Get(ctx, "ns", "theme")
			require.NoError(t, err)
			assert.Equal(t, "dark", v)

			// Overwrite
			require.NoError(t, kv.Set(ctx, "ns", "theme", "light"))
			v, err = kv.Get(ctx, "ns", "theme")
			require.NoError(t, err)
			assert.Equal(t, "light", v)
		})
	}
}

func TestKV_NamespacesAreIsolated(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			ctx := context.Background()

			require.NoError(t, kv.Set(ctx, "a", "fontSize", "20"))
			require.NoError(t, kv.Set(ctx, "b", "fontSize", "12"))
			require.NoError(t, kv.Clear(ctx, "a"))

			_, err := kv.Get(ctx, "a", "fontSize")
			assert.ErrorIs(t, err, ErrNotFound)

			v, err := kv.Get(ctx, "b", "fontSize")
			require.NoError(t, err)
			assert.Equal(t, "12", v)
		})
	}
}

func TestKV_Delete(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			ctx := context.Background()

			require.NoError(t, kv.Set(ctx, "ns", "k", "v"))
			require.NoError(t, kv.Delete(ctx, "ns", "k"))
			assert.ErrorIs(t, kv.Delete(ctx, "ns", "k"), ErrNotFound)
		})
	}
}

func TestKV_ClearEmptyNamespace(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			assert.NoError(t, kv.Clear(context.Background(), "nothing-here"))
		})
	}
}

func TestKV_ListOrderedByKey(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			ctx := context.Background()

			require.NoError(t, kv.Set(ctx, "ns", "theme", "dark"))
			require.NoError(t, kv.Set(ctx, "ns", "borderRadius", "8"))
			require.NoError(t, kv.Set(ctx, "ns", "fontSize", "18"))
			require.NoError(t, kv.Set(ctx, "other", "theme", "light"))

			entries, err := kv.List(ctx, "ns")
			require.NoError(t, err)
			require.Len(t, entries, 3)

			keys := []string{entries[0].Key, entries[1].Key, entries[2].Key}
			assert.Equal(t, []string{"borderRadius", "fontSize", "theme"}, keys)
			assert.Equal(t, "ns", entries[0].Namespace)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", "")
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	kv, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, kv)
}
