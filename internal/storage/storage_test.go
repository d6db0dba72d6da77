package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drivers(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := Open("sqlite", filepath.Join(dir, "db", "kv.db"))
	require.NoError(t, err)
	file, err := Open("file", filepath.Join(dir, "state", "kv.json"))
	require.NoError(t, err)
	mem, err := Open("memory", "")
	require.NoError(t, err)

	kvs := map[string]KV{"sqlite": sqlite, "file": file, "memory": mem}
	t.Cleanup(func() {
		for _, kv := range kvs {
			kv.Close()
		}
	})
	return kvs
}

func TestKV_GetSet(t *testing.T) {
	for name, kv := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("stockxpertPortfolio")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("stockxpertPortfolio", `{"TCS":5}`))
			v, ok, err := kv.Get("stockxpertPortfolio")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"TCS":5}`, v)

			require.NoError(t, kv.Set("stockxpertPortfolio", `{}`))
			v, _, err = kv.Get("stockxpertPortfolio")
			require.NoError(t, err)
			assert.Equal(t, `{}`, v)
		})
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	a, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, a.Set("k", "v"))

	b, err := NewFile(path)
	require.NoError(t, err)
	v, ok, err := b.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))
	f, err := NewFile(path)
	require.NoError(t, err)

	_, _, err = f.Get("k")
	assert.Error(t, err)
}

func TestSQLite_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	a, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, a.Set("k", "v"))
	require.NoError(t, a.Close())

	b, err := NewSQLite(path)
	require.NoError(t, err)
	defer b.Close()
	v, ok, err := b.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Set("k", "v"), ErrClosed)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("redis", "")
	assert.Error(t, err)
}
