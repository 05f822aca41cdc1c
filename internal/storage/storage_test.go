package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

var (
	_ ports.ClientStorage = (*FileStore)(nil)
	_ ports.ClientStorage = (*MemoryStore)(nil)
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFileStoreStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	var out []record
	found, err := store.Get(context.Background(), "last-scan-results", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.DirExists(t, filepath.Dir(path))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "last-scan-results", []record{{ID: "1:1", Name: "Button"}}))
	assert.NoFileExists(t, path+".tmp")

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	var out []record
	found, err := reopened.Get(ctx, "last-scan-results", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []record{{ID: "1:1", Name: "Button"}}, out)
	assert.Equal(t, []string{"last-scan-results"}, reopened.Keys())

	require.NoError(t, reopened.Delete(ctx, "last-scan-results"))
	assert.Empty(t, reopened.Keys())
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path)
	require.ErrorContains(t, err, "failed to parse storage")
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, store.Set(ctx, "k", 1), context.Canceled)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", record{ID: "2:2"}))

	var out record
	found, err := store.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2:2", out.ID)

	var wrong []string
	_, err = store.Get(ctx, "k", &wrong)
	assert.Error(t, err)
}
