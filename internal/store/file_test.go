package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)
	ctx := context.Background()

	in := []record{{ID: 1, Name: "tee"}, {ID: 2, Name: "jeans"}}
	require.NoError(t, s.Save(ctx, CollectionProducts, in))

	var out []record
	require.NoError(t, s.Load(ctx, CollectionProducts, &out))
	assert.Equal(t, in, out)
}

func TestFileStoreInitializesAbsentCollection(t *testing.T) {
	s, err := NewFile(t.TempDir())
	require.NoError(t, err)

	var out []record
	require.NoError(t, s.Load(context.Background(), CollectionWishlist, &out))
	assert.Empty(t, out)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, CollectionCart, []record{{ID: 1, Name: "line"}}))

	id, err := first.NextID(ctx, CollectionCart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	second, err := NewFile(dir)
	require.NoError(t, err)

	var out []record
	require.NoError(t, second.Load(ctx, CollectionCart, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "line", out[0].Name)

	// Counter state survives reopen: ids keep climbing, never reused.
	id, err = second.NextID(ctx, CollectionCart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestFileStoreSavePreservesCounter(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.AdvanceCounter(ctx, CollectionProducts, 5))
	require.NoError(t, s.Save(ctx, CollectionProducts, []record{{ID: 5, Name: "kept"}}))

	id, err := s.NextID(ctx, CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, CollectionCart+".json"), []byte("{not json"), 0o644))

	var out []record
	err = s.Load(context.Background(), CollectionCart, &out)
	require.Error(t, err)
}

func TestNewFileRequiresDir(t *testing.T) {
	_, err := NewFile("  ")
	require.Error(t, err)
}
