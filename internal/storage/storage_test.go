package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/nfrund/safeonboard/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoStore(t *testing.T) {
	memFs := afero.NewMemMapFs()
	store := NewAferoStore(memFs)
	ctx := context.Background()

	const (
		licencePath = "wizards/w1/credentials/licence.pdf"
		photoPath   = "wizards/w1/profilePicture/me.png"
		content     = "%PDF-1.4 licence body"
	)

	t.Run("Save creates parent directories", func(t *testing.T) {
		n, err := store.Save(ctx, licencePath, strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), n)

		data, err := afero.ReadFile(memFs, licencePath)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("Open streams the stored bytes", func(t *testing.T) {
		rc, err := store.Open(ctx, licencePath)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("Open of a missing file is ErrNotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "wizards/w1/none.pdf")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete removes one file", func(t *testing.T) {
		_, err := store.Save(ctx, photoPath, strings.NewReader("png"))
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, licencePath))

		gone, _ := afero.Exists(memFs, licencePath)
		kept, _ := afero.Exists(memFs, photoPath)
		assert.False(t, gone)
		assert.True(t, kept)
	})

	t.Run("DeleteAll removes a tree", func(t *testing.T) {
		require.NoError(t, store.DeleteAll(ctx, "wizards/w1"))
		exists, _ := afero.DirExists(memFs, "wizards/w1")
		assert.False(t, exists)
	})
}

func TestNewDiskStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir + "/uploads")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "a/b.txt", strings.NewReader("on disk"))
	require.NoError(t, err)

	exists, err := afero.Exists(afero.NewOsFs(), dir+"/uploads/a/b.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}
