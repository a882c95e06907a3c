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

func newTestAttachments(limit int64) (*Attachments, afero.Fs) {
	memFs := afero.NewMemMapFs()
	return NewAttachments(NewAferoStore(memFs), limit), memFs
}

func TestAttachments_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("stores under the wizard prefix", func(t *testing.T) {
		a, memFs := newTestAttachments(0)
		assert.Equal(t, int64(DefaultMaxUploadBytes), a.MaxSize())

		meta, err := a.Put(ctx, "w1", "credentials", "../../etc/licence.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
		require.NoError(t, err)

		assert.Equal(t, "licence.pdf", meta.Filename, "directories are stripped from the client name")
		assert.Equal(t, "application/pdf", meta.MIMEType)
		assert.Equal(t, int64(len("pdf-bytes")), meta.Size)
		assert.True(t, strings.HasPrefix(meta.StoragePath, "wizards/w1/credentials/"), meta.StoragePath)
		assert.True(t, strings.HasSuffix(meta.StoragePath, ".pdf"))

		exists, _ := afero.Exists(memFs, meta.StoragePath)
		assert.True(t, exists)

		rc, err := a.Open(ctx, meta.StoragePath)
		require.NoError(t, err)
		defer rc.Close()
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "pdf-bytes", string(data))
	})

	t.Run("two uploads of the same name do not collide", func(t *testing.T) {
		a, _ := newTestAttachments(0)
		first, err := a.Put(ctx, "w1", "profilePicture", "me.png", "image/png", strings.NewReader("1"))
		require.NoError(t, err)
		second, err := a.Put(ctx, "w1", "profilePicture", "me.png", "image/png", strings.NewReader("2"))
		require.NoError(t, err)
		assert.NotEqual(t, first.StoragePath, second.StoragePath)
	})

	t.Run("oversized content is rejected and removed", func(t *testing.T) {
		a, memFs := newTestAttachments(4)

		_, err := a.Put(ctx, "w1", "credentials", "big.pdf", "application/pdf", strings.NewReader("12345"))
		assert.ErrorIs(t, err, domain.ErrUploadTooLarge)

		entries, _ := afero.ReadDir(memFs, "wizards/w1/credentials")
		assert.Empty(t, entries)
	})

	t.Run("content at the limit is accepted", func(t *testing.T) {
		a, _ := newTestAttachments(4)
		meta, err := a.Put(ctx, "w1", "credentials", "ok.pdf", "application/pdf", strings.NewReader("1234"))
		require.NoError(t, err)
		assert.Equal(t, int64(4), meta.Size)
	})

	t.Run("unsafe wizard ids fail validation", func(t *testing.T) {
		a, _ := newTestAttachments(0)
		_, err := a.Put(ctx, "../w1", "credentials", "x.pdf", "application/pdf", strings.NewReader("x"))
		assert.Error(t, err)
	})
}

func TestAttachments_RemoveAndPurge(t *testing.T) {
	ctx := context.Background()
	a, memFs := newTestAttachments(0)

	one, err := a.Put(ctx, "w1", "credentials", "a.pdf", "application/pdf", strings.NewReader("a"))
	require.NoError(t, err)
	two, err := a.Put(ctx, "w1", "profilePicture", "b.png", "image/png", strings.NewReader("b"))
	require.NoError(t, err)
	other, err := a.Put(ctx, "w2", "credentials", "c.pdf", "application/pdf", strings.NewReader("c"))
	require.NoError(t, err)

	require.NoError(t, a.Remove(ctx, one.StoragePath))
	exists, _ := afero.Exists(memFs, one.StoragePath)
	assert.False(t, exists)

	require.NoError(t, a.Purge(ctx, "w1"))
	exists, _ = afero.Exists(memFs, two.StoragePath)
	assert.False(t, exists)
	exists, _ = afero.Exists(memFs, other.StoragePath)
	assert.True(t, exists, "other wizards keep their files")
}

func TestStoredFile_Validate(t *testing.T) {
	valid := domain.StoredFile{Filename: "a.pdf", StoragePath: "wizards/w/credentials/x.pdf"}
	assert.NoError(t, valid.Validate())

	for _, p := range []string{"/abs/x.pdf", "wizards/../x", "~/x", `wizards\x`, "wizards/./x", ""} {
		f := valid
		f.StoragePath = p
		assert.Error(t, f.Validate(), "path %q", p)
	}
}
