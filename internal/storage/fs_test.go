package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFS(t *testing.T) {
	t.Run("requires a directory", func(t *testing.T) {
		_, err := NewFS("")
		assert.Error(t, err)
	})

	t.Run("creates the root directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "uploads")
		_, err := NewFS(dir)
		require.NoError(t, err)

		st, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})
}

func TestFSStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewFS(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.4 test content")

	info, err := store.Put(ctx, "records/doc.pdf", bytes.NewReader(content), PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "records/doc.pdf", info.Key)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	body, got, err := store.Get(ctx, "records/doc.pdf")
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, int64(len(content)), got.Size)
	assert.Equal(t, "application/pdf", got.ContentType)

	read, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, read)

	require.NoError(t, store.Delete(ctx, "records/doc.pdf"))

	_, _, err = store.Get(ctx, "records/doc.pdf")
	assert.Error(t, err)
}

func TestFSStorage_DeleteMissingKey(t *testing.T) {
	store, err := NewFS(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "records/never-existed.pdf"))
}

func TestFSStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewFS(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside.pdf", "records/../../outside.pdf", "/etc/passwd", "."} {
		t.Run(key, func(t *testing.T) {
			_, err := store.Put(ctx, key, bytes.NewReader([]byte("x")), PutObjectOptions{})
			assert.Error(t, err)

			_, _, err = store.Get(ctx, key)
			assert.Error(t, err)

			assert.Error(t, store.Delete(ctx, key))
		})
	}
}
