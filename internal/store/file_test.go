package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/serroba/qr-code-manager/internal/qrcode"
	"github.com/serroba/qr-code-manager/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPNG = []byte("\x89PNG\r\n\x1a\nfake")

func newFileStorage(t *testing.T) (*store.FileStorage, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "qr_codes")

	s, err := store.NewFileStorage(dir)
	require.NoError(t, err)

	return s, dir
}

func TestNewFileStorage(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		_, dir := newFileStorage(t)

		info, err := os.Stat(dir)

		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("fails when path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		_, err := store.NewFileStorage(path)

		assert.Error(t, err)
	})
}

func TestFileStorage_SaveAndLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips bytes", func(t *testing.T) {
		s, _ := newFileStorage(t)

		require.NoError(t, s.Save(ctx, "abc.png", testPNG))

		got, err := s.Load(ctx, "abc.png")

		require.NoError(t, err)
		assert.Equal(t, testPNG, got)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		s, _ := newFileStorage(t)
		require.NoError(t, s.Save(ctx, "abc.png", testPNG))

		err := s.Save(ctx, "abc.png", []byte("other"))

		require.ErrorIs(t, err, qrcode.ErrExists)

		got, _ := s.Load(ctx, "abc.png")
		assert.Equal(t, testPNG, got)
	})

	t.Run("load missing returns ErrNotFound", func(t *testing.T) {
		s, _ := newFileStorage(t)

		_, err := s.Load(ctx, "missing.png")

		assert.ErrorIs(t, err, qrcode.ErrNotFound)
	})

	t.Run("rejects names that escape the directory", func(t *testing.T) {
		s, _ := newFileStorage(t)

		for _, name := range []string{"../x.png", "a/b.png", "", ".hidden.png"} {
			assert.Error(t, s.Save(ctx, name, testPNG), name)

			_, err := s.Load(ctx, name)
			assert.Error(t, err, name)
		}
	})

	t.Run("rejects names over the filesystem limit", func(t *testing.T) {
		s, _ := newFileStorage(t)
		name := strings.Repeat("a", qrcode.MaxFilenameLength) + ".png"

		assert.ErrorIs(t, s.Save(ctx, name, testPNG), qrcode.ErrNameTooLong)
	})
}

func TestFileStorage_Exists(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStorage(t)

	exists, err := s.Exists(ctx, "abc.png")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Save(ctx, "abc.png", testPNG))

	exists, err = s.Exists(ctx, "abc.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileStorage_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes file", func(t *testing.T) {
		s, dir := newFileStorage(t)
		require.NoError(t, s.Save(ctx, "abc.png", testPNG))

		require.NoError(t, s.Delete(ctx, "abc.png"))

		_, err := os.Stat(filepath.Join(dir, "abc.png"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing returns ErrNotFound", func(t *testing.T) {
		s, _ := newFileStorage(t)

		assert.ErrorIs(t, s.Delete(ctx, "abc.png"), qrcode.ErrNotFound)
	})
}

func TestFileStorage_List(t *testing.T) {
	ctx := context.Background()

	t.Run("empty directory", func(t *testing.T) {
		s, _ := newFileStorage(t)

		names, err := s.List(ctx)

		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("lists files sorted and skips directories", func(t *testing.T) {
		s, dir := newFileStorage(t)
		require.NoError(t, s.Save(ctx, "b.png", testPNG))
		require.NoError(t, s.Save(ctx, "a.png", testPNG))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

		names, err := s.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.png", "b.png"}, names)
	})
}

func TestFileStorage_Ping(t *testing.T) {
	s, dir := newFileStorage(t)

	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))

	assert.Error(t, s.Ping(context.Background()))
}
