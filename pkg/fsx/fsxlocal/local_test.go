package fsxlocal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talencee/careers/pkg/fsx"
)

func TestLocalFileSystem_CreatesRootOnFirstWrite(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads", "nested")
	lfs := NewLocalFileSystem(root)
	ctx := context.Background()

	path := lfs.Join("cv.pdf")
	n, err := lfs.WriteStream(ctx, path, strings.NewReader("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, filepath.Join(root, "cv.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestLocalFileSystem_NeverOverwrites(t *testing.T) {
	lfs := NewLocalFileSystem(t.TempDir())
	ctx := context.Background()
	path := lfs.Join("a.pdf")

	require.NoError(t, lfs.WriteFile(ctx, path, []byte("first")))
	err := lfs.WriteFile(ctx, path, []byte("second"))

	assert.ErrorIs(t, err, fsx.ErrExists)
	got, err := fsx.ReadFile(ctx, lfs, path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func TestLocalFileSystem_RejectsPathsOutsideRoot(t *testing.T) {
	dir := t.TempDir()
	lfs := NewLocalFileSystem(filepath.Join(dir, "uploads"))
	ctx := context.Background()

	_, err := lfs.WriteStream(ctx, filepath.Join(dir, "escape.pdf"), strings.NewReader("x"))
	assert.ErrorIs(t, err, fsx.ErrOutsideRoot)

	_, err = lfs.Exists(ctx, lfs.Join("..", "escape.pdf"))
	assert.ErrorIs(t, err, fsx.ErrOutsideRoot)
}

func TestLocalFileSystem_ExistsAndDelete(t *testing.T) {
	lfs := NewLocalFileSystem(t.TempDir())
	ctx := context.Background()
	path := lfs.Join("b.docx")

	ok, err := lfs.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lfs.WriteFile(ctx, path, []byte("doc")))
	ok, err = lfs.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, lfs.DeleteFile(ctx, path))
	assert.ErrorIs(t, lfs.DeleteFile(ctx, path), fsx.ErrNotExist)

	_, err = lfs.ReadFileStream(ctx, path)
	assert.ErrorIs(t, err, fsx.ErrNotExist)
}
