// Package fsx abstracts the blob storage that holds uploaded files.
package fsx

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrExists is returned when a write targets a path that is already taken.
	// Stored files are never overwritten.
	ErrExists = errors.New("fsx: file already exists")

	// ErrNotExist is returned when reading or deleting a missing file.
	ErrNotExist = errors.New("fsx: file does not exist")

	// ErrOutsideRoot is returned for paths that escape the file system root.
	ErrOutsideRoot = errors.New("fsx: path outside root")
)

// FileSystem is a rooted store of immutable files. Paths are produced by Join
// and passed back unchanged to the other methods.
type FileSystem interface {
	// Join builds a path under the file system root.
	Join(elem ...string) string

	// WriteStream creates path and copies r into it, returning the number of
	// bytes written. It fails with ErrExists if path is taken.
	WriteStream(ctx context.Context, path string, r io.Reader) (int64, error)

	// WriteFile is WriteStream for an in-memory payload.
	WriteFile(ctx context.Context, path string, data []byte) error

	// ReadFileStream opens path for reading. The caller closes it.
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether path holds a file.
	Exists(ctx context.Context, path string) (bool, error)

	// DeleteFile removes path.
	DeleteFile(ctx context.Context, path string) error
}

// ReadFile reads the whole file at path.
func ReadFile(ctx context.Context, fs FileSystem, path string) ([]byte, error) {
	rc, err := fs.ReadFileStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
