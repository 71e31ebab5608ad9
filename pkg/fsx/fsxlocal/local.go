// Package fsxlocal implements fsx.FileSystem on the local disk.
package fsxlocal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/talencee/careers/pkg/fsx"
)

// LocalFileSystem stores files under a root directory. The root is created on
// the first write if it does not exist yet.
type LocalFileSystem struct {
	root string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

// NewLocalFileSystem creates a file system rooted at root.
func NewLocalFileSystem(root string) *LocalFileSystem {
	return &LocalFileSystem{root: filepath.Clean(root)}
}

// Root returns the cleaned root directory.
func (l *LocalFileSystem) Root() string {
	return l.root
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return filepath.Join(append([]string{l.root}, elem...)...)
}

// resolve checks that path lies under the root.
func (l *LocalFileSystem) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	rel, err := filepath.Rel(l.root, clean)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", fsx.ErrOutsideRoot, path)
	}
	return clean, nil
}

func (l *LocalFileSystem) WriteStream(ctx context.Context, path string, r io.Reader) (int64, error) {
	full, err := l.resolve(path)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("%w: %s", fsx.ErrExists, path)
		}
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(full)
		if copyErr != nil {
			return n, fmt.Errorf("failed to write file: %w", copyErr)
		}
		return n, fmt.Errorf("failed to close file: %w", closeErr)
	}
	return n, nil
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	_, err := l.WriteStream(ctx, path, bytes.NewReader(data))
	return err
}

func (l *LocalFileSystem) ReadFileStream(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", fsx.ErrNotExist, path)
		}
		return nil, err
	}
	return f, nil
}

func (l *LocalFileSystem) Exists(_ context.Context, path string) (bool, error) {
	full, err := l.resolve(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (l *LocalFileSystem) DeleteFile(_ context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", fsx.ErrNotExist, path)
		}
		return err
	}
	return nil
}
