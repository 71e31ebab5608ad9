package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/talencee/careers/internal/metrics"
	"github.com/talencee/careers/pkg/fsx"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/pkg/logx"
)

// randomRange bounds the random component of generated names.
const randomRange = 1_000_000_000

// maxNameAttempts bounds retries when a generated name is already taken.
const maxNameAttempts = 3

// Assigner validates incoming files and writes accepted ones to a FileSystem.
// It holds no per-request state and is safe for concurrent use.
type Assigner struct {
	fs      fsx.FileSystem
	maxSize int64
	now     func() time.Time
	randInt func() int64
}

// NewAssigner creates an assigner writing to fs and rejecting files larger
// than maxSize bytes
func NewAssigner(fs fsx.FileSystem, maxSize int64) *Assigner {
	return &Assigner{
		fs:      fs,
		maxSize: maxSize,
		now:     time.Now,
		randInt: func() int64 { return rand.Int63n(randomRange) },
	}
}

// MaxSize returns the configured ceiling in bytes
func (a *Assigner) MaxSize() int64 {
	return a.maxSize
}

// GenerateFilename builds <sanitizedBase>-<unixMillis>-<random>.<ext>
func (a *Assigner) GenerateFilename(originalName string) string {
	return fmt.Sprintf("%s-%d-%d%s",
		SanitizedBase(originalName),
		a.now().UnixMilli(),
		a.randInt(),
		Extension(originalName),
	)
}

// Check applies the type and declared size rules without touching storage
func (a *Assigner) Check(file Incoming) error {
	if !IsAcceptedType(file.OriginalName, file.ContentType) {
		metrics.UploadRejectionsTotal.WithLabelValues("invalid_type").Inc()
		return ErrInvalidFileType().
			WithDetail("file_name", file.OriginalName).
			WithDetail("content_type", file.ContentType)
	}
	if file.Size > a.maxSize {
		metrics.UploadRejectionsTotal.WithLabelValues("too_large").Inc()
		return ErrFileTooLarge(a.maxSize).WithDetail("file_size", file.Size)
	}
	return nil
}

// Assign checks file and streams it to storage under a fresh unique name.
// The declared size is not trusted: the stream is cut at the ceiling and an
// oversized body is rejected after the partial file is removed.
func (a *Assigner) Assign(ctx context.Context, file Incoming) (*StoredFile, error) {
	if err := a.Check(file); err != nil {
		return nil, err
	}

	body := &readTracker{r: io.LimitReader(file.Body, a.maxSize+1)}

	var (
		filename string
		p        string
		written  int64
		err      error
	)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		filename = a.GenerateFilename(file.OriginalName)
		p = a.fs.Join(filename)
		written, err = a.fs.WriteStream(ctx, p, body)
		if !errors.Is(err, fsx.ErrExists) || body.n > 0 {
			break
		}
		logx.Warnf("Generated upload name %s already taken, retrying", filename)
	}

	if err != nil {
		if body.err != nil {
			metrics.UploadRejectionsTotal.WithLabelValues("transfer_failed").Inc()
			return nil, ErrTransferFailed(body.err).WithDetail("file_name", file.OriginalName)
		}
		metrics.UploadRejectionsTotal.WithLabelValues("storage_failed").Inc()
		return nil, ErrStorageFailed(err).WithDetail("path", p)
	}

	if written > a.maxSize {
		if delErr := a.fs.DeleteFile(ctx, p); delErr != nil {
			logx.Warnf("Failed to remove oversized upload %s: %v", p, delErr)
		}
		metrics.UploadRejectionsTotal.WithLabelValues("too_large").Inc()
		return nil, ErrFileTooLarge(a.maxSize).WithDetail("file_size", written)
	}

	return &StoredFile{
		Filename:     filename,
		Path:         kernel.StoragePath(p),
		OriginalName: file.OriginalName,
		ContentType:  file.ContentType,
		Size:         written,
	}, nil
}

// Discard removes a stored file. Used by callers that abandon an upload.
func (a *Assigner) Discard(ctx context.Context, stored *StoredFile) error {
	if stored == nil {
		return nil
	}
	return a.fs.DeleteFile(ctx, stored.Path.String())
}

// readTracker remembers the first read error so client side transfer failures
// can be told apart from storage failures.
type readTracker struct {
	r   io.Reader
	n   int64
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	t.n += int64(n)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}
