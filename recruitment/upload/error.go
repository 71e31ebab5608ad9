package upload

import (
	"net/http"

	"github.com/talencee/careers/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("UPLOAD")

// Error codes
var (
	CodeInvalidFileType = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeUpload, http.StatusBadRequest, "Only PDF and DOC files are allowed")
	CodeFileTooLarge    = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeUpload, http.StatusBadRequest, "File size exceeds 5MB limit")
	CodeResumeRequired  = ErrRegistry.Register("RESUME_REQUIRED", errx.TypeUpload, http.StatusBadRequest, "Resume file is required")
	CodeTransferFailed  = ErrRegistry.Register("TRANSFER_FAILED", errx.TypeUpload, http.StatusBadRequest, "File upload failed")
	CodeStorageFailed   = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store uploaded file")
)

// Helper functions
func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

// ErrFileTooLarge names the configured ceiling in its message
func ErrFileTooLarge(limit int64) *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge).
		WithMessage("File size exceeds "+FormatLimit(limit)+" limit").
		WithDetail("max_size", limit)
}

func ErrResumeRequired() *errx.Error {
	return ErrRegistry.New(CodeResumeRequired)
}

func ErrTransferFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeTransferFailed, cause)
}

func ErrStorageFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorageFailed, cause)
}
