package application

import (
	"net/http"

	"github.com/talencee/careers/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeApplicationAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Application already exists")
	CodeValidationFailed         = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Validation failed")
	CodePersistenceRejected      = ErrRegistry.Register("PERSISTENCE_REJECTED", errx.TypePersistence, http.StatusBadRequest, "Validation failed")
	CodeResumePathMissing        = ErrRegistry.Register("RESUME_PATH_MISSING", errx.TypeInternal, http.StatusInternalServerError, "Application has no stored resume")
)

// FieldJobReference names the job reference in field errors
const FieldJobReference = "jobReference"

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrApplicationAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyExists)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

// ErrPersistenceRejected carries store-level constraint violations in the same
// field error shape as ErrValidationFailed
func ErrPersistenceRejected(fields ...errx.FieldError) *errx.Error {
	return ErrRegistry.New(CodePersistenceRejected).WithFields(fields...)
}

func ErrResumePathMissing() *errx.Error {
	return ErrRegistry.New(CodeResumePathMissing)
}
