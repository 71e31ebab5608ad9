package content

import (
	"net/http"

	"github.com/talencee/careers/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CONTENT")

// Error codes
var (
	CodeContentNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No content found. Please create initial content.")
	CodeSectionsRequired = ErrRegistry.Register("SECTIONS_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Hero, footer, and CTA sections are required")
	CodeValidationFailed = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Validation failed")
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
)

// Helper functions
func ErrContentNotFound() *errx.Error {
	return ErrRegistry.New(CodeContentNotFound)
}

func ErrSectionsRequired() *errx.Error {
	return ErrRegistry.New(CodeSectionsRequired)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
