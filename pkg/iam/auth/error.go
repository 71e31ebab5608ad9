package auth

import (
	"net/http"

	"github.com/talencee/careers/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeAPIKeyMissing = ErrRegistry.Register("API_KEY_MISSING", errx.TypeAuthentication, http.StatusUnauthorized, "Unauthorized - API key is required")
	CodeAPIKeyInvalid = ErrRegistry.Register("API_KEY_INVALID", errx.TypeAuthentication, http.StatusUnauthorized, "Unauthorized - Invalid API key")
)

func ErrAPIKeyMissing() *errx.Error {
	return ErrRegistry.New(CodeAPIKeyMissing)
}

func ErrAPIKeyInvalid() *errx.Error {
	return ErrRegistry.New(CodeAPIKeyInvalid)
}
