package notification

import (
	"net/http"

	"github.com/talencee/careers/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("NOTIFICATION")

// Error codes
var (
	CodeSendFailed           = ErrRegistry.Register("SEND_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to send email")
	CodeAttachmentUnreadable = ErrRegistry.Register("ATTACHMENT_UNREADABLE", errx.TypeInternal, http.StatusInternalServerError, "Attachment could not be read")
	CodeRecipientMissing     = ErrRegistry.Register("RECIPIENT_MISSING", errx.TypeValidation, http.StatusBadRequest, "Message has no recipient")
)

func ErrSendFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeSendFailed, cause)
}

func ErrAttachmentUnreadable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeAttachmentUnreadable, cause)
}

func ErrRecipientMissing() *errx.Error {
	return ErrRegistry.New(CodeRecipientMissing)
}
