package notification

import (
	"context"
	"time"

	"github.com/talencee/careers/pkg/kernel"
)

// Applicant is the normalized submission data the dispatcher formats
type Applicant struct {
	Name        string
	Email       kernel.Email
	Subject     string
	Message     string
	JobTitle    *kernel.JobTitle
	ResumePath  kernel.StoragePath
	SubmittedAt time.Time
}

// IsGeneral reports whether the submission is not tied to a job posting
func (a Applicant) IsGeneral() bool {
	return a.JobTitle == nil
}

// Attachment references a stored file. Mailers read it at send time.
type Attachment struct {
	Filename string
	Path     kernel.StoragePath
}

// Message is one outgoing plain text email
type Message struct {
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Result is what a send attempt reports. It never carries a Go error.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Mailer delivers a message and returns the transport message id
type Mailer interface {
	Send(ctx context.Context, msg *Message) (string, error)
}
