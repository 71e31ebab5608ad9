package application

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/pkg/sanitize"
)

// RawFields are the text fields exactly as submitted
type RawFields struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Fields are normalized fields: trimmed, with name, subject and message
// HTML-escaped and email lowercased
type Fields struct {
	Name    string
	Email   kernel.Email
	Subject string
	Message string
}

const (
	NameMinLength    = 2
	NameMaxLength    = 100
	SubjectMinLength = 3
	SubjectMaxLength = 200
	MessageMinLength = 5
)

type lengthRule struct {
	min, max int
	message  string
}

func (r lengthRule) violated(s string) bool {
	n := utf8.RuneCountInString(s)
	return n < r.min || (r.max > 0 && n > r.max)
}

var (
	nameRule    = lengthRule{NameMinLength, NameMaxLength, fmt.Sprintf("Name must be between %d and %d characters", NameMinLength, NameMaxLength)}
	subjectRule = lengthRule{SubjectMinLength, SubjectMaxLength, fmt.Sprintf("Subject must be between %d and %d characters", SubjectMinLength, SubjectMaxLength)}
	messageRule = lengthRule{MessageMinLength, 0, fmt.Sprintf("Message must be at least %d characters", MessageMinLength)}
)

// Validate checks every field and returns all problems together. Nothing is
// normalized unless every field passes.
func Validate(raw RawFields) (Fields, error) {
	name := strings.TrimSpace(raw.Name)
	email := strings.TrimSpace(raw.Email)
	subject := strings.TrimSpace(raw.Subject)
	message := strings.TrimSpace(raw.Message)

	var problems []errx.FieldError
	check := func(field, label, value string, invalid func(string) (string, bool)) {
		if value == "" {
			problems = append(problems, errx.FieldError{Field: field, Message: label + " is required"})
			return
		}
		if msg, bad := invalid(value); bad {
			problems = append(problems, errx.FieldError{Field: field, Message: msg})
		}
	}
	length := func(r lengthRule) func(string) (string, bool) {
		return func(s string) (string, bool) { return r.message, r.violated(s) }
	}

	check("name", "Name", name, length(nameRule))
	check("email", "Email", email, func(s string) (string, bool) {
		return "Please provide a valid email address", !kernel.NewEmail(s).IsValid()
	})
	check("subject", "Subject", subject, length(subjectRule))
	check("message", "Message", message, length(messageRule))

	if len(problems) > 0 {
		return Fields{}, ErrValidationFailed().WithFields(problems...)
	}

	return Fields{
		Name:    sanitize.EscapeHTML(name),
		Email:   kernel.NewEmail(email),
		Subject: sanitize.EscapeHTML(subject),
		Message: sanitize.EscapeHTML(message),
	}, nil
}
