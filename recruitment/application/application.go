package application

import (
	"time"

	"github.com/talencee/careers/pkg/kernel"
)

// Application is one candidate submission. It is created once by the intake
// pipeline and never updated.
type Application struct {
	ID         kernel.ApplicationID `json:"id"`
	Name       string               `json:"name"`
	Email      kernel.Email         `json:"email"`
	Subject    string               `json:"subject"`
	Message    string               `json:"message"`
	JobID      *kernel.JobID        `json:"jobReference,omitempty"`
	JobTitle   *kernel.JobTitle     `json:"jobTitle,omitempty"`
	ResumePath kernel.StoragePath   `json:"resumePath"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// JobRef is a resolved job reference
type JobRef struct {
	ID    kernel.JobID
	Title kernel.JobTitle
}

// NewApplication builds a record from validated fields and a stored resume
func NewApplication(fields Fields, resume kernel.StoragePath, ref *JobRef) (*Application, error) {
	if resume.IsEmpty() {
		return nil, ErrResumePathMissing()
	}

	app := &Application{
		ID:         kernel.GenerateApplicationID(),
		Name:       fields.Name,
		Email:      fields.Email,
		Subject:    fields.Subject,
		Message:    fields.Message,
		ResumePath: resume,
		CreatedAt:  time.Now().UTC(),
	}
	if ref != nil {
		id, title := ref.ID, ref.Title
		app.JobID = &id
		app.JobTitle = &title
	}
	return app, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsGeneral reports whether the application is not tied to a job
func (a *Application) IsGeneral() bool {
	return a.JobID == nil
}
