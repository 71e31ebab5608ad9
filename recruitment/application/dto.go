package application

import (
	"time"

	"github.com/talencee/careers/pkg/kernel"
)

// SubmissionSummary - what the applicant gets back after a submission
type SubmissionSummary struct {
	ID          kernel.ApplicationID `json:"id"`
	Name        string               `json:"name"`
	Email       kernel.Email         `json:"email"`
	SubmittedAt time.Time            `json:"submittedAt"`
}

// SubmitApplicationResponse - envelope for POST /api/applications
type SubmitApplicationResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    SubmissionSummary `json:"data"`
}

// ToSummary projects the fields returned to the applicant
func (a *Application) ToSummary() SubmissionSummary {
	return SubmissionSummary{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		SubmittedAt: a.CreatedAt,
	}
}
