package job

import "github.com/talencee/careers/pkg/kernel"

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title            kernel.JobTitle         `json:"title"`
	Location         string                  `json:"location"`
	Type             JobType                 `json:"type"`
	CTC              string                  `json:"ctc,omitempty"`
	Experience       string                  `json:"experience,omitempty"`
	WorkMode         WorkMode                `json:"workMode,omitempty"`
	Description      string                  `json:"description"`
	CompanyOverview  string                  `json:"companyOverview,omitempty"`
	Responsibilities []string                `json:"responsibilities,omitempty"`
	Requirements     []kernel.JobRequirement `json:"requirements"`
	Perks            []string                `json:"perks,omitempty"`
	HiringProcess    []string                `json:"hiringProcess,omitempty"`
}

// ListJobsResponse - envelope for GET /api/jobs
type ListJobsResponse struct {
	Success bool  `json:"success"`
	Count   int   `json:"count"`
	Data    []Job `json:"data"`
}

// JobResponse - envelope for GET /api/jobs/:id
type JobResponse struct {
	Success bool `json:"success"`
	Data    *Job `json:"data"`
}
