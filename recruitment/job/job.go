package job

import (
	"slices"
	"strings"
	"time"

	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/kernel"
)

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

var jobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

func (t JobType) IsValid() bool {
	return slices.Contains(jobTypes, t)
}

// WorkMode is where the work happens
type WorkMode string

const (
	WorkModeOnsite WorkMode = "Onsite"
	WorkModeRemote WorkMode = "Remote"
	WorkModeHybrid WorkMode = "Hybrid"
)

var workModes = []WorkMode{WorkModeOnsite, WorkModeRemote, WorkModeHybrid}

func (m WorkMode) IsValid() bool {
	return slices.Contains(workModes, m)
}

const (
	DefaultCTC             = "Not Disclosed"
	DefaultExperience      = "0-2 years"
	DefaultCompanyOverview = "Talencee is a talent solutions company connecting skilled professionals with growing organizations."
)

type Job struct {
	ID               kernel.JobID            `json:"id"`
	Title            kernel.JobTitle         `json:"title"`
	Location         string                  `json:"location"`
	Type             JobType                 `json:"type"`
	CTC              string                  `json:"ctc"`
	Experience       string                  `json:"experience"`
	WorkMode         WorkMode                `json:"workMode"`
	Description      string                  `json:"description"`
	CompanyOverview  string                  `json:"companyOverview"`
	Responsibilities []string                `json:"responsibilities"`
	Requirements     []kernel.JobRequirement `json:"requirements"`
	Perks            []string                `json:"perks"`
	HiringProcess    []string                `json:"hiringProcess"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// ApplyDefaults fills optional fields left empty
func (j *Job) ApplyDefaults() {
	if j.CTC == "" {
		j.CTC = DefaultCTC
	}
	if j.Experience == "" {
		j.Experience = DefaultExperience
	}
	if j.WorkMode == "" {
		j.WorkMode = WorkModeOnsite
	}
	if j.CompanyOverview == "" {
		j.CompanyOverview = DefaultCompanyOverview
	}
	if j.Responsibilities == nil {
		j.Responsibilities = []string{}
	}
	if j.Perks == nil {
		j.Perks = []string{}
	}
	if j.HiringProcess == nil {
		j.HiringProcess = []string{}
	}
}

// Validate checks the posting invariants and returns every violation at once
func (j *Job) Validate() error {
	var fields []errx.FieldError

	if strings.TrimSpace(j.Title.String()) == "" {
		fields = append(fields, errx.FieldError{Field: "title", Message: "Job title is required"})
	}
	if strings.TrimSpace(j.Location) == "" {
		fields = append(fields, errx.FieldError{Field: "location", Message: "Location is required"})
	}
	if !j.Type.IsValid() {
		fields = append(fields, errx.FieldError{Field: "type", Message: "Type must be one of Full-time, Part-time, Contract, Internship"})
	}
	if !j.WorkMode.IsValid() {
		fields = append(fields, errx.FieldError{Field: "workMode", Message: "Work mode must be one of Onsite, Remote, Hybrid"})
	}
	if strings.TrimSpace(j.Description) == "" {
		fields = append(fields, errx.FieldError{Field: "description", Message: "Description is required"})
	}
	if !j.HasRequirements() {
		fields = append(fields, errx.FieldError{Field: "requirements", Message: "At least one requirement is needed"})
	}

	if len(fields) > 0 {
		return ErrInvalidJob().WithFields(fields...)
	}
	return nil
}

// HasRequirements reports whether at least one non-blank requirement is listed
func (j *Job) HasRequirements() bool {
	return slices.ContainsFunc(j.Requirements, func(r kernel.JobRequirement) bool {
		return strings.TrimSpace(string(r)) != ""
	})
}
