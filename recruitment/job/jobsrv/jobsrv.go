package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/job"
)

// JobService provides read operations over job postings and the creation path
// used by seeding
type JobService struct {
	jobRepo job.Repository
}

// NewJobService creates a new instance of the job service
func NewJobService(jobRepo job.Repository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
	}
}

// CreateJob validates and stores a new job posting
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	now := time.Now().UTC()
	newJob := &job.Job{
		ID:               kernel.GenerateJobID(),
		Title:            kernel.JobTitle(strings.TrimSpace(req.Title.String())),
		Location:         strings.TrimSpace(req.Location),
		Type:             req.Type,
		CTC:              strings.TrimSpace(req.CTC),
		Experience:       strings.TrimSpace(req.Experience),
		WorkMode:         req.WorkMode,
		Description:      strings.TrimSpace(req.Description),
		CompanyOverview:  strings.TrimSpace(req.CompanyOverview),
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Perks:            req.Perks,
		HiringProcess:    req.HiringProcess,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	newJob.ApplyDefaults()

	if err := newJob.Validate(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	return newJob, nil
}

// GetJobByID retrieves a job by ID. Malformed ids are reported as not found.
func (s *JobService) GetJobByID(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	if !jobID.IsWellFormed() {
		return nil, job.ErrJobNotFound().
			WithDetail("job_id", jobID.String()).
			WithDetail("reason", "malformed_id")
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	return jobEntity, nil
}

// ForgetJob drops any cached copy of the job so later lookups go to the
// database
func (s *JobService) ForgetJob(ctx context.Context, jobID kernel.JobID) {
	evicter, ok := s.jobRepo.(job.CacheEvicter)
	if !ok {
		return
	}
	if err := evicter.Evict(ctx, jobID); err != nil {
		logx.Warnf("Failed to evict cached job %s: %v", jobID, err)
	}
}

// ListJobs retrieves all jobs, newest first
func (s *JobService) ListJobs(ctx context.Context) ([]job.Job, error) {
	jobs, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	return jobs, nil
}

// ReplaceAll deletes every job and creates the given ones. Used by seeding.
func (s *JobService) ReplaceAll(ctx context.Context, reqs []job.CreateJobRequest) ([]job.Job, error) {
	if err := s.jobRepo.DeleteAll(ctx); err != nil {
		return nil, errx.Wrap(err, "failed to clear jobs", errx.TypeInternal)
	}

	created := make([]job.Job, 0, len(reqs))
	for _, req := range reqs {
		j, err := s.CreateJob(ctx, req)
		if err != nil {
			return created, err
		}
		created = append(created, *j)
	}
	return created, nil
}
