package jobapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/recruitment/job"
	"github.com/talencee/careers/recruitment/job/jobsrv"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListJobs retrieves all jobs, newest first
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListJobs(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(job.ListJobsResponse{
		Success: true,
		Count:   len(jobs),
		Data:    jobs,
	})
}

// GetJobByID retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))

	jobEntity, err := h.service.GetJobByID(c.UserContext(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(job.JobResponse{
		Success: true,
		Data:    jobEntity,
	})
}

// RegisterRoutes registers all job routes. Jobs are public.
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	api := router.Group("/jobs")

	api.Get("/", handlers.ListJobs)
	api.Get("/:id", handlers.GetJobByID)
}
