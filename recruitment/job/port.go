package job

import (
	"context"

	"github.com/talencee/careers/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// List retrieves all jobs, newest first
	List(ctx context.Context) ([]Job, error)

	// DeleteAll removes every job. Used by seeding.
	DeleteAll(ctx context.Context) error
}

// CacheEvicter is implemented by repositories that keep jobs outside the
// database and can drop a single entry.
type CacheEvicter interface {
	Evict(ctx context.Context, id kernel.JobID) error
}
