package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/recruitment/job"
)

// PostgresJobRepository implements job.Repository on sqlx. The same queries
// run on the sqlite driver used for local development.
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID               string    `db:"id"`
	Title            string    `db:"title"`
	Location         string    `db:"location"`
	Type             string    `db:"type"`
	CTC              string    `db:"ctc"`
	Experience       string    `db:"experience"`
	WorkMode         string    `db:"work_mode"`
	Description      string    `db:"description"`
	CompanyOverview  string    `db:"company_overview"`
	Responsibilities string    `db:"responsibilities"`
	Requirements     string    `db:"requirements"`
	Perks            string    `db:"perks"`
	HiringProcess    string    `db:"hiring_process"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

const jobColumns = `
	id, title, location, type, ctc, experience, work_mode,
	description, company_overview, responsibilities, requirements,
	perks, hiring_process, created_at, updated_at`

func unmarshalList[T any](raw string, name string) ([]T, error) {
	out := []T{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return out, nil
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() (*job.Job, error) {
	responsibilities, err := unmarshalList[string](m.Responsibilities, "responsibilities")
	if err != nil {
		return nil, err
	}
	requirements, err := unmarshalList[kernel.JobRequirement](m.Requirements, "requirements")
	if err != nil {
		return nil, err
	}
	perks, err := unmarshalList[string](m.Perks, "perks")
	if err != nil {
		return nil, err
	}
	hiringProcess, err := unmarshalList[string](m.HiringProcess, "hiring process")
	if err != nil {
		return nil, err
	}

	return &job.Job{
		ID:               kernel.JobID(m.ID),
		Title:            kernel.JobTitle(m.Title),
		Location:         m.Location,
		Type:             job.JobType(m.Type),
		CTC:              m.CTC,
		Experience:       m.Experience,
		WorkMode:         job.WorkMode(m.WorkMode),
		Description:      m.Description,
		CompanyOverview:  m.CompanyOverview,
		Responsibilities: responsibilities,
		Requirements:     requirements,
		Perks:            perks,
		HiringProcess:    hiringProcess,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}, nil
}

// marshalList encodes list as JSON text. Text binds to jsonb on postgres and
// keeps sqlite's json functions working.
func marshalList[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) (*jobModel, error) {
	m := &jobModel{
		ID:              j.ID.String(),
		Title:           j.Title.String(),
		Location:        j.Location,
		Type:            string(j.Type),
		CTC:             j.CTC,
		Experience:      j.Experience,
		WorkMode:        string(j.WorkMode),
		Description:     j.Description,
		CompanyOverview: j.CompanyOverview,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}

	var err error
	if m.Responsibilities, err = marshalList(j.Responsibilities); err != nil {
		return nil, fmt.Errorf("failed to marshal responsibilities: %w", err)
	}
	if m.Requirements, err = marshalList(j.Requirements); err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}
	if m.Perks, err = marshalList(j.Perks); err != nil {
		return nil, fmt.Errorf("failed to marshal perks: %w", err)
	}
	if m.HiringProcess, err = marshalList(j.HiringProcess); err != nil {
		return nil, fmt.Errorf("failed to marshal hiring process: %w", err)
	}
	return m, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (
			id, title, location, type, ctc, experience, work_mode,
			description, company_overview, responsibilities, requirements,
			perks, hiring_process, created_at, updated_at
		) VALUES (
			:id, :title, :location, :type, :ctc, :experience, :work_mode,
			:description, :company_overview, :responsibilities, :requirements,
			:perks, :hiring_process, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return job.ErrJobAlreadyExists().WithDetail("job_id", model.ID)
			case "23514": // check_violation
				return job.ErrInvalidJob().WithDetail("constraint", pqErr.Constraint)
			}
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := r.db.Rebind(`SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`)

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" { // invalid_text_representation
			return nil, job.ErrJobNotFound().WithDetail("reason", "malformed_id")
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return model.toEntity()
}

// List retrieves all jobs, newest first
func (r *PostgresJobRepository) List(ctx context.Context) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id DESC`

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]job.Job, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *entity)
	}
	return jobs, nil
}

// DeleteAll removes every job
func (r *PostgresJobRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("failed to delete jobs: %w", err)
	}
	return nil
}
