package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/recruitment/application"
)

// PostgresApplicationRepository implements application.Repository on sqlx.
// The same statements run on the sqlite driver.
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationModel struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	Subject    string         `db:"subject"`
	Message    string         `db:"message"`
	JobID      sql.NullString `db:"job_id"`
	JobTitle   sql.NullString `db:"job_title"`
	ResumePath string         `db:"resume_path"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (m *applicationModel) toEntity() *application.Application {
	app := &application.Application{
		ID:         kernel.ApplicationID(m.ID),
		Name:       m.Name,
		Email:      kernel.Email(m.Email),
		Subject:    m.Subject,
		Message:    m.Message,
		ResumePath: kernel.StoragePath(m.ResumePath),
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.JobID.Valid {
		id := kernel.JobID(m.JobID.String)
		app.JobID = &id
	}
	if m.JobTitle.Valid {
		title := kernel.JobTitle(m.JobTitle.String)
		app.JobTitle = &title
	}
	return app
}

func fromEntity(a *application.Application) *applicationModel {
	m := &applicationModel{
		ID:         a.ID.String(),
		Name:       a.Name,
		Email:      a.Email.String(),
		Subject:    a.Subject,
		Message:    a.Message,
		ResumePath: a.ResumePath.String(),
		CreatedAt:  a.CreatedAt,
	}
	if a.JobID != nil {
		m.JobID = sql.NullString{String: a.JobID.String(), Valid: true}
	}
	if a.JobTitle != nil {
		m.JobTitle = sql.NullString{String: a.JobTitle.String(), Valid: true}
	}
	return m
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new application. Constraint violations come back as
// application.ErrPersistenceRejected with one field error per violation.
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, name, email, subject, message,
			job_id, job_title, resume_path, created_at
		) VALUES (
			:id, :name, :email, :subject, :message,
			:job_id, :job_title, :resume_path, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(app)); err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped.WithDetail("application_id", app.ID.String())
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := r.db.Rebind(`
		SELECT id, name, email, subject, message, job_id, job_title, resume_path, created_at
		FROM applications
		WHERE id = ?
	`)

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return model.toEntity(), nil
}

// Count returns the number of stored applications
func (r *PostgresApplicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM applications`); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}
