package applicationinfra

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talencee/careers/internal/database"
	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/recruitment/application"
	"github.com/talencee/careers/recruitment/job"
	"github.com/talencee/careers/recruitment/job/jobinfra"
)

func setupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))
	t.Cleanup(func() { db.Close() })
	return db
}

func newApplication(t *testing.T, ref *application.JobRef) *application.Application {
	t.Helper()
	app, err := application.NewApplication(application.Fields{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Backend role",
		Message: "I would like to apply.",
	}, "uploads/resumes/resume-1-2.pdf", ref)
	require.NoError(t, err)
	return app
}

func seedJob(t *testing.T, db *sqlx.DB) *job.Job {
	t.Helper()
	now := time.Now().UTC()
	j := &job.Job{
		ID:           kernel.GenerateJobID(),
		Title:        "Go Engineer",
		Location:     "Remote",
		Type:         job.JobTypeFullTime,
		Description:  "Build services",
		Requirements: []kernel.JobRequirement{"Go"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	j.ApplyDefaults()
	require.NoError(t, jobinfra.NewPostgresJobRepository(db).Create(context.Background(), j))
	return j
}

// ==========================
// SQLite round trips
// ==========================

func TestRepository_CreateGeneralApplication(t *testing.T) {
	repo := NewPostgresApplicationRepository(setupSQLite(t))
	ctx := context.Background()
	app := newApplication(t, nil)

	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.Name, got.Name)
	assert.Equal(t, app.Email, got.Email)
	assert.Equal(t, app.ResumePath, got.ResumePath)
	assert.True(t, got.IsGeneral())
	assert.Nil(t, got.JobTitle)
	assert.WithinDuration(t, app.CreatedAt, got.CreatedAt, time.Second)
}

func TestRepository_CreateWithJobReference(t *testing.T) {
	db := setupSQLite(t)
	repo := NewPostgresApplicationRepository(db)
	ctx := context.Background()
	j := seedJob(t, db)
	app := newApplication(t, &application.JobRef{ID: j.ID, Title: j.Title})

	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, got.JobID)
	assert.Equal(t, j.ID, *got.JobID)
	require.NotNil(t, got.JobTitle)
	assert.Equal(t, j.Title, *got.JobTitle)
}

func TestRepository_Count(t *testing.T) {
	repo := NewPostgresApplicationRepository(setupSQLite(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newApplication(t, nil)))
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRepository_GetMissing(t *testing.T) {
	repo := NewPostgresApplicationRepository(setupSQLite(t))

	_, err := repo.GetByID(context.Background(), kernel.GenerateApplicationID())

	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}

func TestRepository_SQLiteConstraintsMapToFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *application.Application)
		field  string
	}{
		{"empty name", func(a *application.Application) { a.Name = "" }, "name"},
		{"short email", func(a *application.Application) { a.Email = "a" }, "email"},
		{"empty resume", func(a *application.Application) { a.ResumePath = "" }, "resume"},
		{"unknown job", func(a *application.Application) {
			id := kernel.GenerateJobID()
			a.JobID = &id
		}, "jobReference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewPostgresApplicationRepository(setupSQLite(t))
			app := newApplication(t, nil)
			tt.mutate(app)

			err := repo.Create(context.Background(), app)

			require.True(t, errx.IsCode(err, application.CodePersistenceRejected), "got %v", err)
			e, ok := errx.As(err)
			require.True(t, ok)
			require.Len(t, e.Fields, 1)
			assert.Equal(t, tt.field, e.Fields[0].Field)
			assert.Equal(t, 400, e.HTTPStatus)
		})
	}
}

func TestRepository_DuplicateID(t *testing.T) {
	repo := NewPostgresApplicationRepository(setupSQLite(t))
	ctx := context.Background()
	app := newApplication(t, nil)
	require.NoError(t, repo.Create(ctx, app))

	err := repo.Create(ctx, app)

	assert.True(t, errx.IsCode(err, application.CodeApplicationAlreadyExists))
}

// ==========================
// Postgres error mapping
// ==========================

func setupMock(t *testing.T) (*PostgresApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresApplicationRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestRepository_PostgresErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   *pq.Error
		code  errx.Code
		field string
	}{
		{"not null", &pq.Error{Code: "23502", Column: "subject"}, application.CodePersistenceRejected, "subject"},
		{"check", &pq.Error{Code: "23514", Constraint: "applications_message_check"}, application.CodePersistenceRejected, "message"},
		{"foreign key", &pq.Error{Code: "23503", Constraint: "applications_job_id_fkey"}, application.CodePersistenceRejected, "jobReference"},
		{"unique", &pq.Error{Code: "23505"}, application.CodeApplicationAlreadyExists, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupMock(t)
			mock.ExpectExec("INSERT INTO applications").WillReturnError(tt.err)

			err := repo.Create(context.Background(), newApplication(t, nil))

			require.True(t, errx.IsCode(err, tt.code), "got %v", err)
			if tt.field != "" {
				e, _ := errx.As(err)
				require.Len(t, e.Fields, 1)
				assert.Equal(t, tt.field, e.Fields[0].Field)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UnknownDriverErrorIsWrapped(t *testing.T) {
	repo, mock := setupMock(t)
	mock.ExpectExec("INSERT INTO applications").WillReturnError(&pq.Error{Code: "57P01"})

	err := repo.Create(context.Background(), newApplication(t, nil))

	require.Error(t, err)
	_, isTyped := errx.As(err)
	assert.False(t, isTyped)
}

func TestRepository_GetByID_UsesPostgresPlaceholders(t *testing.T) {
	repo, mock := setupMock(t)
	mock.ExpectQuery(`(?s)SELECT (.+) FROM applications\s+WHERE id = \$1`).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "abc")

	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
