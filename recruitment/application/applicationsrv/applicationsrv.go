package applicationsrv

import (
	"context"
	"strings"
	"time"

	"github.com/talencee/careers/internal/metrics"
	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/application"
	"github.com/talencee/careers/recruitment/job"
	"github.com/talencee/careers/recruitment/notification"
	"github.com/talencee/careers/recruitment/upload"
)

// ResumeStore accepts or rejects an uploaded resume and stores it
type ResumeStore interface {
	Assign(ctx context.Context, file upload.Incoming) (*upload.StoredFile, error)
}

// JobResolver looks up the job an application refers to
type JobResolver interface {
	GetJobByID(ctx context.Context, id kernel.JobID) (*job.Job, error)
}

// jobForgetter is implemented by resolvers that cache jobs
type jobForgetter interface {
	ForgetJob(ctx context.Context, id kernel.JobID)
}

// Notifier sends the submission emails without blocking the caller
type Notifier interface {
	DispatchAsync(a notification.Applicant)
}

// SubmitRequest is one multipart submission as received
type SubmitRequest struct {
	Fields       application.RawFields
	JobReference string
	Resume       *upload.Incoming
}

// ApplicationService runs the intake pipeline
type ApplicationService struct {
	applicationRepo application.Repository
	resumes         ResumeStore
	jobs            JobResolver
	notifier        Notifier
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	resumes ResumeStore,
	jobs JobResolver,
	notifier Notifier,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		resumes:         resumes,
		jobs:            jobs,
		notifier:        notifier,
	}
}

// Submit stores the resume, validates the fields, persists the record and
// hands the notifications off. Only storage, validation and persistence can
// fail the request.
func (s *ApplicationService) Submit(ctx context.Context, req SubmitRequest) (summary *application.SubmissionSummary, err error) {
	start := time.Now()
	defer func() {
		outcome := outcomeOf(err)
		metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
		metrics.SubmissionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	var stored *upload.StoredFile
	if req.Resume != nil {
		stored, err = s.resumes.Assign(ctx, *req.Resume)
		if err != nil {
			return nil, err
		}
	}

	if stored == nil {
		return nil, upload.ErrResumeRequired()
	}

	fields, err := application.Validate(req.Fields)
	if err != nil {
		logOrphan(stored, "validation failed")
		return nil, err
	}

	ref := s.resolveJob(ctx, req.JobReference)

	app, err := application.NewApplication(fields, stored.Path, ref)
	if err != nil {
		logOrphan(stored, "record could not be built")
		return nil, err
	}

	if err := s.create(ctx, app); err != nil {
		logOrphan(stored, "persistence failed")
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "Failed to save application", errx.TypeInternal).
			WithDetail("application_id", app.ID.String())
	}

	logx.With(
		"application_id", app.ID.String(),
		"resume_path", app.ResumePath.String(),
		"general", app.IsGeneral(),
	).Info("application submitted")

	s.notifier.DispatchAsync(notification.Applicant{
		Name:        app.Name,
		Email:       app.Email,
		Subject:     app.Subject,
		Message:     app.Message,
		JobTitle:    app.JobTitle,
		ResumePath:  app.ResumePath,
		SubmittedAt: app.CreatedAt,
	})

	out := app.ToSummary()
	return &out, nil
}

// create persists app. A job that disappears between lookup and insert, or
// that was served from a stale cache, fails the job reference constraint; the
// reference is then dropped and the record saved as a general application.
func (s *ApplicationService) create(ctx context.Context, app *application.Application) error {
	err := s.applicationRepo.Create(ctx, app)
	if err == nil || app.JobID == nil || !rejectsJobReference(err) {
		return err
	}

	jobID := *app.JobID
	logx.With("application_id", app.ID.String(), "job_reference", jobID.String()).
		Info("referenced job no longer exists, saving as general application")
	if f, ok := s.jobs.(jobForgetter); ok {
		f.ForgetJob(ctx, jobID)
	}

	app.JobID = nil
	app.JobTitle = nil
	return s.applicationRepo.Create(ctx, app)
}

func rejectsJobReference(err error) bool {
	if !errx.IsCode(err, application.CodePersistenceRejected) {
		return false
	}
	e, _ := errx.As(err)
	for _, f := range e.Fields {
		if f.Field == application.FieldJobReference {
			return true
		}
	}
	return false
}

// resolveJob returns nil for a missing, unknown or unreadable reference so
// the submission proceeds as a general application
func (s *ApplicationService) resolveJob(ctx context.Context, reference string) *application.JobRef {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil
	}

	j, err := s.jobs.GetJobByID(ctx, kernel.NewJobID(reference))
	if err != nil {
		logx.With("job_reference", reference, "error", err.Error()).
			Info("job reference not resolved, treating as general application")
		return nil
	}
	return &application.JobRef{ID: j.ID, Title: j.Title}
}

// logOrphan records a stored resume that no application points to
func logOrphan(stored *upload.StoredFile, reason string) {
	logx.With("resume_path", stored.Path.String(), "reason", reason).
		Warn("stored resume left without application")
}

// outcomeOf classifies a submission result for metrics
func outcomeOf(err error) string {
	if err == nil {
		return "accepted"
	}
	e, ok := errx.As(err)
	if !ok {
		return "internal"
	}
	switch e.Type {
	case errx.TypeValidation:
		return "invalid_fields"
	case errx.TypeUpload:
		return "upload_rejected"
	case errx.TypePersistence:
		return "persistence_rejected"
	default:
		return "internal"
	}
}
