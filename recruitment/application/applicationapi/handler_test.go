package applicationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talencee/careers/internal/database"
	"github.com/talencee/careers/internal/httpx"
	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/fsx/fsxlocal"
	"github.com/talencee/careers/pkg/kernel"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/application/applicationinfra"
	"github.com/talencee/careers/recruitment/application/applicationsrv"
	"github.com/talencee/careers/recruitment/job"
	"github.com/talencee/careers/recruitment/job/jobinfra"
	"github.com/talencee/careers/recruitment/job/jobsrv"
	"github.com/talencee/careers/recruitment/notification"
	"github.com/talencee/careers/recruitment/upload"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const maxSize = 64 << 10

type capturingMailer struct {
	mu   sync.Mutex
	sent []*notification.Message
}

func (m *capturingMailer) Send(_ context.Context, msg *notification.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return "test-id", nil
}

type testServer struct {
	app        *fiber.App
	db         *sqlx.DB
	root       string
	repo       *applicationinfra.PostgresApplicationRepository
	jobs       *jobsrv.JobService
	dispatcher *notification.Dispatcher
	mailer     *capturingMailer
}

type serverConfig struct {
	mailer          notification.Mailer
	dispatchTimeout time.Duration
	jobCache        *redis.Client
}

type serverOption func(*serverConfig)

func withMailer(m notification.Mailer, timeout time.Duration) serverOption {
	return func(c *serverConfig) {
		c.mailer = m
		c.dispatchTimeout = timeout
	}
}

func withJobCache(client *redis.Client) serverOption {
	return func(c *serverConfig) { c.jobCache = client }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	ctx := context.Background()

	mailer := &capturingMailer{}
	cfg := serverConfig{mailer: mailer, dispatchTimeout: time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))
	t.Cleanup(func() { db.Close() })

	root := t.TempDir()
	dispatcher := notification.NewDispatcher(cfg.mailer, notification.Sender{
		From:         "jobs@talencee.com",
		StaffAddress: "hr@talencee.com",
		CompanyName:  "Talencee",
	}, cfg.dispatchTimeout)

	var jobRepo job.Repository = jobinfra.NewPostgresJobRepository(db)
	if cfg.jobCache != nil {
		jobRepo = jobinfra.NewCachedJobRepository(jobRepo, cfg.jobCache, time.Minute)
	}

	repo := applicationinfra.NewPostgresApplicationRepository(db)
	jobs := jobsrv.NewJobService(jobRepo)
	assigner := upload.NewAssigner(fsxlocal.NewLocalFileSystem(root), maxSize)
	service := applicationsrv.NewApplicationService(repo, assigner, jobs, dispatcher)

	app := fiber.New(fiber.Config{ErrorHandler: httpx.ErrorHandler(false, maxSize)})
	RegisterRoutes(app.Group("/api"), NewHandlers(service))

	return &testServer{app: app, db: db, root: root, repo: repo, jobs: jobs, dispatcher: dispatcher, mailer: mailer}
}

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *filePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="resume"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (s *testServer) submit(t *testing.T, fields map[string]string, file *filePart) (int, map[string]any) {
	t.Helper()
	body, contentType := multipartBody(t, fields, file)
	req := httptest.NewRequest(fiber.MethodPost, "/api/applications", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func validFields() map[string]string {
	return map[string]string{
		"name":    "Test User",
		"email":   "test@example.com",
		"subject": "Test Subject",
		"message": "Test message with enough characters",
	}
}

func pdfPart() *filePart {
	return &filePart{name: "test-resume.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4 fake resume")}
}

// ==========================
// End-to-end scenarios
// ==========================

func TestSubmit_PDFCreatesApplication(t *testing.T) {
	s := newTestServer(t)

	status, body := s.submit(t, validFields(), pdfPart())

	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Application submitted successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Test User", data["name"])
	assert.Equal(t, "test@example.com", data["email"])
	assert.NotEmpty(t, data["submittedAt"])

	app, err := s.repo.GetByID(context.Background(), kernel.ApplicationID(data["id"].(string)))
	require.NoError(t, err)
	_, statErr := os.Stat(app.ResumePath.String())
	assert.NoError(t, statErr)
	rel, err := filepath.Rel(s.root, app.ResumePath.String())
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."))

	count, err := s.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	entries, err := os.ReadDir(s.root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, s.dispatcher.Wait(context.Background()))
	s.mailer.mu.Lock()
	defer s.mailer.mu.Unlock()
	assert.Len(t, s.mailer.sent, 2)
}

func TestSubmit_TextFileRejected(t *testing.T) {
	s := newTestServer(t)

	status, body := s.submit(t, validFields(), &filePart{name: "notes.txt", contentType: "text/plain", data: []byte("hello")})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Only PDF and DOC files are allowed")
}

func TestSubmit_DisallowedExtensions(t *testing.T) {
	s := newTestServer(t)

	for _, ext := range []string{".jpg", ".png", ".txt", ".exe", ".zip", ".js", ".html"} {
		t.Run(ext, func(t *testing.T) {
			status, body := s.submit(t, validFields(), &filePart{name: "resume" + ext, contentType: "application/pdf", data: []byte("x")})

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "Only PDF and DOC files are allowed", body["message"])
		})
	}

	entries, err := os.ReadDir(s.root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmit_MissingEmail(t *testing.T) {
	s := newTestServer(t)
	fields := validFields()
	delete(fields, "email")

	status, body := s.submit(t, fields, pdfPart())

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].(map[string]any)["field"])
	assert.Equal(t, "Email is required", errs[0].(map[string]any)["message"])
}

func TestSubmit_EachMissingFieldReported(t *testing.T) {
	s := newTestServer(t)

	for _, field := range []string{"name", "email", "subject", "message"} {
		t.Run(field, func(t *testing.T) {
			fields := validFields()
			fields[field] = "   "

			status, body := s.submit(t, fields, pdfPart())

			assert.Equal(t, fiber.StatusBadRequest, status)
			errs := body["errors"].([]any)
			require.Len(t, errs, 1)
			assert.Equal(t, field, errs[0].(map[string]any)["field"])
		})
	}
}

func TestSubmit_InvalidEmails(t *testing.T) {
	s := newTestServer(t)

	for _, email := range []string{"plainaddress", "@example.com", "user@", "user@example", "user@.com"} {
		t.Run(email, func(t *testing.T) {
			fields := validFields()
			fields["email"] = email

			status, _ := s.submit(t, fields, pdfPart())

			assert.Equal(t, fiber.StatusBadRequest, status)
		})
	}
}

func TestSubmit_MissingResume(t *testing.T) {
	s := newTestServer(t)

	status, body := s.submit(t, validFields(), nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Resume file is required", body["message"])
}

func TestSubmit_OversizedResume(t *testing.T) {
	s := newTestServer(t)
	big := &filePart{name: "big.pdf", contentType: "application/pdf", data: bytes.Repeat([]byte("a"), maxSize+1)}

	status, body := s.submit(t, validFields(), big)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "File size exceeds 64KB limit", body["message"])
}

func TestSubmit_UnknownJobBecomesGeneral(t *testing.T) {
	s := newTestServer(t)
	fields := validFields()
	fields["jobReference"] = kernel.GenerateJobID().String()

	status, body := s.submit(t, fields, pdfPart())
	require.Equal(t, fiber.StatusCreated, status, body)

	app, err := s.repo.GetByID(context.Background(), kernel.ApplicationID(body["data"].(map[string]any)["id"].(string)))
	require.NoError(t, err)
	assert.True(t, app.IsGeneral())
}

func TestSubmit_KnownJobIsAttached(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	created, err := s.jobs.CreateJob(ctx, job.CreateJobRequest{
		Title:        "Go Engineer",
		Location:     "Remote",
		Type:         job.JobTypeFullTime,
		Description:  "Build the intake service",
		Requirements: []kernel.JobRequirement{"Go"},
	})
	require.NoError(t, err)

	fields := validFields()
	fields["jobId"] = created.ID.String()
	status, body := s.submit(t, fields, pdfPart())
	require.Equal(t, fiber.StatusCreated, status, body)

	app, err := s.repo.GetByID(ctx, kernel.ApplicationID(body["data"].(map[string]any)["id"].(string)))
	require.NoError(t, err)
	require.NotNil(t, app.JobTitle)
	assert.Equal(t, kernel.JobTitle("Go Engineer"), *app.JobTitle)

	require.NoError(t, s.dispatcher.Wait(ctx))
	s.mailer.mu.Lock()
	defer s.mailer.mu.Unlock()
	var staff *notification.Message
	for _, m := range s.mailer.sent {
		if m.To == "hr@talencee.com" {
			staff = m
		}
	}
	require.NotNil(t, staff)
	assert.Contains(t, staff.Body, "Job: Go Engineer")
	require.Len(t, staff.Attachments, 1)
	assert.Equal(t, app.ResumePath, staff.Attachments[0].Path)
}

func TestSubmit_FieldsAreEscaped(t *testing.T) {
	s := newTestServer(t)
	fields := validFields()
	fields["name"] = "<b>Eve</b>"

	status, body := s.submit(t, fields, pdfPart())

	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "&lt;b&gt;Eve&lt;/b&gt;", body["data"].(map[string]any)["name"])
}

func TestSubmit_JobDeletedBehindCacheBecomesGeneral(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	s := newTestServer(t, withJobCache(client))
	ctx := context.Background()

	created, err := s.jobs.CreateJob(ctx, job.CreateJobRequest{
		Title:        "Go Engineer",
		Location:     "Remote",
		Type:         job.JobTypeFullTime,
		Description:  "Build the intake service",
		Requirements: []kernel.JobRequirement{"Go"},
	})
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM jobs WHERE id = ?`), created.ID.String())
	require.NoError(t, err)

	fields := validFields()
	fields["jobReference"] = created.ID.String()
	status, body := s.submit(t, fields, pdfPart())

	require.Equal(t, fiber.StatusCreated, status, body)
	app, err := s.repo.GetByID(ctx, kernel.ApplicationID(body["data"].(map[string]any)["id"].(string)))
	require.NoError(t, err)
	assert.True(t, app.IsGeneral())

	// the stale entry is gone, so lookups now agree with the database
	_, err = s.jobs.GetJobByID(ctx, created.ID)
	assert.True(t, errx.IsCode(err, job.CodeJobNotFound))
}

// failingMailer holds every send until released, then fails it
type failingMailer struct {
	release chan struct{}

	mu       sync.Mutex
	attempts []string
}

func (m *failingMailer) Send(ctx context.Context, msg *notification.Message) (string, error) {
	select {
	case <-m.release:
	case <-ctx.Done():
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, msg.To)
	return "", errors.New("smtp: 554 transaction failed")
}

func TestSubmit_MailFailureDoesNotAffectResponse(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logx.Use(zap.New(core))
	t.Cleanup(func() { logx.Configure("info", "json") })

	mailer := &failingMailer{release: make(chan struct{})}
	s := newTestServer(t, withMailer(mailer, 5*time.Second))

	start := time.Now()
	status, body := s.submit(t, validFields(), pdfPart())
	elapsed := time.Since(start)

	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	assert.Less(t, elapsed, 2*time.Second)

	count, err := s.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	close(mailer.release)
	require.NoError(t, s.dispatcher.Wait(context.Background()))

	mailer.mu.Lock()
	assert.ElementsMatch(t, []string{"hr@talencee.com", "test@example.com"}, mailer.attempts)
	mailer.mu.Unlock()

	failed := logs.FilterMessage("notification failed").All()
	require.Len(t, failed, 2)
	for _, entry := range failed {
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Contains(t, entry.ContextMap()["error"], "554")
	}
}
