package applicationapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/talencee/careers/recruitment/application"
	"github.com/talencee/careers/recruitment/application/applicationsrv"
	"github.com/talencee/careers/recruitment/upload"
	"github.com/valyala/fasthttp"
)

const resumeField = "resume"

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SubmitApplication accepts a multipart submission with one resume file
// POST /api/applications
func (h *Handlers) SubmitApplication(c *fiber.Ctx) error {
	req := applicationsrv.SubmitRequest{
		Fields: application.RawFields{
			Name:    c.FormValue("name"),
			Email:   c.FormValue("email"),
			Subject: c.FormValue("subject"),
			Message: c.FormValue("message"),
		},
		JobReference: c.FormValue("jobReference", c.FormValue("jobId")),
	}

	fh, err := c.FormFile(resumeField)
	switch {
	case err == nil:
		file, err := fh.Open()
		if err != nil {
			return upload.ErrTransferFailed(err).WithDetail("file_name", fh.Filename)
		}
		defer file.Close()

		req.Resume = &upload.Incoming{
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get(fiber.HeaderContentType),
			Size:         fh.Size,
			Body:         file,
		}
	case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
		// no resume part; the service answers with resume required
	default:
		return upload.ErrTransferFailed(err)
	}

	summary, err := h.service.Submit(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(application.SubmitApplicationResponse{
		Success: true,
		Message: "Application submitted successfully",
		Data:    *summary,
	})
}

// RegisterRoutes registers all application routes. Submission is public.
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	api := router.Group("/applications")

	api.Post("/", handlers.SubmitApplication)
}
