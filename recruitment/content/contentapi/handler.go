package contentapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/talencee/careers/recruitment/content"
	"github.com/talencee/careers/recruitment/content/contentsrv"
)

// Handlers provides HTTP handlers for the site content document
type Handlers struct {
	service *contentsrv.ContentService
}

// NewHandlers creates a new content handlers instance
func NewHandlers(service *contentsrv.ContentService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetContent returns the landing page document
// GET /api/content
func (h *Handlers) GetContent(c *fiber.Ctx) error {
	doc, err := h.service.GetContent(c.UserContext())
	if err != nil {
		return err
	}

	if doc == nil {
		return c.JSON(content.ContentResponse{
			Success: true,
			Data:    nil,
			Message: content.ErrContentNotFound().Message,
		})
	}

	return c.JSON(content.ContentResponse{
		Success: true,
		Data:    doc,
	})
}

// UpdateContent replaces the landing page document
// PUT /api/content
func (h *Handlers) UpdateContent(c *fiber.Ctx) error {
	var req content.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return content.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	doc, err := h.service.UpdateContent(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(content.ContentResponse{
		Success: true,
		Data:    doc,
		Message: "Content updated successfully",
	})
}

// RegisterRoutes registers the content routes. Reads are public, writes go
// through adminMiddleware.
func RegisterRoutes(router fiber.Router, handlers *Handlers, adminMiddleware fiber.Handler) {
	api := router.Group("/content")

	api.Get("/", handlers.GetContent)
	api.Put("/", adminMiddleware, handlers.UpdateContent)
}
