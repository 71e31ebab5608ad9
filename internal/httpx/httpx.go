// Package httpx holds the fiber error handling shared by the server and the
// handler tests.
package httpx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/upload"
)

// ErrorHandler renders every error returned by a handler with the
// {success:false, message, errors?} envelope. Internal details are only
// exposed outside production.
func ErrorHandler(production bool, maxFileSize int64) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := errx.As(err); ok {
			if e.HTTPStatus >= fiber.StatusInternalServerError {
				logx.With("code", e.Code, "path", c.Path(), "error", err.Error()).Error("request failed")
				if !production {
					return c.Status(e.HTTPStatus).JSON(fiber.Map{
						"success": false,
						"message": e.Message,
						"code":    e.Code,
						"error":   err.Error(),
					})
				}
			}
			return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return RouteNotFound(c)
			case fiber.StatusRequestEntityTooLarge:
				return c.Status(fiber.StatusBadRequest).JSON(upload.ErrFileTooLarge(maxFileSize).ToHTTPResponse())
			default:
				return c.Status(fe.Code).JSON(fiber.Map{
					"success": false,
					"message": fe.Message,
				})
			}
		}

		logx.With("path", c.Path(), "error", err.Error()).Error("Internal Server Error")
		body := fiber.Map{
			"success": false,
			"message": "Internal Server Error",
		}
		if !production {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}

// RouteNotFound answers requests no route matched
func RouteNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Route not found - " + c.OriginalURL(),
	})
}
