package auth

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talencee/careers/pkg/errx"
)

func newApp(key string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := errx.As(err); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	app.Put("/content", APIKeyMiddleware(key), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		status     int
		body       string
	}{
		{"valid key", "s3cret", "s3cret", fiber.StatusOK, "ok"},
		{"missing header", "s3cret", "", fiber.StatusUnauthorized, "Unauthorized - API key is required"},
		{"wrong key", "s3cret", "guess", fiber.StatusUnauthorized, "Unauthorized - Invalid API key"},
		{"prefix of key", "s3cret", "s3c", fiber.StatusUnauthorized, "Unauthorized - Invalid API key"},
		{"no key configured", "", "anything", fiber.StatusUnauthorized, "Unauthorized - Invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPut, "/content", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAPIKey, tt.header)
			}

			resp, err := newApp(tt.configured).Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, string(body), tt.body)
		})
	}
}
