// Package auth guards admin routes with a static shared secret.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderAPIKey carries the admin secret
const HeaderAPIKey = "X-API-Key"

// APIKeyMiddleware rejects requests whose X-API-Key header does not match
// key. An empty configured key rejects every request.
func APIKeyMiddleware(key string) fiber.Handler {
	expected := []byte(key)

	return func(c *fiber.Ctx) error {
		provided := c.Get(HeaderAPIKey)
		if provided == "" {
			return ErrAPIKeyMissing()
		}

		if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			return ErrAPIKeyInvalid()
		}

		return c.Next()
	}
}
