package middleware

import "github.com/gofiber/fiber/v2"

// Noop simply calls the next handler. It marks the slot where
// request-scoped middleware can be inserted without touching main.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
