package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Recovery converts handler panics into a 500 response. A failed request
// must never take the process down.
func Recovery(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Path()))
				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "internal server error",
				})
			}
		}()
		return c.Next()
	}
}
