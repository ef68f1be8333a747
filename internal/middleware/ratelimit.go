package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/yourorg/padondep/internal/models"
)

// StrictRateLimiter limita endpoints sensibles (login, registro).
func StrictRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,              // Solo 10 requests
		Expiration: 1 * time.Minute, // por minuto
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Message: "demasiadas solicitudes, intenta de nuevo en un minuto",
			})
		},
	})
}
