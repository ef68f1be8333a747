package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey es la key en c.Locals donde queda el id de la request.
const RequestIDKey = "requestID"

// RequestID asigna un uuid por request y lo devuelve en X-Request-ID.
// El id viaja en el campo detail de los errores internos para correlacionar
// la alerta del cliente con el log del servidor.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(RequestIDKey, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}
