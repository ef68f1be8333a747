package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/padondep/internal/middleware"
	"github.com/yourorg/padondep/internal/models"
)

// Sobre de error del API: {message, detail?}. Las condiciones de
// validación/not-found se reportan por request; los errores de persistencia
// se convierten en error interno con el detalle adjunto.

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Message: message})
}

func errDetail(message string, err error) models.ErrorResponse {
	return models.ErrorResponse{Message: message, Detail: err.Error()}
}

func internalError(c *fiber.Ctx, err error) error {
	reqID, _ := c.Locals(middleware.RequestIDKey).(string)
	log.Printf("[API ERROR] request_id=%s %v", reqID, err)

	detail := err.Error()
	if reqID != "" {
		detail = fmt.Sprintf("%s (request_id=%s)", detail, reqID)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Message: "Error interno",
		Detail:  detail,
	})
}
