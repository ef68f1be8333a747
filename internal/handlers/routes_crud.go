package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/padondep/internal/models"
	"github.com/yourorg/padondep/internal/store"
	"github.com/yourorg/padondep/internal/validation"
)

// RouteHandler implementa el CRUD de rutas guardadas. El update es un
// overwrite completo, no un patch: coordenadas omitidas quedan en NULL.
type RouteHandler struct {
	store store.Store
}

func NewRouteHandler(s store.Store) *RouteHandler {
	return &RouteHandler{store: s}
}

func validateRoutePayload(p models.RoutePayload) (string, bool) {
	if strings.TrimSpace(p.Name) == "" {
		return `El campo "name" es obligatorio`, false
	}
	if err := validation.ValidateOptionalPair(p.OriginLat, p.OriginLng, "origin"); err != nil {
		return err.Error(), false
	}
	if err := validation.ValidateOptionalPair(p.DestLat, p.DestLng, "dest"); err != nil {
		return err.Error(), false
	}
	return "", true
}

// List handles GET /api/routes. Ordenadas por id descendente.
func (h *RouteHandler) List(c *fiber.Ctx) error {
	routes, err := h.store.ListRoutes(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(routes)
}

// Get handles GET /api/routes/:id.
func (h *RouteHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Identificador inválido")
	}

	r, err := h.store.GetRoute(c.Context(), int64(id))
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Ruta no encontrada")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(r)
}

// Create handles POST /api/routes.
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	var p models.RoutePayload
	if err := c.BodyParser(&p); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cuerpo JSON inválido")
	}
	if msg, ok := validateRoutePayload(p); !ok {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	r, err := h.store.CreateRoute(c.Context(), p)
	if err != nil {
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// Update handles PUT /api/routes/:id.
func (h *RouteHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Identificador inválido")
	}

	var p models.RoutePayload
	if err := c.BodyParser(&p); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cuerpo JSON inválido")
	}
	if msg, ok := validateRoutePayload(p); !ok {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	r, err := h.store.UpdateRoute(c.Context(), int64(id), p)
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Ruta no encontrada")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(r)
}

// Delete handles DELETE /api/routes/:id.
func (h *RouteHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Identificador inválido")
	}

	err = h.store.DeleteRoute(c.Context(), int64(id))
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Ruta no encontrada")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
