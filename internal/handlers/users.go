package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/padondep/internal/models"
	"github.com/yourorg/padondep/internal/password"
	"github.com/yourorg/padondep/internal/store"
)

// UserHandler implementa el CRUD de usuarios.
type UserHandler struct {
	store store.Store
}

func NewUserHandler(s store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	dtos := make([]models.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, models.NewUserDTO(u))
	}
	return c.JSON(dtos)
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Identificador inválido")
	}

	u, err := h.store.GetUser(c.Context(), int64(id))
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(models.NewUserDTO(u))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cuerpo JSON inválido")
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Faltan datos obligatorios")
	}

	normalizedEmail := models.NormalizeEmail(req.Email)

	// Chequeo previo igual que el insert: el índice único respalda la carrera
	if _, err := h.store.GetUserByEmail(c.Context(), normalizedEmail); err == nil {
		return errorJSON(c, fiber.StatusConflict, "Ya existe un usuario con ese correo")
	} else if !errors.Is(err, store.ErrNotFound) {
		return internalError(c, err)
	}

	passHash, err := password.Hash(req.Password)
	if err != nil {
		return internalError(c, err)
	}

	fullName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	u, err := h.store.CreateUser(c.Context(), fullName, normalizedEmail, passHash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return errorJSON(c, fiber.StatusConflict, "Ya existe un usuario con ese correo")
	}
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UserResponse{User: models.NewUserDTO(u)})
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Identificador inválido")
	}

	err = h.store.DeleteUser(c.Context(), int64(id))
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
