package handlers

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yourorg/padondep/internal/models"
	"github.com/yourorg/padondep/internal/password"
	"github.com/yourorg/padondep/internal/store"
)

// AuthHandler implementa login y cambio de contraseña. Al autenticar
// emite un token de sesión que el cliente adjunta en operaciones
// protegidas.
type AuthHandler struct {
	store     store.Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthHandler(s store.Store) *AuthHandler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("WARNING: JWT_SECRET no definido, usando secret de desarrollo")
		secret = "dev-secret-change-me"
	}

	tokenTTL := 24 * time.Hour
	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		dur, err := time.ParseDuration(ttl)
		if err != nil || dur <= 0 {
			log.Printf("invalid JWT_TTL=%q, using default %s", ttl, tokenTTL)
		} else {
			tokenTTL = dur
		}
	}

	return &AuthHandler{
		store:     s,
		jwtSecret: []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

type userClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (h *AuthHandler) issueToken(userID int64, email string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(h.tokenTTL)
	claims := userClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	return signed, expires, err
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cuerpo JSON inválido")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Correo y contraseña son obligatorios")
	}

	u, err := h.store.GetUserByEmail(c.Context(), models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}
	if err != nil {
		return internalError(c, err)
	}

	matched, needsUpgrade := password.Verify(req.Password, u.PassHash)
	if !matched {
		return errorJSON(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	// Migración oportunista de credencial legacy: una sola vez, y si el
	// write-back falla el login sigue adelante
	if needsUpgrade {
		if upgraded, err := password.Hash(req.Password); err != nil {
			log.Printf("No se pudo actualizar el hash del usuario %d: %v", u.ID, err)
		} else if err := h.store.UpdateUserCredential(c.Context(), u.ID, upgraded); err != nil {
			log.Printf("No se pudo actualizar el hash del usuario %d: %v", u.ID, err)
		}
	}

	now := time.Now()
	if err := h.store.UpdateUserLastLogin(c.Context(), u.ID, now); err != nil {
		return internalError(c, err)
	}
	u.UltimoLogin = &now

	token, expires, err := h.issueToken(u.ID, u.Email)
	if err != nil {
		return internalError(c, err)
	}

	c.Set("Cache-Control", "no-store")
	return c.JSON(models.LoginResponse{
		User:      models.NewUserDTO(u),
		Token:     token,
		ExpiresAt: &expires,
	})
}

// ChangePassword handles PUT /api/users/:id/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Identificador inválido")
	}

	// El token solo autoriza la cuenta propia
	if sub, _ := c.Locals("userID").(string); sub != strconv.Itoa(id) {
		return errorJSON(c, fiber.StatusForbidden, "No puedes cambiar la contraseña de otro usuario")
	}

	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cuerpo JSON inválido")
	}
	if len(req.NewPassword) < 8 {
		return errorJSON(c, fiber.StatusBadRequest, "La nueva contraseña debe tener al menos 8 caracteres")
	}

	u, err := h.store.GetUser(c.Context(), int64(id))
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	if err != nil {
		return internalError(c, err)
	}

	matched, _ := password.Verify(req.CurrentPassword, u.PassHash)
	if !matched {
		return errorJSON(c, fiber.StatusUnauthorized, "Contraseña actual incorrecta")
	}

	newHash, err := password.Hash(req.NewPassword)
	if err != nil {
		return internalError(c, err)
	}
	if err := h.store.UpdateUserCredential(c.Context(), u.ID, newHash); err != nil {
		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RequireAuth exige el token de sesión emitido en login.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return errorJSON(c, fiber.StatusUnauthorized, "Token requerido")
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		var claims userClaims
		token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return h.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return errorJSON(c, fiber.StatusUnauthorized, "Token inválido")
		}

		c.Locals("userID", claims.Subject)
		return c.Next()
	}
}
