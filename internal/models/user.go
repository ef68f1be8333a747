package models

import (
	"strings"
	"time"
)

// User representa una fila de la tabla `usuario` (uso interno).
// El nombre completo se guarda en una sola columna; el API lo expone
// separado en firstName/lastName.
type User struct {
	ID            int64
	Nombre        string
	Email         string
	PassHash      string
	Activo        bool
	CreadoEn      time.Time
	ActualizadoEn time.Time
	UltimoLogin   *time.Time
}

// UserDTO es la representación sanitizada que sale por el API.
// Nunca incluye la credencial.
type UserDTO struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// SplitName separa un nombre completo en (firstName, lastName) por el
// primer espacio: el primer token es el nombre, el resto el apellido.
func SplitName(fullName string) (string, string) {
	chunks := strings.Fields(strings.TrimSpace(fullName))
	if len(chunks) == 0 {
		return "", ""
	}
	return chunks[0], strings.Join(chunks[1:], " ")
}

// NewUserDTO construye el DTO sanitizado a partir de la fila.
func NewUserDTO(u User) UserDTO {
	fullName := strings.TrimSpace(u.Nombre)
	firstName, lastName := SplitName(fullName)
	if firstName == "" {
		firstName = fullName
	}
	return UserDTO{
		ID:        u.ID,
		FirstName: firstName,
		LastName:  lastName,
		Name:      fullName,
		Email:     u.Email,
		Active:    u.Activo,
		CreatedAt: u.CreadoEn,
		UpdatedAt: u.ActualizadoEn,
		LastLogin: u.UltimoLogin,
	}
}

// CreateUserRequest contiene los datos de registro.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest representa las credenciales enviadas por el cliente.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse se retorna tras autenticación exitosa.
type LoginResponse struct {
	User      UserDTO    `json:"user"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UserResponse envuelve un usuario recién creado.
type UserResponse struct {
	User UserDTO `json:"user"`
}

// ChangePasswordRequest contiene el cambio de contraseña.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// NormalizeEmail deja el correo en minúsculas y sin espacios; la unicidad
// de email es case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
