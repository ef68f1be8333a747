package store

import (
	"context"
	"errors"
	"time"

	"github.com/yourorg/padondep/internal/models"
)

// Errores sentinela del backend de persistencia. Los handlers los traducen
// a códigos HTTP (404, 409); todo lo demás es error interno.
var (
	ErrNotFound       = errors.New("store: row not found")
	ErrDuplicateEmail = errors.New("store: duplicate email")
)

// Store es la frontera de persistencia. Cada método construye el DTO
// tipado una sola vez al escanear la fila; las capas de arriba nunca ven
// filas crudas ni entidades vivas.
//
// Los listados retornan siempre por id descendente (lo más reciente
// primero).
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, nombre, email, passHash string) (models.User, error)
	UpdateUserCredential(ctx context.Context, id int64, passHash string) error
	UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error
	DeleteUser(ctx context.Context, id int64) error

	ListRoutes(ctx context.Context) ([]models.Route, error)
	GetRoute(ctx context.Context, id int64) (models.Route, error)
	CreateRoute(ctx context.Context, p models.RoutePayload) (models.Route, error)
	// UpdateRoute es un overwrite completo: los punteros nil de p se
	// persisten como NULL, no se preservan los valores anteriores.
	UpdateRoute(ctx context.Context, id int64, p models.RoutePayload) (models.Route, error)
	DeleteRoute(ctx context.Context, id int64) error
}
