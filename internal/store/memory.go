package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yourorg/padondep/internal/models"
)

// Memory es una implementación en memoria de Store con el mismo contrato
// que MySQL (orden descendente, email único case-insensitive, overwrite
// completo en update). Se usa en tests de handlers y del cliente; no es
// apta para producción.
type Memory struct {
	mu         sync.Mutex
	users      map[int64]models.User
	routes     map[int64]models.Route
	nextUserID int64
	nextRoute  int64
}

// NewMemory crea un store vacío.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]models.User),
		routes:     make(map[int64]models.Route),
		nextUserID: 1,
		nextRoute:  1,
	}
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, nombre, email, passHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, ErrDuplicateEmail
		}
	}

	now := time.Now()
	u := models.User{
		ID:            m.nextUserID,
		Nombre:        nombre,
		Email:         email,
		PassHash:      passHash,
		Activo:        true,
		CreadoEn:      now,
		ActualizadoEn: now,
	}
	m.users[u.ID] = u
	m.nextUserID++
	return u, nil
}

func (m *Memory) UpdateUserCredential(_ context.Context, id int64, passHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PassHash = passHash
	u.ActualizadoEn = time.Now()
	m.users[id] = u
	return nil
}

func (m *Memory) UpdateUserLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.UltimoLogin = &at
	u.ActualizadoEn = time.Now()
	m.users[id] = u
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) ListRoutes(_ context.Context) ([]models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	routes := make([]models.Route, 0, len(m.routes))
	for _, r := range m.routes {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].ID > routes[j].ID })
	return routes, nil
}

func (m *Memory) GetRoute(_ context.Context, id int64) (models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.routes[id]
	if !ok {
		return models.Route{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) CreateRoute(_ context.Context, p models.RoutePayload) (models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	r := models.Route{
		ID:        m.nextRoute,
		Name:      p.Name,
		OriginLat: p.OriginLat,
		OriginLng: p.OriginLng,
		DestLat:   p.DestLat,
		DestLng:   p.DestLng,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.routes[r.ID] = r
	m.nextRoute++
	return r, nil
}

func (m *Memory) UpdateRoute(_ context.Context, id int64, p models.RoutePayload) (models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.routes[id]
	if !ok {
		return models.Route{}, ErrNotFound
	}
	// Overwrite completo: coordenadas omitidas quedan en nil
	r.Name = p.Name
	r.OriginLat = p.OriginLat
	r.OriginLng = p.OriginLng
	r.DestLat = p.DestLat
	r.DestLng = p.DestLng
	r.UpdatedAt = time.Now()
	m.routes[id] = r
	return r, nil
}

func (m *Memory) DeleteRoute(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.routes[id]; !ok {
		return ErrNotFound
	}
	delete(m.routes, id)
	return nil
}
