package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yourorg/padondep/internal/models"
)

// API es el cliente HTTP tipado del backend local. Sin reintentos ni
// cancelación: una llamada lenta o fallida se resuelve y el error sube
// como alerta al usuario.

// APIError es el sobre {message, detail} del servidor más el status HTTP.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// API habla con el backend local.
type API struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewAPI crea el cliente apuntando a la URL base del backend.
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Token retorna el token de sesión vigente (vacío si no hay login).
func (a *API) Token() string {
	return a.token
}

// ClearToken descarta la sesión (logout).
func (a *API) ClearToken() {
	a.token = ""
}

func (a *API) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
			apiErr.Detail = envelope.Detail
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Health verifica que el backend responda.
func (a *API) Health() error {
	return a.do(http.MethodGet, "/api/health", nil, nil)
}

// Login autentica y guarda el token de sesión para llamadas posteriores.
func (a *API) Login(email, pass string) (models.UserDTO, error) {
	var resp models.LoginResponse
	err := a.do(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: email, Password: pass}, &resp)
	if err != nil {
		return models.UserDTO{}, err
	}
	a.token = resp.Token
	return resp.User, nil
}

// Register crea una cuenta nueva.
func (a *API) Register(req models.CreateUserRequest) (models.UserDTO, error) {
	var resp models.UserResponse
	if err := a.do(http.MethodPost, "/api/users", req, &resp); err != nil {
		return models.UserDTO{}, err
	}
	return resp.User, nil
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (a *API) ChangePassword(userID int64, current, newPass string) error {
	body := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: newPass}
	return a.do(http.MethodPut, fmt.Sprintf("/api/users/%d/password", userID), body, nil)
}

// ListRoutes trae todas las rutas guardadas (id descendente).
func (a *API) ListRoutes() ([]models.Route, error) {
	var routes []models.Route
	err := a.do(http.MethodGet, "/api/routes", nil, &routes)
	return routes, err
}

// GetRoute trae una ruta por id.
func (a *API) GetRoute(id int64) (models.Route, error) {
	var r models.Route
	err := a.do(http.MethodGet, fmt.Sprintf("/api/routes/%d", id), nil, &r)
	return r, err
}

// CreateRoute guarda una ruta nueva.
func (a *API) CreateRoute(p models.RoutePayload) (models.Route, error) {
	var r models.Route
	err := a.do(http.MethodPost, "/api/routes", p, &r)
	return r, err
}

// UpdateRoute sobrescribe una ruta existente (overwrite completo).
func (a *API) UpdateRoute(id int64, p models.RoutePayload) (models.Route, error) {
	var r models.Route
	err := a.do(http.MethodPut, fmt.Sprintf("/api/routes/%d", id), p, &r)
	return r, err
}

// DeleteRoute elimina una ruta.
func (a *API) DeleteRoute(id int64) error {
	return a.do(http.MethodDelete, fmt.Sprintf("/api/routes/%d", id), nil, nil)
}

// RoutePlan es la respuesta del proxy de routing externo.
type RoutePlan struct {
	Distance  float64         `json:"distance"`
	Duration  float64         `json:"duration"`
	Geometry  json.RawMessage `json:"geometry"`
	Waypoints []RouteWaypoint `json:"waypoints"`
}

// RouteWaypoint es un punto de ajuste de la ruta calculada.
type RouteWaypoint struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"`
}

// PlanRoute pide al backend la ruta calculada por el proveedor externo.
func (a *API) PlanRoute(originLat, originLng, destLat, destLng float64, profile string) (RoutePlan, error) {
	path := fmt.Sprintf("/api/osrm-route?origin=%f,%f&dest=%f,%f&profile=%s",
		originLat, originLng, destLat, destLng, profile)
	var plan RoutePlan
	err := a.do(http.MethodGet, path, nil, &plan)
	return plan, err
}
