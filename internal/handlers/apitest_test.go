package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/padondep/internal/models"
	"github.com/yourorg/padondep/internal/routes"
	"github.com/yourorg/padondep/internal/store"
)

// newTestApp levanta la app completa sobre el store en memoria, sin DB
// ni proveedor de routing.
func newTestApp(t *testing.T) (*fiber.App, *store.Memory) {
	t.Helper()
	app := fiber.New()
	mem := store.NewMemory()
	routes.Register(app, mem, nil, nil)
	return app, mem
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if raw, ok := body.(json.RawMessage); ok {
			// Cuerpo tal cual, para probar JSON malformado
			reader = bytes.NewReader(raw)
		} else {
			encoded, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			reader = bytes.NewReader(encoded)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, esperaba %d (body: %s)", resp.StatusCode, want, raw)
	}
}

func wantErrorMessage(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	var envelope models.ErrorResponse
	decodeJSON(t, resp, &envelope)
	if envelope.Message != want {
		t.Fatalf("message = %q, esperaba %q", envelope.Message, want)
	}
}

func createUser(t *testing.T, app *fiber.App, firstName, lastName, email, pass string) models.UserDTO {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/users", models.CreateUserRequest{
		FirstName: firstName, LastName: lastName, Email: email, Password: pass,
	}, "")
	wantStatus(t, resp, http.StatusCreated)
	var out models.UserResponse
	decodeJSON(t, resp, &out)
	return out.User
}

func login(t *testing.T, app *fiber.App, email, pass string) models.LoginResponse {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: email, Password: pass,
	}, "")
	wantStatus(t, resp, http.StatusOK)
	var out models.LoginResponse
	decodeJSON(t, resp, &out)
	return out
}

func f64(v float64) *float64 { return &v }
