package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/yourorg/padondep/internal/models"
)

func TestCreateUserRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	created := createUser(t, app, "Ana", "Soto Pérez", "Ana@Test.cl", "clave1234")
	if created.ID == 0 {
		t.Fatal("id no asignado")
	}
	if created.FirstName != "Ana" || created.LastName != "Soto Pérez" {
		t.Fatalf("nombre = %q %q", created.FirstName, created.LastName)
	}
	if created.Name != "Ana Soto Pérez" {
		t.Fatalf("name = %q", created.Name)
	}
	// El email se normaliza a minúsculas al guardar
	if created.Email != "ana@test.cl" {
		t.Fatalf("email = %q", created.Email)
	}
	if !created.Active {
		t.Fatal("el usuario nuevo debe quedar activo")
	}
	if created.LastLogin != nil {
		t.Fatal("lastLogin debe ser null antes del primer login")
	}

	resp := doRequest(t, app, http.MethodGet, "/api/users/1", nil, "")
	wantStatus(t, resp, http.StatusOK)
	var fetched models.UserDTO
	decodeJSON(t, resp, &fetched)
	if fetched.ID != created.ID || fetched.Email != created.Email {
		t.Fatalf("get = %+v", fetched)
	}
}

func TestCreateUserNeverExposesCredential(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")

	resp := doRequest(t, app, http.MethodGet, "/api/users/1", nil, "")
	wantStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	lower := strings.ToLower(string(raw))
	for _, banned := range []string{"pass", "hash", "clave1234"} {
		if strings.Contains(lower, banned) {
			t.Fatalf("la respuesta filtra la credencial (%q): %s", banned, raw)
		}
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []models.CreateUserRequest{
		{LastName: "Soto", Email: "a@b.cl", Password: "clave1234"},
		{FirstName: "Ana", Password: "clave1234"},
		{FirstName: "Ana", Email: "a@b.cl"},
		{FirstName: "   ", Email: "a@b.cl", Password: "clave1234"},
	}
	for _, req := range cases {
		resp := doRequest(t, app, http.MethodPost, "/api/users", req, "")
		wantStatus(t, resp, http.StatusBadRequest)
		wantErrorMessage(t, resp, "Faltan datos obligatorios")
	}
}

func TestCreateUserInvalidBody(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/users", json.RawMessage(`{"firstName":`), "")
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestCreateUserDuplicateEmailCaseInsensitive(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")

	resp := doRequest(t, app, http.MethodPost, "/api/users", models.CreateUserRequest{
		FirstName: "Otra", LastName: "Ana", Email: "ANA@TEST.CL", Password: "otra1234",
	}, "")
	wantStatus(t, resp, http.StatusConflict)
	wantErrorMessage(t, resp, "Ya existe un usuario con ese correo")
}

func TestGetUserNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/users/99", nil, "")
	wantStatus(t, resp, http.StatusNotFound)
	wantErrorMessage(t, resp, "Usuario no encontrado")
}

func TestGetUserInvalidID(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/users/abc", nil, "")
	wantStatus(t, resp, http.StatusBadRequest)
	wantErrorMessage(t, resp, "Identificador inválido")
}

func TestListUsersDescendingOrder(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")
	createUser(t, app, "Beto", "Rojas", "beto@test.cl", "clave1234")

	resp := doRequest(t, app, http.MethodGet, "/api/users", nil, "")
	wantStatus(t, resp, http.StatusOK)
	var users []models.UserDTO
	decodeJSON(t, resp, &users)
	if len(users) != 2 {
		t.Fatalf("len = %d", len(users))
	}
	if users[0].ID != 2 || users[1].ID != 1 {
		t.Fatalf("orden = [%d, %d], esperaba descendente", users[0].ID, users[1].ID)
	}
}

func TestDeleteUser(t *testing.T) {
	app, _ := newTestApp(t)
	createUser(t, app, "Ana", "Soto", "ana@test.cl", "clave1234")

	resp := doRequest(t, app, http.MethodDelete, "/api/users/1", nil, "")
	wantStatus(t, resp, http.StatusNoContent)

	resp = doRequest(t, app, http.MethodGet, "/api/users/1", nil, "")
	wantStatus(t, resp, http.StatusNotFound)

	// Repetir el delete también es 404
	resp = doRequest(t, app, http.MethodDelete, "/api/users/1", nil, "")
	wantStatus(t, resp, http.StatusNotFound)
}
